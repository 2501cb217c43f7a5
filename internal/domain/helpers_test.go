package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/splint/internal/model"
)

type tk struct {
	kind  m.Kind
	value string
}

func punct(v string) tk { return tk{m.KindPunct, v} }
func ident(v string) tk { return tk{m.KindIdent, v} }
func lit(v string) tk   { return tk{m.KindLiteral, v} }
func open(v string) tk  { return tk{m.KindDelimOpen, v} }
func shut(v string) tk  { return tk{m.KindDelimClose, v} }

// lineTokens lays tokens out on line 1 with no whitespace between them and
// returns them with the matching source text.
func lineTokens(parts ...tk) ([]m.Token, []byte) {
	var b strings.Builder

	tokens := make([]m.Token, 0, len(parts))

	for _, p := range parts {
		off := b.Len()
		b.WriteString(p.value)

		tokens = append(tokens, m.Token{
			Kind:  p.kind,
			Value: p.value,
			Span: m.Span{
				Start: m.Position{Line: 1, Column: off + 1, Offset: off},
				End:   m.Position{Line: 1, Column: b.Len() + 1, Offset: b.Len()},
			},
		})
	}

	return tokens, []byte(b.String())
}

// unwrapCall is the token sequence of `a.unwrap().unwrap()`.
func unwrapCall() []tk {
	return []tk{
		ident("a"), punct("."), ident("unwrap"), open("("), shut(")"),
		punct("."), ident("unwrap"), open("("), shut(")"),
	}
}

func entry(kind string, value ...string) m.PatternEntryDef {
	if len(value) == 0 {
		return m.PatternEntryDef{Kind: kind}
	}

	return m.PatternEntryDef{Kind: kind, Value: m.StrPtr(value[0])}
}

func unwrapDef() m.RuleDef {
	return m.RuleDef{
		Name:        "unwrap",
		Description: "Avoid unwrap",
		Fail:        true,
		Pattern: []m.PatternEntryDef{
			entry("Punct", "."), entry("Ident", "unwrap"), entry("DelimOpen", "("), entry("DelimClose", ")"),
		},
	}
}

func mustCompile(t *testing.T, def m.RuleDef) *CompiledRule {
	t.Helper()

	rule, err := CompileRule(def)
	require.NoError(t, err)

	return rule
}

func mustCompileSet(t *testing.T, defs ...m.RuleDef) *RuleSet {
	t.Helper()

	set, err := CompileRuleSet(defs)
	require.NoError(t, err)

	return set
}

// scanText is a tiny lexer for test sources: words become Ident, "//" starts a
// line comment, every other non-space byte is a single Punct or Delim token.
func scanText(src string) FileScan {
	var (
		tokens   []m.Token
		comments []m.Comment
	)

	line, col := 1, 1
	pos := func(off int) m.Position { return m.Position{Line: line, Column: col, Offset: off} }

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '\n':
			line++
			col = 1
			i++
		case c == ' ' || c == '\t' || c == '\r':
			col++
			i++
		case strings.HasPrefix(src[i:], "//"):
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src) - i
			}

			start := pos(i)
			col += end
			comments = append(comments, m.Comment{Text: src[i : i+end], Span: m.Span{Start: start, End: pos(i + end)}})
			i += end
		case isWordByte(c):
			j := i
			for j < len(src) && isWordByte(src[j]) {
				j++
			}

			start := pos(i)
			col += j - i
			tokens = append(tokens, m.Token{Kind: m.KindIdent, Value: src[i:j], Span: m.Span{Start: start, End: pos(j)}})
			i = j
		default:
			kind := m.KindPunct
			if strings.IndexByte("([{", c) >= 0 {
				kind = m.KindDelimOpen
			} else if strings.IndexByte(")]}", c) >= 0 {
				kind = m.KindDelimClose
			}

			start := pos(i)
			col++
			tokens = append(tokens, m.Token{Kind: kind, Value: string(c), Span: m.Span{Start: start, End: pos(i + 1)}})
			i++
		}
	}

	return FileScan{Path: "test.rs", Content: []byte(src), Tokens: tokens, Comments: comments}
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func ruleNames(diags []m.Diagnostic) []string {
	names := make([]string, 0, len(diags))
	for _, d := range diags {
		names = append(names, d.Rule)
	}

	return names
}
