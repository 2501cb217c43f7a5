package domain

import (
	"fmt"
	"regexp"
	"strings"

	m "github.com/mouse-blink/splint/internal/model"
)

// ValueMatcherKind selects how a pattern entry compares token values.
type ValueMatcherKind uint8

// Value matcher variants.
const (
	MatchAny ValueMatcherKind = iota
	MatchExact
	MatchRegex
)

// ValueMatcher is the compiled value half of a pattern entry.
type ValueMatcher struct {
	Kind  ValueMatcherKind
	Exact string
	Regex *regexp.Regexp
}

// Matches reports whether value satisfies the matcher. A regex matches when it
// matches any substring of the value.
func (v ValueMatcher) Matches(value string) bool {
	switch v.Kind {
	case MatchExact:
		return v.Exact == value
	case MatchRegex:
		return v.Regex.MatchString(value)
	default:
		return true
	}
}

func (v ValueMatcher) String() string {
	switch v.Kind {
	case MatchExact:
		return fmt.Sprintf("%q", v.Exact)
	case MatchRegex:
		return "/" + v.Regex.String() + "/"
	default:
		return "*"
	}
}

// kindSet is a bit set of token kinds accepted by a pattern entry.
type kindSet uint8

func kindBit(k m.Kind) kindSet {
	return 1 << k
}

func (s kindSet) has(k m.Kind) bool {
	return s&kindBit(k) != 0
}

// PatternEntry is one compiled position of a rule pattern.
type PatternEntry struct {
	Kinds kindSet
	Label string
	Value ValueMatcher
}

// Matches reports whether tok satisfies the entry.
func (e PatternEntry) Matches(tok m.Token) bool {
	return e.Kinds.has(tok.Kind) && e.Value.Matches(tok.Value)
}

func (e PatternEntry) String() string {
	return e.Label + "(" + e.Value.String() + ")"
}

// CompiledRule is an immutable, executable rule. It is safe for concurrent use.
type CompiledRule struct {
	Name        string
	Description string
	Help        string
	More        string
	Severity    m.Severity
	Pattern     []PatternEntry
	RangeStart  int
	RangeEnd    int
	Order       int
}

var kindNames = map[string]struct {
	label string
	kinds kindSet
}{
	"punct":      {"Punct", kindBit(m.KindPunct)},
	"ident":      {"Ident", kindBit(m.KindIdent)},
	"literal":    {"Literal", kindBit(m.KindLiteral)},
	"delim":      {"Delim", kindBit(m.KindDelimOpen) | kindBit(m.KindDelimClose)},
	"delimopen":  {"DelimOpen", kindBit(m.KindDelimOpen)},
	"delimclose": {"DelimClose", kindBit(m.KindDelimClose)},
}

// CompileRule validates a rule definition and compiles its pattern.
func CompileRule(def m.RuleDef) (*CompiledRule, error) {
	if len(def.Pattern) == 0 {
		return nil, m.RuleErrorf(def.Name, m.ErrInvalidPattern, "pattern is empty")
	}

	entries := make([]PatternEntry, 0, len(def.Pattern))

	for i, raw := range def.Pattern {
		entry, err := compileEntry(def.Name, i, raw)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	start, end := 0, len(entries)-1
	if def.Range != nil {
		start, end = def.Range[0], def.Range[1]
	}

	if start < 0 || start > end || end >= len(entries) {
		return nil, m.RuleErrorf(def.Name, m.ErrRangeOutOfBounds,
			"range [%d, %d] does not fit a pattern of length %d", start, end, len(entries))
	}

	severity := m.SeverityAdvisory
	if def.Fail {
		severity = m.SeverityFail
	}

	return &CompiledRule{
		Name:        def.Name,
		Description: def.Description,
		Help:        def.Help,
		More:        def.More,
		Severity:    severity,
		Pattern:     entries,
		RangeStart:  start,
		RangeEnd:    end,
		Order:       def.Order,
	}, nil
}

func compileEntry(rule string, index int, raw m.PatternEntryDef) (PatternEntry, error) {
	kind, ok := kindNames[strings.ToLower(strings.TrimSpace(raw.Kind))]
	if !ok {
		return PatternEntry{}, m.RuleErrorf(rule, m.ErrInvalidPattern, "entry %d: unknown token kind %q", index, raw.Kind)
	}

	entry := PatternEntry{Kinds: kind.kinds, Label: kind.label}

	switch {
	case raw.Value == nil:
		entry.Value = ValueMatcher{Kind: MatchAny}
	case isRegexLiteral(*raw.Value):
		expr := (*raw.Value)[1 : len(*raw.Value)-1]

		re, err := regexp.Compile(expr)
		if err != nil {
			return PatternEntry{}, m.RuleErrorf(rule, m.ErrInvalidRegex, "entry %d: %v", index, err)
		}

		entry.Value = ValueMatcher{Kind: MatchRegex, Regex: re}
	default:
		entry.Value = ValueMatcher{Kind: MatchExact, Exact: *raw.Value}
	}

	return entry, nil
}

func isRegexLiteral(v string) bool {
	return len(v) >= 2 && strings.HasPrefix(v, "/") && strings.HasSuffix(v, "/")
}

// Summary describes the rule for display.
func (r *CompiledRule) Summary() m.RuleSummary {
	labels := make([]string, 0, len(r.Pattern))
	for _, e := range r.Pattern {
		labels = append(labels, e.String())
	}

	return m.RuleSummary{
		Name:        r.Name,
		Description: r.Description,
		Severity:    r.Severity,
		Pattern:     strings.Join(labels, " "),
		Range:       [2]int{r.RangeStart, r.RangeEnd},
	}
}
