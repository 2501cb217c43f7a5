package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/splint/internal/model"
)

func TestCompileRule_Defaults(t *testing.T) {
	rule := mustCompile(t, unwrapDef())

	assert.Equal(t, "unwrap", rule.Name)
	assert.Equal(t, m.SeverityFail, rule.Severity)
	assert.Equal(t, 0, rule.RangeStart)
	assert.Equal(t, 3, rule.RangeEnd)
	require.Len(t, rule.Pattern, 4)
	assert.Equal(t, MatchExact, rule.Pattern[0].Value.Kind)
}

func TestCompileRule_KindsAreCaseInsensitive(t *testing.T) {
	def := m.RuleDef{Name: "r", Pattern: []m.PatternEntryDef{
		entry("ident"), entry("PUNCT"), entry(" Literal "), entry("delimopen"), entry("DelimClose"),
	}}

	rule := mustCompile(t, def)

	tokens, _ := lineTokens(ident("x"), punct("+"), lit("1"), open("("), shut(")"))
	for i, e := range rule.Pattern {
		assert.True(t, e.Matches(tokens[i]), "entry %d", i)
	}
}

func TestCompileRule_DelimMatchesEitherSide(t *testing.T) {
	rule := mustCompile(t, m.RuleDef{Name: "d", Pattern: []m.PatternEntryDef{entry("Delim")}})
	tokens, _ := lineTokens(open("("), shut(")"), punct("."))

	assert.True(t, rule.Pattern[0].Matches(tokens[0]))
	assert.True(t, rule.Pattern[0].Matches(tokens[1]))
	assert.False(t, rule.Pattern[0].Matches(tokens[2]))
}

func TestCompileRule_RegexValue(t *testing.T) {
	rule := mustCompile(t, m.RuleDef{Name: "tests", Pattern: []m.PatternEntryDef{entry("Ident", "/^test_/")}})
	require.Equal(t, MatchRegex, rule.Pattern[0].Value.Kind)

	tokens, _ := lineTokens(ident("test_foo"), ident("foo_test"), lit("test_foo"))

	assert.True(t, rule.Pattern[0].Matches(tokens[0]))
	assert.False(t, rule.Pattern[0].Matches(tokens[1]))
	assert.False(t, rule.Pattern[0].Matches(tokens[2]), "kind must match too")
}

func TestCompileRule_RegexMatchesSubstring(t *testing.T) {
	rule := mustCompile(t, m.RuleDef{Name: "r", Pattern: []m.PatternEntryDef{entry("Ident", "/wrap/")}})
	tokens, _ := lineTokens(ident("unwrap_or"))

	assert.True(t, rule.Pattern[0].Matches(tokens[0]))
}

func TestCompileRule_SingleSlashIsExact(t *testing.T) {
	rule := mustCompile(t, m.RuleDef{Name: "div", Pattern: []m.PatternEntryDef{entry("Punct", "/")}})

	assert.Equal(t, MatchExact, rule.Pattern[0].Value.Kind)
	assert.Equal(t, "/", rule.Pattern[0].Value.Exact)
}

func TestCompileRule_Errors(t *testing.T) {
	cases := []struct {
		name string
		def  m.RuleDef
		want error
	}{
		{"empty pattern", m.RuleDef{Name: "empty"}, m.ErrInvalidPattern},
		{"unknown kind", m.RuleDef{Name: "kind", Pattern: []m.PatternEntryDef{entry("Keyword", "fn")}}, m.ErrInvalidPattern},
		{"bad regex", m.RuleDef{Name: "re", Pattern: []m.PatternEntryDef{entry("Ident", "/(/")}}, m.ErrInvalidRegex},
		{
			"range past pattern",
			m.RuleDef{Name: "range", Range: &[2]int{2, 5}, Pattern: []m.PatternEntryDef{entry("Ident"), entry("Ident"), entry("Ident")}},
			m.ErrRangeOutOfBounds,
		},
		{
			"inverted range",
			m.RuleDef{Name: "inverted", Range: &[2]int{1, 0}, Pattern: []m.PatternEntryDef{entry("Ident"), entry("Ident")}},
			m.ErrRangeOutOfBounds,
		},
		{
			"negative range",
			m.RuleDef{Name: "negative", Range: &[2]int{-1, 0}, Pattern: []m.PatternEntryDef{entry("Ident")}},
			m.ErrRangeOutOfBounds,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule, err := CompileRule(tc.def)
			require.Error(t, err)
			assert.Nil(t, rule)
			assert.ErrorIs(t, err, tc.want)

			var re *m.RuleError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tc.def.Name, re.Rule)
		})
	}
}

func TestCompiledRule_Summary(t *testing.T) {
	def := unwrapDef()
	def.Range = &[2]int{1, 2}
	def.Pattern[2] = entry("Delim")

	summary := mustCompile(t, def).Summary()

	assert.Equal(t, `Punct(".") Ident("unwrap") Delim(*) DelimClose(")")`, summary.Pattern)
	assert.Equal(t, [2]int{1, 2}, summary.Range)
	assert.Equal(t, m.SeverityFail, summary.Severity)
}
