package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/splint/internal/model"
)

func identRule(name string, order int) m.RuleDef {
	return m.RuleDef{Name: name, Order: order, Pattern: []m.PatternEntryDef{entry("Ident", name)}}
}

func TestParseIgnoreDirective(t *testing.T) {
	cases := []struct {
		text  string
		ok    bool
		all   bool
		names []string
	}{
		{text: "// splint:ignore", ok: true, all: true},
		{text: "//! splint:ignore", ok: true, all: true},
		{text: "/* splint:ignore unwrap */", ok: true, names: []string{"unwrap"}},
		{text: "# splint:ignore Unwrap, todo", ok: true, names: []string{"unwrap", "todo"}},
		{text: "// splint:ignore , ", ok: true, all: true},
		{text: "// nothing to see"},
		{text: "// see splint:ignore"},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			rule, ok := parseIgnoreDirective(tc.text)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.all, rule.all)

			for _, name := range tc.names {
				assert.True(t, rule.ignores(name), name)
			}
		})
	}
}

func TestLintTokens_IgnoreScopes(t *testing.T) {
	set := mustCompileSet(t, identRule("unwrap", 0), identRule("todo", 1))

	cases := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "no directives",
			src:  "unwrap\ntodo\n",
			want: []string{"unwrap", "todo"},
		},
		{
			name: "leading directive covers next line only",
			src:  "// splint:ignore unwrap\nunwrap\ntodo\nunwrap\n",
			want: []string{"todo", "unwrap"},
		},
		{
			name: "file scope after blank line",
			src:  "// splint:ignore unwrap\n\nunwrap\ntodo\nunwrap\n",
			want: []string{"todo"},
		},
		{
			name: "file scope inner doc comment",
			src:  "//! splint:ignore unwrap\nunwrap\ntodo\nunwrap\n",
			want: []string{"todo"},
		},
		{
			name: "file scope all",
			src:  "// splint:ignore\n\nunwrap\ntodo\n",
			want: []string{},
		},
		{
			name: "inner doc comment after first token",
			src:  "x\n//! splint:ignore unwrap\nunwrap\nunwrap\n",
			want: []string{"unwrap"},
		},
		{
			name: "next line",
			src:  "x\n// splint:ignore\nunwrap todo\nunwrap\n",
			want: []string{"unwrap"},
		},
		{
			name: "indented next line",
			src:  "x\n    // splint:ignore todo\n    unwrap todo\n",
			want: []string{"unwrap"},
		},
		{
			name: "same line",
			src:  "x\nunwrap // splint:ignore unwrap\nunwrap\n",
			want: []string{"unwrap"},
		},
		{
			name: "case insensitive names",
			src:  "x\nunwrap // splint:ignore UNWRAP\n",
			want: []string{},
		},
		{
			name: "other rule untouched",
			src:  "x\n// splint:ignore todo\nunwrap\n",
			want: []string{"unwrap"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags, err := LintTokens(set, scanText(tc.src))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ruleNames(diags))
		})
	}
}

func TestLineText(t *testing.T) {
	content := []byte("first\r\nsecond\nthird")
	starts := computeLineStarts(content)

	assert.Equal(t, "first", lineText(content, starts, 1))
	assert.Equal(t, "second", lineText(content, starts, 2))
	assert.Equal(t, "third", lineText(content, starts, 3))
	assert.Empty(t, lineText(content, starts, 4))
	assert.Empty(t, lineText(content, starts, 0))
}
