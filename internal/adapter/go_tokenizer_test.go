package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/splint/internal/model"
)

func TestGoTokenizer_Tokenize(t *testing.T) {
	src := "package a\n\n// splint:ignore\nfunc f() {\n\tx := y.unwrap(\"s\", 1)\n}\n"

	out, err := NewGoTokenizer().Tokenize(context.Background(), "a.go", []byte(src))
	require.NoError(t, err)

	tokens := flat(out.Trees)

	assert.Equal(t, []string{
		"package", "a", "func", "f", "(", ")", "{",
		"x", ":", "=", "y", ".", "unwrap", "(", `"s"`, ",", "1", ")", "}",
	}, values(tokens))

	kinds := map[string]m.Kind{
		"func": m.KindIdent, "x": m.KindIdent, ".": m.KindPunct,
		"{": m.KindDelimOpen, "}": m.KindDelimClose, `"s"`: m.KindLiteral, "1": m.KindLiteral,
	}
	for value, kind := range kinds {
		assert.Equal(t, kind, findToken(t, tokens, value).Kind, value)
	}

	dot := findToken(t, tokens, ".")
	assert.Equal(t, m.Position{Line: 5, Column: 8, Offset: 46}, dot.Span.Start)
	assert.Equal(t, m.Position{Line: 5, Column: 9, Offset: 47}, dot.Span.End)

	require.Len(t, out.Comments, 1)
	assert.Equal(t, "// splint:ignore", out.Comments[0].Text)
	assert.Equal(t, 3, out.Comments[0].Span.Start.Line)
}

func TestGoTokenizer_Errors(t *testing.T) {
	tokenizer := NewGoTokenizer()

	_, err := tokenizer.Tokenize(context.Background(), "bad.go", []byte("package a\nvar s = \"open\n"))
	assert.Error(t, err)

	_, err = tokenizer.Tokenize(context.Background(), "open.go", []byte("package a\nfunc f() {\n"))
	assert.ErrorIs(t, err, ErrUnbalancedDelimiters)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = tokenizer.Tokenize(ctx, "a.go", []byte("package a\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
