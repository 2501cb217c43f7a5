package adapter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/mouse-blink/splint/internal/model"
)

// ErrUnbalancedDelimiters is returned when brackets in a file do not pair up.
var ErrUnbalancedDelimiters = errors.New("unbalanced delimiters")

// Tokenizer turns source text into token trees and comments.
type Tokenizer interface {
	Tokenize(ctx context.Context, path m.Path, src []byte) (m.Source, error)
	// Extensions lists the file extensions the tokenizer handles, e.g. ".rs".
	Extensions() []string
}

// TokenizerRegistry picks a tokenizer by file extension.
type TokenizerRegistry struct {
	byExt map[string]Tokenizer
}

// NewTokenizerRegistry registers the given tokenizers. Later tokenizers win on
// extension conflicts.
func NewTokenizerRegistry(tokenizers ...Tokenizer) *TokenizerRegistry {
	r := &TokenizerRegistry{byExt: make(map[string]Tokenizer)}

	for _, t := range tokenizers {
		for _, ext := range t.Extensions() {
			r.byExt[strings.ToLower(ext)] = t
		}
	}

	return r
}

// NewDefaultTokenizerRegistry returns the Rust and Go tokenizers.
func NewDefaultTokenizerRegistry() *TokenizerRegistry {
	return NewTokenizerRegistry(NewRustTokenizer(), NewGoTokenizer())
}

// For returns the tokenizer responsible for path.
func (r *TokenizerRegistry) For(path m.Path) (Tokenizer, bool) {
	t, ok := r.byExt[strings.ToLower(filepath.Ext(string(path)))]
	return t, ok
}

// Tokenize dispatches to the tokenizer registered for the file extension.
func (r *TokenizerRegistry) Tokenize(ctx context.Context, path m.Path, src []byte) (m.Source, error) {
	t, ok := r.For(path)
	if !ok {
		return m.Source{}, fmt.Errorf("no tokenizer for %s", path)
	}

	return t.Tokenize(ctx, path, src)
}

// Extensions lists every registered extension in sorted order.
func (r *TokenizerRegistry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}

	sort.Strings(exts)

	return exts
}

var closerFor = map[string]string{"(": ")", "[": "]", "{": "}"}

// buildTrees nests a flat leaf stream into groups by pairing brackets.
func buildTrees(leaves []m.Token) ([]m.TokenTree, error) {
	type frame struct {
		open     m.Token
		children []m.TokenTree
	}

	stack := []frame{{}}

	for _, tok := range leaves {
		switch tok.Kind {
		case m.KindDelimOpen:
			stack = append(stack, frame{open: tok})
		case m.KindDelimClose:
			if len(stack) == 1 {
				return nil, fmt.Errorf("%w: unexpected %q at %d:%d", ErrUnbalancedDelimiters, tok.Value, tok.Span.Start.Line, tok.Span.Start.Column)
			}

			top := stack[len(stack)-1]
			if closerFor[top.open.Value] != tok.Value {
				return nil, fmt.Errorf("%w: %q at %d:%d closes %q opened at %d:%d", ErrUnbalancedDelimiters,
					tok.Value, tok.Span.Start.Line, tok.Span.Start.Column,
					top.open.Value, top.open.Span.Start.Line, top.open.Span.Start.Column)
			}

			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, m.NewGroup(top.open, tok, top.children))
		default:
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, m.Leaf(tok))
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1].open

		return nil, fmt.Errorf("%w: %q opened at %d:%d is never closed", ErrUnbalancedDelimiters,
			open.Value, open.Span.Start.Line, open.Span.Start.Column)
	}

	return stack[0].children, nil
}

// delimKind classifies bracket characters.
func delimKind(s string) (m.Kind, bool) {
	switch s {
	case "(", "[", "{":
		return m.KindDelimOpen, true
	case ")", "]", "}":
		return m.KindDelimClose, true
	default:
		return 0, false
	}
}

// splitPunct emits one Punct token per character of an operator, the way
// proc-macro token streams represent multi-character operators.
func splitPunct(out []m.Token, text string, start m.Position) []m.Token {
	col, off := start.Column, start.Offset

	for _, r := range text {
		s := string(r)
		kind := m.KindPunct

		if k, ok := delimKind(s); ok {
			kind = k
		}

		width := len(s)
		out = append(out, m.Token{
			Kind:  kind,
			Value: s,
			Span: m.Span{
				Start: m.Position{Line: start.Line, Column: col, Offset: off},
				End:   m.Position{Line: start.Line, Column: col + width, Offset: off + width},
			},
		})
		col += width
		off += width
	}

	return out
}
