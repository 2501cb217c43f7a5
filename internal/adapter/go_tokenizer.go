package adapter

import (
	"context"
	"fmt"
	"go/scanner"
	"go/token"

	m "github.com/mouse-blink/splint/internal/model"
)

// GoTokenizer tokenizes Go source with go/scanner. Keywords are reported as
// identifiers and operators are split into single-character punctuation.
type GoTokenizer struct{}

// NewGoTokenizer constructs a GoTokenizer.
func NewGoTokenizer() *GoTokenizer {
	return &GoTokenizer{}
}

// Extensions implements Tokenizer.
func (t *GoTokenizer) Extensions() []string {
	return []string{".go"}
}

// Tokenize implements Tokenizer.
func (t *GoTokenizer) Tokenize(ctx context.Context, path m.Path, src []byte) (m.Source, error) {
	fset := token.NewFileSet()
	file := fset.AddFile(string(path), -1, len(src))

	var errs scanner.ErrorList

	var s scanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) { errs.Add(pos, msg) }, scanner.ScanComments)

	var (
		leaves   []m.Token
		comments []m.Comment
	)

	for {
		if err := ctx.Err(); err != nil {
			return m.Source{}, err
		}

		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		text := lit
		if text == "" {
			text = tok.String()
		}

		start := goPosition(fset.Position(pos))

		switch {
		case tok == token.COMMENT:
			comments = append(comments, m.Comment{Text: lit, Span: m.Span{Start: start, End: goEnd(fset, pos, lit)}})
		case tok == token.SEMICOLON && lit != ";":
			// inserted automatically at line ends
		case tok == token.IDENT || tok.IsKeyword():
			leaves = append(leaves, m.Token{Kind: m.KindIdent, Value: text, Span: m.Span{Start: start, End: goEnd(fset, pos, text)}})
		case tok.IsLiteral():
			leaves = append(leaves, m.Token{Kind: m.KindLiteral, Value: text, Span: m.Span{Start: start, End: goEnd(fset, pos, text)}})
		default:
			leaves = splitPunct(leaves, text, start)
		}
	}

	if errs.Len() > 0 {
		return m.Source{}, fmt.Errorf("failed to scan %s: %w", path, errs.Err())
	}

	trees, err := buildTrees(leaves)
	if err != nil {
		return m.Source{}, fmt.Errorf("failed to tokenize %s: %w", path, err)
	}

	return m.Source{
		File:     m.File{Path: path},
		Content:  src,
		Trees:    trees,
		Comments: comments,
	}, nil
}

func goPosition(p token.Position) m.Position {
	return m.Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func goEnd(fset *token.FileSet, pos token.Pos, text string) m.Position {
	return goPosition(fset.Position(pos + token.Pos(len(text))))
}
