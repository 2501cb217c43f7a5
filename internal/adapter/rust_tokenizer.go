package adapter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	m "github.com/mouse-blink/splint/internal/model"
)

// ErrSyntax is returned when the source cannot be split into tokens, e.g. an
// unterminated literal or a character that starts no Rust token. Regions the
// grammar fails to parse are still tokenized.
var ErrSyntax = errors.New("syntax error")

// rustTerminators are the closing tokens whose absence leaves a literal or
// comment open until the end of the file.
var rustTerminators = map[string]string{
	`"`:  "unterminated string literal",
	"*/": "unterminated block comment",
}

// rustPunctChars are the characters proc-macro token streams accept as Punct.
const rustPunctChars = "=<>!~+-*/%^&|@.,;:#$?'"

var rustLiteralNodes = map[string]struct{}{
	"string_literal":     {},
	"raw_string_literal": {},
	"char_literal":       {},
	"integer_literal":    {},
	"float_literal":      {},
}

var rustCommentNodes = map[string]struct{}{
	"line_comment":  {},
	"block_comment": {},
}

// RustTokenizer tokenizes Rust source with the tree-sitter Rust grammar and
// reduces the syntax tree to proc-macro style leaves: identifiers (keywords
// included), literals, bracket delimiters and single-character punctuation.
// Each call creates its own parser, so a RustTokenizer is safe for concurrent
// use.
type RustTokenizer struct{}

// NewRustTokenizer constructs a RustTokenizer.
func NewRustTokenizer() *RustTokenizer {
	return &RustTokenizer{}
}

// Extensions implements Tokenizer.
func (t *RustTokenizer) Extensions() []string {
	return []string{".rs"}
}

// Tokenize implements Tokenizer.
func (t *RustTokenizer) Tokenize(ctx context.Context, path m.Path, src []byte) (m.Source, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return m.Source{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	w := rustWalker{src: src}
	if err := w.visit(tree.RootNode()); err != nil {
		return m.Source{}, fmt.Errorf("failed to tokenize %s: %w", path, err)
	}

	trees, err := buildTrees(w.leaves)
	if err != nil {
		return m.Source{}, fmt.Errorf("failed to tokenize %s: %w", path, err)
	}

	return m.Source{
		File:     m.File{Path: path},
		Content:  src,
		Trees:    trees,
		Comments: w.comments,
	}, nil
}

type rustWalker struct {
	src        []byte
	leaves     []m.Token
	comments   []m.Comment
	lineStarts []int
}

func (w *rustWalker) visit(n *sitter.Node) error {
	typ := n.Type()

	if n.IsMissing() {
		if reason, ok := rustTerminators[typ]; ok {
			return w.syntaxError(n, reason)
		}

		return nil
	}

	if n.IsError() {
		return w.visitError(n)
	}

	if _, ok := rustCommentNodes[typ]; ok {
		if err := w.checkTerminated(n); err != nil {
			return err
		}

		span, err := nodeSpan(n)
		if err != nil {
			return err
		}

		w.comments = append(w.comments, m.Comment{Text: n.Content(w.src), Span: span})

		return nil
	}

	if _, ok := rustLiteralNodes[typ]; ok {
		if err := w.checkTerminated(n); err != nil {
			return err
		}

		return w.leaf(n, m.KindLiteral)
	}

	count := int(n.ChildCount())
	if count == 0 {
		return w.leaf(n, 0)
	}

	for i := range count {
		if err := w.visit(n.Child(i)); err != nil {
			return err
		}
	}

	return nil
}

// leaf emits the token for a terminal node. A zero kind means classify by text.
func (w *rustWalker) leaf(n *sitter.Node, kind m.Kind) error {
	text := n.Content(w.src)
	if text == "" {
		return nil
	}

	span, err := nodeSpan(n)
	if err != nil {
		return err
	}

	if kind == 0 {
		if !isIdentifier(text) {
			return w.lexGap(int(n.StartByte()), int(n.EndByte()))
		}

		kind = m.KindIdent
	}

	w.leaves = append(w.leaves, m.Token{Kind: kind, Value: text, Span: span})

	return nil
}

func nodeSpan(n *sitter.Node) (m.Span, error) {
	start, err := pointPosition(n.StartPoint(), n.StartByte())
	if err != nil {
		return m.Span{}, err
	}

	end, err := pointPosition(n.EndPoint(), n.EndByte())
	if err != nil {
		return m.Span{}, err
	}

	return m.Span{Start: start, End: end}, nil
}

func pointPosition(p sitter.Point, offset uint32) (m.Position, error) {
	row, err := safecast.Conv[int](p.Row)
	if err != nil {
		return m.Position{}, err
	}

	col, err := safecast.Conv[int](p.Column)
	if err != nil {
		return m.Position{}, err
	}

	off, err := safecast.Conv[int](offset)
	if err != nil {
		return m.Position{}, err
	}

	return m.Position{Line: row + 1, Column: col + 1, Offset: off}, nil
}

// isIdentifier accepts identifiers, keywords and raw identifiers (r#type).
func isIdentifier(text string) bool {
	if len(text) > 2 && text[:2] == "r#" {
		text = text[2:]
	}

	first, size := utf8.DecodeRuneInString(text)
	if first != '_' && !unicode.IsLetter(first) {
		return false
	}

	for _, r := range text[size:] {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// visitError walks a region the grammar could not parse. Tokens inside it
// are still children of the ERROR node; bytes the grammar skipped entirely
// sit between them and are lexed by hand.
func (w *rustWalker) visitError(n *sitter.Node) error {
	cursor := int(n.StartByte())

	for i := range int(n.ChildCount()) {
		child := n.Child(i)

		if err := w.lexGap(cursor, int(child.StartByte())); err != nil {
			return err
		}

		if err := w.visit(child); err != nil {
			return err
		}

		cursor = max(cursor, int(child.EndByte()))
	}

	return w.lexGap(cursor, int(n.EndByte()))
}

// lexGap tokenizes src[start:end] into identifiers, numbers and single
// character punctuation.
func (w *rustWalker) lexGap(start, end int) error {
	for off := start; off < end; {
		r, size := utf8.DecodeRune(w.src[off:end])

		switch {
		case unicode.IsSpace(r):
			off += size
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			next := off + size
			for next < end {
				r2, s2 := utf8.DecodeRune(w.src[next:end])
				if r2 != '_' && !unicode.IsLetter(r2) && !unicode.IsDigit(r2) {
					break
				}

				next += s2
			}

			kind := m.KindIdent
			if unicode.IsDigit(r) {
				kind = m.KindLiteral
			}

			w.leaves = append(w.leaves, m.Token{Kind: kind, Value: string(w.src[off:next]), Span: w.spanAt(off, next)})
			off = next
		case r == '"':
			return w.syntaxErrorAt(off, rustTerminators[`"`])
		case r == '/' && off+1 < end && w.src[off+1] == '*':
			return w.syntaxErrorAt(off, rustTerminators["*/"])
		case r < utf8.RuneSelf && strings.ContainsRune(rustPunctChars+"()[]{}", r):
			w.leaves = splitPunct(w.leaves, string(r), w.positionAt(off))
			off += size
		default:
			return w.syntaxErrorAt(off, fmt.Sprintf("unexpected character %q", r))
		}
	}

	return nil
}

// checkTerminated rejects a literal or comment whose closing token is missing.
func (w *rustWalker) checkTerminated(n *sitter.Node) error {
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if !child.IsMissing() {
			continue
		}

		if reason, ok := rustTerminators[child.Type()]; ok {
			return w.syntaxError(n, reason)
		}
	}

	return nil
}

func (w *rustWalker) syntaxError(n *sitter.Node, reason string) error {
	return w.syntaxErrorAt(int(n.StartByte()), reason)
}

func (w *rustWalker) syntaxErrorAt(off int, reason string) error {
	pos := w.positionAt(off)
	return fmt.Errorf("%w at %d:%d: %s", ErrSyntax, pos.Line, pos.Column, reason)
}

func (w *rustWalker) spanAt(start, end int) m.Span {
	return m.Span{Start: w.positionAt(start), End: w.positionAt(end)}
}

// positionAt converts a byte offset into a 1-based line and byte column.
func (w *rustWalker) positionAt(off int) m.Position {
	if w.lineStarts == nil {
		w.lineStarts = []int{0}
		for i, b := range w.src {
			if b == '\n' {
				w.lineStarts = append(w.lineStarts, i+1)
			}
		}
	}

	line := sort.SearchInts(w.lineStarts, off+1) - 1

	return m.Position{Line: line + 1, Column: off - w.lineStarts[line] + 1, Offset: off}
}
