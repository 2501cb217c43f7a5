package model

import "fmt"

// Kind classifies a token.
type Kind uint8

const (
	// KindPunct is a single punctuation character such as "." or ";".
	KindPunct Kind = iota + 1
	// KindIdent is an identifier or keyword.
	KindIdent
	// KindDelimOpen is an opening bracket: "(", "[" or "{".
	KindDelimOpen
	// KindDelimClose is a closing bracket: ")", "]" or "}".
	KindDelimClose
	// KindLiteral is a string, character or numeric literal.
	KindLiteral
)

// String returns the name used for the kind in rule files.
func (k Kind) String() string {
	switch k {
	case KindPunct:
		return "Punct"
	case KindIdent:
		return "Ident"
	case KindDelimOpen:
		return "DelimOpen"
	case KindDelimClose:
		return "DelimClose"
	case KindLiteral:
		return "Literal"
	default:
		return "Unknown"
	}
}

// Position is a location in a source file. Line and Column are 1-based,
// Column counts bytes. Offset is the 0-based byte offset.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// Span is a half-open range of source text.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Token is one classified lexical unit.
type Token struct {
	Kind  Kind
	Value string
	Span  Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
}

// TokenTree is a node of the tokenizer output. A leaf carries Token; a group
// carries the Open and Close delimiter tokens and its Children.
type TokenTree struct {
	Token    Token
	Group    bool
	Open     Token
	Close    Token
	Children []TokenTree
}

// Leaf wraps a token as a tree node.
func Leaf(t Token) TokenTree {
	return TokenTree{Token: t}
}

// NewGroup builds a delimited group node.
func NewGroup(open, closing Token, children []TokenTree) TokenTree {
	return TokenTree{Group: true, Open: open, Close: closing, Children: children}
}
