// Package model defines the data structures shared by the linter layers.
package model

// Path represents a file system path.
type Path string

// File identifies a source file on disk together with a content fingerprint.
type File struct {
	Path Path
	Hash string
}

// Comment is a source comment reported by a tokenizer. Comments never take part
// in matching; they only carry ignore directives.
type Comment struct {
	Text string
	Span Span
}

// Source is the tokenizer output for a single file.
type Source struct {
	File     File
	Content  []byte
	Trees    []TokenTree
	Comments []Comment
}
