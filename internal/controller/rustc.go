package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"unicode/utf8"

	m "github.com/mouse-blink/splint/internal/model"
)

const defaultHelp = "Lint failed here"

// compilerMessage mirrors the `cargo --message-format=json` record that
// editors such as rust-analyzer consume.
type compilerMessage struct {
	Reason       string         `json:"reason"`
	PackageID    string         `json:"package_id"`
	ManifestPath string         `json:"manifest_path"`
	Target       compilerTarget `json:"target"`
	Message      rustcMessage   `json:"message"`
}

type compilerTarget struct {
	Kind       []string `json:"kind"`
	CrateTypes []string `json:"crate_types"`
	Name       string   `json:"name"`
	SrcPath    string   `json:"src_path"`
	Edition    string   `json:"edition"`
	Doc        bool     `json:"doc"`
	Doctest    bool     `json:"doctest"`
	Test       bool     `json:"test"`
}

type rustcMessage struct {
	Rendered    *string        `json:"rendered"`
	MessageType string         `json:"$message_type,omitempty"`
	Children    []rustcMessage `json:"children"`
	Code        *rustcCode     `json:"code"`
	Level       string         `json:"level"`
	Message     string         `json:"message"`
	Spans       []rustcSpan    `json:"spans"`
}

type rustcCode struct {
	Code        string  `json:"code"`
	Explanation *string `json:"explanation"`
}

type rustcSpan struct {
	ByteEnd                 int         `json:"byte_end"`
	ByteStart               int         `json:"byte_start"`
	ColumnEnd               int         `json:"column_end"`
	ColumnStart             int         `json:"column_start"`
	Expansion               *string     `json:"expansion"`
	FileName                string      `json:"file_name"`
	IsPrimary               bool        `json:"is_primary"`
	Label                   *string     `json:"label"`
	LineEnd                 int         `json:"line_end"`
	LineStart               int         `json:"line_start"`
	SuggestedReplacement    *string     `json:"suggested_replacement"`
	SuggestionApplicability *string     `json:"suggestion_applicability"`
	Text                    []rustcText `json:"text"`
}

type rustcText struct {
	HighlightEnd   int    `json:"highlight_end"`
	HighlightStart int    `json:"highlight_start"`
	Text           string `json:"text"`
}

// RustcUI writes one compiler-message JSON line per diagnostic.
type RustcUI struct {
	output io.Writer
}

// NewRustcUI creates a new RustcUI.
func NewRustcUI(output io.Writer) *RustcUI {
	return &RustcUI{output: output}
}

// Start initializes the UI.
func (r *RustcUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (r *RustcUI) Close() {}

// Wait returns immediately.
func (r *RustcUI) Wait() {}

// DisplayReport writes every diagnostic of the report.
func (r *RustcUI) DisplayReport(report m.Report) error {
	for _, file := range report.Files {
		if err := r.DisplayFileResult(file); err != nil {
			return err
		}
	}

	return nil
}

// Done returns nil; there is nothing for the user to close.
func (r *RustcUI) Done() <-chan struct{} {
	return nil
}

// DisplayFileResult writes the diagnostics of a single file.
func (r *RustcUI) DisplayFileResult(result m.FileResult) error {
	enc := json.NewEncoder(r.output)

	for _, d := range result.Diagnostics {
		if err := enc.Encode(newCompilerMessage(d)); err != nil {
			return fmt.Errorf("failed to encode diagnostic: %w", err)
		}
	}

	return nil
}

// DisplayRules is not representable as compiler messages; rules are listed
// as JSON instead.
func (r *RustcUI) DisplayRules(rules []m.RuleSummary) error {
	return NewJSONUI(r.output).DisplayRules(rules)
}

func newCompilerMessage(d m.Diagnostic) compilerMessage {
	span := newRustcSpan(d)
	level := d.Severity.String()

	help := d.Help
	if help == "" {
		help = defaultHelp
	}

	var rendered bytes.Buffer
	renderDiagnostic(&rendered, d, newPalette(false))
	text := rendered.String()

	srcPath := string(d.File)
	if abs, err := filepath.Abs(srcPath); err == nil {
		srcPath = abs
	}

	return compilerMessage{
		Reason: "compiler-message",
		Target: compilerTarget{
			Kind:       []string{"bin"},
			CrateTypes: []string{"bin"},
			Name:       "splint",
			SrcPath:    srcPath,
			Edition:    "2021",
			Doc:        true,
			Test:       true,
		},
		Message: rustcMessage{
			Rendered:    &text,
			MessageType: "diagnostic",
			Children: []rustcMessage{
				{Children: []rustcMessage{}, Level: "note", Message: d.Message, Spans: []rustcSpan{}},
				{Children: []rustcMessage{}, Level: "help", Message: help, Spans: []rustcSpan{span}},
			},
			Code:    &rustcCode{Code: d.Rule},
			Level:   level,
			Message: d.Rule,
			Spans:   []rustcSpan{span},
		},
	}
}

// newRustcSpan converts byte columns to the 1-based character columns rustc
// reports. An end on a later line keeps its byte column, its text is unknown.
func newRustcSpan(d m.Diagnostic) rustcSpan {
	start := charColumn(d.Line, d.Span.Start.Column)
	end := d.Span.End.Column
	highlightEnd := utf8.RuneCountInString(d.Line) + 1

	if d.Span.End.Line == d.Span.Start.Line {
		end = charColumn(d.Line, d.Span.End.Column)
		highlightEnd = end
	}

	return rustcSpan{
		ByteStart:   d.Span.Start.Offset,
		ByteEnd:     d.Span.End.Offset,
		ColumnStart: start,
		ColumnEnd:   end,
		LineStart:   d.Span.Start.Line,
		LineEnd:     d.Span.End.Line,
		FileName:    string(d.File),
		IsPrimary:   true,
		Text: []rustcText{{
			Text:           d.Line,
			HighlightStart: start,
			HighlightEnd:   highlightEnd,
		}},
	}
}

// charColumn maps a 1-based byte column of line to a 1-based rune column.
func charColumn(line string, byteCol int) int {
	n := max(byteCol-1, 0)
	if n > len(line) {
		return utf8.RuneCountInString(line) + n - len(line) + 1
	}

	return utf8.RuneCountInString(line[:n]) + 1
}
