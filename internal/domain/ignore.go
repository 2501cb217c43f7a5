package domain

import (
	"sort"
	"strings"
	"unicode"

	m "github.com/mouse-blink/splint/internal/model"
)

const ignoreDirective = "splint:ignore"

type ignoreRule struct {
	all   bool
	names map[string]struct{}
}

func (r ignoreRule) ignores(rule string) bool {
	if r.all {
		return true
	}

	if len(r.names) == 0 {
		return false
	}

	_, ok := r.names[strings.ToLower(rule)]

	return ok
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[string]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

// parseIgnoreDirective understands "//", "/* */" and "#" comments.
func parseIgnoreDirective(commentText string) (ignoreRule, bool) {
	s := strings.TrimSpace(commentText)

	switch {
	case strings.HasPrefix(s, "//"):
		s = strings.TrimSpace(strings.TrimLeft(s, "/!"))
	case strings.HasPrefix(s, "/*"):
		s = strings.TrimSpace(strings.TrimPrefix(s, "/*"))
		s = strings.TrimSpace(strings.TrimSuffix(s, "*/"))
		s = strings.TrimSpace(strings.TrimLeft(s, "*!"))
	case strings.HasPrefix(s, "#"):
		s = strings.TrimSpace(strings.TrimPrefix(s, "#"))
	}

	if !strings.HasPrefix(s, ignoreDirective) {
		return ignoreRule{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(s, ignoreDirective))
	if rest == "" {
		return ignoreRule{all: true}, true
	}

	parts := strings.Split(rest, ",")
	rule := ignoreRule{names: make(map[string]struct{}, len(parts))}

	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		rule.names[name] = struct{}{}
	}

	if len(rule.names) == 0 {
		rule.all = true
		rule.names = nil
	}

	return rule, true
}

// ignoreIndex holds the directives of one file.
type ignoreIndex struct {
	file ignoreRule
	line map[int]ignoreRule
}

// ignores reports whether a diagnostic of rule starting on line is suppressed.
func (idx ignoreIndex) ignores(rule string, line int) bool {
	if idx.file.ignores(rule) {
		return true
	}

	r, ok := idx.line[line]

	return ok && r.ignores(rule)
}

// buildIgnoreIndex sorts directives into file scope, next-line scope (comment
// alone on its line) and same-line scope (trailing). A directive before the
// first token has file scope when it is an inner doc comment (//! or /*!) or
// is followed by a blank line; otherwise it covers the next line like any
// other leading comment.
func buildIgnoreIndex(comments []m.Comment, tokens []m.Token, content []byte) ignoreIndex {
	idx := ignoreIndex{line: make(map[int]ignoreRule)}
	if len(comments) == 0 {
		return idx
	}

	firstToken := len(content)
	if len(tokens) > 0 {
		firstToken = tokens[0].Span.Start.Offset
	}

	lineStarts := computeLineStarts(content)

	for _, c := range comments {
		r, ok := parseIgnoreDirective(c.Text)
		if !ok {
			continue
		}

		if c.Span.End.Offset <= firstToken && isFileDirective(c, lineStarts, content) {
			mergeIgnoreRule(&idx.file, r)
			continue
		}

		pos := c.Span.Start
		if pos.Line <= 0 {
			continue
		}

		targetLine := pos.Line
		if isLeadingComment(pos.Line, pos.Offset, lineStarts, content) {
			targetLine = pos.Line + 1
		}

		current := idx.line[targetLine]
		mergeIgnoreRule(&current, r)
		idx.line[targetLine] = current
	}

	return idx
}

func isFileDirective(c m.Comment, lineStarts []int, content []byte) bool {
	text := strings.TrimSpace(c.Text)
	if strings.HasPrefix(text, "//!") || strings.HasPrefix(text, "/*!") {
		return true
	}

	end := c.Span.End.Offset
	if end <= 0 || end > len(content) {
		return false
	}

	// 1-based line holding the last byte of the comment.
	last := sort.SearchInts(lineStarts, end)
	next := last + 1

	if next > len(lineStarts) {
		return false
	}

	return strings.TrimSpace(lineText(content, lineStarts, next)) == ""
}

func computeLineStarts(content []byte) []int {
	starts := []int{0}

	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}

func isLeadingComment(line int, offset int, lineStarts []int, content []byte) bool {
	if line <= 0 || line > len(lineStarts) {
		return false
	}

	start := lineStarts[line-1]
	if offset < start || offset > len(content) {
		return false
	}

	for _, b := range content[start:offset] {
		if !unicode.IsSpace(rune(b)) {
			return false
		}
	}

	return true
}

// lineText returns the text of a 1-based line without its newline.
func lineText(content []byte, lineStarts []int, line int) string {
	if line <= 0 || line > len(lineStarts) {
		return ""
	}

	start := lineStarts[line-1]
	end := len(content)

	if line < len(lineStarts) {
		end = lineStarts[line] - 1
	}

	if end < start {
		return ""
	}

	return strings.TrimRight(string(content[start:end]), "\r")
}
