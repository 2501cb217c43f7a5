package model

import "time"

// Severity tells whether a diagnostic fails the run.
type Severity uint8

const (
	// SeverityAdvisory diagnostics are reported but do not fail the run.
	SeverityAdvisory Severity = iota
	// SeverityFail diagnostics make the run exit non-zero.
	SeverityFail
)

func (s Severity) String() string {
	if s == SeverityFail {
		return "error"
	}

	return "warning"
}

// Diagnostic is a single rule match reported to the user.
type Diagnostic struct {
	Rule     string   `json:"rule" msgpack:"rule"`
	Severity Severity `json:"severity" msgpack:"severity"`
	Message  string   `json:"message" msgpack:"message"`
	Help     string   `json:"help,omitempty" msgpack:"help"`
	More     string   `json:"more,omitempty" msgpack:"more"`
	Span     Span     `json:"span" msgpack:"span"`
	File     Path     `json:"file" msgpack:"file"`
	// Line is the text of the source line the highlight starts on.
	Line string `json:"line" msgpack:"line"`
}

// FileResult holds the lint results for a single source file.
type FileResult struct {
	Path        Path         `json:"path"`
	Hash        string       `json:"hash,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	// ParseError is set when the file could not be tokenized.
	ParseError string `json:"parse_error,omitempty"`
	Cached     bool   `json:"cached,omitempty"`
}

// Report is the outcome of a lint run.
type Report struct {
	Files      []FileResult  `json:"files"`
	AnyFailure bool          `json:"any_failure"`
	Fails      int           `json:"fails"`
	Warnings   int           `json:"warnings"`
	Duration   time.Duration `json:"duration"`
}

// Diagnostics returns every diagnostic of the report in output order.
func (r Report) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for _, f := range r.Files {
		out = append(out, f.Diagnostics...)
	}

	return out
}

// ParseFailures returns the files that could not be tokenized.
func (r Report) ParseFailures() []FileResult {
	var out []FileResult

	for _, f := range r.Files {
		if f.ParseError != "" {
			out = append(out, f)
		}
	}

	return out
}
