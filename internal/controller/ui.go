// Package controller provides output adapters for displaying lint results.
package controller

import (
	m "github.com/mouse-blink/splint/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeLint StartMode = iota
	ModeView
	ModeWatch
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithLintMode sets the UI to a one-shot lint run.
func WithLintMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeLint
	}
}

// WithViewMode sets the UI to browsing a saved report.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithWatchMode sets the UI to streaming results while files change.
func WithWatchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeWatch
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines how lint results are presented.
// Implementations can use different output methods (simple text, JSON, TUI).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	// Done is closed when the user closes an interactive UI. Non-interactive
	// UIs return nil.
	Done() <-chan struct{}
	DisplayReport(report m.Report) error
	DisplayFileResult(result m.FileResult) error
	DisplayRules(rules []m.RuleSummary) error
}
