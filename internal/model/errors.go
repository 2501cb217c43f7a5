package model

import (
	"errors"
	"fmt"
)

// Configuration errors. They are always wrapped in a *RuleError naming the
// offending rule.
var (
	ErrInvalidPattern   = errors.New("invalid pattern")
	ErrInvalidRegex     = errors.New("invalid regex")
	ErrRangeOutOfBounds = errors.New("range out of bounds")
	ErrDuplicateRule    = errors.New("duplicate rule name")
	ErrInvalidRule      = errors.New("invalid rule")
)

// RuleError attributes a configuration error to a rule.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q: %v", e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// RuleErrorf wraps sentinel with a formatted detail and attributes it to rule.
func RuleErrorf(rule string, sentinel error, format string, args ...any) error {
	return &RuleError{Rule: rule, Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)}
}

// ConfigError reports a rule file that could not be loaded or compiled.
type ConfigError struct {
	Path Path
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid rules: %v", e.Err)
	}

	return fmt.Sprintf("invalid rules in %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
