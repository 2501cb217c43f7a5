package model

// PatternEntryDef is one position of a rule pattern as written in a rule file.
// A nil Value matches any token value of the kind.
type PatternEntryDef struct {
	Kind  string
	Value *string
}

// RuleDef is a lint rule as loaded from configuration, before compilation.
type RuleDef struct {
	Name        string
	Description string
	Help        string
	More        string
	Fail        bool
	Pattern     []PatternEntryDef
	// Range is the inclusive highlight range. Nil highlights the whole match.
	Range *[2]int
	// Order is the declaration index of the rule in its file.
	Order int
}

// StrPtr returns a pointer to s, handy for building pattern values.
func StrPtr(s string) *string {
	return &s
}

// RuleSummary describes a compiled rule for display.
type RuleSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Pattern     string   `json:"pattern"`
	Range       [2]int   `json:"range"`
}
