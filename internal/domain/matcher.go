package domain

import (
	"sort"

	m "github.com/mouse-blink/splint/internal/model"
)

// Match is one occurrence of a rule pattern. Start is the token index of the
// first pattern position.
type Match struct {
	Rule  *CompiledRule
	Start int
}

// MatchRule slides the rule pattern over tokens and returns every offset where
// all positions match. Overlapping occurrences are all reported.
func MatchRule(rule *CompiledRule, tokens []m.Token) []Match {
	var out []Match

	n := len(rule.Pattern)
	for start := 0; start+n <= len(tokens); start++ {
		if matchesAt(rule, tokens, start) {
			out = append(out, Match{Rule: rule, Start: start})
		}
	}

	return out
}

// Scan matches every rule of the set against tokens. At each offset only the
// rules whose first pattern entry accepts the token kind are tried. The result
// is ordered by rule declaration, then by offset.
func Scan(set *RuleSet, tokens []m.Token) []Match {
	var out []Match

	for start, tok := range tokens {
		for _, rule := range set.candidates(tok.Kind) {
			if start+len(rule.Pattern) > len(tokens) {
				continue
			}

			if matchesAt(rule, tokens, start) {
				out = append(out, Match{Rule: rule, Start: start})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rule.Order != out[j].Rule.Order {
			return out[i].Rule.Order < out[j].Rule.Order
		}

		if out[i].Rule.Name != out[j].Rule.Name {
			return out[i].Rule.Name < out[j].Rule.Name
		}

		return out[i].Start < out[j].Start
	})

	return out
}

func matchesAt(rule *CompiledRule, tokens []m.Token, start int) bool {
	for i, entry := range rule.Pattern {
		if !entry.Matches(tokens[start+i]) {
			return false
		}
	}

	return true
}
