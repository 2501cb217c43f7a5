package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"

	m "github.com/mouse-blink/splint/internal/model"
)

var allKinds = []m.Kind{m.KindPunct, m.KindIdent, m.KindDelimOpen, m.KindDelimClose, m.KindLiteral}

// RuleSet is a compiled, immutable collection of rules shared by all workers.
type RuleSet struct {
	rules       []*CompiledRule
	byName      map[string]*CompiledRule
	byFirstKind map[m.Kind][]*CompiledRule
	fingerprint string
}

// CompileRuleSet compiles every definition. Any broken rule aborts compilation;
// all rule errors are reported together, ordered by rule name.
func CompileRuleSet(defs []m.RuleDef) (*RuleSet, error) {
	ordered := make([]m.RuleDef, len(defs))
	copy(ordered, defs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}

		return ordered[i].Name < ordered[j].Name
	})

	set := &RuleSet{
		byName:      make(map[string]*CompiledRule, len(ordered)),
		byFirstKind: make(map[m.Kind][]*CompiledRule),
	}

	var errs []*m.RuleError

	for _, def := range ordered {
		if _, dup := set.byName[def.Name]; dup {
			errs = append(errs, &m.RuleError{Rule: def.Name, Err: m.ErrDuplicateRule})
			continue
		}

		rule, err := CompileRule(def)
		if err != nil {
			var re *m.RuleError
			if !errors.As(err, &re) {
				re = &m.RuleError{Rule: def.Name, Err: err}
			}

			errs = append(errs, re)

			continue
		}

		set.byName[rule.Name] = rule
		set.rules = append(set.rules, rule)
	}

	if len(errs) > 0 {
		sort.SliceStable(errs, func(i, j int) bool { return errs[i].Rule < errs[j].Rule })

		joined := make([]error, 0, len(errs))
		for _, e := range errs {
			joined = append(joined, e)
		}

		return nil, errors.Join(joined...)
	}

	for _, rule := range set.rules {
		first := rule.Pattern[0]
		for _, k := range allKinds {
			if first.Kinds.has(k) {
				set.byFirstKind[k] = append(set.byFirstKind[k], rule)
			}
		}
	}

	fp, err := fingerprint(ordered)
	if err != nil {
		return nil, err
	}

	set.fingerprint = fp

	return set, nil
}

// Rules returns the rules in declaration order.
func (s *RuleSet) Rules() []*CompiledRule {
	return s.rules
}

// Rule looks a rule up by name.
func (s *RuleSet) Rule(name string) (*CompiledRule, bool) {
	r, ok := s.byName[name]
	return r, ok
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Fingerprint identifies the rule definitions the set was compiled from.
func (s *RuleSet) Fingerprint() string {
	return s.fingerprint
}

func (s *RuleSet) candidates(k m.Kind) []*CompiledRule {
	return s.byFirstKind[k]
}

func fingerprint(defs []m.RuleDef) (string, error) {
	data, err := json.Marshal(defs)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:]), nil
}
