package domain

import (
	m "github.com/mouse-blink/splint/internal/model"
)

// ResolveSpan maps the rule's highlight range onto the matched tokens. The
// span runs from the start of the first highlighted token to the end of the
// last one.
func ResolveSpan(rule *CompiledRule, tokens []m.Token, match Match) (m.Span, error) {
	if rule.RangeStart < 0 || rule.RangeStart > rule.RangeEnd || rule.RangeEnd >= len(rule.Pattern) {
		return m.Span{}, m.RuleErrorf(rule.Name, m.ErrRangeOutOfBounds,
			"range [%d, %d] does not fit a pattern of length %d", rule.RangeStart, rule.RangeEnd, len(rule.Pattern))
	}

	first := match.Start + rule.RangeStart
	last := match.Start + rule.RangeEnd

	if match.Start < 0 || last >= len(tokens) {
		return m.Span{}, m.RuleErrorf(rule.Name, m.ErrRangeOutOfBounds,
			"highlight tokens %d..%d outside a sequence of %d tokens", first, last, len(tokens))
	}

	return m.Span{Start: tokens[first].Span.Start, End: tokens[last].Span.End}, nil
}
