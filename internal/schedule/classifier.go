package schedule

import "strings"

// Classify tags an instruction string as tapering, short-term or
// chronic. Rules are evaluated in priority order: tapering shapes are
// the most specific, then ambiguous end conditions, then countable
// durations; anything else (including empty text) defaults to chronic.
// Pure function: no side effects, no clock access.
func Classify(instructions string) Classification {
	text := strings.TrimSpace(instructions)
	if text != "" {
		if rule, ok := firstMatch(taperingRules, text); ok {
			return Classification{
				Type:         RegimenTapering,
				HasTimeline:  true,
				ShowProgress: true,
				Reason:       "Contains specific tapering instructions",
				Rule:         rule,
			}
		}
		if rule, ok := firstMatch(ambiguousEndRules, text); ok {
			return Classification{
				Type:   RegimenChronic,
				Reason: "Contains ambiguous end condition without specific date",
				Rule:   rule,
			}
		}
		if rule, ok := firstMatch(specificDurationRules, text); ok {
			return Classification{
				Type:         RegimenShortTerm,
				HasTimeline:  true,
				ShowProgress: true,
				Reason:       "Contains specific duration",
				Rule:         rule,
			}
		}
	}
	return Classification{
		Type:   RegimenChronic,
		Reason: "No clear timeline indicators - assuming chronic",
	}
}
