package schedule

import "time"

// ResolveStartDate turns relative temporal cues in the instruction text
// plus the optional explicit and visit dates into a single anchor date.
// Precedence, highest first: a "tomorrow" cue, a "today" cue, the
// explicit start date, the visit date, now.
//
// A textual "starting tomorrow" cue wins even over an explicitly
// supplied start date: the text is treated as the clinician's most
// recent, most specific instruction. This precedence is intentional and
// documented in tests; do not reorder without product sign-off.
func ResolveStartDate(instructions string, startDate, visitDate *time.Time, now time.Time) time.Time {
	anchor := now
	if visitDate != nil {
		anchor = *visitDate
	}
	switch {
	case tomorrowCue.MatchString(instructions):
		return anchor.AddDate(0, 0, 1)
	case todayCue.MatchString(instructions):
		return anchor
	case startDate != nil:
		return *startDate
	default:
		return anchor
	}
}
