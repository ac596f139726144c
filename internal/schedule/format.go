package schedule

import "time"

// InvalidDateLabel is rendered wherever a date value is missing or
// unparseable; human-readable output never throws on bad dates.
const InvalidDateLabel = "Invalid Date"

// FormatDate renders a date in short form, e.g. "Mon, Jan 2".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return InvalidDateLabel
	}
	return t.Format("Mon, Jan 2")
}

// FormatDateLong renders a date in long form, e.g. "Monday, January 2, 2006".
func FormatDateLong(t time.Time) string {
	if t.IsZero() {
		return InvalidDateLabel
	}
	return t.Format("Monday, January 2, 2006")
}
