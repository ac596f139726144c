package schedule

import "regexp"

// The pattern library encodes the domain heuristics as ordered lists of
// named rules. Priority is the slice order: changing precedence is a
// data edit, not a control-flow edit. Each rule is independently
// testable by name.

type textRule struct {
	name string
	re   *regexp.Regexp
}

func (r textRule) match(s string) bool { return r.re.MatchString(s) }

func firstMatch(rules []textRule, s string) (string, bool) {
	for _, r := range rules {
		if r.match(s) {
			return r.name, true
		}
	}
	return "", false
}

const spelledCount = `(?:one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)`

// taperingRules detect multi-phase regimens. The first four shapes are
// frequency+duration phrases that must be followed by the connective
// "then"; the rest catch a second frequency after "then", explicit
// taper vocabulary, and start-high/reduce-later constructions.
var taperingRules = []textRule{
	{"freq-daily-weeks-then", regexp.MustCompile(`(?i)\d+x?\s*(?:times?\s*)?(?:daily|per\s*day|a\s*day)\s*for\s*\d+\s*(?:week|wk)s?.*then`)},
	{"drops-times-weeks-then", regexp.MustCompile(`(?i)\d+\s*drops?\s*\d+\s*times?\s*daily\s*for\s*\d+\s*(?:week|wk)s?.*then`)},
	{"apply-x-weeks-then", regexp.MustCompile(`(?i)(?:apply\s*)?\d+x\s*daily\s*x\s*\d+\s*(?:week|wk)s?.*then`)},
	{"times-per-day-days-then", regexp.MustCompile(`(?i)\d+\s*times?\s*per\s*day\s*for\s*\d+\s*days?.*then`)},
	{"frequency-change-after-then", regexp.MustCompile(`(?i)\d+\s*(?:times?\s*)?(?:daily|per\s*day).*then.*\d+\s*(?:times?\s*)?(?:daily|per\s*day)`)},
	{"taper-vocabulary", regexp.MustCompile(`(?i)taper|reduce|decrease|step.?down|wean|gradually`)},
	{"start-high-reduce-later", regexp.MustCompile(`(?i)(?:start|begin)\s+(?:with\s+)?\d+.*(?:reduce|decrease|then\s+\d+)`)},
}

// ambiguousEndRules detect "until <subjective condition>" phrasings
// whose termination depends on clinical judgment, not a calendar date.
// The bare "or until" connective signals ambiguity regardless of what
// follows it.
var ambiguousEndRules = []textRule{
	{"until-condition-improves", regexp.MustCompile(`(?i)until\s+(?:we\s+see\s+)?(?:your\s+)?[\w\s]+\s+(?:improves?|resolves?|normalizes?|stabilizes?|clears?|heals?|gets?\s+better|goes?\s+away|disappears?|subsides?)`)},
	{"until-condition-is-state", regexp.MustCompile(`(?i)until\s+(?:we\s+see\s+)?(?:your\s+)?[\w\s]+\s+is\s+(?:normal|stable|controlled|clear|healed|better|gone)`)},
	{"until-no-more", regexp.MustCompile(`(?i)until\s+(?:we\s+see\s+)?(?:no\s+more\s+|there\s+are\s+no\s+more\s+)[\w\s]+`)},
	{"until-condition-stops", regexp.MustCompile(`(?i)until\s+(?:the\s+)?[\w\s]+\s+(?:stops?|ends?|goes\s+away|disappears?)`)},
	{"until-you-feel", regexp.MustCompile(`(?i)until\s+you\s+feel\s+(?:better|normal|fine|good|well)`)},
	{"until-further-notice", regexp.MustCompile(`(?i)until\s+(?:further\s+)?(?:notice|evaluation|assessment|review|follow.?up)`)},
	{"or-until-anything", regexp.MustCompile(`(?i)or\s+until\s+[\w\s]+`)},
}

// specificDurationRules detect countable, calendar-bound durations.
var specificDurationRules = []textRule{
	{"numeric-period", regexp.MustCompile(`(?i)(?:for\s+)?(?:exactly\s+)?\d+\s+(?:days?|weeks?|months?)`)},
	{"numeric-next-period", regexp.MustCompile(`(?i)(?:for\s+)?(?:the\s+next\s+)?\d+\s+(?:days?|weeks?|months?)`)},
	{"spelled-period", regexp.MustCompile(`(?i)(?:for\s+)?(?:exactly\s+)?` + spelledCount + `\s+(?:more\s+)?(?:days?|weeks?|months?)`)},
	{"spelled-next-period", regexp.MustCompile(`(?i)(?:for\s+)?(?:the\s+next\s+)?` + spelledCount + `\s+(?:days?|weeks?|months?)`)},
	{"numeric-more-period", regexp.MustCompile(`(?i)\d+\s+more\s+(?:days?|weeks?|months?)`)},
	{"spelled-more-period", regexp.MustCompile(`(?i)` + spelledCount + `\s+more\s+(?:days?|weeks?|months?)`)},
	{"complete-course", regexp.MustCompile(`(?i)complete\s+(?:the\s+)?(?:full\s+)?course`)},
	{"finish-pills", regexp.MustCompile(`(?i)finish\s+(?:all\s+)?(?:the\s+)?(?:pills?|tablets?|medication)`)},
	{"until-month-name", regexp.MustCompile(`(?i)until\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)`)},
	{"until-calendar-date", regexp.MustCompile(`(?i)until\s+\d+/\d+`)},
	{"post-procedure-period", regexp.MustCompile(`(?i)for\s+\d+\s+(?:days?|weeks?)\s+(?:after|following|post)`)},
	{"continue-numeric-period", regexp.MustCompile(`(?i)(?:continue\s+)?(?:for\s+)?(?:another\s+)?\d+\s+(?:days?|weeks?|months?)`)},
	{"continue-spelled-period", regexp.MustCompile(`(?i)(?:continue\s+)?(?:for\s+)?(?:another\s+)?` + spelledCount + `\s+(?:days?|weeks?|months?)`)},
}

// taperPattern extracts the per-phase tokens of a tapering regimen.
// Two-capture patterns yield (frequency, durationWeeks) with an implied
// dosage of 1; three-capture patterns carry an explicit dosage first.
type taperPattern struct {
	name      string
	re        *regexp.Regexp
	hasDosage bool
}

// taperExtractionPatterns run in priority order; the first pattern that
// yields at least one match wins and its matches become the phases.
var taperExtractionPatterns = []taperPattern{
	{"freq-daily-weeks", regexp.MustCompile(`(?i)(\d+)x?\s*(?:times?\s*)?(?:daily|per\s*day|a\s*day)\s*for\s*(\d+)\s*(?:week|wk)s?`), false},
	{"drops-times-weeks", regexp.MustCompile(`(?i)(\d+)\s*drops?\s*(\d+)\s*times?\s*daily\s*for\s*(\d+)\s*(?:week|wk)s?`), true},
	{"apply-x-weeks", regexp.MustCompile(`(?i)(?:apply\s*)?(\d+)x\s*daily\s*x\s*(\d+)\s*(?:week|wk)s?`), false},
	{"times-per-day-days", regexp.MustCompile(`(?i)(\d+)\s*times?\s*per\s*day\s*for\s*(\d+)\s*days?`), false},
}

// Start-date cues. The tomorrow cue deliberately outranks an explicitly
// supplied start date; see ResolveStartDate.
var (
	tomorrowCue = regexp.MustCompile(`(?i)(?:start(?:ing)?\s+)?tomorrow|next\s+day|beginning\s+tomorrow`)
	todayCue    = regexp.MustCompile(`(?i)(?:start(?:ing)?\s+)?today|right\s+now|immediately`)
)

// Free-text fallbacks for the single-phase path. Frequency may be a
// numeric token ("3 times", "4x"), a dosing adverb ("twice daily") or a
// spelled-out count ("two times").
var (
	frequencyToken   = regexp.MustCompile(`(?i)(\d+)\s*(?:times?|x)`)
	frequencyAdverb  = regexp.MustCompile(`(?i)\b(once|twice|thrice)\b`)
	frequencySpelled = regexp.MustCompile(`(?i)\b(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)\s+times?\b`)
	weeksToken       = regexp.MustCompile(`(?i)(\d+)\s*(?:week|wk)s?`)
	daysToken        = regexp.MustCompile(`(?i)(\d+)\s*days?`)
	leadingInt       = regexp.MustCompile(`(\d+)`)
)

var spelledValues = map[string]int{
	"once": 1, "twice": 2, "thrice": 3,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}
