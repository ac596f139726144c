package schedule

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Process is the orchestration entry point: it classifies the input and
// builds the matching schedule. Chronic regimens get a display stub
// with no timeline; inputs carrying neither instruction text nor a
// frequency hint yield nil ("nothing to schedule", not an error).
// All time-dependent fields are computed against the supplied instant.
func Process(in MedicationInput, now time.Time) *MedicationSchedule {
	cls := Classify(in.FullInstructions)
	if !cls.HasTimeline {
		return chronicStub(in)
	}
	s := BuildTimeline(in, cls, now)
	if s == nil && strings.TrimSpace(in.FullInstructions) != "" {
		// Classified as schedulable but unextractable: degrade to the
		// chronic display rather than invent a zero-duration phase.
		s = chronicStub(in)
		s.Degraded = true
	}
	return s
}

// BuildTimeline constructs the phase timeline for a tapering or
// short-term classification. It returns nil when there is no
// instruction text and no frequency hint. A tapering classification
// whose text matches no extraction pattern falls back to the
// single-phase path with Degraded set; extraction and classification
// are allowed to disagree without failing.
func BuildTimeline(in MedicationInput, cls Classification, now time.Time) *MedicationSchedule {
	if strings.TrimSpace(in.FullInstructions) == "" && in.Frequency <= 0 {
		return nil
	}
	start := ResolveStartDate(in.FullInstructions, in.StartDate, in.VisitDate, now)

	if cls.Type == RegimenTapering {
		sched, matched := buildTaperTimeline(in, start, now)
		if sched != nil {
			return sched
		}
		if matched {
			// A pattern matched but its counts were unusable.
			return nil
		}
		sched = buildSimpleSchedule(in, start, now)
		if sched != nil {
			sched.Degraded = true
		}
		return sched
	}

	return buildSimpleSchedule(in, start, now)
}

// buildTaperTimeline walks the matches of the first extraction pattern
// that fires and emits contiguous phases: each phase starts where the
// previous one ended, with endDate = startDate + durationWeeks*7 days.
// The second return reports whether any pattern matched at all.
func buildTaperTimeline(in MedicationInput, start, now time.Time) (*MedicationSchedule, bool) {
	text := in.FullInstructions
	var matches [][]string
	var pat taperPattern
	for _, p := range taperExtractionPatterns {
		if m := p.re.FindAllStringSubmatch(text, -1); len(m) > 0 {
			matches, pat = m, p
			break
		}
	}
	if len(matches) == 0 {
		return nil, false
	}

	timeline := make([]Phase, 0, len(matches))
	cursor := start
	for i, m := range matches {
		dosage, frequency, weeks := 1, 0, 0
		if pat.hasDosage {
			dosage = parseCount(m[1])
			frequency = parseCount(m[2])
			weeks = parseCount(m[3])
		} else {
			frequency = parseCount(m[1])
			weeks = parseCount(m[2])
		}
		if dosage <= 0 || frequency <= 0 || weeks <= 0 {
			// Malformed counts are treated as absent, not zero.
			return nil, true
		}
		end := cursor.AddDate(0, 0, weeks*7)
		timeline = append(timeline, newPhase(i+1, cursor, end, frequency, dosage, taperInstruction(dosage, frequency), now))
		cursor = end
	}

	return assembleSchedule(in, RegimenTapering, start, timeline, now), true
}

// buildSimpleSchedule emits a single fixed-frequency phase. Frequency
// and duration come from the explicit hints first, then the first
// matching token in the text, then defaults (1 dose/day for
// DefaultShortTermDays days).
func buildSimpleSchedule(in MedicationInput, start, now time.Time) *MedicationSchedule {
	if strings.TrimSpace(in.FullInstructions) == "" && in.Frequency <= 0 {
		return nil
	}

	frequency := in.Frequency
	if frequency <= 0 {
		frequency = extractFrequency(in.FullInstructions)
	}
	if frequency <= 0 {
		frequency = 1
	}

	days := parseDurationHint(in.Duration)
	if days <= 0 {
		days = extractDurationDays(in.FullInstructions)
	}
	if days <= 0 {
		days = DefaultShortTermDays
	}

	instruction := strings.TrimSpace(in.FullInstructions)
	if instruction == "" {
		instruction = fmt.Sprintf("%d times daily", frequency)
	}

	end := start.AddDate(0, 0, days)
	timeline := []Phase{newPhase(1, start, end, frequency, 1, instruction, now)}
	return assembleSchedule(in, RegimenShortTerm, start, timeline, now)
}

func chronicStub(in MedicationInput) *MedicationSchedule {
	return &MedicationSchedule{
		MedicationName: in.Name,
		Type:           RegimenChronic,
		Instruction:    in.FullInstructions,
		Message:        "Continue as prescribed - no specific end date",
	}
}

func assembleSchedule(in MedicationInput, typ RegimenType, start time.Time, timeline []Phase, now time.Time) *MedicationSchedule {
	s := &MedicationSchedule{
		MedicationName: in.Name,
		Type:           typ,
		StartDate:      start,
		Timeline:       timeline,
		TotalDuration:  totalDays(timeline),
		HasSchedule:    true,
		ShowProgress:   true,
	}
	s.CurrentPhase = currentPhaseIndex(timeline, now)
	s.OverallProgress = overallProgress(timeline, now)
	return s
}

// Refresh recomputes every time-dependent field against the supplied
// instant. The timeline dates themselves never change.
func (s *MedicationSchedule) Refresh(now time.Time) {
	if s == nil || !s.HasSchedule {
		return
	}
	for i := range s.Timeline {
		p := &s.Timeline[i]
		p.DaysRemaining = daysRemaining(p.EndDate, now)
		p.IsActive = phaseActive(*p, now)
		p.IsCompleted = now.After(p.EndDate)
	}
	s.CurrentPhase = currentPhaseIndex(s.Timeline, now)
	s.OverallProgress = overallProgress(s.Timeline, now)
}

func taperInstruction(dosage, frequency int) string {
	if dosage > 1 {
		return fmt.Sprintf("%d drops %d times daily", dosage, frequency)
	}
	return fmt.Sprintf("%d times daily", frequency)
}

func newPhase(ordinal int, start, end time.Time, frequency, dosage int, instruction string, now time.Time) Phase {
	p := Phase{
		Phase:       ordinal,
		StartDate:   start,
		EndDate:     end,
		Frequency:   frequency,
		Dosage:      dosage,
		Instruction: instruction,
	}
	p.DaysRemaining = daysRemaining(end, now)
	p.IsActive = phaseActive(p, now)
	p.IsCompleted = now.After(end)
	return p
}

func phaseActive(p Phase, now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

func daysRemaining(end, now time.Time) int {
	d := int(math.Ceil(end.Sub(now).Hours() / 24))
	if d < 0 {
		return 0
	}
	return d
}

func totalDays(timeline []Phase) int {
	total := 0.0
	for _, p := range timeline {
		total += p.EndDate.Sub(p.StartDate).Hours() / 24
	}
	return int(math.Round(total))
}

// currentPhaseIndex is the 1-based index of the first active phase; if
// none is active it is the phase count (all complete or none started).
func currentPhaseIndex(timeline []Phase, now time.Time) int {
	for i, p := range timeline {
		if phaseActive(p, now) {
			return i + 1
		}
	}
	return len(timeline)
}

// overallProgress is completed days over total days, as a 0-100
// integer. Completed phases count in full; the active phase counts the
// elapsed fraction since its start.
func overallProgress(timeline []Phase, now time.Time) int {
	total := 0.0
	completed := 0.0
	for _, p := range timeline {
		span := p.EndDate.Sub(p.StartDate).Hours() / 24
		total += span
		switch {
		case now.After(p.EndDate):
			completed += span
		case !now.Before(p.StartDate):
			completed += now.Sub(p.StartDate).Hours() / 24
		}
	}
	if total == 0 {
		return 0
	}
	pct := int(math.Round(completed / total * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// parseCount parses an integer token from a matched pattern. Malformed
// values come back as 0, which callers treat as "absent".
func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// extractFrequency finds the first frequency token: numeric ("3 times",
// "4x"), adverbial ("twice") or spelled out ("two times"); 0 if none.
func extractFrequency(text string) int {
	if m := frequencyToken.FindStringSubmatch(text); m != nil {
		return parseCount(m[1])
	}
	if m := frequencyAdverb.FindStringSubmatch(text); m != nil {
		return spelledValues[strings.ToLower(m[1])]
	}
	if m := frequencySpelled.FindStringSubmatch(text); m != nil {
		return spelledValues[strings.ToLower(m[1])]
	}
	return 0
}

// extractDurationDays finds the first week token (× 7) or, failing
// that, the first day token; 0 if neither appears.
func extractDurationDays(text string) int {
	if m := weeksToken.FindStringSubmatch(text); m != nil {
		return parseCount(m[1]) * 7
	}
	if m := daysToken.FindStringSubmatch(text); m != nil {
		return parseCount(m[1])
	}
	return 0
}

// parseDurationHint interprets a pre-parsed duration hint such as
// "14 days" or "2 weeks". A bare number reads as days; 0 means absent.
func parseDurationHint(hint string) int {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return 0
	}
	m := leadingInt.FindStringSubmatch(hint)
	if m == nil {
		return 0
	}
	n := parseCount(m[1])
	if n <= 0 {
		return 0
	}
	if strings.Contains(strings.ToLower(hint), "week") {
		return n * 7
	}
	return n
}
