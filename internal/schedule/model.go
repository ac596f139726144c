package schedule

import "time"

// RegimenType labels how a prescription's dosing evolves over time.
type RegimenType string

const (
	// RegimenTapering is a multi-phase plan whose frequency or dosage
	// changes across sequential time windows.
	RegimenTapering RegimenType = "tapering"
	// RegimenShortTerm is a single fixed-duration, fixed-frequency plan.
	RegimenShortTerm RegimenType = "short-term"
	// RegimenChronic is open-ended therapy with no determinable end date.
	RegimenChronic RegimenType = "chronic"
)

// DefaultShortTermDays is used when no duration can be extracted at all.
// The value is tuned for topical/ophthalmic courses; override per
// medication class if a better default is known.
const DefaultShortTermDays = 7

// MedicationInput is the caller-supplied record the engine interprets.
// The engine never mutates it.
type MedicationInput struct {
	Name             string     `json:"name"`
	FullInstructions string     `json:"full_instructions,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	VisitDate        *time.Time `json:"visit_date,omitempty"`
	// Frequency and Duration are optional pre-parsed hints that
	// short-circuit text extraction. Zero values mean absent.
	Frequency int    `json:"frequency,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

// Classification is the derived regimen tag for an instruction string.
type Classification struct {
	Type         RegimenType `json:"type"`
	HasTimeline  bool        `json:"has_timeline"`
	ShowProgress bool        `json:"show_progress"`
	Reason       string      `json:"reason"`
	// Rule names the pattern-library rule that decided the
	// classification; empty for the chronic default.
	Rule string `json:"rule,omitempty"`
}

// Phase is one contiguous sub-regimen with constant frequency/dosage.
// The interval is [StartDate, EndDate); phase k's EndDate equals phase
// k+1's StartDate. DaysRemaining, IsActive and IsCompleted are derived
// against a given instant and recomputed on every read.
type Phase struct {
	Phase         int       `json:"phase"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Frequency     int       `json:"frequency"`
	Dosage        int       `json:"dosage"`
	Instruction   string    `json:"instruction"`
	DaysRemaining int       `json:"days_remaining"`
	IsActive      bool      `json:"is_active"`
	IsCompleted   bool      `json:"is_completed"`
}

// MedicationSchedule is the time-phased plan derived from one
// medication record. For chronic regimens it acts as a display stub:
// HasSchedule is false and Timeline is empty.
type MedicationSchedule struct {
	MedicationName  string      `json:"medication_name"`
	Type            RegimenType `json:"type"`
	StartDate       time.Time   `json:"start_date,omitempty"`
	Timeline        []Phase     `json:"timeline,omitempty"`
	TotalDuration   int         `json:"total_duration"`
	CurrentPhase    int         `json:"current_phase"`
	OverallProgress int         `json:"overall_progress"`
	HasSchedule     bool        `json:"has_schedule"`
	ShowProgress    bool        `json:"show_progress"`
	Instruction     string      `json:"instruction,omitempty"`
	Message         string      `json:"message,omitempty"`
	// Degraded marks a recovered classification/extraction mismatch:
	// the text classified as tapering but no extraction pattern
	// matched, so the simpler single-phase path was used instead.
	Degraded bool `json:"degraded,omitempty"`
}

// ScheduleStatus is the engine's view of a schedule relative to "now".
type ScheduleStatus string

const (
	StatusActive     ScheduleStatus = "active"
	StatusCompleted  ScheduleStatus = "completed"
	StatusNotStarted ScheduleStatus = "not-started"
	StatusUnknown    ScheduleStatus = "unknown"
)

// StatusReport describes where a schedule stands at a given instant.
type StatusReport struct {
	Status        ScheduleStatus `json:"status"`
	Message       string         `json:"message"`
	CurrentPhase  *Phase         `json:"current_phase,omitempty"`
	DaysRemaining int            `json:"days_remaining,omitempty"`
	NextPhase     *Phase         `json:"next_phase,omitempty"`
}

// DoseTime is a suggested clock time for one dose.
type DoseTime struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Label  string `json:"label"`
}

// DoseEntry is one scheduled dose on a specific date. Taken is always
// initialized false; dose-taken tracking belongs to the caller.
type DoseEntry struct {
	Time        DoseTime  `json:"time"`
	Dosage      int       `json:"dosage"`
	Instruction string    `json:"instruction"`
	Taken       bool      `json:"taken"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// DaySchedule lists the doses due on a single calendar date.
type DaySchedule struct {
	Date       time.Time   `json:"date"`
	Phase      Phase       `json:"phase"`
	Doses      []DoseEntry `json:"doses"`
	TotalDoses int         `json:"total_doses"`
}
