package schedule

import (
	"fmt"
	"time"
)

// Status evaluates a schedule against the supplied instant. It is a
// pure read: the schedule is never mutated, and calling it twice with
// the same arguments yields identical reports. State transitions
// (not-started → active → completed) happen implicitly as now advances.
func Status(s *MedicationSchedule, now time.Time) StatusReport {
	if s == nil || !s.HasSchedule || len(s.Timeline) == 0 {
		return StatusReport{Status: StatusUnknown, Message: "Status unavailable"}
	}

	for i := range s.Timeline {
		p := s.Timeline[i]
		if !phaseActive(p, now) {
			continue
		}
		p.DaysRemaining = daysRemaining(p.EndDate, now)
		p.IsActive = true
		p.IsCompleted = false
		return StatusReport{
			Status:        StatusActive,
			Message:       fmt.Sprintf("Phase %d: %s", p.Phase, p.Instruction),
			CurrentPhase:  &p,
			DaysRemaining: p.DaysRemaining,
		}
	}

	allCompleted := true
	anyStarted := false
	for _, p := range s.Timeline {
		if !now.After(p.EndDate) {
			allCompleted = false
		}
		if !now.Before(p.StartDate) {
			anyStarted = true
		}
	}

	if allCompleted {
		return StatusReport{Status: StatusCompleted, Message: "Treatment completed"}
	}
	if !anyStarted {
		next := s.Timeline[0]
		next.DaysRemaining = daysRemaining(next.EndDate, now)
		return StatusReport{
			Status:    StatusNotStarted,
			Message:   fmt.Sprintf("Starts %s", FormatDate(next.StartDate)),
			NextPhase: &next,
		}
	}

	// Contiguous phases should make this unreachable, but a gap in the
	// timeline must not crash status evaluation.
	return StatusReport{Status: StatusUnknown, Message: "Status unavailable"}
}
