package schedule

import (
	"fmt"
	"math"
	"time"
)

// Daily produces the concrete dose times for one calendar date, taken
// from the phase whose interval contains it. Returns nil when the date
// falls outside every phase.
func Daily(s *MedicationSchedule, date time.Time) *DaySchedule {
	if s == nil || !s.HasSchedule {
		return nil
	}
	var phase *Phase
	for i := range s.Timeline {
		p := &s.Timeline[i]
		if !date.Before(p.StartDate) && !date.After(p.EndDate) {
			phase = p
			break
		}
	}
	if phase == nil {
		return nil
	}

	times := suggestedTimes(phase.Frequency)
	doses := make([]DoseEntry, 0, len(times))
	for _, t := range times {
		doses = append(doses, DoseEntry{
			Time:        t,
			Dosage:      phase.Dosage,
			Instruction: phase.Instruction,
			ScheduledAt: time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location()),
		})
	}

	return &DaySchedule{
		Date:       date,
		Phase:      *phase,
		Doses:      doses,
		TotalDoses: phase.Frequency,
	}
}

// suggestedTimes spaces doses across the waking day. Frequencies 1-4
// use fixed canonical slots; higher frequencies distribute evenly
// across 24 hours starting at 08:00, wrapping past midnight.
func suggestedTimes(frequency int) []DoseTime {
	switch frequency {
	case 1:
		return []DoseTime{doseTime(8, 0)}
	case 2:
		return []DoseTime{doseTime(8, 0), doseTime(20, 0)}
	case 3:
		return []DoseTime{doseTime(8, 0), doseTime(14, 0), doseTime(20, 0)}
	case 4:
		return []DoseTime{doseTime(8, 0), doseTime(12, 0), doseTime(18, 0), doseTime(22, 0)}
	}
	if frequency < 1 {
		return nil
	}
	interval := 24.0 / float64(frequency)
	times := make([]DoseTime, 0, frequency)
	for i := 0; i < frequency; i++ {
		hour := int(math.Round(8+float64(i)*interval)) % 24
		times = append(times, doseTime(hour, 0))
	}
	return times
}

func doseTime(hour, minute int) DoseTime {
	return DoseTime{Hour: hour, Minute: minute, Label: clockLabel(hour, minute)}
}

// clockLabel renders an hour/minute pair in 12-hour am/pm form.
func clockLabel(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, period)
}
