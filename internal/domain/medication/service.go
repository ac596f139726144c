package medication

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rxplan/rxplan/internal/schedule"
)

// VisitSource resolves the date of the visit a medication was
// prescribed at; the schedule engine anchors timelines on it.
type VisitSource interface {
	VisitDate(ctx context.Context, id uuid.UUID) (*time.Time, error)
}

// TxRunner runs fn atomically. The default runner executes fn directly;
// wire a database transaction via UseTx.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	medications MedicationRepository
	visits      VisitSource
	logger      zerolog.Logger
	now         func() time.Time
	tx          TxRunner
}

func NewService(meds MedicationRepository, visits VisitSource, logger zerolog.Logger) *Service {
	return &Service{
		medications: meds,
		visits:      visits,
		logger:      logger,
		now:         time.Now,
		tx:          func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) },
	}
}

// UseTx makes multi-write operations (create, update, discontinue plus
// their action records) run inside the supplied transaction runner.
func (s *Service) UseTx(tx TxRunner) {
	s.tx = tx
}

var validActions = map[string]bool{
	"started": true, "continued": true, "adjusted": true,
	"discontinued": true, "restarted": true,
}

func (s *Service) CreateMedication(ctx context.Context, m *Medication) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if m.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if strings.TrimSpace(m.FullInstructions) == "" && (m.Frequency == nil || *m.Frequency <= 0) {
		return fmt.Errorf("full_instructions or frequency is required")
	}
	if existing, err := s.medications.GetActiveByName(ctx, m.PatientID, m.Name); err == nil && existing != nil {
		return fmt.Errorf("active medication %q already exists for patient", strings.ToLower(m.Name))
	}
	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.medications.Create(ctx, m); err != nil {
			return err
		}
		return s.medications.RecordAction(ctx, &MedicationAction{
			MedicationID: m.ID,
			VisitID:      m.VisitID,
			Action:       "started",
		})
	})
}

func (s *Service) GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.medications.GetByID(ctx, id)
}

func (s *Service) UpdateMedication(ctx context.Context, m *Medication) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.medications.Update(ctx, m); err != nil {
			return err
		}
		return s.medications.RecordAction(ctx, &MedicationAction{
			MedicationID: m.ID,
			VisitID:      m.VisitID,
			Action:       "adjusted",
		})
	})
}

func (s *Service) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	return s.medications.Delete(ctx, id)
}

func (s *Service) DiscontinueMedication(ctx context.Context, id uuid.UUID, reason *string) error {
	m, err := s.medications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !m.IsActive {
		return fmt.Errorf("medication is already discontinued")
	}
	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.medications.Discontinue(ctx, id, reason, s.now()); err != nil {
			return err
		}
		return s.medications.RecordAction(ctx, &MedicationAction{
			MedicationID: id,
			Action:       "discontinued",
			Note:         reason,
		})
	})
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, activeOnly bool, limit, offset int) ([]*Medication, int, error) {
	return s.medications.ListByPatient(ctx, patientID, activeOnly, limit, offset)
}

func (s *Service) SearchMedications(ctx context.Context, params map[string]string, limit, offset int) ([]*Medication, int, error) {
	return s.medications.Search(ctx, params, limit, offset)
}

func (s *Service) RecordAction(ctx context.Context, a *MedicationAction) error {
	if a.MedicationID == uuid.Nil {
		return fmt.Errorf("medication_id is required")
	}
	if !validActions[a.Action] {
		return fmt.Errorf("invalid action: %s", a.Action)
	}
	return s.medications.RecordAction(ctx, a)
}

func (s *Service) MedicationHistory(ctx context.Context, medicationID uuid.UUID) ([]*MedicationAction, error) {
	return s.medications.ListActionsByMedication(ctx, medicationID)
}

func (s *Service) VisitActions(ctx context.Context, visitID uuid.UUID) ([]*MedicationAction, error) {
	return s.medications.ListActionsByVisit(ctx, visitID)
}

// Schedule builds the dosing timeline for a stored medication, anchored
// on its visit date when one is linked.
func (s *Service) Schedule(ctx context.Context, id uuid.UUID) (*schedule.MedicationSchedule, error) {
	m, err := s.medications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sched := schedule.Process(s.scheduleInput(ctx, m), s.now())
	if sched != nil && sched.Degraded {
		s.logger.Warn().
			Str("medication_id", m.ID.String()).
			Str("instructions", m.FullInstructions).
			Msg("schedule extraction degraded")
	}
	return sched, nil
}

// Status evaluates the medication's treatment state as of now.
func (s *Service) Status(ctx context.Context, id uuid.UUID) (schedule.StatusReport, error) {
	sched, err := s.Schedule(ctx, id)
	if err != nil {
		return schedule.StatusReport{}, err
	}
	return schedule.Status(sched, s.now()), nil
}

// DailySchedule lists the concrete dose times for one calendar date.
// Returns nil when the date falls outside the medication's timeline.
func (s *Service) DailySchedule(ctx context.Context, id uuid.UUID, date time.Time) (*schedule.DaySchedule, error) {
	sched, err := s.Schedule(ctx, id)
	if err != nil {
		return nil, err
	}
	return schedule.Daily(sched, date), nil
}

// PreviewSchedule builds a schedule from raw, unpersisted input. Used by
// the prescription form to show the timeline before saving.
func (s *Service) PreviewSchedule(in schedule.MedicationInput) *schedule.MedicationSchedule {
	sched := schedule.Process(in, s.now())
	if sched != nil && sched.Degraded {
		s.logger.Warn().
			Str("medication", in.Name).
			Str("instructions", in.FullInstructions).
			Msg("schedule extraction degraded")
	}
	return sched
}

func (s *Service) scheduleInput(ctx context.Context, m *Medication) schedule.MedicationInput {
	in := schedule.MedicationInput{
		Name:             m.Name,
		FullInstructions: m.FullInstructions,
		StartDate:        m.StartDate,
	}
	if m.Frequency != nil {
		in.Frequency = *m.Frequency
	}
	if m.Duration != nil {
		in.Duration = *m.Duration
	}
	if m.VisitID != nil && s.visits != nil {
		if vd, err := s.visits.VisitDate(ctx, *m.VisitID); err == nil {
			in.VisitDate = vd
		}
	}
	return in
}
