package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Service struct {
	visits VisitRepository
	logger zerolog.Logger
}

func NewService(visits VisitRepository, logger zerolog.Logger) *Service {
	return &Service{visits: visits, logger: logger}
}

func (s *Service) CreateVisit(ctx context.Context, v *Visit) error {
	if v.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if v.VisitDate.IsZero() {
		return fmt.Errorf("visit_date is required")
	}
	return s.visits.Create(ctx, v)
}

func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.visits.GetByID(ctx, id)
}

func (s *Service) UpdateVisit(ctx context.Context, v *Visit) error {
	if v.VisitDate.IsZero() {
		return fmt.Errorf("visit_date is required")
	}
	return s.visits.Update(ctx, v)
}

func (s *Service) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	return s.visits.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
	return s.visits.ListByPatient(ctx, patientID, limit, offset)
}

// VisitDate satisfies the medication service's visit lookup.
func (s *Service) VisitDate(ctx context.Context, id uuid.UUID) (*time.Time, error) {
	v, err := s.visits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &v.VisitDate, nil
}
