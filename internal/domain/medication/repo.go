package medication

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type MedicationRepository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	GetActiveByName(ctx context.Context, patientID uuid.UUID, name string) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	Discontinue(ctx context.Context, id uuid.UUID, reason *string, at time.Time) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, activeOnly bool, limit, offset int) ([]*Medication, int, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Medication, int, error)
	// Actions
	RecordAction(ctx context.Context, a *MedicationAction) error
	ListActionsByMedication(ctx context.Context, medicationID uuid.UUID) ([]*MedicationAction, error)
	ListActionsByVisit(ctx context.Context, visitID uuid.UUID) ([]*MedicationAction, error)
}
