package medication

import (
	"time"

	"github.com/google/uuid"
)

// Medication maps to the medication table. Names are stored lowercased
// so duplicate detection is case-insensitive.
type Medication struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	PatientID             uuid.UUID  `db:"patient_id" json:"patient_id"`
	VisitID               *uuid.UUID `db:"visit_id" json:"visit_id,omitempty"`
	Name                  string     `db:"name" json:"name"`
	FullInstructions      string     `db:"full_instructions" json:"full_instructions"`
	Frequency             *int       `db:"frequency" json:"frequency,omitempty"`
	Duration              *string    `db:"duration" json:"duration,omitempty"`
	StartDate             *time.Time `db:"start_date" json:"start_date,omitempty"`
	IsActive              bool       `db:"is_active" json:"is_active"`
	DiscontinuedDate      *time.Time `db:"discontinued_date" json:"discontinued_date,omitempty"`
	DiscontinuationReason *string    `db:"discontinuation_reason" json:"discontinuation_reason,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}

// MedicationAction maps to the medication_action table: an audit trail
// entry recording what happened to a medication during a visit.
type MedicationAction struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	MedicationID uuid.UUID  `db:"medication_id" json:"medication_id"`
	VisitID      *uuid.UUID `db:"visit_id" json:"visit_id,omitempty"`
	Action       string     `db:"action" json:"action"`
	Note         *string    `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
