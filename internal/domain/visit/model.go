package visit

import (
	"time"

	"github.com/google/uuid"
)

// Visit is a clinic encounter. Medications prescribed during a visit
// link back to it and anchor their dosing timelines on VisitDate.
type Visit struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	VisitDate  time.Time `db:"visit_date" json:"visit_date"`
	Transcript *string   `db:"transcript" json:"transcript,omitempty"`
	Summary    *string   `db:"summary" json:"summary,omitempty"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
