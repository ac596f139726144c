package medication

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rxplan/rxplan/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

func (r *medicationRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const medCols = `id, patient_id, visit_id, name, full_instructions, frequency, duration,
	start_date, is_active, discontinued_date, discontinuation_reason, created_at, updated_at`

func (r *medicationRepoPG) scanMed(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.PatientID, &m.VisitID, &m.Name, &m.FullInstructions,
		&m.Frequency, &m.Duration, &m.StartDate, &m.IsActive,
		&m.DiscontinuedDate, &m.DiscontinuationReason, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *medicationRepoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	m.Name = strings.ToLower(m.Name)
	m.IsActive = true
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medication (id, patient_id, visit_id, name, full_instructions,
			frequency, duration, start_date, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		m.ID, m.PatientID, m.VisitID, m.Name, m.FullInstructions,
		m.Frequency, m.Duration, m.StartDate, m.IsActive)
	return err
}

func (r *medicationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return r.scanMed(r.conn(ctx).QueryRow(ctx, `SELECT `+medCols+` FROM medication WHERE id = $1`, id))
}

func (r *medicationRepoPG) GetActiveByName(ctx context.Context, patientID uuid.UUID, name string) (*Medication, error) {
	return r.scanMed(r.conn(ctx).QueryRow(ctx, `
		SELECT `+medCols+` FROM medication
		WHERE patient_id = $1 AND name = $2 AND is_active LIMIT 1`,
		patientID, strings.ToLower(name)))
}

func (r *medicationRepoPG) Update(ctx context.Context, m *Medication) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication SET name=$2, full_instructions=$3, frequency=$4, duration=$5,
			start_date=$6, updated_at=NOW()
		WHERE id = $1`,
		m.ID, strings.ToLower(m.Name), m.FullInstructions, m.Frequency, m.Duration, m.StartDate)
	return err
}

func (r *medicationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medication WHERE id = $1`, id)
	return err
}

func (r *medicationRepoPG) Discontinue(ctx context.Context, id uuid.UUID, reason *string, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication SET is_active=false, discontinued_date=$2,
			discontinuation_reason=COALESCE($3, discontinuation_reason), updated_at=NOW()
		WHERE id = $1`, id, at, reason)
	return err
}

func (r *medicationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, activeOnly bool, limit, offset int) ([]*Medication, int, error) {
	where := ` WHERE patient_id = $1`
	if activeOnly {
		where += ` AND is_active`
	}
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medication`+where, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+medCols+` FROM medication`+where+
		` ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := r.scanMed(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

func (r *medicationRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Medication, int, error) {
	query := `SELECT ` + medCols + ` FROM medication WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM medication WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["patient"]; ok {
		query += fmt.Sprintf(` AND patient_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["visit"]; ok {
		query += fmt.Sprintf(` AND visit_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND visit_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["name"]; ok {
		query += fmt.Sprintf(` AND name LIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND name LIKE $%d`, idx)
		args = append(args, "%"+strings.ToLower(p)+"%")
		idx++
	}
	if p, ok := params["active"]; ok {
		query += fmt.Sprintf(` AND is_active = $%d`, idx)
		countQuery += fmt.Sprintf(` AND is_active = $%d`, idx)
		args = append(args, p == "true")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := r.scanMed(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

func (r *medicationRepoPG) RecordAction(ctx context.Context, a *MedicationAction) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medication_action (id, medication_id, visit_id, action, note)
		VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.MedicationID, a.VisitID, a.Action, a.Note)
	return err
}

const actionCols = `id, medication_id, visit_id, action, note, created_at`

func (r *medicationRepoPG) ListActionsByMedication(ctx context.Context, medicationID uuid.UUID) ([]*MedicationAction, error) {
	return r.queryActions(ctx, `SELECT `+actionCols+` FROM medication_action
		WHERE medication_id = $1 ORDER BY created_at DESC`, medicationID)
}

func (r *medicationRepoPG) ListActionsByVisit(ctx context.Context, visitID uuid.UUID) ([]*MedicationAction, error) {
	return r.queryActions(ctx, `SELECT `+actionCols+` FROM medication_action
		WHERE visit_id = $1 ORDER BY created_at DESC`, visitID)
}

func (r *medicationRepoPG) queryActions(ctx context.Context, sql string, arg interface{}) ([]*MedicationAction, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MedicationAction
	for rows.Next() {
		var a MedicationAction
		if err := rows.Scan(&a.ID, &a.MedicationID, &a.VisitID, &a.Action, &a.Note, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, nil
}
