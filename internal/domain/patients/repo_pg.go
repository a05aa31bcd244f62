package patients

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `id, caregiver_id, name, date_of_birth, diagnosis, notes, created_at, updated_at`

func (r *patientRepoPG) scan(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.CaregiverID, &p.Name, &p.DateOfBirth,
		&p.Diagnosis, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient, meds []*Medication) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	p.ID = uuid.New()
	if err := tx.QueryRow(ctx, `
		INSERT INTO patient (id, caregiver_id, name, date_of_birth, diagnosis, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		p.ID, p.CaregiverID, p.Name, p.DateOfBirth, p.Diagnosis, p.Notes).
		Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}

	for _, m := range meds {
		m.ID = uuid.New()
		m.PatientID = p.ID
		m.Active = true
		if err := tx.QueryRow(ctx, `
			INSERT INTO medication (id, patient_id, name, dose, frequency, time_of_day, active)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			RETURNING created_at, updated_at`,
			m.ID, m.PatientID, m.Name, m.Dose, m.Frequency, m.TimeOfDay).
			Scan(&m.CreatedAt, &m.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *patientRepoPG) GetByID(ctx context.Context, caregiverID, patientID uuid.UUID) (*Patient, error) {
	return r.scan(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1 AND caregiver_id = $2`,
		patientID, caregiverID))
}

func (r *patientRepoPG) List(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM patient WHERE caregiver_id = $1`, caregiverID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+patientCols+` FROM patient WHERE caregiver_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		caregiverID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.CaregiverID, &p.Name, &p.DateOfBirth,
			&p.Diagnosis, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &p)
	}
	return items, total, nil
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient SET name=$3, date_of_birth=$4, diagnosis=$5, notes=$6, updated_at=NOW()
		WHERE id = $1 AND caregiver_id = $2`,
		p.ID, p.CaregiverID, p.Name, p.DateOfBirth, p.Diagnosis, p.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// =========== Medication Repository ===========

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

const medicationCols = `id, patient_id, name, dose, frequency, time_of_day, active, created_at, updated_at`

func (r *medicationRepoPG) scan(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.PatientID, &m.Name, &m.Dose, &m.Frequency,
		&m.TimeOfDay, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medicationRepoPG) Add(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	m.Active = true
	return r.pool.QueryRow(ctx, `
		INSERT INTO medication (id, patient_id, name, dose, frequency, time_of_day, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING created_at, updated_at`,
		m.ID, m.PatientID, m.Name, m.Dose, m.Frequency, m.TimeOfDay).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *medicationRepoPG) GetOwned(ctx context.Context, caregiverID, medicationID uuid.UUID) (*Medication, error) {
	return r.scan(r.pool.QueryRow(ctx, `
		SELECT m.id, m.patient_id, m.name, m.dose, m.frequency, m.time_of_day,
			m.active, m.created_at, m.updated_at
		FROM medication m
		JOIN patient p ON p.id = m.patient_id
		WHERE m.id = $1 AND p.caregiver_id = $2`,
		medicationID, caregiverID))
}

func (r *medicationRepoPG) Update(ctx context.Context, m *Medication) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE medication SET name=$2, dose=$3, frequency=$4, time_of_day=$5, active=$6, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Dose, m.Frequency, m.TimeOfDay, m.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *medicationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	return r.list(ctx, `SELECT `+medicationCols+` FROM medication WHERE patient_id = $1 ORDER BY created_at`, patientID)
}

func (r *medicationRepoPG) ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	return r.list(ctx, `SELECT `+medicationCols+` FROM medication WHERE patient_id = $1 AND active ORDER BY created_at`, patientID)
}

func (r *medicationRepoPG) list(ctx context.Context, query string, args ...interface{}) ([]*Medication, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.PatientID, &m.Name, &m.Dose, &m.Frequency,
			&m.TimeOfDay, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, nil
}
