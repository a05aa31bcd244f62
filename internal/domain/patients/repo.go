package patients

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound covers both a missing row and a row owned by another caregiver.
// Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

type PatientRepository interface {
	// Create inserts the patient and any inline medications in one transaction.
	Create(ctx context.Context, p *Patient, meds []*Medication) error
	// GetByID returns the patient only when owned by caregiverID.
	GetByID(ctx context.Context, caregiverID, patientID uuid.UUID) (*Patient, error)
	// List returns the caregiver's patients ordered by creation, newest first.
	List(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Patient, int, error)
	Update(ctx context.Context, p *Patient) error
}

type MedicationRepository interface {
	Add(ctx context.Context, m *Medication) error
	// GetOwned returns the medication only when its patient is owned by
	// caregiverID.
	GetOwned(ctx context.Context, caregiverID, medicationID uuid.UUID) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error)
	ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error)
}
