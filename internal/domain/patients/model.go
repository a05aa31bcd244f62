package patients

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a person under a caregiver's care. Every patient belongs to
// exactly one caregiver and is never visible outside that ownership.
type Patient struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	CaregiverID uuid.UUID  `db:"caregiver_id" json:"caregiver_id"`
	Name        string     `db:"name" json:"name"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Diagnosis   string     `db:"diagnosis" json:"diagnosis"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	Medications []*Medication `db:"-" json:"medications"`
}

// Medication is a prescribed medication attached to a patient. Rows are never
// deleted; stopping a medication sets Active to false so past adherence data
// keeps its referent.
type Medication struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Name      string    `db:"name" json:"name"`
	Dose      string    `db:"dose" json:"dose"`
	Frequency string    `db:"frequency" json:"frequency"`
	TimeOfDay string    `db:"time_of_day" json:"time_of_day"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MedicationInput describes one medication in a create payload.
type MedicationInput struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	TimeOfDay string `json:"time_of_day"`
}

// CreatePatientRequest is the payload for POST /patients. Medications listed
// inline are created in the same transaction as the patient.
type CreatePatientRequest struct {
	Name        string            `json:"name"`
	DateOfBirth *string           `json:"date_of_birth"`
	Diagnosis   string            `json:"diagnosis"`
	Notes       *string           `json:"notes"`
	Medications []MedicationInput `json:"medications"`
}

// UpdatePatientRequest is the payload for PUT /patients/:id. Nil fields are
// left unchanged.
type UpdatePatientRequest struct {
	Name        *string `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	Diagnosis   *string `json:"diagnosis"`
	Notes       *string `json:"notes"`
}

// UpdateMedicationRequest is the payload for PUT /medications/:id. Nil fields
// are left unchanged.
type UpdateMedicationRequest struct {
	Name      *string `json:"name"`
	Dose      *string `json:"dose"`
	Frequency *string `json:"frequency"`
	TimeOfDay *string `json:"time_of_day"`
	Active    *bool   `json:"active"`
}
