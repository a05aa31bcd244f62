package summary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carelog/carelog/internal/domain/dailylog"
	"github.com/carelog/carelog/internal/domain/patients"
)

// The summary pipeline reads from the other domains through narrow interfaces.
// The patients and dailylog repositories satisfy them directly; main wires
// them in.

type PatientSource interface {
	GetByID(ctx context.Context, caregiverID, patientID uuid.UUID) (*patients.Patient, error)
}

type LogSource interface {
	ListSince(ctx context.Context, patientID uuid.UUID, since time.Time, asc bool) ([]*dailylog.DailyLog, error)
}

type MedicationSource interface {
	ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*patients.Medication, error)
}
