package dailylog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no log matches, and by the patient source when
// the patient does not exist or belongs to another caregiver.
var ErrNotFound = errors.New("not found")

type DailyLogRepository interface {
	// Upsert inserts the log, or replaces the existing row for the same
	// (patient, date). Last writer wins.
	Upsert(ctx context.Context, l *DailyLog) error
	// ListSince returns logs dated on or after since. Ascending date order
	// when asc, otherwise descending.
	ListSince(ctx context.Context, patientID uuid.UUID, since time.Time, asc bool) ([]*DailyLog, error)
	GetByDate(ctx context.Context, patientID uuid.UUID, date time.Time) (*DailyLog, error)
}

// PatientSource resolves patient ownership without importing the patients
// package. Implementations return ErrNotFound for missing and foreign
// patients alike.
type PatientSource interface {
	EnsureOwned(ctx context.Context, caregiverID, patientID uuid.UUID) error
}
