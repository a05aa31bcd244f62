package dailylog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const historyDays = 90

type Service struct {
	logs     DailyLogRepository
	patients PatientSource
}

func NewService(logs DailyLogRepository, patients PatientSource) *Service {
	return &Service{logs: logs, patients: patients}
}

// Upsert records the day's log for an owned patient, replacing any existing
// log for the same date.
func (s *Service) Upsert(ctx context.Context, caregiverID uuid.UUID, req *UpsertRequest) (*DailyLog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.patients.EnsureOwned(ctx, caregiverID, req.PatientID); err != nil {
		return nil, err
	}

	logDate, err := parseLogDate(req.LogDate)
	if err != nil {
		return nil, err
	}

	l := &DailyLog{
		PatientID:             req.PatientID,
		LoggedBy:              caregiverID,
		LogDate:               logDate,
		MedicationsTaken:      emptyIfNil(req.MedicationsTaken),
		Symptoms:              emptyIfNil(req.Symptoms),
		MedicationSideEffects: emptyIfNil(req.MedicationSideEffects),
		SleepHours:            req.SleepHours,
		MoodScore:             req.MoodScore,
		WaterIntakeOz:         req.WaterIntakeOz,
		Activities:            emptyIfNil(req.Activities),
		Lifestyle:             req.Lifestyle,
		Notes:                 req.Notes,
	}
	if err := s.logs.Upsert(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// History returns an owned patient's logs for the trailing 90 days, newest
// first.
func (s *Service) History(ctx context.Context, caregiverID, patientID uuid.UUID) ([]*DailyLog, error) {
	if err := s.patients.EnsureOwned(ctx, caregiverID, patientID); err != nil {
		return nil, err
	}
	since := today().AddDate(0, 0, -historyDays)
	return s.logs.ListSince(ctx, patientID, since, false)
}

// Today returns the patient's log for the current date, or nil when none
// exists yet.
func (s *Service) Today(ctx context.Context, caregiverID, patientID uuid.UUID) (*DailyLog, error) {
	if err := s.patients.EnsureOwned(ctx, caregiverID, patientID); err != nil {
		return nil, err
	}
	l, err := s.logs.GetByDate(ctx, patientID, today())
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return l, err
}

func parseLogDate(s string) (time.Time, error) {
	if s == "" {
		return today(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid log_date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
