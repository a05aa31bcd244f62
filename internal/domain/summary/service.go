package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carelog/carelog/internal/platform/llm"
)

const windowDays = 30

var (
	// ErrNoLogs means the analysis window is empty. The condition is
	// reported to the caller; an empty summary is never fabricated.
	ErrNoLogs = errors.New("no logs found for the last 30 days")

	// ErrNotConfigured means no summarization credential was supplied at
	// startup. Checked before any upstream call.
	ErrNotConfigured = errors.New("summarization is not configured")
)

type Service struct {
	patients    PatientSource
	logs        LogSource
	medications MedicationSource
	llm         llm.Client
}

// NewService builds the summary pipeline. A nil client is allowed; generation
// then fails per request with ErrNotConfigured.
func NewService(patients PatientSource, logs LogSource, medications MedicationSource, client llm.Client) *Service {
	return &Service{patients: patients, logs: logs, medications: medications, llm: client}
}

// Generate produces a doctor-ready summary of the patient's trailing 30 days:
// load window, aggregate, compose prompt, one model call, validate, merge
// server-computed adherence. No retries at any step.
func (s *Service) Generate(ctx context.Context, caregiverID, patientID uuid.UUID) (map[string]interface{}, error) {
	patient, err := s.patients.GetByID(ctx, caregiverID, patientID)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, time.UTC)

	logs, err := s.logs.ListSince(ctx, patientID, since, true)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	if len(logs) == 0 {
		return nil, ErrNoLogs
	}

	meds, err := s.medications.ListActiveByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load medications: %w", err)
	}

	agg := Aggregate(logs, meds)
	userPrompt := buildUserPrompt(patient, logs, meds, agg)

	if s.llm == nil {
		return nil, ErrNotConfigured
	}

	raw, err := s.llm.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Error().Err(err).Str("patient_id", patientID.String()).Msg("summary model call failed")
		return nil, fmt.Errorf("model call: %w", err)
	}

	data, err := parseModelResponse(raw)
	if err != nil {
		log.Error().Str("patient_id", patientID.String()).Msg("summary model returned non-JSON output")
		return nil, err
	}

	mergeAdherence(data, agg.Adherence)
	return data, nil
}
