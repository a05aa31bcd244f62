package summary

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carelog/carelog/internal/domain/dailylog"
	"github.com/carelog/carelog/internal/domain/patients"
)

// -- Mocks --

type mockSources struct {
	patient *patients.Patient
	owner   uuid.UUID
	logs    []*dailylog.DailyLog
	meds    []*patients.Medication
}

func (m *mockSources) GetByID(_ context.Context, caregiverID, patientID uuid.UUID) (*patients.Patient, error) {
	if m.patient == nil || m.patient.ID != patientID || m.owner != caregiverID {
		return nil, patients.ErrNotFound
	}
	return m.patient, nil
}

func (m *mockSources) ListSince(_ context.Context, patientID uuid.UUID, since time.Time, asc bool) ([]*dailylog.DailyLog, error) {
	var out []*dailylog.DailyLog
	for _, l := range m.logs {
		if l.PatientID == patientID && !l.LogDate.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockSources) ListActiveByPatient(_ context.Context, patientID uuid.UUID) ([]*patients.Medication, error) {
	return m.meds, nil
}

type fakeLLM struct {
	response string
	err      error
	calls    int
	lastSys  string
	lastUser string
}

func (f *fakeLLM) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSys = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func fixture() (*mockSources, uuid.UUID, uuid.UUID) {
	caregiverID := uuid.New()
	patientID := uuid.New()
	med := &patients.Medication{ID: uuid.New(), Name: "Donepezil", Active: true}

	now := time.Now().UTC()
	var logs []*dailylog.DailyLog
	for i, taken := range []bool{true, true, false} {
		logs = append(logs, &dailylog.DailyLog{
			ID:               uuid.New(),
			PatientID:        patientID,
			LogDate:          now.AddDate(0, 0, -i-1),
			MedicationsTaken: []dailylog.MedicationTaken{{MedicationID: med.ID, Taken: taken}},
		})
	}

	return &mockSources{
		patient: &patients.Patient{ID: patientID, CaregiverID: caregiverID, Name: "Rose", Diagnosis: "dementia"},
		owner:   caregiverID,
		logs:    logs,
		meds:    []*patients.Medication{med},
	}, caregiverID, patientID
}

// -- Tests --

func TestService_Generate(t *testing.T) {
	src, caregiverID, patientID := fixture()
	client := &fakeLLM{response: "```json\n{\"executive_summary\": \"stable\", \"patterns\": []}\n```"}
	svc := NewService(src, src, src, client)

	data, err := svc.Generate(context.Background(), caregiverID, patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["executive_summary"] != "stable" {
		t.Errorf("model fields missing: %v", data)
	}

	keyed, ok := data["adherence_data"].(map[string]MedicationAdherence)
	if !ok {
		t.Fatalf("adherence_data missing: %T", data["adherence_data"])
	}
	a := keyed[src.meds[0].ID.String()]
	if a.Percentage != 66.7 || a.DaysTaken != 2 || a.DaysLogged != 3 {
		t.Errorf("server-computed adherence wrong: %+v", a)
	}

	if client.calls != 1 {
		t.Errorf("expected exactly one model call, got %d", client.calls)
	}
	if client.lastSys != systemPrompt {
		t.Error("system prompt not passed through")
	}
}

func TestService_Generate_ForeignPatient(t *testing.T) {
	src, _, patientID := fixture()
	client := &fakeLLM{response: "{}"}
	svc := NewService(src, src, src, client)

	_, err := svc.Generate(context.Background(), uuid.New(), patientID)
	if !errors.Is(err, patients.ErrNotFound) {
		t.Fatalf("expected patients.ErrNotFound, got %v", err)
	}
	if client.calls != 0 {
		t.Error("no model call may happen for an unowned patient")
	}
}

func TestService_Generate_EmptyWindow(t *testing.T) {
	src, caregiverID, patientID := fixture()
	src.logs = nil
	client := &fakeLLM{response: "{}"}
	svc := NewService(src, src, src, client)

	_, err := svc.Generate(context.Background(), caregiverID, patientID)
	if !errors.Is(err, ErrNoLogs) {
		t.Fatalf("expected ErrNoLogs, got %v", err)
	}
	if client.calls != 0 {
		t.Error("no model call may happen for an empty window")
	}
}

func TestService_Generate_StaleLogsOnly(t *testing.T) {
	src, caregiverID, patientID := fixture()
	for _, l := range src.logs {
		l.LogDate = time.Now().UTC().AddDate(0, 0, -45)
	}
	svc := NewService(src, src, src, &fakeLLM{response: "{}"})

	_, err := svc.Generate(context.Background(), caregiverID, patientID)
	if !errors.Is(err, ErrNoLogs) {
		t.Fatalf("logs outside the 30-day window must not count, got %v", err)
	}
}

func TestService_Generate_NotConfigured(t *testing.T) {
	src, caregiverID, patientID := fixture()
	svc := NewService(src, src, src, nil)

	_, err := svc.Generate(context.Background(), caregiverID, patientID)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestService_Generate_ModelCallFails(t *testing.T) {
	src, caregiverID, patientID := fixture()
	client := &fakeLLM{err: fmt.Errorf("upstream timeout")}
	svc := NewService(src, src, src, client)

	_, err := svc.Generate(context.Background(), caregiverID, patientID)
	if err == nil {
		t.Fatal("expected error")
	}
	if client.calls != 1 {
		t.Errorf("a failed call must not be retried, got %d calls", client.calls)
	}
}

func TestService_Generate_UnparsableResponse(t *testing.T) {
	src, caregiverID, patientID := fixture()
	client := &fakeLLM{response: "I'm sorry, I cannot produce JSON today."}
	svc := NewService(src, src, src, client)

	_, err := svc.Generate(context.Background(), caregiverID, patientID)
	if !errors.Is(err, ErrBadModelResponse) {
		t.Fatalf("expected ErrBadModelResponse, got %v", err)
	}
}
