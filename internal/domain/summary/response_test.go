package summary

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestParseModelResponse_Plain(t *testing.T) {
	data, err := parseModelResponse(`{"executive_summary": "stable week"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["executive_summary"] != "stable week" {
		t.Errorf("unexpected payload: %v", data)
	}
}

func TestParseModelResponse_Fenced(t *testing.T) {
	raw := "```\n{\"executive_summary\": \"stable week\"}\n```"
	data, err := parseModelResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["executive_summary"] != "stable week" {
		t.Errorf("unexpected payload: %v", data)
	}
}

func TestParseModelResponse_FencedWithLanguageTag(t *testing.T) {
	raw := "```json\n{\"executive_summary\": \"stable week\"}\n```"
	data, err := parseModelResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["executive_summary"] != "stable week" {
		t.Errorf("unexpected payload: %v", data)
	}
}

func TestParseModelResponse_OpeningFenceOnly(t *testing.T) {
	raw := "```json\n{\"executive_summary\": \"stable week\"}"
	data, err := parseModelResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["executive_summary"] != "stable week" {
		t.Errorf("unexpected payload: %v", data)
	}
}

func TestParseModelResponse_NotJSON(t *testing.T) {
	for _, raw := range []string{
		"The patient is doing well overall.",
		"```\nnot json either\n```",
		"",
	} {
		if _, err := parseModelResponse(raw); !errors.Is(err, ErrBadModelResponse) {
			t.Errorf("%q: expected ErrBadModelResponse, got %v", raw, err)
		}
	}
}

func TestMergeAdherence(t *testing.T) {
	medID := uuid.New()
	data := map[string]interface{}{"executive_summary": "stable week"}

	mergeAdherence(data, map[uuid.UUID]MedicationAdherence{
		medID: {Name: "Donepezil", Percentage: 66.7, DaysTaken: 2, DaysLogged: 3},
	})

	keyed, ok := data["adherence_data"].(map[string]MedicationAdherence)
	if !ok {
		t.Fatalf("adherence_data missing or wrong type: %T", data["adherence_data"])
	}
	a, ok := keyed[medID.String()]
	if !ok {
		t.Fatal("adherence_data must be keyed by medication ID string")
	}
	if a.Percentage != 66.7 {
		t.Errorf("unexpected figures: %+v", a)
	}
	if data["executive_summary"] != "stable week" {
		t.Error("model fields must survive the merge")
	}
}
