package summary

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/carelog/carelog/internal/domain/dailylog"
	"github.com/carelog/carelog/internal/domain/patients"
)

func promptFixture() (*patients.Patient, []*dailylog.DailyLog, []*patients.Medication) {
	patient := &patients.Patient{ID: uuid.New(), Name: "Rose Martin", Diagnosis: "early-stage dementia"}
	med := &patients.Medication{ID: uuid.New(), Name: "Donepezil", Active: true}

	l1, l2, l3 := datedLog(1), datedLog(2), datedLog(3)
	for _, l := range []*dailylog.DailyLog{l1, l2} {
		l.MedicationsTaken = []dailylog.MedicationTaken{{MedicationID: med.ID, Taken: true}}
	}
	l3.MedicationsTaken = []dailylog.MedicationTaken{{MedicationID: med.ID, Taken: false}}
	l1.SleepHours = fptr(7.0)
	l1.Symptoms = []dailylog.Symptom{{Name: "confusion", Severity: 4}}

	return patient, []*dailylog.DailyLog{l1, l2, l3}, []*patients.Medication{med}
}

func TestBuildUserPrompt_Sections(t *testing.T) {
	patient, logs, meds := promptFixture()
	agg := Aggregate(logs, meds)

	prompt := buildUserPrompt(patient, logs, meds, agg)

	for _, want := range []string{
		"Here is 30 days of health data for patient Rose Martin, diagnosed with early-stage dementia.",
		"MEDICATIONS:",
		"  - Donepezil: 66.7% adherence (2/3 days)",
		"- Total log entries: 3",
		"- Average sleep: 7 hours/night",
		"- Average mood score: n/a/10",
		"SYMPTOM AVERAGES (1-10 scale):",
		"ACTIVITY FREQUENCY",
		"LIFESTYLE FACTOR TOTALS (out of 3 logged days):",
		"MEDICATION SIDE EFFECT OCCURRENCES",
		"KEY PATTERNS TO ANALYZE:",
		"RAW LOG DATA (chronological):",
		`"executive_summary"`,
		`"discussion_items"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildUserPrompt_Deterministic(t *testing.T) {
	patient, logs, meds := promptFixture()
	agg := Aggregate(logs, meds)

	first := buildUserPrompt(patient, logs, meds, agg)
	for i := 0; i < 10; i++ {
		if got := buildUserPrompt(patient, logs, meds, Aggregate(logs, meds)); got != first {
			t.Fatal("prompt composition must be deterministic")
		}
	}
}

func TestBuildUserPrompt_NoMedications(t *testing.T) {
	patient, logs, _ := promptFixture()
	agg := Aggregate(logs, nil)

	prompt := buildUserPrompt(patient, logs, nil, agg)
	if !strings.Contains(prompt, "  No medications tracked.") {
		t.Error("expected no-medications placeholder")
	}
}

func TestBuildUserPrompt_ChronologicalRawData(t *testing.T) {
	patient, logs, meds := promptFixture()
	agg := Aggregate(logs, meds)

	prompt := buildUserPrompt(patient, logs, meds, agg)
	first := strings.Index(prompt, `"2026-08-01"`)
	last := strings.Index(prompt, `"2026-08-03"`)
	if first < 0 || last < 0 || first > last {
		t.Errorf("raw log data out of order: first=%d last=%d", first, last)
	}
}
