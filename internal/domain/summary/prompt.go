package summary

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/carelog/carelog/internal/domain/dailylog"
	"github.com/carelog/carelog/internal/domain/patients"
)

const systemPrompt = "You are a clinical documentation assistant helping caregivers communicate patient health data to doctors. " +
	"You receive structured daily health logs from a caregiver and produce a clear, concise, doctor-ready summary. " +
	"Write in plain clinical language. Be specific with numbers and patterns. " +
	"Highlight correlations between medication adherence, activity, and symptom changes. " +
	"Flag anything that warrants the doctor's attention. " +
	"Do not speculate beyond what the data shows. " +
	"Return ONLY valid JSON - no markdown fences, no extra text."

// logEntry is the raw-data view of one log embedded in the prompt.
type logEntry struct {
	Date                  string                          `json:"date"`
	Mood                  *int                            `json:"mood"`
	SleepHours            *float64                        `json:"sleep_hours"`
	WaterOz               *float64                        `json:"water_oz"`
	Symptoms              []dailylog.Symptom              `json:"symptoms"`
	Activities            []dailylog.Activity             `json:"activities"`
	Lifestyle             dailylog.Lifestyle              `json:"lifestyle"`
	MedicationsTaken      []dailylog.MedicationTaken      `json:"medications_taken"`
	MedicationSideEffects []dailylog.MedicationSideEffect `json:"medication_side_effects"`
	Notes                 *string                         `json:"notes"`
}

// buildUserPrompt composes the analysis prompt. The composition is fully
// deterministic: medications appear in their stored order, maps are rendered
// with sorted keys by encoding/json, and logs are chronological.
func buildUserPrompt(patient *patients.Patient, logs []*dailylog.DailyLog, meds []*patients.Medication, agg *Aggregates) string {
	var medLines []string
	for _, m := range meds {
		a := agg.Adherence[m.ID]
		medLines = append(medLines, fmt.Sprintf("  - %s: %s%% adherence (%d/%d days)",
			a.Name, formatNumber(a.Percentage), a.DaysTaken, a.DaysLogged))
	}
	medListText := strings.Join(medLines, "\n")
	if medListText == "" {
		medListText = "  No medications tracked."
	}

	entries := make([]logEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, logEntry{
			Date:                  l.LogDate.Format("2006-01-02"),
			Mood:                  l.MoodScore,
			SleepHours:            l.SleepHours,
			WaterOz:               l.WaterIntakeOz,
			Symptoms:              l.Symptoms,
			Activities:            l.Activities,
			Lifestyle:             l.Lifestyle,
			MedicationsTaken:      l.MedicationsTaken,
			MedicationSideEffects: l.MedicationSideEffects,
			Notes:                 l.Notes,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here is 30 days of health data for patient %s, diagnosed with %s.\n\n",
		patient.Name, patient.Diagnosis)

	b.WriteString("MEDICATIONS:\n")
	b.WriteString(medListText)
	b.WriteString("\n\n")

	b.WriteString("AGGREGATED STATISTICS:\n")
	fmt.Fprintf(&b, "- Total log entries: %d\n", agg.TotalEntries)
	fmt.Fprintf(&b, "- Average sleep: %s hours/night\n", formatOptional(agg.AvgSleep))
	fmt.Fprintf(&b, "- Average mood score: %s/10\n", formatOptional(agg.AvgMood))
	fmt.Fprintf(&b, "- Average daily water intake: %s oz\n\n", formatOptional(agg.AvgWater))

	b.WriteString("SYMPTOM AVERAGES (1-10 scale):\n")
	b.WriteString(mustIndentJSON(agg.SymptomAverages))
	b.WriteString("\n\n")

	b.WriteString("ACTIVITY FREQUENCY (number of days each activity was logged):\n")
	b.WriteString(mustIndentJSON(agg.ActivityCounts))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "LIFESTYLE FACTOR TOTALS (out of %d logged days):\n", agg.TotalEntries)
	b.WriteString(mustIndentJSON(agg.LifestyleTotals))
	b.WriteString("\n\n")

	b.WriteString("MEDICATION SIDE EFFECT OCCURRENCES (medication -> side effect -> count):\n")
	b.WriteString(mustIndentJSON(agg.SideEffectCounts))
	b.WriteString("\n\n")

	b.WriteString(`KEY PATTERNS TO ANALYZE:
- Identify days where symptoms spiked and what preceded them (missed meds, lifestyle factors, activities)
- Identify activity types that correlate with better mood or lower symptom severity
- Note any concerning water intake or sleep trends
- Flag any persistent or severe medication side effects
- Note missed-dose patterns (day of week, time clusters)

RAW LOG DATA (chronological):
`)
	b.WriteString(mustIndentJSON(entries))
	b.WriteString("\n\n")

	b.WriteString(`Please generate a doctor-ready summary as JSON with exactly these fields:
{
  "executive_summary": "2-3 sentence clinical summary",
  "adherence": [
    {"medication": "name", "percentage": 85.0, "days_taken": 25, "days_logged": 30, "notes": "brief clinical observation"}
  ],
  "patterns": [
    {"finding": "specific pattern description with data", "significance": "clinical relevance"}
  ],
  "lifestyle_notes": [
    "observation string"
  ],
  "discussion_items": [
    "specific item to discuss with doctor"
  ]
}`)

	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return formatNumber(*v)
}

func mustIndentJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// All inputs are plain data types; this cannot fail.
		panic(err)
	}
	return string(data)
}
