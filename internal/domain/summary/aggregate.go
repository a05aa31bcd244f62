package summary

import (
	"math"

	"github.com/google/uuid"

	"github.com/carelog/carelog/internal/domain/dailylog"
	"github.com/carelog/carelog/internal/domain/patients"
)

// MedicationAdherence is the server-computed adherence figure for one active
// medication over the analysis window.
type MedicationAdherence struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	DaysTaken  int     `json:"days_taken"`
	DaysLogged int     `json:"days_logged"`
}

// SymptomStats aggregates one symptom's severities across the window.
type SymptomStats struct {
	Average float64 `json:"average"`
	Max     int     `json:"max"`
	Entries int     `json:"entries"`
}

// Aggregates is everything computed from a window of logs. All derivation is
// pure and deterministic; the same logs and medications always produce the
// same result.
type Aggregates struct {
	Adherence        map[uuid.UUID]MedicationAdherence
	TotalEntries     int
	AvgSleep         *float64
	AvgMood          *float64
	AvgWater         *float64
	SymptomAverages  map[string]SymptomStats
	ActivityCounts   map[string]int
	LifestyleTotals  map[string]int
	SideEffectCounts map[string]map[string]int
}

// Aggregate derives the window statistics from logs and the patient's active
// medications.
//
// Adherence counts, per medication, the logs carrying any medications_taken
// entry for it (days_logged) and how many of those were taken (days_taken).
// A medication never mentioned in the window keeps percentage 0 rather than
// dividing by zero. Entries referencing an ID outside the active set are
// ignored; log data is not FK-checked and may mention medications that were
// since removed.
func Aggregate(logs []*dailylog.DailyLog, meds []*patients.Medication) *Aggregates {
	agg := &Aggregates{
		Adherence:        make(map[uuid.UUID]MedicationAdherence, len(meds)),
		TotalEntries:     len(logs),
		SymptomAverages:  make(map[string]SymptomStats),
		ActivityCounts:   make(map[string]int),
		LifestyleTotals:  make(map[string]int),
		SideEffectCounts: make(map[string]map[string]int),
	}

	type medCount struct {
		taken  int
		logged int
	}
	medCounts := make(map[uuid.UUID]*medCount, len(meds))
	for _, m := range meds {
		medCounts[m.ID] = &medCount{}
	}

	var sleepVals, moodVals, waterVals []float64
	symptomSeverities := make(map[string][]int)

	for _, l := range logs {
		for _, entry := range l.MedicationsTaken {
			mc, ok := medCounts[entry.MedicationID]
			if !ok {
				continue
			}
			mc.logged++
			if entry.Taken {
				mc.taken++
			}
		}

		if l.SleepHours != nil {
			sleepVals = append(sleepVals, *l.SleepHours)
		}
		if l.MoodScore != nil {
			moodVals = append(moodVals, float64(*l.MoodScore))
		}
		if l.WaterIntakeOz != nil {
			waterVals = append(waterVals, *l.WaterIntakeOz)
		}

		for _, s := range l.Symptoms {
			symptomSeverities[s.Name] = append(symptomSeverities[s.Name], s.Severity)
		}

		for _, a := range l.Activities {
			agg.ActivityCounts[a.Type]++
		}

		for _, mse := range l.MedicationSideEffects {
			for _, se := range mse.SideEffects {
				if agg.SideEffectCounts[mse.MedicationName] == nil {
					agg.SideEffectCounts[mse.MedicationName] = make(map[string]int)
				}
				agg.SideEffectCounts[mse.MedicationName][se.Name]++
			}
		}

		if l.Lifestyle.Smoked {
			agg.LifestyleTotals["smoked"]++
		}
		if l.Lifestyle.Alcohol {
			agg.LifestyleTotals["alcohol"]++
		}
		if l.Lifestyle.Stressed {
			agg.LifestyleTotals["stressed"]++
		}
		if l.Lifestyle.AteWell {
			agg.LifestyleTotals["ate_well"]++
		}
	}

	for _, m := range meds {
		mc := medCounts[m.ID]
		a := MedicationAdherence{
			Name:       m.Name,
			DaysTaken:  mc.taken,
			DaysLogged: mc.logged,
		}
		if mc.logged > 0 {
			a.Percentage = round1(float64(mc.taken) / float64(mc.logged) * 100)
		}
		agg.Adherence[m.ID] = a
	}

	agg.AvgSleep = avg1(sleepVals)
	agg.AvgMood = avg1(moodVals)
	agg.AvgWater = avg1(waterVals)

	for name, severities := range symptomSeverities {
		sum, max := 0, severities[0]
		for _, v := range severities {
			sum += v
			if v > max {
				max = v
			}
		}
		agg.SymptomAverages[name] = SymptomStats{
			Average: round1(float64(sum) / float64(len(severities))),
			Max:     max,
			Entries: len(severities),
		}
	}

	return agg
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// avg1 averages to 1 decimal, or nil when no log supplied the field. An empty
// set is reported as missing, never as zero.
func avg1(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	m := round1(sum / float64(len(vals)))
	return &m
}
