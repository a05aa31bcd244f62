package summary

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carelog/carelog/internal/domain/dailylog"
	"github.com/carelog/carelog/internal/domain/patients"
)

func datedLog(day int) *dailylog.DailyLog {
	return &dailylog.DailyLog{
		ID:        uuid.New(),
		LogDate:   time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC),
		Lifestyle: dailylog.Lifestyle{},
	}
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestAggregate_Adherence(t *testing.T) {
	med := &patients.Medication{ID: uuid.New(), Name: "Donepezil", Active: true}

	taken := func(day int, wasTaken bool) *dailylog.DailyLog {
		l := datedLog(day)
		l.MedicationsTaken = []dailylog.MedicationTaken{{MedicationID: med.ID, Taken: wasTaken}}
		return l
	}

	// 2 of 3 logged days taken.
	agg := Aggregate([]*dailylog.DailyLog{taken(1, true), taken(2, false), taken(3, true)},
		[]*patients.Medication{med})

	a := agg.Adherence[med.ID]
	if a.DaysLogged != 3 || a.DaysTaken != 2 {
		t.Fatalf("expected 2/3, got %d/%d", a.DaysTaken, a.DaysLogged)
	}
	if a.Percentage != 66.7 {
		t.Errorf("expected 66.7, got %v", a.Percentage)
	}
	if a.Name != "Donepezil" {
		t.Errorf("unexpected name %s", a.Name)
	}
}

func TestAggregate_Adherence_NeverLogged(t *testing.T) {
	med := &patients.Medication{ID: uuid.New(), Name: "Memantine", Active: true}

	agg := Aggregate([]*dailylog.DailyLog{datedLog(1)}, []*patients.Medication{med})

	a := agg.Adherence[med.ID]
	if a.Percentage != 0 || a.DaysTaken != 0 || a.DaysLogged != 0 {
		t.Errorf("medication with no mentions must report zeros, got %+v", a)
	}
}

func TestAggregate_Adherence_DanglingReference(t *testing.T) {
	med := &patients.Medication{ID: uuid.New(), Name: "Donepezil", Active: true}

	l := datedLog(1)
	l.MedicationsTaken = []dailylog.MedicationTaken{
		{MedicationID: med.ID, Taken: true},
		{MedicationID: uuid.New(), Taken: true}, // removed medication
	}

	agg := Aggregate([]*dailylog.DailyLog{l}, []*patients.Medication{med})

	if len(agg.Adherence) != 1 {
		t.Fatalf("only active medications may appear, got %d entries", len(agg.Adherence))
	}
	a := agg.Adherence[med.ID]
	if a.DaysTaken != 1 || a.DaysLogged != 1 {
		t.Errorf("dangling reference leaked into counts: %+v", a)
	}
}

func TestAggregate_ScalarAverages(t *testing.T) {
	l1, l2, l3 := datedLog(1), datedLog(2), datedLog(3)
	l1.SleepHours = fptr(6.5)
	l2.SleepHours = fptr(8.0)
	l1.MoodScore = iptr(4)
	l2.MoodScore = iptr(7)
	l3.MoodScore = iptr(6)

	agg := Aggregate([]*dailylog.DailyLog{l1, l2, l3}, nil)

	if agg.AvgSleep == nil || *agg.AvgSleep != 7.3 {
		t.Errorf("expected avg sleep 7.3 over the two reporting days, got %v", agg.AvgSleep)
	}
	if agg.AvgMood == nil || *agg.AvgMood != 5.7 {
		t.Errorf("expected avg mood 5.7, got %v", agg.AvgMood)
	}
	if agg.AvgWater != nil {
		t.Errorf("no water data anywhere must yield nil, got %v", *agg.AvgWater)
	}
}

func TestAggregate_SymptomStats(t *testing.T) {
	l1, l2 := datedLog(1), datedLog(2)
	l1.Symptoms = []dailylog.Symptom{{Name: "confusion", Severity: 3}, {Name: "agitation", Severity: 8}}
	l2.Symptoms = []dailylog.Symptom{{Name: "confusion", Severity: 6}}

	agg := Aggregate([]*dailylog.DailyLog{l1, l2}, nil)

	c := agg.SymptomAverages["confusion"]
	if c.Average != 4.5 || c.Max != 6 || c.Entries != 2 {
		t.Errorf("confusion stats wrong: %+v", c)
	}
	a := agg.SymptomAverages["agitation"]
	if a.Average != 8 || a.Max != 8 || a.Entries != 1 {
		t.Errorf("agitation stats wrong: %+v", a)
	}
}

func TestAggregate_ActivityCounts_NoDedup(t *testing.T) {
	l := datedLog(1)
	// Two walks in one day count twice.
	l.Activities = []dailylog.Activity{{Type: "outside"}, {Type: "outside"}, {Type: "music"}}

	agg := Aggregate([]*dailylog.DailyLog{l}, nil)

	if agg.ActivityCounts["outside"] != 2 {
		t.Errorf("expected outside=2, got %d", agg.ActivityCounts["outside"])
	}
	if agg.ActivityCounts["music"] != 1 {
		t.Errorf("expected music=1, got %d", agg.ActivityCounts["music"])
	}
}

func TestAggregate_SideEffectCounts(t *testing.T) {
	l1, l2 := datedLog(1), datedLog(2)
	l1.MedicationSideEffects = []dailylog.MedicationSideEffect{{
		MedicationID:   uuid.New(),
		MedicationName: "Donepezil",
		SideEffects:    []dailylog.SideEffect{{Name: "nausea", Severity: 3}},
	}}
	l2.MedicationSideEffects = []dailylog.MedicationSideEffect{{
		MedicationID:   uuid.New(),
		MedicationName: "Donepezil",
		SideEffects:    []dailylog.SideEffect{{Name: "nausea", Severity: 5}, {Name: "dizziness", Severity: 2}},
	}}

	agg := Aggregate([]*dailylog.DailyLog{l1, l2}, nil)

	if agg.SideEffectCounts["Donepezil"]["nausea"] != 2 {
		t.Errorf("expected nausea=2, got %d", agg.SideEffectCounts["Donepezil"]["nausea"])
	}
	if agg.SideEffectCounts["Donepezil"]["dizziness"] != 1 {
		t.Errorf("expected dizziness=1, got %d", agg.SideEffectCounts["Donepezil"]["dizziness"])
	}
}

func TestAggregate_LifestyleTotals(t *testing.T) {
	l1, l2 := datedLog(1), datedLog(2)
	l1.Lifestyle = dailylog.Lifestyle{Stressed: true, AteWell: true}
	l2.Lifestyle = dailylog.Lifestyle{Stressed: true}

	agg := Aggregate([]*dailylog.DailyLog{l1, l2}, nil)

	if agg.LifestyleTotals["stressed"] != 2 {
		t.Errorf("expected stressed=2, got %d", agg.LifestyleTotals["stressed"])
	}
	if agg.LifestyleTotals["ate_well"] != 1 {
		t.Errorf("expected ate_well=1, got %d", agg.LifestyleTotals["ate_well"])
	}
	if _, ok := agg.LifestyleTotals["smoked"]; ok {
		t.Error("flags never set must not appear in totals")
	}
}

func TestRound1(t *testing.T) {
	cases := map[float64]float64{
		66.66666: 66.7,
		100.0:    100.0,
		0.05:     0.1,
		7.25:     7.3,
	}
	for in, want := range cases {
		if got := round1(in); got != want {
			t.Errorf("round1(%v) = %v, want %v", in, got, want)
		}
	}
}
