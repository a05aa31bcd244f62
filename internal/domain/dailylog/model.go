package dailylog

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// DailyLog is one caregiver-recorded observation day for a patient. At most
// one row exists per (patient, date); repeated submissions replace the row.
type DailyLog struct {
	ID                    uuid.UUID              `db:"id" json:"id"`
	PatientID             uuid.UUID              `db:"patient_id" json:"patient_id"`
	LoggedBy              uuid.UUID              `db:"logged_by" json:"logged_by"`
	LogDate               time.Time              `db:"log_date" json:"log_date"`
	MedicationsTaken      []MedicationTaken      `db:"medications_taken" json:"medications_taken"`
	Symptoms              []Symptom              `db:"symptoms" json:"symptoms"`
	MedicationSideEffects []MedicationSideEffect `db:"medication_side_effects" json:"medication_side_effects"`
	SleepHours            *float64               `db:"sleep_hours" json:"sleep_hours"`
	MoodScore             *int                   `db:"mood_score" json:"mood_score"`
	WaterIntakeOz         *float64               `db:"water_intake_oz" json:"water_intake_oz"`
	Activities            []Activity             `db:"activities" json:"activities"`
	Lifestyle             Lifestyle              `db:"lifestyle" json:"lifestyle"`
	Notes                 *string                `db:"notes" json:"notes,omitempty"`
	CreatedAt             time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time              `db:"updated_at" json:"updated_at"`
}

// MedicationTaken records whether one medication was taken that day. The
// medication reference is not enforced by the database; downstream consumers
// must tolerate IDs that no longer resolve.
type MedicationTaken struct {
	MedicationID uuid.UUID `json:"medication_id"`
	Taken        bool      `json:"taken"`
	TimeTaken    *string   `json:"time_taken,omitempty"`
}

// Symptom is an observed symptom with severity on a 1-10 scale.
type Symptom struct {
	Name     string `json:"name"`
	Severity int    `json:"severity"`
}

// SideEffect is one observed side effect, same 1-10 severity scale.
type SideEffect struct {
	Name     string `json:"name"`
	Severity int    `json:"severity"`
}

// MedicationSideEffect groups observed side effects under the medication
// suspected of causing them. MedicationName is denormalized at log time so the
// record stays readable if the medication is later renamed or deactivated.
type MedicationSideEffect struct {
	MedicationID   uuid.UUID    `json:"medication_id"`
	MedicationName string       `json:"medication_name"`
	SideEffects    []SideEffect `json:"side_effects"`
}

// Activity is one activity session during the day.
type Activity struct {
	Type            string `json:"type"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}

// Lifestyle holds the day's boolean lifestyle factors.
type Lifestyle struct {
	Smoked   bool `json:"smoked"`
	Alcohol  bool `json:"alcohol"`
	Stressed bool `json:"stressed"`
	AteWell  bool `json:"ate_well"`
}

// UpsertRequest is the payload for POST /logs. LogDate defaults to today when
// empty.
type UpsertRequest struct {
	PatientID             uuid.UUID              `json:"patient_id"`
	LogDate               string                 `json:"log_date"`
	MedicationsTaken      []MedicationTaken      `json:"medications_taken"`
	Symptoms              []Symptom              `json:"symptoms"`
	MedicationSideEffects []MedicationSideEffect `json:"medication_side_effects"`
	SleepHours            *float64               `json:"sleep_hours"`
	MoodScore             *int                   `json:"mood_score"`
	WaterIntakeOz         *float64               `json:"water_intake_oz"`
	Activities            []Activity             `json:"activities"`
	Lifestyle             Lifestyle              `json:"lifestyle"`
	Notes                 *string                `json:"notes"`
}

var validActivityTypes = map[string]bool{
	"music": true, "art": true, "journaling": true,
	"brain_stimulating": true, "exercise": true, "outside": true, "other": true,
}

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Validate checks the payload's field constraints.
func (r *UpsertRequest) Validate() error {
	if r.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	for _, mt := range r.MedicationsTaken {
		if mt.TimeTaken != nil && !timeOfDayPattern.MatchString(*mt.TimeTaken) {
			return fmt.Errorf("time_taken %q must be HH:MM", *mt.TimeTaken)
		}
	}
	for _, s := range r.Symptoms {
		if s.Name == "" {
			return fmt.Errorf("symptom name is required")
		}
		if s.Severity < 1 || s.Severity > 10 {
			return fmt.Errorf("symptom severity must be between 1 and 10")
		}
	}
	for _, se := range r.MedicationSideEffects {
		for _, e := range se.SideEffects {
			if e.Severity < 1 || e.Severity > 10 {
				return fmt.Errorf("side effect severity must be between 1 and 10")
			}
		}
	}
	for _, a := range r.Activities {
		if !validActivityTypes[a.Type] {
			return fmt.Errorf("invalid activity type: %s", a.Type)
		}
		if a.DurationMinutes != nil && *a.DurationMinutes < 0 {
			return fmt.Errorf("activity duration cannot be negative")
		}
	}
	if r.SleepHours != nil && *r.SleepHours < 0 {
		return fmt.Errorf("sleep_hours cannot be negative")
	}
	if r.WaterIntakeOz != nil && *r.WaterIntakeOz < 0 {
		return fmt.Errorf("water_intake_oz cannot be negative")
	}
	return nil
}
