package dailylog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dailyLogRepoPG struct{ pool *pgxpool.Pool }

func NewDailyLogRepoPG(pool *pgxpool.Pool) DailyLogRepository {
	return &dailyLogRepoPG{pool: pool}
}

const logCols = `id, patient_id, logged_by, log_date, medications_taken, symptoms,
	medication_side_effects, sleep_hours, mood_score, water_intake_oz,
	activities, lifestyle, notes, created_at, updated_at`

func (r *dailyLogRepoPG) scan(row pgx.Row) (*DailyLog, error) {
	var l DailyLog
	err := row.Scan(&l.ID, &l.PatientID, &l.LoggedBy, &l.LogDate,
		&l.MedicationsTaken, &l.Symptoms, &l.MedicationSideEffects,
		&l.SleepHours, &l.MoodScore, &l.WaterIntakeOz,
		&l.Activities, &l.Lifestyle, &l.Notes, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *dailyLogRepoPG) Upsert(ctx context.Context, l *DailyLog) error {
	l.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO daily_log (id, patient_id, logged_by, log_date, medications_taken,
			symptoms, medication_side_effects, sleep_hours, mood_score,
			water_intake_oz, activities, lifestyle, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (patient_id, log_date) DO UPDATE SET
			logged_by = EXCLUDED.logged_by,
			medications_taken = EXCLUDED.medications_taken,
			symptoms = EXCLUDED.symptoms,
			medication_side_effects = EXCLUDED.medication_side_effects,
			sleep_hours = EXCLUDED.sleep_hours,
			mood_score = EXCLUDED.mood_score,
			water_intake_oz = EXCLUDED.water_intake_oz,
			activities = EXCLUDED.activities,
			lifestyle = EXCLUDED.lifestyle,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		l.ID, l.PatientID, l.LoggedBy, l.LogDate, l.MedicationsTaken,
		l.Symptoms, l.MedicationSideEffects, l.SleepHours, l.MoodScore,
		l.WaterIntakeOz, l.Activities, l.Lifestyle, l.Notes).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (r *dailyLogRepoPG) ListSince(ctx context.Context, patientID uuid.UUID, since time.Time, asc bool) ([]*DailyLog, error) {
	order := "DESC"
	if asc {
		order = "ASC"
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+logCols+` FROM daily_log
		 WHERE patient_id = $1 AND log_date >= $2
		 ORDER BY log_date `+order,
		patientID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DailyLog
	for rows.Next() {
		l, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, nil
}

func (r *dailyLogRepoPG) GetByDate(ctx context.Context, patientID uuid.UUID, date time.Time) (*DailyLog, error) {
	return r.scan(r.pool.QueryRow(ctx,
		`SELECT `+logCols+` FROM daily_log WHERE patient_id = $1 AND log_date = $2`,
		patientID, date))
}
