package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type caregiverRepoPG struct{ pool *pgxpool.Pool }

func NewCaregiverRepoPG(pool *pgxpool.Pool) CaregiverRepository {
	return &caregiverRepoPG{pool: pool}
}

const caregiverCols = `id, email, password_hash, name, role, created_at`

func (r *caregiverRepoPG) scan(row pgx.Row) (*Caregiver, error) {
	var cg Caregiver
	err := row.Scan(&cg.ID, &cg.Email, &cg.PasswordHash, &cg.Name, &cg.Role, &cg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cg, nil
}

func (r *caregiverRepoPG) Create(ctx context.Context, cg *Caregiver) error {
	cg.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO caregiver (id, email, password_hash, name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		cg.ID, cg.Email, cg.PasswordHash, cg.Name, cg.Role).Scan(&cg.CreatedAt)
}

func (r *caregiverRepoPG) GetByEmail(ctx context.Context, email string) (*Caregiver, error) {
	return r.scan(r.pool.QueryRow(ctx,
		`SELECT `+caregiverCols+` FROM caregiver WHERE email = $1`, email))
}

func (r *caregiverRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Caregiver, error) {
	return r.scan(r.pool.QueryRow(ctx,
		`SELECT `+caregiverCols+` FROM caregiver WHERE id = $1`, id))
}
