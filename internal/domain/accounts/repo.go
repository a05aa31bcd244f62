package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when no caregiver matches.
var ErrNotFound = errors.New("caregiver not found")

type CaregiverRepository interface {
	Create(ctx context.Context, cg *Caregiver) error
	GetByEmail(ctx context.Context, email string) (*Caregiver, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Caregiver, error)
}
