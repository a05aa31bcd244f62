package accounts

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/carelog/carelog/internal/platform/auth"
)

var (
	// ErrEmailTaken signals a duplicate registration; it maps to a 400 with
	// a specific client-facing message.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is deliberately the same for unknown email and
	// wrong password.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var validRoles = map[string]bool{
	"caregiver": true, "patient": true,
}

type Service struct {
	caregivers CaregiverRepository
}

func NewService(caregivers CaregiverRepository) *Service {
	return &Service{caregivers: caregivers}
}

// Register creates a caregiver account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Caregiver, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	role := req.Role
	if role == "" {
		role = "caregiver"
	}
	if !validRoles[role] {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	if _, err := s.caregivers.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cg := &Caregiver{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
	}
	if err := s.caregivers.Create(ctx, cg); err != nil {
		return nil, err
	}
	return cg, nil
}

// Login verifies credentials and returns the caregiver. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*Caregiver, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	cg, err := s.caregivers.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(cg.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return cg, nil
}

// Get returns a caregiver by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Caregiver, error) {
	return s.caregivers.GetByID(ctx, id)
}
