package patients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	patients    PatientRepository
	medications MedicationRepository
}

func NewService(patients PatientRepository, medications MedicationRepository) *Service {
	return &Service{patients: patients, medications: medications}
}

// Create registers a patient under the caregiver, creating any inline
// medications in the same transaction.
func (s *Service) Create(ctx context.Context, caregiverID uuid.UUID, req *CreatePatientRequest) (*Patient, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("patient name is required")
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	meds := make([]*Medication, 0, len(req.Medications))
	for _, in := range req.Medications {
		m, err := medicationFromInput(in)
		if err != nil {
			return nil, err
		}
		meds = append(meds, m)
	}

	p := &Patient{
		CaregiverID: caregiverID,
		Name:        strings.TrimSpace(req.Name),
		DateOfBirth: dob,
		Diagnosis:   req.Diagnosis,
		Notes:       req.Notes,
	}
	if err := s.patients.Create(ctx, p, meds); err != nil {
		return nil, err
	}
	p.Medications = meds
	return p, nil
}

// Get returns an owned patient with its medications.
func (s *Service) Get(ctx context.Context, caregiverID, patientID uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, caregiverID, patientID)
	if err != nil {
		return nil, err
	}
	return s.withMedications(ctx, p)
}

// List returns a page of the caregiver's patients, each with medications.
func (s *Service) List(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	items, total, err := s.patients.List(ctx, caregiverID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range items {
		if _, err := s.withMedications(ctx, p); err != nil {
			return nil, 0, err
		}
	}
	return items, total, nil
}

// Update applies the non-nil fields of the request to an owned patient.
func (s *Service) Update(ctx context.Context, caregiverID, patientID uuid.UUID, req *UpdatePatientRequest) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, caregiverID, patientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("patient name is required")
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		p.DateOfBirth = dob
	}
	if req.Diagnosis != nil {
		p.Diagnosis = *req.Diagnosis
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}

	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.withMedications(ctx, p)
}

// AddMedication attaches a medication to an owned patient.
func (s *Service) AddMedication(ctx context.Context, caregiverID, patientID uuid.UUID, in *MedicationInput) (*Medication, error) {
	if _, err := s.patients.GetByID(ctx, caregiverID, patientID); err != nil {
		return nil, err
	}
	m, err := medicationFromInput(*in)
	if err != nil {
		return nil, err
	}
	m.PatientID = patientID
	if err := s.medications.Add(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMedication applies the non-nil fields of the request to a medication
// whose patient the caregiver owns.
func (s *Service) UpdateMedication(ctx context.Context, caregiverID, medicationID uuid.UUID, req *UpdateMedicationRequest) (*Medication, error) {
	m, err := s.medications.GetOwned(ctx, caregiverID, medicationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("medication name is required")
		}
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.Dose != nil {
		m.Dose = *req.Dose
	}
	if req.Frequency != nil {
		m.Frequency = *req.Frequency
	}
	if req.TimeOfDay != nil {
		m.TimeOfDay = *req.TimeOfDay
	}
	if req.Active != nil {
		m.Active = *req.Active
	}

	if err := s.medications.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeactivateMedication soft-deletes a medication. The row stays so historical
// adherence data keeps resolving.
func (s *Service) DeactivateMedication(ctx context.Context, caregiverID, medicationID uuid.UUID) error {
	m, err := s.medications.GetOwned(ctx, caregiverID, medicationID)
	if err != nil {
		return err
	}
	m.Active = false
	return s.medications.Update(ctx, m)
}

func (s *Service) withMedications(ctx context.Context, p *Patient) (*Patient, error) {
	meds, err := s.medications.ListByPatient(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if meds == nil {
		meds = []*Medication{}
	}
	p.Medications = meds
	return p, nil
}

func medicationFromInput(in MedicationInput) (*Medication, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("medication name is required")
	}
	return &Medication{
		Name:      strings.TrimSpace(in.Name),
		Dose:      in.Dose,
		Frequency: in.Frequency,
		TimeOfDay: in.TimeOfDay,
		Active:    true,
	}, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *s)
	}
	return &t, nil
}
