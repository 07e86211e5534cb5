package prescriptions

import (
	"context"
	"fmt"

	"github.com/farhanmaulana/clinicdesk/internal/application"
	domain "github.com/farhanmaulana/clinicdesk/internal/domain/prescriptions"
)

// Service implements use-cases for Prescription
type Service struct {
	Repo  domain.Repository
	Clock application.Clock
}

type CreatePrescriptionCommand struct {
	PatientID  int64
	DoctorName string
	Diagnosis  string
	Medicines  []string
	Notes      string
}

func (s *Service) Create(ctx context.Context, cmd CreatePrescriptionCommand) (*domain.Prescription, error) {
	if cmd.PatientID <= 0 {
		return nil, fmt.Errorf("patient_id is required")
	}
	if cmd.DoctorName == "" {
		return nil, fmt.Errorf("doctor_name is required")
	}
	if cmd.Diagnosis == "" {
		return nil, fmt.Errorf("diagnosis is required")
	}
	medicines := cmd.Medicines
	if medicines == nil {
		medicines = []string{}
	}

	p := &domain.Prescription{
		PatientID:  cmd.PatientID,
		DoctorName: cmd.DoctorName,
		Diagnosis:  cmd.Diagnosis,
		Medicines:  medicines,
		Notes:      cmd.Notes,
		CreatedAt:  s.Clock.Now(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Prescription, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*domain.Prescription, error) {
	return s.Repo.ListByPatient(ctx, patientID)
}
