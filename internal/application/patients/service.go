package patients

import (
	"context"
	"fmt"

	"github.com/farhanmaulana/clinicdesk/internal/application"
	domain "github.com/farhanmaulana/clinicdesk/internal/domain/patients"
)

// Service implements use-cases for Patient
type Service struct {
	Repo  domain.Repository
	Clock application.Clock
}

type CreatePatientCommand struct {
	Name   string
	Age    int
	Gender string
}

func (s *Service) Create(ctx context.Context, cmd CreatePatientCommand) (*domain.Patient, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Age <= 0 {
		return nil, fmt.Errorf("age must be positive")
	}
	gender := domain.Gender(cmd.Gender)
	if gender == "" {
		gender = domain.GenderMale
	}

	p := &domain.Patient{
		Name:      cmd.Name,
		Age:       cmd.Age,
		Gender:    gender,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Patient, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Patient, error) {
	return s.Repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}
