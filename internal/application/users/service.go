package users

import (
	"context"

	domain "github.com/farhanmaulana/clinicdesk/internal/domain/users"
)

// Service implements the login use-case
type Service struct {
	Repo domain.Repository
}

func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return s.Repo.GetByCredentials(ctx, username, password)
}
