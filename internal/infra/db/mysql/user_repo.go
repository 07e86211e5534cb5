package mysql

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/farhanmaulana/clinicdesk/internal/domain/users"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByCredentials looks up a user by the exact username/password pair.
func (r *UserRepository) GetByCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	const q = `
SELECT id, username, password, role
FROM users
WHERE username=? AND password=? LIMIT 1;
`
	var u domain.User
	if err := r.db.QueryRowContext(ctx, q, username, password).Scan(
		&u.ID, &u.Username, &u.Password, &u.Role,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return &u, nil
}
