package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/farhanmaulana/clinicdesk/internal/domain/patients"
)

type PatientRepository struct {
	db *sql.DB
}

func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// Create inserts the patient and fills in the assigned ID
func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) error {
	const q = `
INSERT INTO patients (name, age, gender, created_at)
VALUES (?,?,?,?);
`
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Age, string(p.Gender), created)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	p.CreatedAt = created
	return nil
}

func (r *PatientRepository) Get(ctx context.Context, id int64) (*domain.Patient, error) {
	const q = `
SELECT id, name, age, gender, created_at
FROM patients
WHERE id=? LIMIT 1;
`
	var p domain.Patient
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Age, &p.Gender, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// List newest first, matching the UI's patient table ordering
func (r *PatientRepository) List(ctx context.Context) ([]*domain.Patient, error) {
	const q = `
SELECT id, name, age, gender, created_at
FROM patients
ORDER BY id DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Patient
	for rows.Next() {
		var p domain.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PatientRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id=?;`, id)
	return err
}
