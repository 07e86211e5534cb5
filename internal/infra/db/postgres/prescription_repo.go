package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/farhanmaulana/clinicdesk/internal/domain/prescriptions"
)

type PrescriptionRepository struct{ db *sql.DB }

func NewPrescriptionRepository(db *sql.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

func (r *PrescriptionRepository) Create(ctx context.Context, p *domain.Prescription) error {
	const q = `
INSERT INTO prescriptions (patient_id, doctor_name, diagnosis, medicines, notes, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id;`
	medicines, err := json.Marshal(p.Medicines)
	if err != nil {
		return fmt.Errorf("marshal medicines: %w", err)
	}
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	if err := r.db.QueryRowContext(ctx, q,
		p.PatientID, p.DoctorName, p.Diagnosis, medicines, p.Notes, created,
	).Scan(&p.ID); err != nil {
		return err
	}
	p.CreatedAt = created
	return nil
}

func (r *PrescriptionRepository) Get(ctx context.Context, id int64) (*domain.Prescription, error) {
	const q = `
SELECT id, patient_id, doctor_name, diagnosis, medicines, notes, created_at
FROM prescriptions
WHERE id=$1 LIMIT 1;`
	return scanPrescription(r.db.QueryRowContext(ctx, q, id))
}

func (r *PrescriptionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*domain.Prescription, error) {
	const q = `
SELECT id, patient_id, doctor_name, diagnosis, medicines, notes, created_at
FROM prescriptions
WHERE patient_id=$1 ORDER BY created_at DESC;`
	rows, err := r.db.QueryContext(ctx, q, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrescription(row rowScanner) (*domain.Prescription, error) {
	var p domain.Prescription
	var medicines []byte
	var notes sql.NullString
	if err := row.Scan(
		&p.ID, &p.PatientID, &p.DoctorName, &p.Diagnosis, &medicines, &notes, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(medicines, &p.Medicines); err != nil {
		return nil, fmt.Errorf("unmarshal medicines: %w", err)
	}
	p.Notes = notes.String
	return &p, nil
}
