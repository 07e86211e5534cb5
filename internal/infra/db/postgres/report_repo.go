package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/farhanmaulana/clinicdesk/internal/domain/reports"
)

type ReportRepository struct{ db *sql.DB }

func NewReportRepository(db *sql.DB) *ReportRepository { return &ReportRepository{db: db} }

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO reports (patient_id, doctor_name, title, file_path, created_at)
VALUES ($1,$2,$3,$4,$5)
RETURNING id;`
	created := rep.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	if err := r.db.QueryRowContext(ctx, q,
		rep.PatientID, rep.DoctorName, rep.Title, rep.StoredFilename, created,
	).Scan(&rep.ID); err != nil {
		return err
	}
	rep.CreatedAt = created
	return nil
}

func (r *ReportRepository) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	const q = `
SELECT id, patient_id, doctor_name, title, file_path, created_at
FROM reports
WHERE id=$1 LIMIT 1;`
	var rep domain.Report
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rep.ID, &rep.PatientID, &rep.DoctorName, &rep.Title, &rep.StoredFilename, &rep.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) ListByPatient(ctx context.Context, patientID int64) ([]*domain.Report, error) {
	const q = `
SELECT id, patient_id, doctor_name, title, file_path, created_at
FROM reports
WHERE patient_id=$1 ORDER BY created_at DESC;`
	rows, err := r.db.QueryContext(ctx, q, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(
			&rep.ID, &rep.PatientID, &rep.DoctorName, &rep.Title, &rep.StoredFilename, &rep.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}
