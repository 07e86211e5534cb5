package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS users (
  id       BIGSERIAL PRIMARY KEY,
  username VARCHAR(64)  NOT NULL UNIQUE,
  password VARCHAR(128) NOT NULL,
  role     VARCHAR(16)  NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS patients (
  id         BIGSERIAL PRIMARY KEY,
  name       VARCHAR(255) NOT NULL,
  age        INT          NOT NULL,
  gender     VARCHAR(16)  NOT NULL,
  created_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	`CREATE TABLE IF NOT EXISTS prescriptions (
  id          BIGSERIAL PRIMARY KEY,
  patient_id  BIGINT       NOT NULL,
  doctor_name VARCHAR(255) NOT NULL,
  diagnosis   TEXT         NOT NULL,
  medicines   TEXT         NOT NULL,
  notes       TEXT,
  created_at  TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	`CREATE INDEX IF NOT EXISTS idx_prescriptions_patient ON prescriptions (patient_id);`,
	`CREATE TABLE IF NOT EXISTS reports (
  id          BIGSERIAL PRIMARY KEY,
  patient_id  BIGINT       NOT NULL,
  doctor_name VARCHAR(255) NOT NULL,
  title       VARCHAR(255) NOT NULL,
  file_path   VARCHAR(512) NOT NULL,
  created_at  TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	`CREATE INDEX IF NOT EXISTS idx_reports_patient ON reports (patient_id);`,
}

var defaultUsers = [][3]string{
	{"admin", "admin123", "ADMIN"},
	{"doctor", "doctor123", "DOCTOR"},
	{"drsmith", "smith123", "DOCTOR"},
}

// Migrate creates the table set and seeds default users if missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range tables {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	for _, u := range defaultUsers {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO users (username, password, role) VALUES ($1,$2,$3)
			 ON CONFLICT (username) DO NOTHING;`,
			u[0], u[1], u[2],
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}
	return nil
}
