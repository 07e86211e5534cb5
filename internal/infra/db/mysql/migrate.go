package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS users (
  id       BIGINT AUTO_INCREMENT PRIMARY KEY,
  username VARCHAR(64)  NOT NULL UNIQUE,
  password VARCHAR(128) NOT NULL,
  role     VARCHAR(16)  NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS patients (
  id         BIGINT AUTO_INCREMENT PRIMARY KEY,
  name       VARCHAR(255) NOT NULL,
  age        INT          NOT NULL,
  gender     VARCHAR(16)  NOT NULL,
  created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	`CREATE TABLE IF NOT EXISTS prescriptions (
  id          BIGINT AUTO_INCREMENT PRIMARY KEY,
  patient_id  BIGINT       NOT NULL,
  doctor_name VARCHAR(255) NOT NULL,
  diagnosis   TEXT         NOT NULL,
  medicines   TEXT         NOT NULL,
  notes       TEXT,
  created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
  KEY idx_prescriptions_patient (patient_id)
);`,
	`CREATE TABLE IF NOT EXISTS reports (
  id          BIGINT AUTO_INCREMENT PRIMARY KEY,
  patient_id  BIGINT       NOT NULL,
  doctor_name VARCHAR(255) NOT NULL,
  title       VARCHAR(255) NOT NULL,
  file_path   VARCHAR(512) NOT NULL,
  created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
  KEY idx_reports_patient (patient_id)
);`,
}

// Demo credentials; plain text on purpose, same as the deployment this
// replaces.
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
			`INSERT IGNORE INTO users (username, password, role) VALUES (?,?,?)`,
			u[0], u[1], u[2],
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}
	return nil
}
