package prescriptions

import (
	"time"
)

// Aggregate Root: Prescription
// Medicines hold free-text lines like "Metformin 500mg – twice daily after meals"
// and are persisted as a JSON array.
type Prescription struct {
	ID         int64     `json:"id"`
	PatientID  int64     `json:"patient_id"`
	DoctorName string    `json:"doctor_name"`
	Diagnosis  string    `json:"diagnosis"`
	Medicines  []string  `json:"medicines"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}
