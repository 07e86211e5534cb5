package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/farhanmaulana/clinicdesk/internal/domain/patients"
	"github.com/farhanmaulana/clinicdesk/internal/domain/prescriptions"
)

func TestPrescriptionRendersPDF(t *testing.T) {
	p := &prescriptions.Prescription{
		ID:         3,
		PatientID:  1,
		DoctorName: "Dr. Anjali Rao",
		Diagnosis:  "Type 2 Diabetes Mellitus",
		Medicines:  []string{"Metformin 500mg - twice daily", "Aspirin 75mg - once daily"},
		Notes:      "Follow-up in 4 weeks.",
		CreatedAt:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	patient := &patients.Patient{ID: 1, Name: "Aarav Mehta", Age: 45, Gender: patients.GenderMale}

	data, err := NewExporter().Prescription(p, patient)
	if err != nil {
		t.Fatalf("Prescription: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header")
	}
}

func TestPrescriptionOmitsEmptyNotes(t *testing.T) {
	p := &prescriptions.Prescription{
		ID:         4,
		PatientID:  1,
		DoctorName: "Dr. Suresh Kumar",
		Diagnosis:  "Checkup",
		Medicines:  []string{"Paracetamol 500mg"},
		Notes:      "   ",
		CreatedAt:  time.Now(),
	}
	patient := &patients.Patient{ID: 1, Name: "Priya Sharma", Age: 32, Gender: patients.GenderFemale}

	if _, err := NewExporter().Prescription(p, patient); err != nil {
		t.Fatalf("Prescription: %v", err)
	}
}
