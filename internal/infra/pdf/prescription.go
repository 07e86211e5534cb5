package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/farhanmaulana/clinicdesk/internal/domain/patients"
	"github.com/farhanmaulana/clinicdesk/internal/domain/prescriptions"
)

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Prescription renders a printable prescription document.
func (e *Exporter) Prescription(p *prescriptions.Prescription, patient *patients.Patient) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Prescription %d", p.ID), false)
	doc.SetAuthor("clinicdesk", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, "Prescription")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 7, fmt.Sprintf("Patient: %s (age %d, %s)", patient.Name, patient.Age, patient.Gender))
	doc.Ln(7)
	doc.Cell(0, 7, fmt.Sprintf("Doctor: %s", p.DoctorName))
	doc.Ln(7)
	doc.Cell(0, 7, fmt.Sprintf("Date: %s", p.CreatedAt.Format("2 January 2006")))
	doc.Ln(11)

	doc.SetFont("Helvetica", "B", 13)
	doc.Cell(0, 8, "Diagnosis")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(0, 6, p.Diagnosis, "", "", false)
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 13)
	doc.Cell(0, 8, "Medicines")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 12)
	for _, m := range p.Medicines {
		doc.MultiCell(0, 6, "- "+m, "", "", false)
	}
	doc.Ln(4)

	if strings.TrimSpace(p.Notes) != "" {
		doc.SetFont("Helvetica", "B", 13)
		doc.Cell(0, 8, "Notes")
		doc.Ln(8)
		doc.SetFont("Helvetica", "", 12)
		doc.MultiCell(0, 6, p.Notes, "", "", false)
	}

	doc.SetY(-25)
	doc.SetFont("Helvetica", "I", 9)
	doc.Cell(0, 5, fmt.Sprintf("Generated %s", time.Now().Format("2 January 2006 15:04")))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render prescription pdf: %w", err)
	}
	return buf.Bytes(), nil
}
