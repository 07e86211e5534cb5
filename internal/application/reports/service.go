package reports

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/farhanmaulana/clinicdesk/internal/application"
	domain "github.com/farhanmaulana/clinicdesk/internal/domain/reports"
)

// Service implements use-cases for Report: upload file bytes to the store,
// persist the metadata row, and serve bytes / extracted text back.
type Service struct {
	Repo    domain.Repository
	Files   domain.FileStore
	Extract domain.TextExtractor
	Clock   application.Clock
}

type UploadReportCommand struct {
	PatientID  int64
	DoctorName string
	Title      string
	Filename   string
	Data       []byte
}

// Upload stores the file first, then the metadata row. The stored name keeps
// the original extension so later dispatches classify the report correctly.
func (s *Service) Upload(ctx context.Context, cmd UploadReportCommand) (*domain.Report, error) {
	if cmd.PatientID <= 0 {
		return nil, fmt.Errorf("patient_id is required")
	}
	if cmd.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(cmd.Data) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	stored := storedFilename(cmd.PatientID, cmd.Filename)
	if _, err := s.Files.Put(ctx, stored, cmd.Data); err != nil {
		return nil, fmt.Errorf("store report file: %w", err)
	}

	rep := &domain.Report{
		PatientID:      cmd.PatientID,
		DoctorName:     cmd.DoctorName,
		Title:          cmd.Title,
		StoredFilename: stored,
		CreatedAt:      s.Clock.Now(),
	}
	if err := s.Repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *Service) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*domain.Report, error) {
	return s.Repo.ListByPatient(ctx, patientID)
}

// FetchFile returns the raw stored bytes for serving back to the client.
func (s *Service) FetchFile(ctx context.Context, filename string) ([]byte, error) {
	return s.Files.Fetch(ctx, filename)
}

// ExtractText is the best-effort plain-text view of a stored file.
func (s *Service) ExtractText(ctx context.Context, filename string) (string, error) {
	return s.Extract.ExtractText(ctx, filename)
}

// storedFilename builds "{patientID}_{token}_{basename}". The uuid token
// keeps repeated uploads of the same file from colliding in the bucket.
func storedFilename(patientID int64, original string) string {
	base := filepath.Base(original)
	base = strings.ReplaceAll(base, " ", "_")
	token := uuid.New().String()[:8]
	return fmt.Sprintf("%d_%s_%s", patientID, token, base)
}
