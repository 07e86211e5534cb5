package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/farhanmaulana/clinicdesk/internal/domain/reports"
)

// Service implements reports.TextExtractor over the file store. Clean
// failures (missing file, unsupported format, unparseable content) wrap
// reports.ErrExtractFailed; transport errors from the store pass through
// unwrapped so callers can tell the two apart.
type Service struct {
	Files reports.FileStore
}

func NewService(files reports.FileStore) *Service {
	return &Service{Files: files}
}

func (s *Service) ExtractText(ctx context.Context, filename string) (string, error) {
	data, err := s.Files.Fetch(ctx, filename)
	if err != nil {
		if errors.Is(err, reports.ErrFileNotFound) {
			// Missing file is a clean failure, not a transport error.
			return "", fmt.Errorf("%w: %v", reports.ErrExtractFailed, err)
		}
		return "", fmt.Errorf("fetch %s: %w", filename, err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", ".csv", ".log", ".json":
		return plainText(data)
	case ".pdf":
		return pdfText(data)
	default:
		return "", fmt.Errorf("%w: unsupported format %q", reports.ErrExtractFailed, filepath.Ext(filename))
	}
}

func plainText(data []byte) (string, error) {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content", reports.ErrExtractFailed)
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", reports.ErrExtractFailed, err)
	}
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", reports.ErrExtractFailed, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("%w: %v", reports.ErrExtractFailed, err)
	}
	return plainText(buf.Bytes())
}
