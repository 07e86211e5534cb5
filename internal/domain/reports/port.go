package reports

import (
	"context"
	"errors"
)

// Repository port (interface for persistence)
type Repository interface {
	Create(ctx context.Context, r *Report) error
	Get(ctx context.Context, id ReportID) (*Report, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Report, error)
}

// ErrFileNotFound indicates the file store has no object under the requested key.
var ErrFileNotFound = errors.New("file not found")

// FileStore port (interface for raw report bytes)
type FileStore interface {
	Put(ctx context.Context, filename string, data []byte) (string, error)
	Fetch(ctx context.Context, filename string) ([]byte, error)
	URL(filename string) string
}

// ErrExtractFailed marks a clean extraction failure (unsupported format,
// unparseable content, missing file). Callers use it to tell degraded input
// apart from transport-level errors, which are returned unwrapped.
var ErrExtractFailed = errors.New("text extraction failed")

// TextExtractor port (best-effort plain text for a stored file)
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string) (string, error)
}
