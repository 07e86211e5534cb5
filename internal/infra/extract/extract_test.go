package extract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/farhanmaulana/clinicdesk/internal/domain/reports"
)

type memStore struct {
	objects  map[string][]byte
	fetchErr error
}

func (m *memStore) Put(ctx context.Context, filename string, data []byte) (string, error) {
	return filename, nil
}

func (m *memStore) Fetch(ctx context.Context, filename string) ([]byte, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	b, ok := m.objects[filename]
	if !ok {
		return nil, reports.ErrFileNotFound
	}
	return b, nil
}

func (m *memStore) URL(filename string) string { return "http://files.test/" + filename }

func TestExtractPlainText(t *testing.T) {
	svc := NewService(&memStore{objects: map[string][]byte{
		"notes.txt": []byte("Hemoglobin: 14.2 g/dL"),
	}})
	got, err := svc.ExtractText(context.Background(), "notes.txt")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "Hemoglobin: 14.2 g/dL" {
		t.Fatalf("text = %q", got)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	svc := NewService(&memStore{objects: map[string][]byte{
		"scan.dcm": {0x01, 0x02},
	}})
	_, err := svc.ExtractText(context.Background(), "scan.dcm")
	if !errors.Is(err, reports.ErrExtractFailed) {
		t.Fatalf("unsupported format must be a clean failure, got %v", err)
	}
}

func TestExtractEmptyFile(t *testing.T) {
	svc := NewService(&memStore{objects: map[string][]byte{
		"blank.txt": []byte("   \n\t"),
	}})
	_, err := svc.ExtractText(context.Background(), "blank.txt")
	if !errors.Is(err, reports.ErrExtractFailed) {
		t.Fatalf("blank content must be a clean failure, got %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	svc := NewService(&memStore{objects: map[string][]byte{}})
	_, err := svc.ExtractText(context.Background(), "gone.txt")
	if !errors.Is(err, reports.ErrExtractFailed) {
		t.Fatalf("missing file must be a clean failure, got %v", err)
	}
}

func TestExtractTransportErrorUnwrapped(t *testing.T) {
	svc := NewService(&memStore{fetchErr: fmt.Errorf("connection reset")})
	_, err := svc.ExtractText(context.Background(), "notes.txt")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, reports.ErrExtractFailed) {
		t.Fatalf("transport error must not wrap the clean-failure sentinel: %v", err)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	svc := NewService(&memStore{objects: map[string][]byte{
		"labs.pdf": []byte("not a real pdf"),
	}})
	_, err := svc.ExtractText(context.Background(), "labs.pdf")
	if !errors.Is(err, reports.ErrExtractFailed) {
		t.Fatalf("corrupt pdf must be a clean failure, got %v", err)
	}
}
