package analysis

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/farhanmaulana/clinicdesk/internal/domain/ai"
	"github.com/farhanmaulana/clinicdesk/internal/domain/reports"
)

type fakeFiles struct {
	data     map[string][]byte
	fetchErr error
	fetched  []string
}

func (f *fakeFiles) Put(ctx context.Context, filename string, data []byte) (string, error) {
	return filename, nil
}

func (f *fakeFiles) Fetch(ctx context.Context, filename string) ([]byte, error) {
	f.fetched = append(f.fetched, filename)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	b, ok := f.data[filename]
	if !ok {
		return nil, reports.ErrFileNotFound
	}
	return b, nil
}

func (f *fakeFiles) URL(filename string) string { return "http://files.test/" + filename }

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(ctx context.Context, filename string) (string, error) {
	return f.text, f.err
}

type fakeInference struct {
	analysis   string
	analyzeErr error
	summary    string
	summaryErr error

	analyzeCalls    int
	summarizeCalls  int
	lastImage       []byte
	lastInstruction string
	lastPrompt      string
}

func (f *fakeInference) AnalyzeImage(ctx context.Context, image []byte, instruction string) (string, error) {
	f.analyzeCalls++
	f.lastImage = image
	f.lastInstruction = instruction
	return f.analysis, f.analyzeErr
}

func (f *fakeInference) SummarizeText(ctx context.Context, prompt string) (string, error) {
	f.summarizeCalls++
	f.lastPrompt = prompt
	return f.summary, f.summaryErr
}

func testReport(filename string) *reports.Report {
	return &reports.Report{
		ID:             7,
		PatientID:      1,
		DoctorName:     "Smith",
		Title:          "Chest X-Ray",
		StoredFilename: filename,
		CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDispatchImagePath(t *testing.T) {
	files := &fakeFiles{data: map[string][]byte{"scan.PNG": []byte("pngbytes")}}
	inf := &fakeInference{analysis: "No acute findings."}
	d := &Dispatcher{Files: files, Extract: &fakeExtractor{}, AI: inf}

	got, fail := d.Dispatch(context.Background(), testReport("scan.PNG"))
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if got != "No acute findings." {
		t.Fatalf("analysis = %q", got)
	}
	if inf.analyzeCalls != 1 {
		t.Fatalf("AnalyzeImage called %d times, want 1", inf.analyzeCalls)
	}
	if inf.summarizeCalls != 0 {
		t.Fatalf("SummarizeText called %d times for an image report", inf.summarizeCalls)
	}
	if string(inf.lastImage) != "pngbytes" {
		t.Fatalf("AnalyzeImage got wrong bytes: %q", inf.lastImage)
	}
}

func TestDispatchTextPathSentinelOnExtractFailure(t *testing.T) {
	ext := &fakeExtractor{err: fmt.Errorf("unsupported format: %w", reports.ErrExtractFailed)}
	inf := &fakeInference{summary: "summary of labs"}
	d := &Dispatcher{Files: &fakeFiles{}, Extract: ext, AI: inf}

	got, fail := d.Dispatch(context.Background(), testReport("labs.pdf"))
	if fail != nil {
		t.Fatalf("extraction failure must not abort the dispatch, got %v", fail)
	}
	if got != "summary of labs" {
		t.Fatalf("analysis = %q", got)
	}
	if inf.summarizeCalls != 1 {
		t.Fatalf("SummarizeText called %d times, want 1", inf.summarizeCalls)
	}
	if !strings.Contains(inf.lastPrompt, SentinelNoText) {
		t.Fatalf("prompt missing %q:\n%s", SentinelNoText, inf.lastPrompt)
	}
}

func TestDispatchTextPathSentinelOnReadError(t *testing.T) {
	ext := &fakeExtractor{err: fmt.Errorf("connection reset")}
	inf := &fakeInference{summary: "partial summary"}
	d := &Dispatcher{Files: &fakeFiles{}, Extract: ext, AI: inf}

	got, fail := d.Dispatch(context.Background(), testReport("notes.txt"))
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	if got != "partial summary" {
		t.Fatalf("analysis = %q", got)
	}
	if !strings.Contains(inf.lastPrompt, SentinelReadFail) {
		t.Fatalf("prompt missing %q:\n%s", SentinelReadFail, inf.lastPrompt)
	}
	if strings.Contains(inf.lastPrompt, SentinelNoText) {
		t.Fatalf("transport error must not use the extraction sentinel:\n%s", inf.lastPrompt)
	}
}

func TestDispatchImageRetrievalFailureIsTerminal(t *testing.T) {
	files := &fakeFiles{fetchErr: fmt.Errorf("bucket unreachable")}
	inf := &fakeInference{}
	d := &Dispatcher{Files: files, Extract: &fakeExtractor{}, AI: inf}

	_, fail := d.Dispatch(context.Background(), testReport("xray.jpg"))
	if fail == nil {
		t.Fatal("expected a failure")
	}
	if fail.Kind != FailureRetrieval {
		t.Fatalf("failure kind = %q, want %q", fail.Kind, FailureRetrieval)
	}
	if inf.analyzeCalls != 0 {
		t.Fatal("AnalyzeImage must not be called when retrieval fails")
	}
	if inf.summarizeCalls != 0 {
		t.Fatal("image reports must not fall back to the text path")
	}
}

func TestDispatchAnalysisFailurePreservesDetail(t *testing.T) {
	files := &fakeFiles{data: map[string][]byte{"xray.jpg": []byte("img")}}
	inf := &fakeInference{analyzeErr: &ai.StatusError{Status: 500, Detail: "model unavailable"}}
	d := &Dispatcher{Files: files, Extract: &fakeExtractor{}, AI: inf}

	_, fail := d.Dispatch(context.Background(), testReport("xray.jpg"))
	if fail == nil {
		t.Fatal("expected a failure")
	}
	if fail.Kind != FailureAnalysis {
		t.Fatalf("failure kind = %q, want %q", fail.Kind, FailureAnalysis)
	}
	if fail.Message != "model unavailable" {
		t.Fatalf("failure message = %q, want %q", fail.Message, "model unavailable")
	}
}

func TestDispatchAnalysisFailureStatusOnly(t *testing.T) {
	ext := &fakeExtractor{text: "body"}
	inf := &fakeInference{summaryErr: &ai.StatusError{Status: 503}}
	d := &Dispatcher{Files: &fakeFiles{}, Extract: ext, AI: inf}

	_, fail := d.Dispatch(context.Background(), testReport("labs.txt"))
	if fail == nil {
		t.Fatal("expected a failure")
	}
	if fail.Message != "inference service returned status 503" {
		t.Fatalf("failure message = %q", fail.Message)
	}
}

func TestDispatchIsRepeatable(t *testing.T) {
	files := &fakeFiles{data: map[string][]byte{"7_xray.jpg": []byte("img")}}
	inf := &fakeInference{analysis: "No acute findings."}
	d := &Dispatcher{Files: files, Extract: &fakeExtractor{}, AI: inf}
	rep := testReport("7_xray.jpg")

	first, fail := d.Dispatch(context.Background(), rep)
	if fail != nil {
		t.Fatalf("first dispatch failed: %v", fail)
	}
	second, fail := d.Dispatch(context.Background(), rep)
	if fail != nil {
		t.Fatalf("second dispatch failed: %v", fail)
	}
	if first != second {
		t.Fatalf("repeat dispatch diverged: %q vs %q", first, second)
	}
	if inf.analyzeCalls != 2 {
		t.Fatalf("AnalyzeImage called %d times, want 2", inf.analyzeCalls)
	}
}

func TestImageInstructionContents(t *testing.T) {
	got := imageInstruction(testReport("7_xray.jpg"))
	for _, want := range []string{"Chest X-Ray", "Smith", "January 1, 2024", "recommendations"} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q:\n%s", want, got)
		}
	}
}

func TestSummaryPromptContents(t *testing.T) {
	got := summaryPrompt(testReport("labs.pdf"), "Hemoglobin 14.2")
	for _, want := range []string{
		"Chest X-Ray",
		"Smith",
		"January 1, 2024",
		"Hemoglobin 14.2",
		"1. Key findings",
		"2. Clinical impression",
		"3. Follow-up recommendations",
		"4. Notable abnormalities",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}
