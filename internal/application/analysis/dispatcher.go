package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/farhanmaulana/clinicdesk/internal/domain/ai"
	"github.com/farhanmaulana/clinicdesk/internal/domain/reports"
)

// Sentinels substituted for the report body when text extraction degrades.
// The dispatch still runs; the model is told what it could not read.
const (
	SentinelNoText   = "[Unable to extract text from this file]"
	SentinelReadFail = "[Error reading file]"
)

// FailureKind enum
type FailureKind string

const (
	// FailureRetrieval: raw bytes could not be obtained (image path only).
	FailureRetrieval FailureKind = "retrieval"
	// FailureAnalysis: the inference service failed or returned non-success.
	FailureAnalysis FailureKind = "analysis"
)

// Failure is the structured terminal outcome of a dispatch. Nothing escapes
// the dispatcher as an untyped error.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (f *Failure) Error() string { return f.Message }

// Dispatcher routes a stored report to the right inference capability based
// on the stored filename's extension. It holds no state across invocations
// and is safe for concurrent dispatches of different reports; serializing
// repeat dispatches for the same report is the caller's job (see Tracker).
type Dispatcher struct {
	Files   reports.FileStore
	Extract reports.TextExtractor
	AI      ai.Inference
}

// Dispatch runs one end-to-end analysis attempt for a single report and
// returns the analysis text or a Failure. Unknown extensions take the text
// path: extraction degrades to a sentinel body rather than aborting.
func (d *Dispatcher) Dispatch(ctx context.Context, rep *reports.Report) (string, *Failure) {
	switch rep.Category() {
	case reports.CategoryImage:
		return d.dispatchImage(ctx, rep)
	default:
		return d.dispatchText(ctx, rep)
	}
}

func (d *Dispatcher) dispatchImage(ctx context.Context, rep *reports.Report) (string, *Failure) {
	data, err := d.Files.Fetch(ctx, rep.StoredFilename)
	if err != nil {
		// Terminal: no fallback to the text path for image reports.
		return "", &Failure{
			Kind:    FailureRetrieval,
			Message: fmt.Sprintf("could not retrieve %s: %v", rep.StoredFilename, err),
		}
	}

	analysis, err := d.AI.AnalyzeImage(ctx, data, imageInstruction(rep))
	if err != nil {
		return "", analysisFailure(err)
	}
	return analysis, nil
}

func (d *Dispatcher) dispatchText(ctx context.Context, rep *reports.Report) (string, *Failure) {
	body, err := d.Extract.ExtractText(ctx, rep.StoredFilename)
	if err != nil {
		if errors.Is(err, reports.ErrExtractFailed) {
			body = SentinelNoText
		} else {
			body = SentinelReadFail
		}
	}

	summary, err := d.AI.SummarizeText(ctx, summaryPrompt(rep, body))
	if err != nil {
		return "", analysisFailure(err)
	}
	return summary, nil
}

func analysisFailure(err error) *Failure {
	return &Failure{Kind: FailureAnalysis, Message: err.Error()}
}
