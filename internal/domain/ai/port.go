package ai

import "context"

// Inference is the external analysis capability. Implementations may be slow
// on the first call while the remote model warms up; callers should treat
// that as ordinary latency.
type Inference interface {
	AnalyzeImage(ctx context.Context, image []byte, instruction string) (string, error)
	SummarizeText(ctx context.Context, prompt string) (string, error)
}
