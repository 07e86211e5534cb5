package openai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/farhanmaulana/clinicdesk/internal/domain/ai"
)

func TestSetTokenLimit(t *testing.T) {
	cases := []struct {
		model          string
		wantCompletion bool
	}{
		{"gpt-4o", false},
		{"gpt-4o-mini", false},
		{"o1-preview", true},
		{"o3-mini", true},
		{"o4-mini", true},
		{"gpt-5", true},
	}
	for _, c := range cases {
		var req openai.ChatCompletionRequest
		setTokenLimit(&req, c.model)
		if c.wantCompletion {
			if req.MaxCompletionTokens != maxTokens || req.MaxTokens != 0 {
				t.Errorf("%s: got MaxTokens=%d MaxCompletionTokens=%d", c.model, req.MaxTokens, req.MaxCompletionTokens)
			}
		} else {
			if req.MaxTokens != maxTokens || req.MaxCompletionTokens != 0 {
				t.Errorf("%s: got MaxTokens=%d MaxCompletionTokens=%d", c.model, req.MaxTokens, req.MaxCompletionTokens)
			}
		}
	}
}

func TestWrapErrMapsAPIError(t *testing.T) {
	err := wrapErr(&openai.APIError{HTTPStatusCode: 500, Message: "model unavailable"})
	var se *ai.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %T, want *ai.StatusError", err)
	}
	if se.Status != 500 || se.Error() != "model unavailable" {
		t.Fatalf("status error = %+v", se)
	}
}

func TestWrapErrPassesTransportErrors(t *testing.T) {
	orig := fmt.Errorf("dial tcp: connection refused")
	if got := wrapErr(orig); got != orig {
		t.Fatalf("transport error must pass through, got %v", got)
	}
}

func TestStatusErrorFallbackMessage(t *testing.T) {
	se := &ai.StatusError{Status: 503}
	if se.Error() != "inference service returned status 503" {
		t.Fatalf("message = %q", se.Error())
	}
}
