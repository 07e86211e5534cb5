package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/farhanmaulana/clinicdesk/internal/domain/ai"
)

const maxTokens = 2048

const summarySystem = "You are a clinical assistant. Summarize medical reports accurately, " +
	"flag anything that needs follow-up, and never invent findings that are not in the input."

// Client implements ai.Inference on the OpenAI chat API. The first call
// after a deploy can be slow; the HTTP timeout is the only bound applied.
type Client struct {
	*openai.Client
	TextModel   string
	VisionModel string
}

func NewClient(apiKey, textModel, visionModel string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		Client:      openai.NewClientWithConfig(cfg),
		TextModel:   textModel,
		VisionModel: visionModel,
	}
}

func (c *Client) SummarizeText(ctx context.Context, prompt string) (string, error) {
	model := c.TextModel
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystem},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	setTokenLimit(&req, model)

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapErr(err)
	}
	if len(resp.Choices) == 0 {
		return "", &ai.StatusError{Status: http.StatusBadGateway, Detail: "inference service returned no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) AnalyzeImage(ctx context.Context, image []byte, instruction string) (string, error) {
	model := c.VisionModel
	if model == "" {
		model = "gpt-4o"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s",
		http.DetectContentType(image),
		base64.StdEncoding.EncodeToString(image),
	)
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: instruction},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}
	setTokenLimit(&req, model)

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapErr(err)
	}
	if len(resp.Choices) == 0 {
		return "", &ai.StatusError{Status: http.StatusBadGateway, Detail: "inference service returned no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
func setTokenLimit(req *openai.ChatCompletionRequest, model string) {
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") ||
		strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}
}

// wrapErr maps provider error responses onto ai.StatusError so callers see
// the service detail; transport errors pass through unchanged.
func wrapErr(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ai.StatusError{Status: apiErr.HTTPStatusCode, Detail: apiErr.Message}
	}
	return err
}
