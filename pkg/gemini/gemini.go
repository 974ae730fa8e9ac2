package gemini

import (
	"context"
	"errors"
	"fmt"
	"google.golang.org/genai"
	"meeting-summarizer/service"
)

const defaultModel = "gemini-2.5-flash"

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int32
}

// Summarizer generates meeting summaries with Gemini.
type Summarizer struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

func NewSummarizer(ctx context.Context, cfg Config) (*Summarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	s := &Summarizer{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
	if s.model == "" {
		s.model = defaultModel
	}
	if s.temperature <= 0 {
		s.temperature = service.DefaultSummaryTemperature
	}
	if s.maxTokens <= 0 {
		s.maxTokens = service.DefaultSummaryMaxTokens
	}
	return s, nil
}

func (s *Summarizer) Generate(ctx context.Context, transcript string) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(transcript), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(service.SummaryInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(s.temperature),
		MaxOutputTokens:   s.maxTokens,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &service.UpstreamError{StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
		}
		return "", &service.UpstreamError{Message: err.Error(), Err: err}
	}

	text := result.Text()
	if text == "" {
		return "", &service.UpstreamError{Message: "empty response from Gemini"}
	}
	return text, nil
}
