package openai

import (
	"bytes"
	"context"
	"errors"
	goopenai "github.com/sashabaranov/go-openai"
	"meeting-summarizer/service"
	"strings"
)

type Config struct {
	APIKey             string
	BaseURL            string
	TranscriptionModel string
	Language           string
	SummaryModel       string
	Temperature        float32
	MaxTokens          int
}

// Client talks to the OpenAI API. It serves both as the speech-to-text backend
// and as a summary provider.
type Client struct {
	client *goopenai.Client
	cfg    Config
}

func NewClient(cfg Config) *Client {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.TranscriptionModel == "" {
		cfg.TranscriptionModel = goopenai.Whisper1
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.SummaryModel == "" {
		cfg.SummaryModel = goopenai.GPT4oMini
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = service.DefaultSummaryTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = service.DefaultSummaryMaxTokens
	}

	return &Client{
		client: goopenai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}
}

func (c *Client) Transcribe(ctx context.Context, chunk service.Chunk) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    c.cfg.TranscriptionModel,
		FilePath: chunk.FileName,
		Reader:   bytes.NewReader(chunk.Data),
		Language: c.cfg.Language,
		Format:   goopenai.AudioResponseFormatText,
	})
	if err != nil {
		return "", upstreamError(err)
	}

	return strings.TrimSpace(resp.Text), nil
}

func (c *Client) Generate(ctx context.Context, transcript string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.cfg.SummaryModel,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: service.SummaryInstruction},
			{Role: goopenai.ChatMessageRoleUser, Content: transcript},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", upstreamError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &service.UpstreamError{Message: "empty chat completion"}
	}

	return resp.Choices[0].Message.Content, nil
}

func upstreamError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return &service.UpstreamError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return &service.UpstreamError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error(), Err: err}
	}

	return &service.UpstreamError{Message: err.Error(), Err: err}
}
