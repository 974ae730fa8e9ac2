package service

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidUpload = errors.New("invalid upload")
	ErrRateLimited   = errors.New("rate limit exceeded")
	ErrTranscription = errors.New("transcription failed")
	ErrSummary       = errors.New("summary generation failed")
	ErrStorage       = errors.New("storage failure")
	ErrNotFound      = errors.New("meeting not found")
	ErrInvalidCursor = errors.New("invalid cursor")
)

// UpstreamError is returned by the transcription and summary providers when the
// hosted API answers with an error status.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var upstream *UpstreamError
	return errors.As(err, &upstream) && upstream.RateLimited()
}

// StatusCode maps an error from this package to the HTTP status reported to clients.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidUpload), errors.Is(err, ErrInvalidCursor):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case IsRateLimited(err):
		return http.StatusTooManyRequests
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) && upstream.StatusCode >= 400 && upstream.StatusCode < 600 {
		return upstream.StatusCode
	}
	return http.StatusInternalServerError
}

// Label is the short message placed in the "error" field of the JSON envelope.
func Label(err error) string {
	switch {
	case errors.Is(err, ErrInvalidUpload):
		return "Invalid upload"
	case errors.Is(err, ErrInvalidCursor):
		return "Invalid cursor"
	case errors.Is(err, ErrNotFound):
		return "Meeting not found"
	case IsRateLimited(err):
		return "Rate limit exceeded, please try again later"
	case errors.Is(err, ErrTranscription):
		return "Failed to transcribe audio"
	case errors.Is(err, ErrSummary):
		return "Failed to generate summary"
	case errors.Is(err, ErrStorage):
		return "Failed to store meeting"
	}
	return "Internal server error"
}
