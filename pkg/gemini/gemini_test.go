package gemini

import (
	"context"
	"encoding/json"
	"meeting-summarizer/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestSummarizer(t *testing.T, handler http.HandlerFunc) *Summarizer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewSummarizer(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewSummarizer() unexpected error: %v", err)
	}
	return s
}

func TestGenerate(t *testing.T) {
	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/"+defaultModel+":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
			GenerationConfig struct {
				ResponseMIMEType string `json:"responseMimeType"`
			} `json:"generationConfig"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "we agreed to ship friday" {
			t.Errorf("contents = %+v", req.Contents)
		}
		if req.GenerationConfig.ResponseMIMEType != "application/json" {
			t.Errorf("responseMimeType = %q", req.GenerationConfig.ResponseMIMEType)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"key_points\":[\"ship friday\"]}"}]}}]}`))
	})

	raw, err := s.Generate(context.Background(), "we agreed to ship friday")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if got := service.ParseSummary(raw).KeyPoints; len(got) != 1 || got[0] != "ship friday" {
		t.Errorf("KeyPoints = %q", got)
	}
}

func TestGenerateRateLimited(t *testing.T) {
	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := s.Generate(context.Background(), "hello")
	if !service.IsRateLimited(err) {
		t.Fatalf("Generate() error = %v, want rate limited", err)
	}
}
