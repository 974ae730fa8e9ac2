package config

import (
	"meeting-summarizer/constant"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "MEETING_OPENAI_API_KEY", "MEETING_GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, `
app:
  environment: staging
server:
  port: "9090"
minio:
  url: "minio.internal:9000"
  bucket: "recordings"
  public_url: "https://cdn.example.com"
openai:
  api_key: "sk-test"
transcription:
  chunk_size_bytes: 1048576
  interval: 250ms
  rate_limit_retries: 2
summary:
  provider: openai
  openai_model: gpt-4.1-mini
upload:
  max_size_bytes: 5242880
redis:
  addr: "localhost:6379"
  ttl: 1m
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer cfg.DB.Close()

	if cfg.App.Environment != "staging" {
		t.Errorf("Environment = %v, want staging", cfg.App.Environment)
	}
	if cfg.Server.HttpPort != "9090" {
		t.Errorf("HttpPort = %v, want 9090", cfg.Server.HttpPort)
	}
	if cfg.MinIOBucket != "recordings" {
		t.Errorf("MinIOBucket = %v, want recordings", cfg.MinIOBucket)
	}
	if cfg.Transcription.ChunkSizeBytes != 1048576 {
		t.Errorf("ChunkSizeBytes = %v, want 1048576", cfg.Transcription.ChunkSizeBytes)
	}
	if cfg.Transcription.Interval != 250*time.Millisecond {
		t.Errorf("Interval = %v, want 250ms", cfg.Transcription.Interval)
	}
	if cfg.Transcription.RateLimitRetries != 2 {
		t.Errorf("RateLimitRetries = %v, want 2", cfg.Transcription.RateLimitRetries)
	}
	if cfg.Transcription.Language != "en" {
		t.Errorf("Language = %v, want en", cfg.Transcription.Language)
	}
	if cfg.Upload.MaxSizeBytes != 5242880 || !cfg.Upload.EnforceSizeLimit {
		t.Errorf("Upload = %+v", cfg.Upload)
	}
	if cfg.Redis.TTL != time.Minute {
		t.Errorf("Redis.TTL = %v, want 1m", cfg.Redis.TTL)
	}
	if cfg.Summary.Model() != "gpt-4.1-mini" {
		t.Errorf("Summary.Model() = %v, want gpt-4.1-mini", cfg.Summary.Model())
	}
	if cfg.Auth.DefaultOwner != "anonymous" {
		t.Errorf("DefaultOwner = %v, want anonymous", cfg.Auth.DefaultOwner)
	}
	if cfg.Storage == nil {
		t.Error("Storage client is nil")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, `
openai:
  api_key: "from-file"
`)
	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("MEETING_SERVER_PORT", "7070")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer cfg.DB.Close()

	if cfg.OpenAI.APIKey != "from-env" {
		t.Errorf("APIKey = %v, want from-env", cfg.OpenAI.APIKey)
	}
	if cfg.Server.HttpPort != "7070" {
		t.Errorf("HttpPort = %v, want 7070", cfg.Server.HttpPort)
	}
	if cfg.Transcription.ChunkSizeBytes != constant.DefaultChunkSize {
		t.Errorf("ChunkSizeBytes = %v, want %v", cfg.Transcription.ChunkSizeBytes, constant.DefaultChunkSize)
	}
}

func TestLoadGeminiModelDefault(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, `
openai:
  api_key: "sk-test"
gemini:
  api_key: "gm-test"
summary:
  provider: gemini
  openai_model: gpt-4.1-mini
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer cfg.DB.Close()

	if got := cfg.Summary.Model(); got != "gemini-2.5-flash" {
		t.Errorf("Summary.Model() = %v, want gemini-2.5-flash", got)
	}
	if cfg.Summary.OpenAIModel != "gpt-4.1-mini" {
		t.Errorf("OpenAIModel = %v, want gpt-4.1-mini", cfg.Summary.OpenAIModel)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	_ = os.Unsetenv("OPENAI_API_KEY")
	dir := writeConfig(t, "app:\n  environment: develop\n")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENAI_API_KEY=sk-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer cfg.DB.Close()

	if cfg.OpenAI.APIKey != "sk-dotenv" {
		t.Errorf("APIKey = %v, want sk-dotenv", cfg.OpenAI.APIKey)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, "openai: [unclosed")

	if _, err := Load(dir); err == nil {
		t.Error("Load() should return error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			App:    App{Environment: constant.EnvironmentDevelop.String()},
			OpenAI: OpenAI{APIKey: "sk-test"},
			Upload: Upload{MaxSizeBytes: constant.DefaultMaxUploadSize, EnforceSizeLimit: true},
			Transcription: Transcription{
				ChunkSizeBytes: constant.DefaultChunkSize,
				Interval:       time.Second,
			},
			Summary: Summary{Provider: constant.SummaryProviderOpenAI},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "chunk size above upstream limit",
			mutate:  func(c *Config) { c.Transcription.ChunkSizeBytes = constant.MaxUpstreamFileSize },
			wantErr: true,
		},
		{
			name:    "zero chunk size",
			mutate:  func(c *Config) { c.Transcription.ChunkSizeBytes = 0 },
			wantErr: true,
		},
		{
			name:    "missing openai key",
			mutate:  func(c *Config) { c.OpenAI.APIKey = "" },
			wantErr: true,
		},
		{
			name:    "gemini without key",
			mutate:  func(c *Config) { c.Summary.Provider = constant.SummaryProviderGemini },
			wantErr: true,
		},
		{
			name: "gemini with key",
			mutate: func(c *Config) {
				c.Summary.Provider = constant.SummaryProviderGemini
				c.Gemini.APIKey = "g-key"
			},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Summary.Provider = "bard" },
			wantErr: true,
		},
		{
			name:    "enforced limit without size",
			mutate:  func(c *Config) { c.Upload.MaxSizeBytes = 0 },
			wantErr: true,
		},
		{
			name:    "unenforced limit without size",
			mutate:  func(c *Config) { c.Upload = Upload{} },
			wantErr: false,
		},
		{
			name:    "production without jwt secret",
			mutate:  func(c *Config) { c.App.Environment = constant.EnvironmentProduction.String() },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
