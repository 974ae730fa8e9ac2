package config

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
	"meeting-summarizer/constant"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	MinIOBucket    string        `yaml:"minio_bucket"`
	MinIOPublicURL string        `yaml:"minio_public_url"`
	App            App           `yaml:"app"`
	DB             *sql.DB       `yaml:"db"`
	Queue          *RabbitMQ     `yaml:"rabbitmq"`
	Storage        *minio.Client `yaml:"storage"`
	Server         Server        `yaml:"server"`
	Upload         Upload        `yaml:"upload"`
	Transcription  Transcription `yaml:"transcription"`
	Summary        Summary       `yaml:"summary"`
	OpenAI         OpenAI        `yaml:"openai"`
	Gemini         Gemini        `yaml:"gemini"`
	Redis          Redis         `yaml:"redis"`
	Auth           Auth          `yaml:"auth"`
}

type App struct {
	Environment string `yaml:"environment"`
	Host        string `yaml:"host"`
	Protocol    string `yaml:"protocol"`
}

type Server struct {
	HttpPort        string        `yaml:"http_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type RabbitMQ struct {
	Enabled    bool   `json:"enabled"`
	Host       string `json:"host"`
	Port       int    `json:"port"`
	User       string `json:"user"`
	Pass       string `json:"pass"`
	VHost      string `json:"vhost"`
	Kind       string `json:"kind"`
	MaxRetries uint   `json:"max_retries"`
}

type Upload struct {
	MaxSizeBytes     int64 `yaml:"max_size_bytes"`
	EnforceSizeLimit bool  `yaml:"enforce_size_limit"`
}

type Transcription struct {
	Model            string        `yaml:"model"`
	Language         string        `yaml:"language"`
	ChunkSizeBytes   int           `yaml:"chunk_size_bytes"`
	Interval         time.Duration `yaml:"interval"`
	RateLimitRetries uint          `yaml:"rate_limit_retries"`
}

type Summary struct {
	Provider    constant.SummaryProvider `yaml:"provider"`
	OpenAIModel string                   `yaml:"openai_model"`
	GeminiModel string                   `yaml:"gemini_model"`
	Temperature float32                  `yaml:"temperature"`
	MaxTokens   int                      `yaml:"max_tokens"`
}

// Model is the model configured for the selected provider.
func (s Summary) Model() string {
	if s.Provider == constant.SummaryProviderGemini {
		return s.GeminiModel
	}
	return s.OpenAIModel
}

type OpenAI struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type Gemini struct {
	APIKey string `yaml:"api_key"`
}

type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type Auth struct {
	JWTSecret    string `yaml:"jwt_secret"`
	DefaultOwner string `yaml:"default_owner"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", constant.EnvironmentDevelop.String())
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("minio.url", "localhost:9000")
	v.SetDefault("minio.bucket", "meeting-audio")
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.kind", "topic")
	v.SetDefault("rabbitmq.max_retries", 5)
	v.SetDefault("upload.max_size_bytes", constant.DefaultMaxUploadSize)
	v.SetDefault("upload.enforce_size_limit", true)
	v.SetDefault("transcription.model", "whisper-1")
	v.SetDefault("transcription.language", "en")
	v.SetDefault("transcription.chunk_size_bytes", constant.DefaultChunkSize)
	v.SetDefault("transcription.interval", time.Second)
	v.SetDefault("transcription.rate_limit_retries", 0)
	v.SetDefault("summary.provider", constant.SummaryProviderOpenAI.String())
	v.SetDefault("summary.openai_model", "gpt-4o-mini")
	v.SetDefault("summary.gemini_model", "gemini-2.5-flash")
	v.SetDefault("summary.temperature", 0.3)
	v.SetDefault("summary.max_tokens", 1000)
	v.SetDefault("redis.ttl", 10*time.Minute)
	v.SetDefault("auth.default_owner", "anonymous")
}

// Load reads config.yaml from path, with MEETING_* environment overrides. A .env
// file next to it is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MEETING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("openai.api_key", "MEETING_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini.api_key", "MEETING_GEMINI_API_KEY", "GEMINI_API_KEY")
	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	db, err := sql.Open("postgres", v.GetString("postgres.dsn"))
	if err != nil {
		return nil, err
	}

	rabbitmq := &RabbitMQ{
		Enabled:    v.GetBool("rabbitmq.enabled"),
		Host:       v.GetString("rabbitmq.host"),
		Port:       v.GetInt("rabbitmq.port"),
		User:       v.GetString("rabbitmq.user"),
		Pass:       v.GetString("rabbitmq.pass"),
		VHost:      v.GetString("rabbitmq.vhost"),
		Kind:       v.GetString("rabbitmq.kind"),
		MaxRetries: v.GetUint("rabbitmq.max_retries"),
	}

	minioClient, err := minio.New(v.GetString("minio.url"), &minio.Options{
		Creds:  credentials.NewStaticV4(v.GetString("minio.access_id"), v.GetString("minio.secret_access_key"), ""),
		Secure: v.GetBool("minio.secure"),
	})
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		MinIOBucket:    v.GetString("minio.bucket"),
		MinIOPublicURL: v.GetString("minio.public_url"),
		App: App{
			Environment: v.GetString("app.environment"),
			Host:        v.GetString("app.host"),
			Protocol:    v.GetString("app.protocol"),
		},
		Server: Server{
			HttpPort:        v.GetString("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Upload: Upload{
			MaxSizeBytes:     v.GetInt64("upload.max_size_bytes"),
			EnforceSizeLimit: v.GetBool("upload.enforce_size_limit"),
		},
		Transcription: Transcription{
			Model:            v.GetString("transcription.model"),
			Language:         v.GetString("transcription.language"),
			ChunkSizeBytes:   v.GetInt("transcription.chunk_size_bytes"),
			Interval:         v.GetDuration("transcription.interval"),
			RateLimitRetries: v.GetUint("transcription.rate_limit_retries"),
		},
		Summary: Summary{
			Provider:    constant.SummaryProvider(v.GetString("summary.provider")),
			OpenAIModel: v.GetString("summary.openai_model"),
			GeminiModel: v.GetString("summary.gemini_model"),
			Temperature: float32(v.GetFloat64("summary.temperature")),
			MaxTokens:   v.GetInt("summary.max_tokens"),
		},
		OpenAI: OpenAI{
			APIKey:  v.GetString("openai.api_key"),
			BaseURL: v.GetString("openai.base_url"),
		},
		Gemini: Gemini{
			APIKey: v.GetString("gemini.api_key"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Auth: Auth{
			JWTSecret:    v.GetString("auth.jwt_secret"),
			DefaultOwner: v.GetString("auth.default_owner"),
		},
		DB:      db,
		Queue:   rabbitmq,
		Storage: minioClient,
	}

	if err := cfg.Validate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Transcription.ChunkSizeBytes <= 0 || c.Transcription.ChunkSizeBytes >= constant.MaxUpstreamFileSize {
		return fmt.Errorf("transcription.chunk_size_bytes must be between 1 and %d, got %d",
			constant.MaxUpstreamFileSize-1, c.Transcription.ChunkSizeBytes)
	}
	if c.Transcription.Interval < 0 {
		return fmt.Errorf("transcription.interval must not be negative")
	}

	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}

	switch c.Summary.Provider {
	case constant.SummaryProviderOpenAI:
	case constant.SummaryProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini.api_key is required when summary.provider is %q", c.Summary.Provider)
		}
	default:
		return fmt.Errorf("unknown summary.provider %q", c.Summary.Provider)
	}

	if c.Upload.EnforceSizeLimit && c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload.max_size_bytes must be positive when the size limit is enforced")
	}
	if c.Auth.JWTSecret == "" && c.App.Environment == constant.EnvironmentProduction.String() {
		return fmt.Errorf("auth.jwt_secret is required in %s", constant.EnvironmentProduction)
	}
	return nil
}
