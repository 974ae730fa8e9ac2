package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"meeting-summarizer/config"
	"meeting-summarizer/constant"
	"meeting-summarizer/handler"
	"meeting-summarizer/pkg/cache"
	"meeting-summarizer/pkg/gemini"
	"meeting-summarizer/pkg/openai"
	"meeting-summarizer/pkg/rabbitmq"
	"meeting-summarizer/pkg/storage"
	"meeting-summarizer/repository"
	"meeting-summarizer/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func RunHttp(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	svc, err := buildService(ctx, cfg)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to build service")
		return err
	}

	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(*zerolog.Ctx(ctx)))
	addHealth(r)

	var maxUpload int64
	if cfg.Upload.EnforceSizeLimit {
		maxUpload = cfg.Upload.MaxSizeBytes
	}
	handler.NewHandler(svc, maxUpload).Register(r, handler.Auth(cfg.Auth.JWTSecret, cfg.Auth.DefaultOwner))
	if cfg.Auth.JWTSecret == "" {
		zerolog.Ctx(ctx).Warn().Str("owner", cfg.Auth.DefaultOwner).Msg("auth disabled, all requests share one owner")
	}

	srv := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Str("addr", srv.Addr).Msg("start http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
			cancel()
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}
	if err := cfg.DB.Close(); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to close database")
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
	return nil
}

// buildService connects the pipeline to its backends. The queue and the cache
// are optional and stay unset when not configured.
func buildService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	repo, err := repository.NewRepo(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	store := storage.NewAudioStore(cfg.Storage, cfg.MinIOBucket, cfg.MinIOPublicURL)
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket %q: %w", cfg.MinIOBucket, err)
	}

	openaiClient := openai.NewClient(openai.Config{
		APIKey:             cfg.OpenAI.APIKey,
		BaseURL:            cfg.OpenAI.BaseURL,
		TranscriptionModel: cfg.Transcription.Model,
		Language:           cfg.Transcription.Language,
		SummaryModel:       cfg.Summary.OpenAIModel,
		Temperature:        cfg.Summary.Temperature,
		MaxTokens:          cfg.Summary.MaxTokens,
	})

	deps := service.Dependencies{
		Repo:        repo,
		Store:       store,
		Transcriber: openaiClient,
		Summarizer:  openaiClient,
	}

	if cfg.Summary.Provider == constant.SummaryProviderGemini {
		summarizer, err := gemini.NewSummarizer(ctx, gemini.Config{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Summary.GeminiModel,
			Temperature: cfg.Summary.Temperature,
			MaxTokens:   int32(cfg.Summary.MaxTokens),
		})
		if err != nil {
			return nil, fmt.Errorf("gemini summarizer: %w", err)
		}
		deps.Summarizer = summarizer
	}
	zerolog.Ctx(ctx).Info().Str("provider", cfg.Summary.Provider.String()).Str("model", cfg.Summary.Model()).Msg("summary provider selected")

	if cfg.Queue.Enabled {
		conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
		if err != nil {
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		publisher, err := rabbitmq.NewPublisher(ctx, conn, cfg.Queue)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq publisher: %w", err)
		}
		go func() {
			<-ctx.Done()
			_ = publisher.Close()
		}()
		deps.Publisher = publisher
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis not reachable, cache disabled")
			_ = client.Close()
		} else {
			go func() {
				<-ctx.Done()
				_ = client.Close()
			}()
			deps.Cache = cache.NewMeetingCache(client, cfg.Redis.TTL)
		}
	}

	return service.NewService(deps, service.Options{
		Policy: service.UploadPolicy{
			AllowedTypes:     constant.AllowedAudioTypes,
			MaxSize:          cfg.Upload.MaxSizeBytes,
			EnforceSizeLimit: cfg.Upload.EnforceSizeLimit,
		},
		ChunkSize: cfg.Transcription.ChunkSizeBytes,
		NewPacer: func() service.Pacer {
			return service.NewPacer(cfg.Transcription.Interval)
		},
		Sequencer: service.SequencerOptions{
			RateLimitRetries: cfg.Transcription.RateLimitRetries,
		},
	}), nil
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
