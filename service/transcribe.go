package service

import (
	"context"
	"fmt"
	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"strings"
	"time"
)

type Transcriber interface {
	Transcribe(ctx context.Context, chunk Chunk) (string, error)
}

// Pacer spaces out upstream calls. *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer returns a token bucket allowing one call per interval with no initial delay.
func NewPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

type SequencerOptions struct {
	RateLimitRetries uint
	InitialBackOff   time.Duration
	MaxBackOff       time.Duration
}

// Sequencer transcribes chunks one at a time, in index order.
type Sequencer struct {
	transcriber Transcriber
	pacer       Pacer
	opts        SequencerOptions
}

func NewSequencer(transcriber Transcriber, pacer Pacer, opts SequencerOptions) *Sequencer {
	if pacer == nil {
		pacer = NewPacer(0)
	}
	if opts.InitialBackOff <= 0 {
		opts.InitialBackOff = backoff.DefaultInitialInterval
	}
	if opts.MaxBackOff <= 0 {
		opts.MaxBackOff = 10 * time.Second
	}
	return &Sequencer{
		transcriber: transcriber,
		pacer:       pacer,
		opts:        opts,
	}
}

// Transcribe returns the space-joined transcript of all chunks. The first failing
// chunk aborts the run; later chunks are never sent.
func (s *Sequencer) Transcribe(ctx context.Context, chunks []Chunk) (string, error) {
	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if err := s.pacer.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: chunk %d: %w", ErrTranscription, chunk.Index, err)
		}

		zerolog.Ctx(ctx).Info().
			Int("chunk_index", chunk.Index).
			Int("total_chunks", len(chunks)).
			Int("chunk_size_bytes", len(chunk.Data)).
			Msg("transcribing chunk")

		text, err := s.transcribeChunk(ctx, chunk)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Int("chunk_index", chunk.Index).Msg("failed to transcribe chunk")
			if IsRateLimited(err) {
				return "", fmt.Errorf("%w: chunk %d: %w", ErrRateLimited, chunk.Index, err)
			}
			return "", fmt.Errorf("%w: chunk %d: %w", ErrTranscription, chunk.Index, err)
		}
		texts = append(texts, text)
	}

	return strings.Join(texts, " "), nil
}

func (s *Sequencer) transcribeChunk(ctx context.Context, chunk Chunk) (string, error) {
	operation := func() (string, error) {
		text, err := s.transcriber.Transcribe(ctx, chunk)
		if err == nil {
			return text, nil
		}
		if IsRateLimited(err) {
			zerolog.Ctx(ctx).Warn().Err(err).Int("chunk_index", chunk.Index).Msg("transcription rate limited")
			return "", err
		}
		return "", backoff.Permanent(err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.opts.InitialBackOff
	bo.MaxInterval = s.opts.MaxBackOff

	return backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(s.opts.RateLimitRetries+1))
}
