package service_test

import (
	"context"
	"errors"
	"go.uber.org/mock/gomock"
	"meeting-summarizer/mocks"
	"meeting-summarizer/service"
	"net/http"
	"strings"
	"testing"
	"time"
)

type countingPacer struct {
	calls int
}

func (p *countingPacer) Wait(context.Context) error {
	p.calls++
	return nil
}

func testChunks(n int) []service.Chunk {
	return service.BuildChunks("meeting.mp3", "audio/mpeg", []byte(strings.Repeat("x", n*4)), 4)
}

func TestSequencerJoinsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	transcriber := mocks.NewMockTranscriber(ctrl)
	pacer := &countingPacer{}

	chunks := testChunks(3)
	gomock.InOrder(
		transcriber.EXPECT().Transcribe(gomock.Any(), chunks[0]).Return("good morning", nil),
		transcriber.EXPECT().Transcribe(gomock.Any(), chunks[1]).Return("everyone", nil),
		transcriber.EXPECT().Transcribe(gomock.Any(), chunks[2]).Return("let's begin", nil),
	)

	seq := service.NewSequencer(transcriber, pacer, service.SequencerOptions{})
	got, err := seq.Transcribe(context.Background(), chunks)
	if err != nil {
		t.Fatalf("Transcribe() unexpected error: %v", err)
	}
	if want := "good morning everyone let's begin"; got != want {
		t.Errorf("Transcribe() = %q, want %q", got, want)
	}
	if pacer.calls != 3 {
		t.Errorf("pacer waited %d times, want 3", pacer.calls)
	}
}

func TestSequencerRateLimitAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	transcriber := mocks.NewMockTranscriber(ctrl)

	chunks := testChunks(3)
	gomock.InOrder(
		transcriber.EXPECT().Transcribe(gomock.Any(), chunks[0]).Return("first", nil),
		transcriber.EXPECT().Transcribe(gomock.Any(), chunks[1]).
			Return("", &service.UpstreamError{StatusCode: http.StatusTooManyRequests, Message: "slow down"}),
	)

	seq := service.NewSequencer(transcriber, nil, service.SequencerOptions{})
	_, err := seq.Transcribe(context.Background(), chunks)
	if !errors.Is(err, service.ErrRateLimited) {
		t.Fatalf("Transcribe() error = %v, want ErrRateLimited", err)
	}
	if status := service.StatusCode(err); status != http.StatusTooManyRequests {
		t.Errorf("StatusCode() = %d, want 429", status)
	}
}

func TestSequencerFailureNamesChunk(t *testing.T) {
	ctrl := gomock.NewController(t)
	transcriber := mocks.NewMockTranscriber(ctrl)

	chunks := testChunks(2)
	gomock.InOrder(
		transcriber.EXPECT().Transcribe(gomock.Any(), chunks[0]).
			Return("", &service.UpstreamError{StatusCode: http.StatusBadGateway, Message: "bad gateway"}),
	)

	seq := service.NewSequencer(transcriber, nil, service.SequencerOptions{RateLimitRetries: 3})
	_, err := seq.Transcribe(context.Background(), chunks)
	if !errors.Is(err, service.ErrTranscription) {
		t.Fatalf("Transcribe() error = %v, want ErrTranscription", err)
	}
	if !strings.Contains(err.Error(), "chunk 0") {
		t.Errorf("error %q does not name the chunk", err)
	}
	if status := service.StatusCode(err); status != http.StatusBadGateway {
		t.Errorf("StatusCode() = %d, want 502", status)
	}
}

func TestSequencerRetriesRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	transcriber := mocks.NewMockTranscriber(ctrl)

	chunks := testChunks(1)
	gomock.InOrder(
		transcriber.EXPECT().Transcribe(gomock.Any(), chunks[0]).
			Return("", &service.UpstreamError{StatusCode: http.StatusTooManyRequests}),
		transcriber.EXPECT().Transcribe(gomock.Any(), chunks[0]).Return("hello", nil),
	)

	seq := service.NewSequencer(transcriber, nil, service.SequencerOptions{
		RateLimitRetries: 2,
		InitialBackOff:   time.Millisecond,
		MaxBackOff:       5 * time.Millisecond,
	})
	got, err := seq.Transcribe(context.Background(), chunks)
	if err != nil {
		t.Fatalf("Transcribe() unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("Transcribe() = %q, want %q", got, "hello")
	}
}

func TestSequencerStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	transcriber := mocks.NewMockTranscriber(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq := service.NewSequencer(transcriber, service.NewPacer(time.Hour), service.SequencerOptions{})
	_, err := seq.Transcribe(ctx, testChunks(2))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Transcribe() error = %v, want context.Canceled", err)
	}
}

func TestPacerSpacing(t *testing.T) {
	const interval = 40 * time.Millisecond
	pacer := service.NewPacer(interval)
	ctx := context.Background()

	start := time.Now()
	for range 3 {
		if err := pacer.Wait(ctx); err != nil {
			t.Fatalf("Wait() unexpected error: %v", err)
		}
	}
	// the first call is free, the next two wait one interval each
	if elapsed := time.Since(start); elapsed < 2*interval-5*time.Millisecond {
		t.Errorf("three waits took %v, want at least %v", elapsed, 2*interval)
	}
}
