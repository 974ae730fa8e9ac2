package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"meeting-summarizer/constant"
	"meeting-summarizer/dto"
	"meeting-summarizer/entities"
	"meeting-summarizer/repository"
	"path"
	"strings"
)

//go:generate mockgen -destination=../mocks/mock_service.go -package=mocks meeting-summarizer/service AudioStore,EventPublisher,MeetingCache,Service,SummaryGenerator,Transcriber

type AudioStore interface {
	Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
}

type EventPublisher interface {
	PublishMeetingSummarized(ctx context.Context, message dto.MeetingSummarizedMessage) error
}

// MeetingCache returns (nil, nil) on a miss.
type MeetingCache interface {
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*entities.Meeting, error)
	Set(ctx context.Context, meeting *entities.Meeting) error
}

type Service interface {
	Process(ctx context.Context, ownerID string, upload *dto.AudioUpload) (*dto.UploadResponse, error)
	List(ctx context.Context, ownerID string, query dto.ListQuery) (*dto.ListResponse, error)
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*entities.Meeting, error)
}

type Dependencies struct {
	Repo        repository.MeetingRepository
	Store       AudioStore
	Transcriber Transcriber
	Summarizer  SummaryGenerator
	Publisher   EventPublisher
	Cache       MeetingCache
}

// Options.NewPacer is called once per upload, so pacing never spans uploads.
type Options struct {
	Policy    UploadPolicy
	ChunkSize int
	NewPacer  func() Pacer
	Sequencer SequencerOptions
}

type service struct {
	repo        repository.MeetingRepository
	store       AudioStore
	transcriber Transcriber
	summarizer  SummaryGenerator
	publisher   EventPublisher
	cache       MeetingCache
	opts        Options
}

func NewService(deps Dependencies, opts Options) Service {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = constant.DefaultChunkSize
	}
	if len(opts.Policy.AllowedTypes) == 0 {
		opts.Policy.AllowedTypes = constant.AllowedAudioTypes
	}
	if opts.NewPacer == nil {
		opts.NewPacer = func() Pacer { return NewPacer(0) }
	}
	return &service{
		repo:        deps.Repo,
		store:       deps.Store,
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		publisher:   deps.Publisher,
		cache:       deps.Cache,
		opts:        opts,
	}
}

// Process runs one upload through storage, transcription, summary and persistence.
// Nothing is kept when a step fails: the stored audio is removed and no record is written.
// Cancelling ctx does not stop a run; only its values are used.
func (s *service) Process(ctx context.Context, ownerID string, upload *dto.AudioUpload) (resp *dto.UploadResponse, err error) {
	ctx = context.WithoutCancel(ctx)
	contentType, err := ValidateUpload(s.opts.Policy, upload)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("rejected upload")
		return nil, err
	}

	meetingID := uuid.New()
	fileName := path.Base(upload.FileName)
	objectName := path.Join("meetings", meetingID.String(), fileName)
	logger := zerolog.Ctx(ctx).With().
		Str("meeting_id", meetingID.String()).
		Str("owner_id", ownerID).
		Str("file_name", fileName).
		Logger()
	ctx = logger.WithContext(ctx)

	zerolog.Ctx(ctx).Info().Int("size_bytes", len(upload.Data)).Str("content_type", contentType).Msg("uploading audio")
	audioURL, err := s.store.Put(ctx, objectName, upload.Data, contentType)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to upload audio")
		return nil, fmt.Errorf("%w: upload audio: %w", ErrStorage, err)
	}

	defer func() {
		if err != nil {
			if removeErr := s.store.Remove(ctx, objectName); removeErr != nil {
				zerolog.Ctx(ctx).Error().Err(removeErr).Str("object_name", objectName).Msg("failed to remove audio")
			}
		}
	}()

	chunks := BuildChunks(fileName, contentType, upload.Data, s.opts.ChunkSize)
	zerolog.Ctx(ctx).Info().Int("chunk_count", len(chunks)).Msg("transcribing audio")
	sequencer := NewSequencer(s.transcriber, s.opts.NewPacer(), s.opts.Sequencer)
	transcript, err := sequencer.Transcribe(ctx, chunks)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int("transcript_length", len(transcript)).Msg("generating summary")
	raw, err := s.summarizer.Generate(ctx, transcript)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to generate summary")
		if IsRateLimited(err) {
			return nil, fmt.Errorf("%w: %w: %w", ErrSummary, ErrRateLimited, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrSummary, err)
	}
	summary := ParseSummary(raw)

	meeting := &entities.Meeting{
		ID:            meetingID,
		OwnerID:       ownerID,
		Title:         strings.TrimSuffix(fileName, path.Ext(fileName)),
		FileName:      fileName,
		ContentType:   contentType,
		SizeBytes:     int64(len(upload.Data)),
		ChunkCount:    len(chunks),
		AudioURL:      audioURL,
		AudioObject:   objectName,
		Transcription: transcript,
		Summary:       summary,
	}
	id, err := s.repo.Create(ctx, meeting)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to store meeting")
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.afterCreate(ctx, meeting)
	zerolog.Ctx(ctx).Info().Msg("meeting summarized")

	return &dto.UploadResponse{
		URL:           audioURL,
		Transcription: transcript,
		Summary:       summary,
		SummaryId:     id,
	}, nil
}

// afterCreate failures are logged only; the meeting is already stored.
func (s *service) afterCreate(ctx context.Context, meeting *entities.Meeting) {
	if s.cache != nil {
		if err := s.cache.Set(ctx, meeting); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to cache meeting")
		}
	}

	if s.publisher != nil {
		err := s.publisher.PublishMeetingSummarized(ctx, dto.MeetingSummarizedMessage{
			MeetingId:  meeting.ID,
			OwnerId:    meeting.OwnerID,
			Title:      meeting.Title,
			AudioURL:   meeting.AudioURL,
			ChunkCount: meeting.ChunkCount,
			CreatedAt:  meeting.CreatedAt,
		})
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to publish meeting summarized event")
		}
	}
}

func (s *service) List(ctx context.Context, ownerID string, query dto.ListQuery) (*dto.ListResponse, error) {
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = constant.DefaultPageSize
	}
	pageSize = min(pageSize, constant.MaxPageSize)

	after, err := s.resolveCursor(ctx, ownerID, query)
	if err != nil {
		return nil, err
	}

	meetings, err := s.repo.ListByOwner(ctx, ownerID, after, pageSize+1)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list meetings")
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	resp := &dto.ListResponse{Summaries: meetings}
	if len(meetings) > pageSize {
		resp.Summaries = meetings[:pageSize]
		resp.HasMore = true
		resp.NextCursor = repository.CursorOf(resp.Summaries[pageSize-1]).Encode()
	}
	if resp.Summaries == nil {
		resp.Summaries = []*entities.Meeting{}
	}
	return resp, nil
}

// resolveCursor prefers the opaque cursor token. A bare lastId costs an extra lookup.
func (s *service) resolveCursor(ctx context.Context, ownerID string, query dto.ListQuery) (*repository.Cursor, error) {
	if query.Cursor != "" {
		cursor, err := repository.DecodeCursor(query.Cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
		}
		return &cursor, nil
	}

	if query.LastId == "" {
		return nil, nil
	}

	id, err := uuid.Parse(query.LastId)
	if err != nil {
		return nil, fmt.Errorf("%w: lastId: %w", ErrInvalidCursor, err)
	}
	last, err := s.repo.FindByID(ctx, ownerID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: lastId %s not found", ErrInvalidCursor, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	cursor := repository.CursorOf(last)
	return &cursor, nil
}

func (s *service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*entities.Meeting, error) {
	if s.cache != nil {
		meeting, err := s.cache.Get(ctx, ownerID, id)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to read meeting cache")
		}
		if meeting != nil {
			return meeting, nil
		}
	}

	meeting, err := s.repo.FindByID(ctx, ownerID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, meeting); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to cache meeting")
		}
	}
	return meeting, nil
}
