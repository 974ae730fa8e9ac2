package repository

import (
	"context"
	"database/sql"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"meeting-summarizer/entities"
)

//go:generate mockgen -destination=../mocks/mock_repository.go -package=mocks meeting-summarizer/repository MeetingRepository

type MeetingRepository interface {
	GetDB() *gorm.DB
	Migrate(ctx context.Context) error
	Create(ctx context.Context, meeting *entities.Meeting) (uuid.UUID, error)
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entities.Meeting, error)
	ListByOwner(ctx context.Context, ownerID string, after *Cursor, limit int) ([]*entities.Meeting, error)
}

type repo struct {
	db *gorm.DB
}

func NewRepo(db *sql.DB) (MeetingRepository, error) {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		},
	)
	if err != nil {
		return nil, err
	}
	return NewGormRepo(gormDB), nil
}

func NewGormRepo(db *gorm.DB) MeetingRepository {
	return &repo{
		db: db,
	}
}

func (r *repo) GetDB() *gorm.DB {
	return r.db
}

func (r *repo) Migrate(ctx context.Context) error {
	return r.GetDB().WithContext(ctx).AutoMigrate(&entities.Meeting{})
}

func (r *repo) Create(ctx context.Context, meeting *entities.Meeting) (uuid.UUID, error) {
	err := r.GetDB().WithContext(ctx).Create(meeting).Error
	if err != nil {
		return uuid.Nil, err
	}

	return meeting.ID, nil
}

func (r *repo) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entities.Meeting, error) {
	meeting := &entities.Meeting{}
	err := r.GetDB().WithContext(ctx).First(meeting, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}

	return meeting, nil
}

// ListByOwner returns the owner's meetings newest first, starting strictly after
// the cursor when one is given.
func (r *repo) ListByOwner(ctx context.Context, ownerID string, after *Cursor, limit int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	query := r.GetDB().WithContext(ctx).Where("owner_id = ?", ownerID)
	if after != nil {
		query = query.Where("(created_at < ? OR (created_at = ? AND id < ?))", after.CreatedAt, after.CreatedAt, after.ID)
	}

	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}
