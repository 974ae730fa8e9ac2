package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Summary struct {
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	MainTopics  []string `json:"main_topics"`
}

// Meeting is written once per successful upload and never updated.
type Meeting struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OwnerID       string    `json:"owner_id" gorm:"type:varchar(128);not null;index:idx_meetings_owner_created,priority:1"`
	Title         string    `json:"title" gorm:"type:varchar(255);not null"`
	FileName      string    `json:"file_name" gorm:"type:varchar(255);not null"`
	ContentType   string    `json:"content_type" gorm:"type:varchar(64);not null"`
	SizeBytes     int64     `json:"size_bytes" gorm:"type:bigint;not null"`
	ChunkCount    int       `json:"chunk_count" gorm:"type:integer;not null;default:1"`
	AudioURL      string    `json:"audio_url" gorm:"type:varchar(1024);not null"`
	AudioObject   string    `json:"audio_object" gorm:"type:varchar(500);not null"`
	Transcription string    `json:"transcription" gorm:"type:text;not null"`
	Summary       Summary   `json:"summary" gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null;index:idx_meetings_owner_created,priority:2,sort:desc"`
}

func (Meeting) TableName() string {
	return "meetings"
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	return nil
}
