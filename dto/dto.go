package dto

import (
	"github.com/google/uuid"
	"meeting-summarizer/entities"
	"time"
)

type AudioUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type UploadResponse struct {
	URL           string           `json:"url"`
	Transcription string           `json:"transcription"`
	Summary       entities.Summary `json:"summary"`
	SummaryId     uuid.UUID        `json:"summaryId"`
}

type ListQuery struct {
	LastId   string `form:"lastId"`
	Cursor   string `form:"cursor"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

type ListResponse struct {
	Summaries  []*entities.Meeting `json:"summaries"`
	HasMore    bool                `json:"hasMore"`
	NextCursor string              `json:"nextCursor,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MeetingSummarizedMessage struct {
	MeetingId  uuid.UUID `json:"meetingId"`
	OwnerId    string    `json:"ownerId"`
	Title      string    `json:"title"`
	AudioURL   string    `json:"audioUrl"`
	ChunkCount int       `json:"chunkCount"`
	CreatedAt  time.Time `json:"createdAt"`
}
