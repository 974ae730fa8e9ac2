package repository

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"github.com/google/uuid"
	"meeting-summarizer/entities"
	"time"
)

var ErrMalformedCursor = errors.New("malformed cursor")

// Cursor marks the last meeting of a page. Its token form is opaque to clients.
type Cursor struct {
	CreatedAt time.Time `json:"t"`
	ID        uuid.UUID `json:"id"`
}

func CursorOf(meeting *entities.Meeting) Cursor {
	return Cursor{CreatedAt: meeting.CreatedAt.UTC(), ID: meeting.ID}
}

func (c Cursor) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeCursor(token string) (Cursor, error) {
	var c Cursor
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return c, errors.Join(ErrMalformedCursor, err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, errors.Join(ErrMalformedCursor, err)
	}
	if c.ID == uuid.Nil || c.CreatedAt.IsZero() {
		return c, ErrMalformedCursor
	}
	return c, nil
}
