package repository

import (
	"encoding/base64"
	"errors"
	"github.com/google/uuid"
	"meeting-summarizer/entities"
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	meeting := &entities.Meeting{
		ID:        uuid.New(),
		CreatedAt: time.Date(2026, 2, 10, 14, 3, 7, 123456000, loc),
	}

	got, err := DecodeCursor(CursorOf(meeting).Encode())
	if err != nil {
		t.Fatalf("DecodeCursor() unexpected error: %v", err)
	}
	if got.ID != meeting.ID {
		t.Errorf("ID = %v, want %v", got.ID, meeting.ID)
	}
	if !got.CreatedAt.Equal(meeting.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, meeting.CreatedAt)
	}
	if got.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", got.CreatedAt.Location())
	}
}

func TestDecodeCursorRejects(t *testing.T) {
	encode := func(s string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "***"},
		{name: "not json", token: encode("hello")},
		{name: "missing id", token: encode(`{"t":"2026-02-10T14:03:07Z"}`)},
		{name: "missing time", token: encode(`{"id":"` + uuid.NewString() + `"}`)},
		{name: "bad id", token: encode(`{"t":"2026-02-10T14:03:07Z","id":"nope"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCursor(tt.token); !errors.Is(err, ErrMalformedCursor) {
				t.Errorf("DecodeCursor() error = %v, want ErrMalformedCursor", err)
			}
		})
	}
}
