package cache

import (
	"context"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"meeting-summarizer/entities"
	"testing"
	"time"
)

func newTestCache(t *testing.T) (*MeetingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewMeetingCache(client, time.Minute), mr
}

func TestMeetingCache(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	meeting := &entities.Meeting{
		ID:            uuid.New(),
		OwnerID:       "user-1",
		Title:         "standup",
		Transcription: "hello team",
		Summary: entities.Summary{
			KeyPoints:   []string{"ship friday"},
			ActionItems: []string{"write release notes"},
			MainTopics:  []string{"release"},
		},
		CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	got, err := c.Get(ctx, meeting.OwnerID, meeting.ID)
	if err != nil || got != nil {
		t.Fatalf("Get() before Set = %v, %v; want nil, nil", got, err)
	}

	if err := c.Set(ctx, meeting); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err = c.Get(ctx, meeting.OwnerID, meeting.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Title != "standup" || got.Summary.ActionItems[0] != "write release notes" {
		t.Errorf("Get() = %+v", got)
	}
	if !got.CreatedAt.Equal(meeting.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, meeting.CreatedAt)
	}

	other, err := c.Get(ctx, "user-2", meeting.ID)
	if err != nil || other != nil {
		t.Errorf("Get() for another owner = %v, %v; want nil, nil", other, err)
	}

	mr.FastForward(2 * time.Minute)
	expired, err := c.Get(ctx, meeting.OwnerID, meeting.ID)
	if err != nil || expired != nil {
		t.Errorf("Get() after ttl = %v, %v; want nil, nil", expired, err)
	}
}

func TestMeetingCacheUnavailable(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	if _, err := c.Get(context.Background(), "user-1", uuid.New()); err == nil {
		t.Error("Get() should fail when redis is down")
	}
}
