package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"meeting-summarizer/entities"
	"time"
)

const defaultTTL = 10 * time.Minute

// MeetingCache is a read-through cache for the meeting detail view. Meetings are
// immutable, so entries only ever expire.
type MeetingCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewMeetingCache(client redis.UniversalClient, ttl time.Duration) *MeetingCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MeetingCache{
		client: client,
		ttl:    ttl,
	}
}

func key(ownerID string, id uuid.UUID) string {
	return fmt.Sprintf("meeting:%s:%s", ownerID, id)
}

func (c *MeetingCache) Get(ctx context.Context, ownerID string, id uuid.UUID) (*entities.Meeting, error) {
	b, err := c.client.Get(ctx, key(ownerID, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	meeting := &entities.Meeting{}
	if err := json.Unmarshal(b, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (c *MeetingCache) Set(ctx context.Context, meeting *entities.Meeting) error {
	b, err := json.Marshal(meeting)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(meeting.OwnerID, meeting.ID), b, c.ttl).Err()
}
