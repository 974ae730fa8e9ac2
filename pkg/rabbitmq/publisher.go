package rabbitmq

import (
	"context"
	"encoding/json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"meeting-summarizer/config"
	"meeting-summarizer/constant"
	"meeting-summarizer/dto"
	"sync"
	"time"
)

type Publisher interface {
	PublishMeetingSummarized(ctx context.Context, message dto.MeetingSummarizedMessage) error
	Close() error
}

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// publisher serializes publishes over a single channel.
type publisher struct {
	mu sync.Mutex
	ch channel
}

func NewPublisher(ctx context.Context, conn *amqp.Connection, cfg *config.RabbitMQ) (Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(constant.MeetingExchange, cfg.Kind, true, false, false, false, nil)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("exchange", constant.MeetingExchange).Msg("failed to declare exchange")
		_ = ch.Close()
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("exchange", constant.MeetingExchange).
		Str("routing_key", constant.MeetingSummarizedKey).
		Msg("meeting event publisher ready")

	return newPublisher(ch), nil
}

func newPublisher(ch channel) *publisher {
	return &publisher{ch: ch}
}

func (p *publisher) PublishMeetingSummarized(ctx context.Context, message dto.MeetingSummarizedMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, constant.MeetingExchange, constant.MeetingSummarizedKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    message.MeetingId.String(),
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Str("meeting_id", message.MeetingId.String()).Msg("published meeting summarized event")
	return nil
}

func (p *publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}
