package realtime

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ChangeChannel is the Redis pub/sub channel carrying event change notices
const ChangeChannel = "events:changes"

// Publisher broadcasts event changes to all service instances
type Publisher interface {
	Publish(ctx context.Context, change Change) error
}

// redisPublisher publishes changes through Redis pub/sub
type redisPublisher struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisPublisher creates a Publisher backed by Redis pub/sub
func NewRedisPublisher(client *redis.Client, logger *zap.Logger) Publisher {
	return &redisPublisher{client: client, logger: logger}
}

func (p *redisPublisher) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, ChangeChannel, payload).Err(); err != nil {
		// A lost notification only delays subscribers until the next snapshot;
		// the write that triggered it has already committed.
		p.logger.Warn("Failed to publish change notice",
			zap.String("event_id", change.EventID.String()),
			zap.String("kind", string(change.Kind)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// nopPublisher drops all changes; used when Redis is not configured and in tests
type nopPublisher struct{}

// NewNopPublisher creates a Publisher that discards every change
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(ctx context.Context, change Change) error {
	return nil
}
