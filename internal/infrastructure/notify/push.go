// Package notify delivers shipment change notifications to subscribers over
// Redis pub/sub and a polling fallback.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/core/domain"
)

const subscriberBuffer = 16

// Channel is the pub/sub channel carrying changes for one tracking code.
func Channel(trackingCode string) string {
	return "shipments:" + trackingCode
}

// RedisPublisher publishes change notifications as JSON on the shipment's channel.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, n domain.ChangeNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(n.TrackingCode), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// PushFeed subscribes to the Redis channel of a shipment.
type PushFeed struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewPushFeed(client *redis.Client, log zerolog.Logger) *PushFeed {
	return &PushFeed{client: client, log: log}
}

// Subscribe returns once the subscription is confirmed by the server, so no
// change published after Subscribe returns is missed.
func (f *PushFeed) Subscribe(ctx context.Context, trackingCode string) (<-chan domain.ChangeNotification, error) {
	ps := f.client.Subscribe(ctx, Channel(trackingCode))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", trackingCode, err)
	}

	out := make(chan domain.ChangeNotification, subscriberBuffer)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var n domain.ChangeNotification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					f.log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping malformed notification")
					continue
				}
				n.Source = domain.SourcePush
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
