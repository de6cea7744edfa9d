package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tournament/config"

	"github.com/charmbracelet/log"
	"github.com/pusher/pusher-http-go/v5"
	"github.com/redis/go-redis/v9"
)

// Publisher delivers one event to the realtime channel.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewPublisher builds the publisher selected by cfg.Driver. It returns nil
// when realtime delivery is disabled.
func NewPublisher(cfg config.RealtimeConfig, logger *log.Logger) (Publisher, error) {
	switch cfg.Driver {
	case "", "none":
		logger.Warn("realtime notifications not configured, events will be skipped")
		return nil, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		return NewRedisPublisher(rdb, cfg.Channel), nil
	case "pusher":
		client := &pusher.Client{
			AppID:      cfg.PusherAppID,
			Key:        cfg.PusherKey,
			Secret:     cfg.PusherSecret,
			Cluster:    cfg.PusherCluster,
			Secure:     true,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
		}
		return NewPusherPublisher(client, cfg.Channel), nil
	default:
		return nil, fmt.Errorf("unsupported realtime driver %q", cfg.Driver)
	}
}

// envelope is the JSON message published on redis.
type envelope struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(envelope{Event: event.Name, Data: event.Data, Timestamp: event.Timestamp})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Name, err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %s to redis channel %s: %w", event.Name, p.channel, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}

// PusherPublisher triggers events through the Pusher HTTP API. The client
// call does not take a context; its http.Client timeout bounds it instead.
type PusherPublisher struct {
	client  *pusher.Client
	channel string
}

func NewPusherPublisher(client *pusher.Client, channel string) *PusherPublisher {
	return &PusherPublisher{client: client, channel: channel}
}

func (p *PusherPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.client.Trigger(p.channel, event.Name, event.Data); err != nil {
		return fmt.Errorf("failed to trigger %s on pusher channel %s: %w", event.Name, p.channel, err)
	}
	return nil
}

func (p *PusherPublisher) Close() error {
	return nil
}
