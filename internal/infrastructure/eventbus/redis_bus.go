package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

// Publisher delivers an event to the connections held by this process.
type Publisher interface {
	Publish(ctx context.Context, evt entity.Event, recipients ...string) error
}

type envelope struct {
	Recipients []string     `json:"recipients"`
	Event      entity.Event `json:"event"`
}

// RedisBus fans events out to every instance: Publish writes to a Redis
// channel, Run forwards whatever arrives on it to the local publisher.
type RedisBus struct {
	rdb     *goredis.Client
	channel string
	local   Publisher
}

func NewRedisBus(addr, channel string, local Publisher) (*RedisBus, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if local == nil {
		return nil, fmt.Errorf("local publisher required")
	}
	if channel == "" {
		channel = "chat-events"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisBus{rdb: rdb, channel: channel, local: local}, nil
}

func (b *RedisBus) Publish(ctx context.Context, evt entity.Event, recipients ...string) error {
	if len(recipients) == 0 {
		return nil
	}
	raw, err := json.Marshal(envelope{Recipients: recipients, Event: evt})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

// Run subscribes to the channel and forwards events until ctx is done.
func (b *RedisBus) Run(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			if err := forward(ctx, b.local, []byte(m.Payload)); err != nil {
				logger.Warn("bad redis event payload: %v", err)
			}
		}
	}
}

func (b *RedisBus) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

func (b *RedisBus) Close() error {
	return b.rdb.Close()
}

func forward(ctx context.Context, local Publisher, payload []byte) error {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return err
	}
	return local.Publish(ctx, env.Event, env.Recipients...)
}
