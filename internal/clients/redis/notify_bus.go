package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/renthaus/enlistd/internal/notify"
	"github.com/renthaus/enlistd/internal/platform/logger"
)

// NotifyBus relays payment notifications across processes via redis
// pub/sub, so every API instance can serve the owner's event stream.
type NotifyBus interface {
	Publish(ctx context.Context, msg notify.Message) error
	StartForwarder(ctx context.Context, onMsg func(m notify.Message)) error
	Client() *goredis.Client
	Close() error
}

type notifyBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewNotifyBus(log *logger.Logger) (NotifyBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_CHANNEL"))
	if ch == "" {
		ch = "notify"
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

	return &notifyBus{
		log:     log.With("service", "RedisNotifyBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *notifyBus) Publish(ctx context.Context, msg notify.Message) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis notify bus not initialized")
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *notifyBus) StartForwarder(ctx context.Context, onMsg func(m notify.Message)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis notify bus not initialized")
	}
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var msg notify.Message
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					b.log.Warn("bad redis notify payload", "error", err)
					continue
				}
				onMsg(msg)
			}
		}
	}()

	return nil
}

func (b *notifyBus) Client() *goredis.Client {
	if b == nil {
		return nil
	}
	return b.rdb
}

func (b *notifyBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
