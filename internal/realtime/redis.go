package realtime

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/kaamwala/kaamwala_be/internal/logger"
)

const AuthChannel = "kw:auth-change"

// NewRedis creates a new Redis client
func NewRedis(addr, password string, db int) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	logger.Info("redis client created", "addr", addr)
	return rdb
}

// Bridge fans auth-change events out to every instance sharing the Redis.
type Bridge struct {
	RDB     *redis.Client
	Hub     *Hub
	Channel string
}

func NewBridge(rdb *redis.Client, hub *Hub) *Bridge {
	b := &Bridge{RDB: rdb, Hub: hub, Channel: AuthChannel}
	hub.SetPublisher(b.publish)
	return b
}

func (b *Bridge) publish(ev AuthEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Error("marshal auth event", "err", err)
		return
	}
	if err := b.RDB.Publish(context.Background(), b.Channel, payload).Err(); err != nil {
		logger.Warn("publish auth event", "err", err)
	}
}

// Run delivers events from other instances to the local hub until ctx ends.
// ready, when non-nil, is closed once the subscription is confirmed.
func (b *Bridge) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := b.RDB.Subscribe(ctx, b.Channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("auth bridge: subscription closed")
			}
			var ev AuthEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Warn("drop malformed auth event", "err", err)
				continue
			}
			if ev.Origin == b.Hub.InstanceID() {
				continue
			}
			b.Hub.Deliver(ev)
		}
	}
}
