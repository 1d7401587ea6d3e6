package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/table-booking/utils"
)

// RedisRelay shares lifecycle events between service instances so every staff board sees
// every change. Each instance tags what it publishes and ignores its own messages.
type RedisRelay struct {
	client  *redis.Client
	channel string
	origin  string
}

type relayMessage struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

func NewRedisRelay(addr, channel string) *RedisRelay {
	return &RedisRelay{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		channel: channel,
		origin:  uuid.NewString(),
	}
}

// Handle is a Bus subscriber that publishes local events to the channel.
func (r *RedisRelay) Handle(e Event) {
	payload, err := json.Marshal(relayMessage{Origin: r.origin, Event: e})
	if err != nil {
		utils.ErrorLogger.Printf("encode relay event: %v", err)
		return
	}
	if err := r.client.Publish(context.Background(), r.channel, payload).Err(); err != nil {
		utils.ErrorLogger.Printf("redis publish on %s: %v", r.channel, err)
	}
}

// Run delivers events published by other instances until ctx is done.
func (r *RedisRelay) Run(ctx context.Context, deliver Handler) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	utils.InfoLogger.Printf("Relaying booking events on redis channel %s", r.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if e, remote := r.decode(msg.Payload); remote {
				deliver(e)
			}
		}
	}
}

func (r *RedisRelay) decode(payload string) (Event, bool) {
	var m relayMessage
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		utils.ErrorLogger.Printf("decode relay event: %v", err)
		return Event{}, false
	}
	return m.Event, m.Origin != r.origin
}

func (r *RedisRelay) Close() error {
	return r.client.Close()
}
