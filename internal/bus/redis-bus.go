package bus

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const channelName = "chat:events"

type RedisEventBus struct {
	Redis *redis.Client
}

func NewEventBus(rdb *redis.Client) EventBusContract {
	return &RedisEventBus{Redis: rdb}
}

func (b *RedisEventBus) Publish(ctx context.Context, event *ChatEvent) error {
	bytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.Redis.Publish(ctx, channelName, bytes).Err()
}

func (b *RedisEventBus) Subscribe(ctx context.Context) (<-chan *ChatEvent, error) {
	sub := b.Redis.Subscribe(ctx, channelName)

	// fail fast if the subscription could not be established
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan *ChatEvent, 64)
	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event ChatEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Warn().Err(err).Msg("bus: failed to unmarshal chat event")
					continue
				}
				select {
				case out <- &event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
