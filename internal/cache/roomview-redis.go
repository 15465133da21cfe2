package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pulley-doreurae/careerquest-chat/internal/dtos/chat_dto"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	"github.com/redis/go-redis/v9"
)

const (
	userRoomsKeyFmt = "chat:rooms:%s"
	initFlagKeyFmt  = "chat:rooms:%s:init"
	latestKeyFmt    = "chat:last:%s"
)

type RedisRoomViewCache struct {
	Redis *redis.Client
}

func NewRoomViewCache(rdb *redis.Client) RoomViewCacheContract {
	return &RedisRoomViewCache{Redis: rdb}
}

func userRoomsKey(userID string) string {
	return fmt.Sprintf(userRoomsKeyFmt, userID)
}

func initFlagKey(userID string) string {
	return fmt.Sprintf(initFlagKeyFmt, userID)
}

func latestKey(roomNumber string) string {
	return fmt.Sprintf(latestKeyFmt, roomNumber)
}

func (c *RedisRoomViewCache) IsInitialized(ctx context.Context, userID string) (bool, error) {
	n, err := c.Redis.Exists(ctx, initFlagKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *RedisRoomViewCache) MarkInitialized(ctx context.Context, userID string) error {
	return c.Redis.Set(ctx, initFlagKey(userID), "1", 0).Err()
}

func (c *RedisRoomViewCache) PutSummary(ctx context.Context, userID string, summary *chat_dto.RoomSummary) error {
	bytes, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.Redis.HSet(ctx, userRoomsKey(userID), summary.RoomID, bytes).Err()
}

func (c *RedisRoomViewCache) GetSummary(ctx context.Context, userID, roomNumber string) (*chat_dto.RoomSummary, error) {
	val, err := c.Redis.HGet(ctx, userRoomsKey(userID), roomNumber).Result()
	if err == redis.Nil {
		return nil, nil // cache-miss
	} else if err != nil {
		return nil, err
	}

	var summary chat_dto.RoomSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *RedisRoomViewCache) GetAllSummaries(ctx context.Context, userID string) ([]*chat_dto.RoomSummary, error) {
	fields, err := c.Redis.HGetAll(ctx, userRoomsKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]*chat_dto.RoomSummary, 0, len(fields))
	for _, val := range fields {
		var summary chat_dto.RoomSummary
		if err := json.Unmarshal([]byte(val), &summary); err != nil {
			return nil, err
		}
		summaries = append(summaries, &summary)
	}
	return summaries, nil
}

func (c *RedisRoomViewCache) RemoveSummary(ctx context.Context, userID, roomNumber string) error {
	return c.Redis.HDel(ctx, userRoomsKey(userID), roomNumber).Err()
}

func (c *RedisRoomViewCache) Clear(ctx context.Context, userID string) error {
	return c.Redis.Del(ctx, userRoomsKey(userID), initFlagKey(userID)).Err()
}

func (c *RedisRoomViewCache) SetLatest(ctx context.Context, roomNumber string, msg *entity.ChatMessage) error {
	bytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, latestKey(roomNumber), bytes, 0).Err()
}

func (c *RedisRoomViewCache) GetLatest(ctx context.Context, roomNumber string) (*entity.ChatMessage, error) {
	val, err := c.Redis.Get(ctx, latestKey(roomNumber)).Result()
	if err == redis.Nil {
		return nil, nil // cache-miss
	} else if err != nil {
		return nil, err
	}

	var msg entity.ChatMessage
	if err := json.Unmarshal([]byte(val), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
