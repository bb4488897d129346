package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"game-service/internal/database"

	"github.com/redis/go-redis/v9"
)

// RedisService wraps the shared Redis connection with the operations the
// game server needs: online presence, request rate limiting, and a small
// JSON cache for read-heavy endpoints.
type RedisService struct {
	client *database.RedisClient
}

func NewRedisService(client *database.RedisClient) *RedisService {
	return &RedisService{
		client: client,
	}
}

// =============================================================================
// Player Presence
// =============================================================================

func (r *RedisService) SetOnline(ctx context.Context, userID int64) error {
	id := strconv.FormatInt(userID, 10)
	pipe := r.client.GetClient().Pipeline()

	pipe.SAdd(ctx, "online_players", id)
	pipe.HSet(ctx, fmt.Sprintf("player:%s:status", id), map[string]interface{}{
		"status":    "online",
		"last_seen": time.Now().Unix(),
	})
	pipe.Expire(ctx, fmt.Sprintf("player:%s:status", id), 5*time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		slog.Error("Failed to set player online", "userID", userID, "error", err)
		return err
	}
	return nil
}

func (r *RedisService) SetOffline(ctx context.Context, userID int64) error {
	id := strconv.FormatInt(userID, 10)
	pipe := r.client.GetClient().Pipeline()

	pipe.SRem(ctx, "online_players", id)
	pipe.HSet(ctx, fmt.Sprintf("player:%s:status", id), map[string]interface{}{
		"status":    "offline",
		"last_seen": time.Now().Unix(),
	})
	pipe.Expire(ctx, fmt.Sprintf("player:%s:status", id), 24*time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		slog.Error("Failed to set player offline", "userID", userID, "error", err)
		return err
	}
	return nil
}

func (r *RedisService) IsOnline(ctx context.Context, userID int64) (bool, error) {
	id := strconv.FormatInt(userID, 10)
	return r.client.GetClient().SIsMember(ctx, "online_players", id).Result()
}

func (r *RedisService) GetOnlinePlayers(ctx context.Context) ([]string, error) {
	return r.client.GetClient().SMembers(ctx, "online_players").Result()
}

// =============================================================================
// Rate Limiting
// =============================================================================

// CheckRateLimit implements a sliding window over a sorted set keyed per
// caller. Returns true while the caller is under the limit.
func (r *RedisService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window).Unix()

	pipe := r.client.GetClient().Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, window)

	results, err := pipe.Exec(ctx)
	if err != nil {
		return false, err
	}

	count := results[1].(*redis.IntCmd).Val()
	return count < int64(limit), nil
}

// =============================================================================
// Cache Operations
// =============================================================================

func (r *RedisService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return r.client.GetClient().Set(ctx, key, data, expiration).Err()
}

func (r *RedisService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.GetClient().Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisService) Delete(ctx context.Context, keys ...string) error {
	return r.client.GetClient().Del(ctx, keys...).Err()
}
