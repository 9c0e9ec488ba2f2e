package repository

import (
	"context"
	"strings"
	"time"

	redisapp "equestrian/internal/storage/redis"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

type RedisTokenRepo struct {
	client *redisapp.Client
}

func NewRedisTokenRepo(client *redisapp.Client) *RedisTokenRepo {
	return &RedisTokenRepo{client: client}
}

func (r *RedisTokenRepo) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, exp time.Duration) error {
	return r.client.Set(ctx, refreshTokenKey(userID.String(), token), "1", exp).Err()
}

func (r *RedisTokenRepo) GetRefreshToken(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	val, err := r.client.Get(ctx, refreshTokenKey(userID.String(), token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	return val == "1", err
}

func (r *RedisTokenRepo) DeleteRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	return r.client.Del(ctx, refreshTokenKey(userID.String(), token)).Err()
}

func (r *RedisTokenRepo) DeleteAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	keys, err := r.client.Keys(ctx, refreshTokenKey(userID.String(), "*")).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// MemoryTokenRepo хранит refresh-токены в памяти процесса, когда Redis не настроен
type MemoryTokenRepo struct {
	c *cache.Cache
}

func NewMemoryTokenRepo() *MemoryTokenRepo {
	return &MemoryTokenRepo{c: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func (r *MemoryTokenRepo) SaveRefreshToken(_ context.Context, userID uuid.UUID, token string, exp time.Duration) error {
	r.c.Set(refreshTokenKey(userID.String(), token), "1", exp)
	return nil
}

func (r *MemoryTokenRepo) GetRefreshToken(_ context.Context, userID uuid.UUID, token string) (bool, error) {
	_, ok := r.c.Get(refreshTokenKey(userID.String(), token))
	return ok, nil
}

func (r *MemoryTokenRepo) DeleteRefreshToken(_ context.Context, userID uuid.UUID, token string) error {
	r.c.Delete(refreshTokenKey(userID.String(), token))
	return nil
}

func (r *MemoryTokenRepo) DeleteAllUserTokens(_ context.Context, userID uuid.UUID) error {
	prefix := refreshTokenKey(userID.String(), "")
	for key := range r.c.Items() {
		if strings.HasPrefix(key, prefix) {
			r.c.Delete(key)
		}
	}
	return nil
}

func refreshTokenKey(userID, token string) string {
	return "refresh:" + userID + ":" + token
}
