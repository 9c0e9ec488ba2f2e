package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/pedigree"
	redisapp "equestrian/internal/storage/redis"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// noParent значение в кэше для лошади без родителя в данной роли
	noParent = "none"

	versionTTL = 24 * time.Hour
)

// setIfVersion пишет обоих родителей, только если версия лошади не изменилась.
// KEYS: версия, dam, sire. ARGV: ожидаемая версия, dam, sire, ttl в миллисекундах.
const setIfVersion = `
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[4])
redis.call('SET', KEYS[3], ARGV[3], 'PX', ARGV[4])
return 1
`

// RedisParentCache реализация pedigree.ParentCache поверх Redis,
// разделяемая между несколькими экземплярами сервиса
type RedisParentCache struct {
	client *redisapp.Client
	ttl    time.Duration
}

func NewRedisParentCache(client *redisapp.Client, ttl time.Duration) *RedisParentCache {
	if ttl <= 0 {
		ttl = pedigree.DefaultParentTTL
	}
	return &RedisParentCache{client: client, ttl: ttl}
}

func (c *RedisParentCache) Get(ctx context.Context, horseID uuid.UUID, role models.ParentRole) (uuid.UUID, bool, error) {
	const op = "repository.RedisParentCache.Get"

	val, err := c.client.Get(ctx, pedigree.CacheKey(horseID, role)).Result()
	if err == redis.Nil {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%s: %w", op, err)
	}

	if val == noParent {
		return uuid.Nil, true, nil
	}

	id, err := uuid.Parse(val)
	if err != nil {
		// испорченное значение считаем промахом
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

func (c *RedisParentCache) Versions(ctx context.Context, horseIDs []uuid.UUID) (map[uuid.UUID]uint64, error) {
	const op = "repository.RedisParentCache.Versions"

	out := make(map[uuid.UUID]uint64, len(horseIDs))
	if len(horseIDs) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(horseIDs))
	for _, id := range horseIDs {
		keys = append(keys, pedigree.VersionKey(id))
	}

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, id := range horseIDs {
		raw, ok := vals[i].(string)
		if !ok {
			out[id] = 0
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad version for %s: %w", op, id, err)
		}
		out[id] = v
	}
	return out, nil
}

func (c *RedisParentCache) Set(ctx context.Context, horseID uuid.UUID, version uint64, damID, sireID uuid.UUID) (bool, error) {
	const op = "repository.RedisParentCache.Set"

	keys := []string{
		pedigree.VersionKey(horseID),
		pedigree.CacheKey(horseID, models.RoleDam),
		pedigree.CacheKey(horseID, models.RoleSire),
	}

	stored, err := c.client.Eval(ctx, setIfVersion, keys,
		strconv.FormatUint(version, 10), parentValue(damID), parentValue(sireID), c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return stored == 1, nil
}

// Invalidate увеличивает версии и удаляет записи в одной транзакции
func (c *RedisParentCache) Invalidate(ctx context.Context, horseIDs ...uuid.UUID) error {
	const op = "repository.RedisParentCache.Invalidate"

	if len(horseIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(horseIDs)*2)
	for _, id := range horseIDs {
		keys = append(keys, pedigree.CacheKey(id, models.RoleDam), pedigree.CacheKey(id, models.RoleSire))
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range horseIDs {
			pipe.Incr(ctx, pedigree.VersionKey(id))
			pipe.Expire(ctx, pedigree.VersionKey(id), versionTTL)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func parentValue(id uuid.UUID) string {
	if id == uuid.Nil {
		return noParent
	}
	return id.String()
}
