package repository_test

import (
	"context"
	"testing"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/pedigree"
	"equestrian/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisParentCache(t *testing.T) {
	ctx := context.Background()
	client, mock := NewMockClient()
	ttl := 15 * time.Minute
	c := repository.NewRedisParentCache(client, ttl)

	horse, dam := uuid.New(), uuid.New()
	damKey := pedigree.CacheKey(horse, models.RoleDam)
	sireKey := pedigree.CacheKey(horse, models.RoleSire)
	verKey := pedigree.VersionKey(horse)
	setKeys := []string{verKey, damKey, sireKey}

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet(damKey).RedisNil()

		_, ok, err := c.Get(ctx, horse, models.RoleDam)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("versions", func(t *testing.T) {
		other := uuid.New()
		mock.ExpectMGet(verKey, pedigree.VersionKey(other)).SetVal([]interface{}{"3", nil})

		got, err := c.Versions(ctx, []uuid.UUID{horse, other})
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]uint64{horse: 3, other: 0}, got)
	})

	t.Run("set parent and none", func(t *testing.T) {
		mock.ExpectEval(repository.SetIfVersionScript, setKeys, "3", dam.String(), "none", ttl.Milliseconds()).SetVal(int64(1))

		stored, err := c.Set(ctx, horse, 3, dam, uuid.Nil)
		require.NoError(t, err)
		assert.True(t, stored)
	})

	t.Run("set after invalidation is dropped", func(t *testing.T) {
		mock.ExpectEval(repository.SetIfVersionScript, setKeys, "3", dam.String(), "none", ttl.Milliseconds()).SetVal(int64(0))

		stored, err := c.Set(ctx, horse, 3, dam, uuid.Nil)
		require.NoError(t, err)
		assert.False(t, stored)
	})

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet(damKey).SetVal(dam.String())
		mock.ExpectGet(sireKey).SetVal("none")

		got, ok, err := c.Get(ctx, horse, models.RoleDam)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, dam, got)

		got, ok, err = c.Get(ctx, horse, models.RoleSire)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, uuid.Nil, got)
	})

	t.Run("garbage value is a miss", func(t *testing.T) {
		mock.ExpectGet(damKey).SetVal("not-a-uuid")

		_, ok, err := c.Get(ctx, horse, models.RoleDam)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate", func(t *testing.T) {
		mock.ExpectTxPipeline()
		mock.ExpectIncr(verKey).SetVal(4)
		mock.ExpectExpire(verKey, 24*time.Hour).SetVal(true)
		mock.ExpectDel(damKey, sireKey).SetVal(2)
		mock.ExpectTxPipelineExec()

		require.NoError(t, c.Invalidate(ctx, horse))
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet(damKey).SetErr(redis.ErrClosed)

		_, _, err := c.Get(ctx, horse, models.RoleDam)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
