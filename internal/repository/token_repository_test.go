package repository_test

import (
	"context"
	"testing"
	"time"

	"equestrian/internal/repository"
	redisapp "equestrian/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMockClient() (*redisapp.Client, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return &redisapp.Client{Client: db}, mock
}

func setupTokenRepo() (*repository.RedisTokenRepo, redismock.ClientMock) {
	db, mock := NewMockClient()
	return repository.NewRedisTokenRepo(db), mock
}

func refreshTokenKey(userID uuid.UUID, token string) string {
	return "refresh:" + userID.String() + ":" + token
}

func TestSaveRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()
	userID := uuid.New()
	token := "test_token"
	exp := 24 * time.Hour

	t.Run("successful save", func(t *testing.T) {
		mock.ExpectSet(refreshTokenKey(userID, token), "1", exp).SetVal("OK")
		err := repo.SaveRefreshToken(ctx, userID, token, exp)
		assert.NoError(t, err)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSet(refreshTokenKey(userID, token), "1", exp).SetErr(redis.ErrClosed)
		err := repo.SaveRefreshToken(ctx, userID, token, exp)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()
	userID := uuid.New()
	token := "test_token"

	t.Run("token exists", func(t *testing.T) {
		mock.ExpectGet(refreshTokenKey(userID, token)).SetVal("1")
		exists, err := repo.GetRefreshToken(ctx, userID, token)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("token not exists", func(t *testing.T) {
		mock.ExpectGet(refreshTokenKey(userID, token)).RedisNil()
		exists, err := repo.GetRefreshToken(ctx, userID, token)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet(refreshTokenKey(userID, token)).SetErr(redis.ErrClosed)
		_, err := repo.GetRefreshToken(ctx, userID, token)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})
}

func TestDeleteRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()
	userID := uuid.New()
	token := "test_token"

	t.Run("successful delete", func(t *testing.T) {
		mock.ExpectDel(refreshTokenKey(userID, token)).SetVal(1)
		err := repo.DeleteRefreshToken(ctx, userID, token)
		assert.NoError(t, err)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectDel(refreshTokenKey(userID, token)).SetErr(redis.ErrClosed)
		err := repo.DeleteRefreshToken(ctx, userID, token)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})
}

func TestDeleteAllUserTokens(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()
	userID := uuid.New()
	pattern := refreshTokenKey(userID, "*")

	t.Run("successful delete all", func(t *testing.T) {
		mock.ExpectKeys(pattern).SetVal([]string{"token1", "token2"})
		mock.ExpectDel("token1", "token2").SetVal(2)
		err := repo.DeleteAllUserTokens(ctx, userID)
		assert.NoError(t, err)
	})

	t.Run("no tokens", func(t *testing.T) {
		mock.ExpectKeys(pattern).SetVal([]string{})
		err := repo.DeleteAllUserTokens(ctx, userID)
		assert.NoError(t, err)
	})

	t.Run("keys error", func(t *testing.T) {
		mock.ExpectKeys(pattern).SetErr(redis.ErrClosed)
		err := repo.DeleteAllUserTokens(ctx, userID)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	t.Run("del error", func(t *testing.T) {
		mock.ExpectKeys(pattern).SetVal([]string{"token1"})
		mock.ExpectDel("token1").SetErr(redis.ErrClosed)
		err := repo.DeleteAllUserTokens(ctx, userID)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})
}

func TestMemoryTokenRepo(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTokenRepo()
	userID, other := uuid.New(), uuid.New()

	require.NoError(t, repo.SaveRefreshToken(ctx, userID, "a", time.Hour))
	require.NoError(t, repo.SaveRefreshToken(ctx, userID, "b", time.Hour))
	require.NoError(t, repo.SaveRefreshToken(ctx, other, "c", time.Hour))

	ok, err := repo.GetRefreshToken(ctx, userID, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.DeleteRefreshToken(ctx, userID, "a"))
	ok, _ = repo.GetRefreshToken(ctx, userID, "a")
	assert.False(t, ok)

	require.NoError(t, repo.DeleteAllUserTokens(ctx, userID))
	ok, _ = repo.GetRefreshToken(ctx, userID, "b")
	assert.False(t, ok)

	ok, _ = repo.GetRefreshToken(ctx, other, "c")
	assert.True(t, ok)

	require.NoError(t, repo.SaveRefreshToken(ctx, other, "short", time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	ok, _ = repo.GetRefreshToken(ctx, other, "short")
	assert.False(t, ok)
}
