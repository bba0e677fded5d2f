package adapter

import (
	"context"
	"errors"
	"study-track/internal/domain"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "testkey"
	expectedValue := "testvalue"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(expectedValue)
		val, err := adapter.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, expectedValue, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectGet(key).SetErr(redisErr)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "testkey"
	value := "testvalue"
	expiration := 1 * time.Hour

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet(key, value, expiration).SetVal("OK")
		err := adapter.Set(ctx, key, value, expiration)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("set failed")
		mock.ExpectSet(key, value, expiration).SetErr(redisErr)
		err := adapter.Set(ctx, key, value, expiration)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "testkey"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(1)
		err := adapter.Delete(ctx, key)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_HashOps(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "hashkey"

	t.Run("HSetAndHGetAll", func(t *testing.T) {
		mock.ExpectHSet(key, "field1", "value1").SetVal(1)
		assert.NoError(t, adapter.HSet(ctx, key, "field1", "value1"))

		mock.ExpectHGetAll(key).SetVal(map[string]string{"field1": "value1"})
		all, err := adapter.HGetAll(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"field1": "value1"}, all)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Expire", func(t *testing.T) {
		mock.ExpectExpire(key, time.Minute).SetVal(true)
		assert.NoError(t, adapter.Expire(ctx, key, time.Minute))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
