/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-12-02 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-15 15:18:15
 * @FilePath: \go-alertsock\repository\dead_letter_repository_test.go
 * @Description: 死信仓库测试，Redis 部分需要设置 TEST_REDIS_ADDR
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未设置 TEST_REDIS_ADDR，跳过 Redis 测试")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("TEST_REDIS_PASSWORD"),
		DB:       1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err(), "连接 Redis 失败")

	t.Cleanup(func() { _ = client.Close() })
	return client
}

// exerciseDeadLetterRepository 两种实现共用的行为用例
func exerciseDeadLetterRepository(t *testing.T, repo DeadLetterRepository) {
	ctx := context.Background()
	require.NoError(t, repo.Clear(ctx))

	t.Run("空队列", func(t *testing.T) {
		msg, ok, err := repo.Pop(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, msg)

		n, err := repo.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("先进先出", func(t *testing.T) {
		for _, m := range []string{"a", "b", "c"} {
			require.NoError(t, repo.Push(ctx, m))
		}
		n, err := repo.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		for _, want := range []string{"a", "b", "c"} {
			got, ok, err := repo.Pop(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, want, got)
		}
	})

	t.Run("放回队头", func(t *testing.T) {
		require.NoError(t, repo.Push(ctx, "second"))
		require.NoError(t, repo.PushFront(ctx, "first"))

		got, ok, err := repo.Pop(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "first", got)
	})

	t.Run("清空", func(t *testing.T) {
		require.NoError(t, repo.Push(ctx, "x"))
		require.NoError(t, repo.Clear(ctx))
		n, err := repo.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestMemoryDeadLetterRepository(t *testing.T) {
	exerciseDeadLetterRepository(t, NewMemoryDeadLetterRepository(0))
}

func TestMemoryDeadLetterRepositoryMaxLen(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDeadLetterRepository(2)

	for _, m := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Push(ctx, m))
	}
	assert.Equal(t, []string{"b", "c"}, repo.Snapshot())

	require.NoError(t, repo.PushFront(ctx, "z"))
	assert.Equal(t, []string{"z", "b"}, repo.Snapshot())
}

func TestMemoryDeadLetterRepositoryCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryDeadLetterRepository(0)
	assert.ErrorIs(t, repo.Push(ctx, "a"), context.Canceled)
	_, _, err := repo.Pop(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRedisDeadLetterRepositoryDefaults(t *testing.T) {
	repo := NewRedisDeadLetterRepository(nil, "", "", 0)
	assert.Equal(t, DefaultDeadLetterKeyPrefix+DefaultDeadLetterName, repo.Key())
	assert.Equal(t, DefaultDeadLetterTTL, repo.ttl)

	repo = NewRedisDeadLetterRepository(nil, "app:", "alerts", -1)
	assert.Equal(t, "app:alerts", repo.Key())
	assert.Equal(t, time.Duration(-1), repo.ttl)
}

func TestRedisDeadLetterRepository(t *testing.T) {
	rdb := getTestRedisClient(t)
	name := fmt.Sprintf("test-%d", time.Now().UnixNano())
	repo := NewRedisDeadLetterRepository(rdb, "alertsock:test:deadletter:", name, time.Minute)
	t.Cleanup(func() { _ = repo.Clear(context.Background()) })

	exerciseDeadLetterRepository(t, repo)

	ctx := context.Background()
	require.NoError(t, repo.Push(ctx, "ttl"))
	ttl, err := rdb.TTL(ctx, repo.Key()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
