/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-12-02 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-14 11:40:09
 * @FilePath: \go-alertsock\repository\dead_letter_repository.go
 * @Description: 死信仓库 - 保存重新入队失败而被丢弃的告警，供之后回放
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package repository

import (
	"context"
	"sync"
	"time"

	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
	"github.com/redis/go-redis/v9"
)

// DeadLetterRepository 死信仓库接口
type DeadLetterRepository interface {
	// Push 追加到队尾
	Push(ctx context.Context, message string) error

	// PushFront 放回队头（回放失败时保持原有顺序）
	PushFront(ctx context.Context, message string) error

	// Pop 从队头取出，队列为空时 ok=false
	Pop(ctx context.Context) (message string, ok bool, err error)

	// Len 获取队列长度
	Len(ctx context.Context) (int64, error)

	// Clear 清空队列
	Clear(ctx context.Context) error
}

// ============================================================================
// Redis 实现
// ============================================================================

// RedisDeadLetterRepository Redis死信队列实现
type RedisDeadLetterRepository struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewRedisDeadLetterRepository 创建Redis死信仓库
// ttl 为 0 时使用默认保留时间，小于 0 表示不过期
func NewRedisDeadLetterRepository(client redis.UniversalClient, prefix, name string, ttl time.Duration) *RedisDeadLetterRepository {
	prefix = mathx.IF(prefix == "", DefaultDeadLetterKeyPrefix, prefix)
	name = mathx.IF(name == "", DefaultDeadLetterName, name)
	ttl = mathx.IfNotZero(ttl, DefaultDeadLetterTTL)

	return &RedisDeadLetterRepository{
		client: client,
		key:    prefix + name,
		ttl:    ttl,
	}
}

// Key 返回实际使用的 Redis key
func (r *RedisDeadLetterRepository) Key() string {
	return r.key
}

// Push 追加到队尾并刷新过期时间
func (r *RedisDeadLetterRepository) Push(ctx context.Context, message string) error {
	pipe := r.client.Pipeline()
	pipe.RPush(ctx, r.key, message)
	r.expire(ctx, pipe)

	if _, err := pipe.Exec(ctx); err != nil {
		return errorx.WrapError("dead letter push failed", err)
	}
	return nil
}

// PushFront 放回队头
func (r *RedisDeadLetterRepository) PushFront(ctx context.Context, message string) error {
	pipe := r.client.Pipeline()
	pipe.LPush(ctx, r.key, message)
	r.expire(ctx, pipe)

	if _, err := pipe.Exec(ctx); err != nil {
		return errorx.WrapError("dead letter push front failed", err)
	}
	return nil
}

// Pop 从队头取出
func (r *RedisDeadLetterRepository) Pop(ctx context.Context) (string, bool, error) {
	message, err := r.client.LPop(ctx, r.key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, errorx.WrapError("dead letter pop failed", err)
	}
	return message, true, nil
}

// Len 获取队列长度
func (r *RedisDeadLetterRepository) Len(ctx context.Context) (int64, error) {
	n, err := r.client.LLen(ctx, r.key).Result()
	if err != nil {
		return 0, errorx.WrapError("dead letter length failed", err)
	}
	return n, nil
}

// Clear 清空队列
func (r *RedisDeadLetterRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return errorx.WrapError("dead letter clear failed", err)
	}
	return nil
}

func (r *RedisDeadLetterRepository) expire(ctx context.Context, pipe redis.Pipeliner) {
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key, r.ttl)
	}
}

// ============================================================================
// 内存实现
// ============================================================================

// MemoryDeadLetterRepository 进程内死信队列
// maxLen > 0 时超出部分淘汰最旧的消息
type MemoryDeadLetterRepository struct {
	mu       sync.RWMutex
	messages []string
	maxLen   int
}

// NewMemoryDeadLetterRepository 创建内存死信仓库
func NewMemoryDeadLetterRepository(maxLen int) *MemoryDeadLetterRepository {
	return &MemoryDeadLetterRepository{maxLen: mathx.IF(maxLen > 0, maxLen, 0)}
}

// Push 追加到队尾
func (r *MemoryDeadLetterRepository) Push(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	syncx.WithLock(&r.mu, func() {
		r.messages = append(r.messages, message)
		if r.maxLen > 0 && len(r.messages) > r.maxLen {
			r.messages = r.messages[len(r.messages)-r.maxLen:]
		}
	})
	return nil
}

// PushFront 放回队头
func (r *MemoryDeadLetterRepository) PushFront(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	syncx.WithLock(&r.mu, func() {
		r.messages = append([]string{message}, r.messages...)
		if r.maxLen > 0 && len(r.messages) > r.maxLen {
			r.messages = r.messages[:r.maxLen]
		}
	})
	return nil
}

// Pop 从队头取出
func (r *MemoryDeadLetterRepository) Pop(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var (
		message string
		ok      bool
	)
	syncx.WithLock(&r.mu, func() {
		if len(r.messages) == 0 {
			return
		}
		message, ok = r.messages[0], true
		r.messages = r.messages[1:]
	})
	return message, ok, nil
}

// Len 获取队列长度
func (r *MemoryDeadLetterRepository) Len(ctx context.Context) (int64, error) {
	return syncx.WithRLockReturnValue(&r.mu, func() int64 {
		return int64(len(r.messages))
	}), nil
}

// Clear 清空队列
func (r *MemoryDeadLetterRepository) Clear(ctx context.Context) error {
	syncx.WithLock(&r.mu, func() {
		r.messages = nil
	})
	return nil
}

// Snapshot 返回当前内容的拷贝
func (r *MemoryDeadLetterRepository) Snapshot() []string {
	return syncx.WithRLockReturnValue(&r.mu, func() []string {
		return append([]string(nil), r.messages...)
	})
}
