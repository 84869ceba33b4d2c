/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-15 23:18:44
 * @FilePath: \go-alertsock\queue\deque.go
 * @Description: 固定容量环形双端队列，满时拒绝写入，不扩容不覆盖
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package queue

import (
	"github.com/kamalyes/go-alertsock/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// BoundedDeque 固定容量的环形队列
// 支持尾部入队、头部入队（优先重插）以及头部出队
// 注意：内部不加锁，由持有者负责串行化访问
type BoundedDeque[T any] struct {
	items []T  // 底层存储，长度固定
	head  int  // 队头索引（下一个出队位置）
	tail  int  // 队尾索引（下一个入队位置）
	full  bool // head == tail 时区分空与满
}

// NewBoundedDeque 创建固定容量的队列
// capacity <= 0 视为非法配置
func NewBoundedDeque[T any](capacity int) (*BoundedDeque[T], error) {
	if capacity <= 0 {
		return nil, errorx.NewError(models.ErrTypeInvalidCapacity, capacity)
	}
	return &BoundedDeque[T]{
		items: make([]T, capacity),
	}, nil
}

// EnqueueTail 尾部入队，队列已满返回 false 且不做任何修改
func (q *BoundedDeque[T]) EnqueueTail(item T) bool {
	if q.full {
		return false
	}

	q.items[q.tail] = item
	q.tail = (q.tail + 1) % len(q.items)
	q.full = q.head == q.tail
	return true
}

// EnqueueHead 头部入队，用于重试消息或批次放不下的消息回插
// 容量约束与 EnqueueTail 相同
func (q *BoundedDeque[T]) EnqueueHead(item T) bool {
	if q.full {
		return false
	}

	q.head = (q.head - 1 + len(q.items)) % len(q.items)
	q.items[q.head] = item
	q.full = q.head == q.tail
	return true
}

// DequeueHead 头部出队，队列为空时返回零值和 false
func (q *BoundedDeque[T]) DequeueHead() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = zero // 释放引用，帮助GC
	q.head = (q.head + 1) % len(q.items)
	q.full = false
	return item, true
}

// PeekHead 查看队头元素但不移除
func (q *BoundedDeque[T]) PeekHead() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}
	return q.items[q.head], true
}

// Len 当前元素数量，只由 head/tail/full 推导
func (q *BoundedDeque[T]) Len() int {
	if q.full {
		return len(q.items)
	}
	if q.tail >= q.head {
		return q.tail - q.head
	}
	return len(q.items) - q.head + q.tail
}

// Cap 返回固定容量
func (q *BoundedDeque[T]) Cap() int {
	return len(q.items)
}

// IsEmpty 队列是否为空
func (q *BoundedDeque[T]) IsEmpty() bool {
	return !q.full && q.head == q.tail
}

// IsFull 队列是否已满
func (q *BoundedDeque[T]) IsFull() bool {
	return q.full
}

// Stats 返回队列统计信息
func (q *BoundedDeque[T]) Stats() map[string]interface{} {
	count := q.Len()
	return map[string]interface{}{
		"length":      count,
		"capacity":    len(q.items),
		"utilization": float64(count) / float64(len(q.items)) * 100,
		"full":        q.full,
	}
}
