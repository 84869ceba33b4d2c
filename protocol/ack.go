/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-11-15 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 22:47:10
 * @FilePath: \go-alertsock\protocol\ack.go
 * @Description: ACK消息确认机制 - 按序号关联等待者
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package protocol

import (
	"context"
	"sync"
	"time"

	"github.com/kamalyes/go-alertsock/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// AckResult ACK等待结果
type AckResult struct {
	Sequence  int64            `json:"sequence"`  // 告警序号
	Status    models.AckStatus `json:"status"`    // ACK状态
	Timestamp time.Time        `json:"timestamp"` // 结束时间
	Error     string           `json:"error"`     // 错误信息
}

// PendingAck 待确认的序号
// 三种结束路径（收到ACK / 超时 / 连接错误）先到先得，只会结束一次
type PendingAck struct {
	Sequence  int64         // 告警序号
	Timestamp time.Time     // 注册时间
	Timeout   time.Duration // 超时时间，0 表示无限等待

	table  *AckTable
	timer  *time.Timer // 仅在 table 锁内赋值
	done   chan struct{}
	once   sync.Once
	result *AckResult
	err    error
}

// AckTable 待确认序号表
type AckTable struct {
	pending map[int64]*PendingAck // 待确认映射
	mu      sync.RWMutex          // 读写锁
	closed  bool                  // 关闭后拒绝注册
}

// NewAckTable 创建待确认序号表
func NewAckTable() *AckTable {
	return &AckTable{
		pending: make(map[int64]*PendingAck),
	}
}

// Register 注册一个等待者
// timeout <= 0 表示只等待匹配的ACK，不启动定时器
func (t *AckTable) Register(sequence int64, timeout time.Duration) (*PendingAck, error) {
	timeout = mathx.IF(timeout > 0, timeout, 0)

	pa := &PendingAck{
		Sequence:  sequence,
		Timestamp: time.Now(),
		Timeout:   timeout,
		table:     t,
		done:      make(chan struct{}),
	}

	var err error
	syncx.WithLock(&t.mu, func() {
		if t.closed {
			err = models.ErrClientClosed
			return
		}
		if _, exists := t.pending[sequence]; exists {
			err = errorx.NewError(models.ErrTypeAckAlreadyPending, sequence)
			return
		}
		t.pending[sequence] = pa
		if timeout > 0 {
			pa.timer = time.AfterFunc(timeout, func() { t.expire(pa) })
		}
	})
	if err != nil {
		return nil, err
	}
	return pa, nil
}

// Confirm 收到ACK，返回序号是否存在
// 不存在通常是ACK晚于超时到达，调用方记录告警即可
func (t *AckTable) Confirm(sequence int64) bool {
	pa := t.take(sequence, nil)
	if pa == nil {
		return false
	}
	pa.resolve(models.AckStatusConfirmed, nil)
	return true
}

// FailAll 连接错误时批量失败所有等待者，返回失败数量
func (t *AckTable) FailAll(cause error) int {
	return t.failAll(func(seq int64) error {
		return errorx.NewError(models.ErrTypeAckConnectionLost, seq)
	}, cause)
}

func (t *AckTable) failAll(errOf func(seq int64) error, cause error) int {
	var failed map[int64]*PendingAck
	syncx.WithLock(&t.mu, func() {
		failed = t.pending
		t.pending = make(map[int64]*PendingAck)
	})

	for seq, pa := range failed {
		pa.resolveWithCause(models.AckStatusFailed, errOf(seq), cause)
	}
	return len(failed)
}

// Remove 移除等待者，等待方以取消结束
func (t *AckTable) Remove(sequence int64) {
	if pa := t.take(sequence, nil); pa != nil {
		pa.resolve(models.AckStatusCancelled, errorx.NewError(models.ErrTypeAckWatcherCanceled, sequence))
	}
}

// Get 获取等待者
func (t *AckTable) Get(sequence int64) (*PendingAck, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pa, ok := t.pending[sequence]
	return pa, ok
}

// Len 等待者数量
func (t *AckTable) Len() int {
	return syncx.WithRLockReturnValue(&t.mu, func() int {
		return len(t.pending)
	})
}

// Shutdown 关闭序号表，剩余等待者以客户端关闭失败
func (t *AckTable) Shutdown() int {
	syncx.WithLock(&t.mu, func() {
		t.closed = true
	})
	return t.failAll(func(int64) error { return models.ErrClientClosed }, nil)
}

// take 取出并删除等待者；want 非空时只在表中仍是同一个等待者时才删除
func (t *AckTable) take(sequence int64, want *PendingAck) *PendingAck {
	return syncx.WithLockReturnValue(&t.mu, func() *PendingAck {
		pa, ok := t.pending[sequence]
		if !ok || (want != nil && pa != want) {
			return nil
		}
		delete(t.pending, sequence)
		return pa
	})
}

// expire 定时器回调，已被其他路径结束的等待者直接忽略
func (t *AckTable) expire(pa *PendingAck) {
	if t.take(pa.Sequence, pa) == nil {
		return
	}
	pa.resolve(models.AckStatusTimeout, errorx.NewError(models.ErrTypeAckTimeout, pa.Sequence))
}

// Wait 等待结果
// 成功返回 (result, nil)；超时、连接错误、取消时 result.Status 与 error 给出原因
func (pa *PendingAck) Wait(ctx context.Context) (*AckResult, error) {
	select {
	case <-pa.done:
	case <-ctx.Done():
		if pa.table.take(pa.Sequence, pa) != nil {
			pa.resolveWithCause(models.AckStatusCancelled,
				errorx.NewError(models.ErrTypeContextCancelled, pa.Sequence), ctx.Err())
		}
		<-pa.done
	}
	return pa.result, pa.err
}

// Done 结束信号
func (pa *PendingAck) Done() <-chan struct{} {
	return pa.done
}

// Cancel 撤销等待，重复调用无副作用
func (pa *PendingAck) Cancel() {
	if pa.table.take(pa.Sequence, pa) != nil {
		pa.resolve(models.AckStatusCancelled, errorx.NewError(models.ErrTypeAckWatcherCanceled, pa.Sequence))
	}
}

// Result 非阻塞读取结果，尚未结束时返回 nil
func (pa *PendingAck) Result() *AckResult {
	select {
	case <-pa.done:
		return pa.result
	default:
		return nil
	}
}

func (pa *PendingAck) resolve(status models.AckStatus, err error) {
	pa.resolveWithCause(status, err, nil)
}

func (pa *PendingAck) resolveWithCause(status models.AckStatus, err, cause error) {
	pa.once.Do(func() {
		// 停止已触发或已停止的定时器都是空操作
		if pa.timer != nil {
			pa.timer.Stop()
		}

		result := &AckResult{
			Sequence:  pa.Sequence,
			Status:    status,
			Timestamp: time.Now(),
		}
		if err != nil {
			result.Error = err.Error()
			if cause != nil {
				result.Error += ": " + cause.Error()
			}
		}
		pa.result = result
		pa.err = err
		close(pa.done)
	})
}
