/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-13 10:20:31
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 21:52:18
 * @FilePath: \go-alertsock\client\drain.go
 * @Description: 发送队列排空与批量写出
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/kamalyes/go-alertsock/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// deadLetterTimeout 单次死信写入超时
const deadLetterTimeout = 5 * time.Second

// drain 连接就绪且没有在途写时，取出一批消息写出
func (c *Client) drain() {
	if c.closed.Load() || c.conn == nil || c.writing != nil {
		return
	}

	batch, count := c.nextBatch(c.config.BatchLimit())
	if count == 0 {
		return
	}

	c.writing = &batch
	gen, conn, timeout := c.generation, c.conn, c.config.WriteTimeout
	go func() {
		err := writeBatch(conn, batch, timeout)
		c.post(func() { c.onWritten(gen, batch, count, err) })
	}()
}

// nextBatch 从队头组装一个批次
// 第一条无条件放入，超大的单条消息也不会被饿死；之后放不下的消息退回队头
func (c *Client) nextBatch(limit int) (string, int) {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()

	first, ok := c.queue.DequeueHead()
	if !ok {
		return "", 0
	}

	var sb strings.Builder
	sb.WriteString(first)
	count := 1
	for {
		next, ok := c.queue.DequeueHead()
		if !ok {
			break
		}
		if sb.Len()+len(next)+1 > limit {
			c.queue.EnqueueHead(next)
			break
		}
		sb.WriteByte('\n')
		sb.WriteString(next)
		count++
	}
	return sb.String(), count
}

// writeBatch 写出一个批次，结尾补换行
func writeBatch(conn net.Conn, batch string, timeout time.Duration) error {
	if timeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	if _, err := conn.Write([]byte(batch + "\n")); err != nil {
		return errorx.WrapError("write batch failed", err)
	}
	return nil
}

// onWritten 处理写出结果，成功后继续排空
func (c *Client) onWritten(gen uint64, batch string, count int, err error) {
	if gen != c.generation {
		// 连接已被替换，批次在错误处理时已经重新入队
		return
	}
	if err != nil {
		c.handleError(gen, errorx.NewError(models.ErrTypeWriteFailed, len(batch)+1), err)
		return
	}

	c.writing = nil
	c.stats.batches.Add(1)
	c.stats.messages.Add(int64(count))
	c.stats.bytes.Add(int64(len(batch) + 1))
	c.logger.DebugKV("批次已写出", "count", count, "bytes", len(batch)+1)

	// 通过事件通道进入下一轮，避免递归
	c.triggerDrain()
}

// spillDeadLetters 异步写入死信仓库
func (c *Client) spillDeadLetters(lines []string) {
	repo := c.config.DeadLetter
	if repo == nil || len(lines) == 0 {
		return
	}

	syncx.Go().
		WithTimeout(deadLetterTimeout).
		OnPanic(func(r interface{}) {
			c.logger.ErrorKV("写入死信panic", "panic", r)
		}).
		OnError(func(err error) {
			c.logger.ErrorKV("写入死信失败", "count", len(lines), "error", err)
		}).
		ExecWithContext(func(ctx context.Context) error {
			for _, line := range lines {
				if err := repo.Push(ctx, line); err != nil {
					return err
				}
			}
			return nil
		})
}
