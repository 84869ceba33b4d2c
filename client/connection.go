/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-09-06 09:50:55
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 21:31:00
 * @FilePath: \go-alertsock\client\connection.go
 * @Description: 连接管理逻辑 - 以下方法都只在事件循环协程内执行
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/jpillora/backoff"
	"github.com/kamalyes/go-alertsock/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// newBackoff 创建退避策略
// 第 k 次连续失败等待 min(ReconnectDelay*2^(k-1), MaxReconnectDelay)
func newBackoff(config *Config) *backoff.Backoff {
	return &backoff.Backoff{
		Min:    config.ReconnectDelay,
		Max:    config.MaxReconnectDelay,
		Factor: 2,
		Jitter: false,
	}
}

// scheduleConnect 替换当前连接并在 delay 之后发起拨号
func (c *Client) scheduleConnect(delay time.Duration) {
	if c.closed.Load() {
		return
	}

	// 旧连接上迟到的事件一律丢弃
	c.generation++
	gen := c.generation
	c.stats.backoff.Store(int64(delay))
	_ = c.stateMachine.TransitionTo(models.ConnectionStatusConnecting)

	if delay <= 0 {
		c.dial(gen)
		return
	}

	c.logger.InfoKV("等待重连", "backoff", delay)
	c.timer = time.AfterFunc(delay, func() {
		c.post(func() { c.dial(gen) })
	})
}

// dial 在独立协程中拨号，结果回投到事件循环
func (c *Client) dial(gen uint64) {
	if gen != c.generation || c.closed.Load() {
		return
	}

	network, address, timeout := c.config.Network, c.config.SocketPath, c.config.DialTimeout
	go func() {
		conn, err := net.DialTimeout(network, address, timeout)
		if !c.post(func() { c.onDialed(gen, conn, err) }) && conn != nil {
			_ = conn.Close()
		}
	}()
}

// onDialed 处理拨号结果
func (c *Client) onDialed(gen uint64, conn net.Conn, err error) {
	if gen != c.generation || c.closed.Load() {
		if conn != nil {
			_ = conn.Close()
		}
		return
	}

	if err != nil {
		c.handleError(gen, errorx.NewError(models.ErrTypeConnectFailed, c.config.SocketPath), err)
		return
	}

	c.conn = conn
	c.backoff.Reset()
	c.stats.backoff.Store(0)
	c.stats.connects.Add(1)
	c.decoder.Reset()
	_ = c.stateMachine.TransitionTo(models.ConnectionStatusConnected)

	c.logger.InfoKV("已连接到告警套接字")
	c.notifyConnected()

	go c.readLoop(gen, conn)
	c.drain()
}

// readLoop 读取入站数据，每个数据块拷贝后按到达顺序投递
func (c *Client) readLoop(gen uint64, conn net.Conn) {
	buf := make([]byte, c.config.ReadBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			if !c.post(func() { c.onData(gen, chunk) }) {
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = models.ErrConnectionClosed
			}
			c.post(func() { c.handleError(gen, err, nil) })
			return
		}
	}
}

// handleError 处理连接错误（拨号失败或已建立的连接出错）
// 同一个连接只处理一次：处理后 generation 前进，之后的事件都会被丢弃
func (c *Client) handleError(gen uint64, err, cause error) {
	if gen != c.generation || c.closed.Load() {
		return
	}

	wasConnected := c.conn != nil
	_ = c.stateMachine.TransitionTo(models.ConnectionStatusError)
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}

	summary := err.Error()
	if cause != nil {
		summary += ": " + cause.Error()
	}

	// 写到一半的批次放回队头，放不下则丢弃并告警
	if c.writing != nil {
		batch := *c.writing
		c.writing = nil
		if c.requeue(batch) {
			c.logger.WarnKV("连接错误，未完成的批次已重新入队",
				"error", summary,
				"message", batch,
			)
		} else {
			c.drop(batch, summary)
		}
	}

	failed := c.acks.FailAll(err)
	delay := c.backoff.Duration()

	c.logger.WarnKV("告警套接字连接错误",
		"error", summary,
		"failed_acks", failed,
		"backoff", delay,
	)

	if wasConnected {
		c.notifyDisconnected(err)
	} else {
		c.notifyConnectError(err)
	}

	c.stats.reconnects.Add(1)
	c.scheduleConnect(delay)
}

// requeue 把批次放回队头
func (c *Client) requeue(batch string) bool {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	return c.queue.EnqueueHead(batch)
}

// drop 丢弃无法重新入队的批次，逐行通知并写入死信
func (c *Client) drop(batch, reason string) {
	lines := strings.Split(batch, "\n")
	c.stats.dropped.Add(int64(len(lines)))

	c.logger.WarnKV("队列已满，丢弃未完成的批次",
		"error", reason,
		"count", len(lines),
		"message", batch,
	)

	for _, line := range lines {
		c.notifyMessageDropped(line)
	}
	c.spillDeadLetters(lines)
}
