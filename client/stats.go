/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 09:12:03
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 09:12:03
 * @FilePath: \go-alertsock\client\stats.go
 * @Description: 客户端运行统计
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"sync/atomic"
	"time"

	"github.com/kamalyes/go-alertsock/models"
)

// clientStats 原子计数器，任意协程可读
type clientStats struct {
	connects    atomic.Int64
	reconnects  atomic.Int64
	batches     atomic.Int64
	messages    atomic.Int64
	bytes       atomic.Int64
	rejected    atomic.Int64
	dropped     atomic.Int64
	acks        atomic.Int64
	unknownAcks atomic.Int64
	invalid     atomic.Int64
	backoff     atomic.Int64
}

// Stats 客户端统计快照
type Stats struct {
	Status          models.ConnectionStatus `json:"status"`
	Queued          int                     `json:"queued"`
	QueueCapacity   int                     `json:"queue_capacity"`
	PendingAcks     int                     `json:"pending_acks"`
	Connects        int64                   `json:"connects"`
	Reconnects      int64                   `json:"reconnects"`
	BatchesWritten  int64                   `json:"batches_written"`
	MessagesWritten int64                   `json:"messages_written"`
	BytesWritten    int64                   `json:"bytes_written"`
	Rejected        int64                   `json:"rejected"`
	Dropped         int64                   `json:"dropped"`
	AcksReceived    int64                   `json:"acks_received"`
	UnknownAcks     int64                   `json:"unknown_acks"`
	InvalidMessages int64                   `json:"invalid_messages"`
	Backoff         time.Duration           `json:"backoff"`
}

// Stats 获取统计快照
func (c *Client) Stats() Stats {
	return Stats{
		Status:          c.Status(),
		Queued:          c.QueueLen(),
		QueueCapacity:   c.config.QueueCapacity,
		PendingAcks:     c.acks.Len(),
		Connects:        c.stats.connects.Load(),
		Reconnects:      c.stats.reconnects.Load(),
		BatchesWritten:  c.stats.batches.Load(),
		MessagesWritten: c.stats.messages.Load(),
		BytesWritten:    c.stats.bytes.Load(),
		Rejected:        c.stats.rejected.Load(),
		Dropped:         c.stats.dropped.Load(),
		AcksReceived:    c.stats.acks.Load(),
		UnknownAcks:     c.stats.unknownAcks.Load(),
		InvalidMessages: c.stats.invalid.Load(),
		Backoff:         time.Duration(c.stats.backoff.Load()),
	}
}
