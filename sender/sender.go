/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 16:45:20
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 23:02:37
 * @FilePath: \go-alertsock\sender\sender.go
 * @Description: 告警发送器 - 分配序号、序列化并可选等待ACK
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package sender

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kamalyes/go-alertsock/middleware"
	"github.com/kamalyes/go-alertsock/models"
	"github.com/kamalyes/go-alertsock/protocol"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// DefaultAckTimeout 默认ACK等待时间
const DefaultAckTimeout = 5 * time.Second

// escalationTimeout 单次升级通知的超时
const escalationTimeout = 10 * time.Second

// Transport 发送器依赖的客户端能力，*client.Client 满足该接口
type Transport interface {
	Write(message string) bool
	WatchAck(sequence int64, timeout time.Duration) (*protocol.PendingAck, error)
}

// Alert 一条告警
type Alert struct {
	Name    string
	Message string
	Channel string // 为空时使用默认频道
}

// AlertSender 告警发送器，并发安全
type AlertSender struct {
	transport      Transport
	sequence       atomic.Int64 // 最近一次分配的序号
	defaultChannel string
	ackTimeout     time.Duration
	escalator      middleware.Escalator
	logger         middleware.AlertLogger
}

// Option 发送器选项
type Option func(*AlertSender)

// WithDefaultChannel 设置默认频道
func WithDefaultChannel(channel string) Option {
	return func(s *AlertSender) {
		s.defaultChannel = channel
	}
}

// WithAckTimeout 设置ACK等待时间，0 表示一直等待
func WithAckTimeout(timeout time.Duration) Option {
	return func(s *AlertSender) {
		s.ackTimeout = timeout
	}
}

// WithStartSequence 设置第一条告警的序号
func WithStartSequence(first int64) Option {
	return func(s *AlertSender) {
		s.sequence.Store(first - 1)
	}
}

// WithEscalator 设置投递失败时的升级通知
func WithEscalator(e middleware.Escalator) Option {
	return func(s *AlertSender) {
		s.escalator = e
	}
}

// WithLogger 设置日志器
func WithLogger(l middleware.AlertLogger) Option {
	return func(s *AlertSender) {
		s.logger = l
	}
}

// NewAlertSender 创建告警发送器，序号默认从 1 开始
func NewAlertSender(transport Transport, opts ...Option) *AlertSender {
	s := &AlertSender{
		transport:  transport,
		ackTimeout: DefaultAckTimeout,
		logger:     middleware.DefaultLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LastSequence 最近一次分配的序号
func (s *AlertSender) LastSequence() int64 {
	return s.sequence.Load()
}

// Send 发送告警但不等待ACK，返回分配的序号
// 队列已满时返回 ErrTypeQueueFull，由调用方决定丢弃或稍后重试
func (s *AlertSender) Send(alert Alert) (int64, error) {
	msg, line, err := s.prepare(alert, false)
	if err != nil {
		return 0, err
	}

	if !s.transport.Write(line) {
		s.reject(msg, middleware.EscalationReasonQueueFull, models.ErrQueueFull)
		return msg.Sequence, models.ErrQueueFull
	}
	return msg.Sequence, nil
}

// SendAndWait 发送告警并等待ACK
// 等待者在写出之前注册，再快的ACK也不会错过
func (s *AlertSender) SendAndWait(ctx context.Context, alert Alert) (*protocol.AckResult, error) {
	msg, line, err := s.prepare(alert, true)
	if err != nil {
		return nil, err
	}

	pa, err := s.transport.WatchAck(msg.Sequence, s.ackTimeout)
	if err != nil {
		return nil, err
	}

	if !s.transport.Write(line) {
		pa.Cancel()
		s.reject(msg, middleware.EscalationReasonQueueFull, models.ErrQueueFull)
		return nil, models.ErrQueueFull
	}

	result, err := pa.Wait(ctx)
	if err == nil {
		return result, nil
	}
	// 调用方主动取消（AckStatusCancelled）不算投递失败
	switch result.Status {
	case models.AckStatusTimeout:
		s.reject(msg, middleware.EscalationReasonAckTimeout, err)
	case models.AckStatusFailed:
		s.reject(msg, middleware.EscalationReasonConnectionLost, err)
	}
	return result, err
}

// prepare 校验、分配序号并序列化
func (s *AlertSender) prepare(alert Alert, ack bool) (*protocol.AlertMessage, string, error) {
	if alert.Name == "" {
		return nil, "", errorx.NewError(models.ErrTypeInvalidMessageFormat, "alert name is required")
	}

	msg := &protocol.AlertMessage{
		Sequence: s.sequence.Add(1),
		Name:     alert.Name,
		Message:  alert.Message,
		Channel:  mathx.IF(alert.Channel == "", s.defaultChannel, alert.Channel),
		Ack:      ack,
	}
	line, err := msg.Encode()
	if err != nil {
		return nil, "", err
	}
	return msg, line, nil
}

// reject 记录投递失败并异步发送升级通知
func (s *AlertSender) reject(msg *protocol.AlertMessage, reason middleware.EscalationReason, cause error) {
	s.logger.WarnKV("告警未能投递",
		"sequence", msg.Sequence,
		"name", msg.Name,
		"reason", reason,
		"error", cause,
	)

	if s.escalator == nil {
		return
	}

	e := &middleware.Escalation{
		Sequence: msg.Sequence,
		Name:     msg.Name,
		Message:  msg.Message,
		Channel:  msg.Channel,
		Reason:   reason,
		Error:    cause.Error(),
	}
	syncx.Go().
		WithTimeout(escalationTimeout).
		OnPanic(func(r interface{}) {
			s.logger.ErrorKV("升级通知panic", "sequence", msg.Sequence, "panic", r)
		}).
		ExecWithContext(func(ctx context.Context) error {
			s.escalator.Escalate(ctx, e)
			return nil
		})
}
