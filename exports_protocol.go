/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-12-28 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-15 10:31:40
 * @FilePath: \go-alertsock\exports_protocol.go
 * @Description: Protocol 与 Queue 模块类型导出
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package alertsock

import (
	"github.com/kamalyes/go-alertsock/protocol"
	"github.com/kamalyes/go-alertsock/queue"
)

// ============================================
// Protocol - 线上协议
// ============================================

type (
	// AlertMessage 出站告警
	AlertMessage = protocol.AlertMessage
	// InboundMessage 入站消息
	InboundMessage = protocol.InboundMessage
	// AckMessage ACK确认
	AckMessage = protocol.AckMessage
	// UnknownMessage 未知类型的入站消息
	UnknownMessage = protocol.UnknownMessage
	// LineDecoder 按行解码器
	LineDecoder = protocol.LineDecoder
	// AckTable 待确认序号表
	AckTable = protocol.AckTable
	// PendingAck 待确认的序号
	PendingAck = protocol.PendingAck
	// AckResult ACK等待结果
	AckResult = protocol.AckResult
)

var (
	ParseInbound   = protocol.ParseInbound
	DecodeAlert    = protocol.DecodeAlert
	EncodeAck      = protocol.EncodeAck
	NewLineDecoder = protocol.NewLineDecoder
	NewAckTable    = protocol.NewAckTable
)

// ============================================
// Queue - 固定容量队列
// ============================================

// BoundedDeque 固定容量环形队列
type BoundedDeque[T any] = queue.BoundedDeque[T]

// NewBoundedDeque 创建固定容量队列
func NewBoundedDeque[T any](capacity int) (*BoundedDeque[T], error) {
	return queue.NewBoundedDeque[T](capacity)
}
