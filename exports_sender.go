/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-12-28 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 23:40:12
 * @FilePath: \go-alertsock\exports_sender.go
 * @Description: Sender 模块类型导出
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package alertsock

import "github.com/kamalyes/go-alertsock/sender"

// AlertSender 告警发送器
type AlertSender = sender.AlertSender

// Alert 一条告警
type Alert = sender.Alert

// Transport 发送器依赖的客户端能力
type Transport = sender.Transport

// SenderOption 发送器选项
type SenderOption = sender.Option

var (
	// NewAlertSender 创建告警发送器
	NewAlertSender = sender.NewAlertSender

	WithDefaultChannel = sender.WithDefaultChannel
	WithAckTimeout     = sender.WithAckTimeout
	WithStartSequence  = sender.WithStartSequence
	WithEscalator      = sender.WithEscalator
	WithSenderLogger   = sender.WithLogger
)
