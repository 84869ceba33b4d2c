/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-12-28 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-15 16:40:02
 * @FilePath: \go-alertsock\exports_middleware.go
 * @Description: Middleware 模块类型导出
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package alertsock

import (
	"github.com/kamalyes/go-alertsock/middleware"
	"github.com/kamalyes/go-logger"
)

// ============================================
// Logger - 日志中间件
// ============================================

// AlertLogger 日志器类型（直接使用 go-logger.ILogger）
type AlertLogger = logger.ILogger

// NewAlertLogger 创建新的日志器
var NewAlertLogger = middleware.NewAlertLogger

// NewDefaultAlertLogger 创建默认配置的日志器
var NewDefaultAlertLogger = middleware.NewDefaultAlertLogger

// NewNoOpLogger 创建空日志实例
var NewNoOpLogger = middleware.NewNoOpLogger

// SetDefaultLogger 设置默认日志器
var SetDefaultLogger = middleware.SetDefaultLogger

// InitLogger 根据配置初始化日志器
var InitLogger = middleware.InitLogger

// ForSocket 绑定套接字路径字段
var ForSocket = middleware.ForSocket

// ============================================
// Escalation - 投递失败升级通知
// ============================================

// EmailSender 邮件发送接口
type EmailSender = middleware.EmailSender

// Escalator 升级通知接口
type Escalator = middleware.Escalator

// Escalation 升级通知内容
type Escalation = middleware.Escalation

// EscalationReason 升级原因
type EscalationReason = middleware.EscalationReason

// EscalationService 邮件升级通知服务
type EscalationService = middleware.EscalationService

// NewEscalationService 创建邮件升级通知服务
var NewEscalationService = middleware.NewEscalationService

const (
	EscalationReasonQueueFull      = middleware.EscalationReasonQueueFull
	EscalationReasonAckTimeout     = middleware.EscalationReasonAckTimeout
	EscalationReasonConnectionLost = middleware.EscalationReasonConnectionLost
)
