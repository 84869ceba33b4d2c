/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-12-28 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 22:10:44
 * @FilePath: \go-alertsock\exports_models.go
 * @Description: Models 模块类型导出 - 枚举与错误
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package alertsock

import "github.com/kamalyes/go-alertsock/models"

// ============================================
// 枚举
// ============================================

type (
	ConnectionStatus = models.ConnectionStatus
	AckStatus        = models.AckStatus
	InboundType      = models.InboundType
	ErrorType        = models.ErrorType
)

const (
	ConnectionStatusDisconnected = models.ConnectionStatusDisconnected
	ConnectionStatusConnecting   = models.ConnectionStatusConnecting
	ConnectionStatusConnected    = models.ConnectionStatusConnected
	ConnectionStatusError        = models.ConnectionStatusError
	ConnectionStatusClosed       = models.ConnectionStatusClosed

	AckStatusPending   = models.AckStatusPending
	AckStatusConfirmed = models.AckStatusConfirmed
	AckStatusTimeout   = models.AckStatusTimeout
	AckStatusFailed    = models.AckStatusFailed
	AckStatusCancelled = models.AckStatusCancelled
)

// ============================================
// 错误
// ============================================

const (
	ErrTypeConnectionClosed       = models.ErrTypeConnectionClosed
	ErrTypeConnectFailed          = models.ErrTypeConnectFailed
	ErrTypeWriteFailed            = models.ErrTypeWriteFailed
	ErrTypeClientClosed           = models.ErrTypeClientClosed
	ErrTypeQueueFull              = models.ErrTypeQueueFull
	ErrTypeInvalidCapacity        = models.ErrTypeInvalidCapacity
	ErrTypeInvalidMessageFormat   = models.ErrTypeInvalidMessageFormat
	ErrTypeMessageNotObject       = models.ErrTypeMessageNotObject
	ErrTypeInvalidAck             = models.ErrTypeInvalidAck
	ErrTypeAckTimeout             = models.ErrTypeAckTimeout
	ErrTypeAckConnectionLost      = models.ErrTypeAckConnectionLost
	ErrTypeAckAlreadyPending      = models.ErrTypeAckAlreadyPending
	ErrTypeContextCancelled       = models.ErrTypeContextCancelled
	ErrTypeConfigValidationFailed = models.ErrTypeConfigValidationFailed
	ErrTypeDeadLetterNotSet       = models.ErrTypeDeadLetterNotSet
)

var (
	ErrConnectionClosed  = models.ErrConnectionClosed
	ErrClientClosed      = models.ErrClientClosed
	ErrQueueFull         = models.ErrQueueFull
	ErrMessageHasNewline = models.ErrMessageHasNewline
	ErrDeadLetterNotSet  = models.ErrDeadLetterNotSet

	IsErrorType              = models.IsErrorType
	IsQueueFullError         = models.IsQueueFullError
	IsAckTimeoutError        = models.IsAckTimeoutError
	IsAckConnectionLostError = models.IsAckConnectionLostError
	IsClientClosedError      = models.IsClientClosedError
	IsProtocolError          = models.IsProtocolError
	IsRetryableError         = models.IsRetryableError
)
