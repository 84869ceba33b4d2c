/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 22:05:31
 * @FilePath: \go-alertsock\models\errors.go
 * @Description: 告警套接字客户端错误定义 - 基于errorx.BaseError模式
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"errors"

	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// 错误类型定义，基于errorx.ErrorType
type ErrorType = errorx.ErrorType

// 告警客户端错误码常量定义
// 使用 82xxx 区间，避免与 go-wsc 的 8xxxx 冲突
const (
	// 连接相关错误 (82100-82199) - 本地恢复，不会抛给调用方
	ErrTypeConnectionClosed ErrorType = 82101 // 连接被对端关闭
	ErrTypeConnectFailed    ErrorType = 82102 // 连接失败
	ErrTypeWriteFailed      ErrorType = 82103 // 写入失败
	ErrTypeClientClosed     ErrorType = 82104 // 客户端已关闭

	// 队列错误 (82200-82299) - 调用方可见
	ErrTypeQueueFull       ErrorType = 82201 // 队列已满
	ErrTypeInvalidCapacity ErrorType = 82202 // 队列容量非法

	// 协议错误 (82400-82499) - 记录日志并跳过该行
	ErrTypeInvalidMessageFormat ErrorType = 82401 // 非法JSON
	ErrTypeMessageNotObject     ErrorType = 82402 // JSON不是对象
	ErrTypeInvalidAck           ErrorType = 82403 // ACK缺少合法序号
	ErrTypeMessageHasNewline    ErrorType = 82404 // 消息包含换行符

	// ACK相关错误 (82500-82599) - 调用方可见
	ErrTypeAckTimeout         ErrorType = 82501 // ACK超时
	ErrTypeAckConnectionLost  ErrorType = 82502 // 等待ACK期间连接断开
	ErrTypeAckAlreadyPending  ErrorType = 82503 // 序号已在等待中
	ErrTypeContextCancelled   ErrorType = 82504 // 上下文取消
	ErrTypeAckWatcherCanceled ErrorType = 82505 // 等待者被撤销

	// 配置相关错误 (82600-82699)
	ErrTypeConfigValidationFailed ErrorType = 82601 // 配置验证失败

	// 死信仓库相关错误 (82700-82799)
	ErrTypeDeadLetterNotSet ErrorType = 82701 // 死信仓库未设置
)

// init 初始化所有错误类型注册
// 注意：errorx 会忽略重复注册，多个测试包各自加载时出现的警告可忽略
func init() {
	// 注册连接相关错误
	errorx.RegisterError(ErrTypeConnectionClosed, "connection closed by peer")
	errorx.RegisterError(ErrTypeConnectFailed, "connect to %s failed")
	errorx.RegisterError(ErrTypeWriteFailed, "write batch of %d bytes failed")
	errorx.RegisterError(ErrTypeClientClosed, "client is closed")

	// 注册队列错误
	errorx.RegisterError(ErrTypeQueueFull, "queue is full")
	errorx.RegisterError(ErrTypeInvalidCapacity, "invalid queue capacity: %d")

	// 注册协议错误
	errorx.RegisterError(ErrTypeInvalidMessageFormat, "invalid message format: %s")
	errorx.RegisterError(ErrTypeMessageNotObject, "message is not a json object: %s")
	errorx.RegisterError(ErrTypeInvalidAck, "ack without valid sequence: %s")
	errorx.RegisterError(ErrTypeMessageHasNewline, "message contains newline")

	// 注册ACK相关错误
	errorx.RegisterError(ErrTypeAckTimeout, "ack timeout for sequence %d")
	errorx.RegisterError(ErrTypeAckConnectionLost, "connection lost while waiting ack for sequence %d")
	errorx.RegisterError(ErrTypeAckAlreadyPending, "sequence %d is already pending")
	errorx.RegisterError(ErrTypeContextCancelled, "context cancelled for sequence %d")
	errorx.RegisterError(ErrTypeAckWatcherCanceled, "ack watcher cancelled for sequence %d")

	// 注册配置相关错误
	errorx.RegisterError(ErrTypeConfigValidationFailed, "configuration validation failed: %s")

	// 注册死信仓库错误
	errorx.RegisterError(ErrTypeDeadLetterNotSet, "dead letter repository is not set")
}

// ============================================================================
// 错误变量定义
// ============================================================================

var (
	ErrConnectionClosed  = errorx.NewError(ErrTypeConnectionClosed)
	ErrClientClosed      = errorx.NewError(ErrTypeClientClosed)
	ErrQueueFull         = errorx.NewError(ErrTypeQueueFull)
	ErrMessageHasNewline = errorx.NewError(ErrTypeMessageHasNewline)
	ErrDeadLetterNotSet  = errorx.NewError(ErrTypeDeadLetterNotSet)
)

// errorTypeOf 提取 errorx 错误类型，支持被 %w 包装过的错误
func errorTypeOf(err error) (ErrorType, bool) {
	if err == nil {
		return 0, false
	}
	errType := errorx.ClassifyError(err)
	return errType, errType != errorx.ErrTypeUnknownError
}

// IsErrorType 判断错误是否为指定类型之一
func IsErrorType(err error, types ...ErrorType) bool {
	errType, ok := errorTypeOf(err)
	if !ok {
		return false
	}
	for _, t := range types {
		if errType == t {
			return true
		}
	}
	return false
}

// IsQueueFullError 判断是否为队列满错误
func IsQueueFullError(err error) bool {
	return IsErrorType(err, ErrTypeQueueFull) || errors.Is(err, ErrQueueFull)
}

// IsAckTimeoutError 判断是否为ACK超时错误
func IsAckTimeoutError(err error) bool {
	return IsErrorType(err, ErrTypeAckTimeout)
}

// IsClientClosedError 判断是否因客户端关闭而失败
func IsClientClosedError(err error) bool {
	return IsErrorType(err, ErrTypeClientClosed) || errors.Is(err, ErrClientClosed)
}

// IsAckConnectionLostError 判断是否为等待ACK期间连接断开
// 客户端主动关闭同样视为连接丢失
func IsAckConnectionLostError(err error) bool {
	return IsErrorType(err, ErrTypeAckConnectionLost, ErrTypeClientClosed)
}

// IsProtocolError 判断是否为协议错误（单行跳过即可）
func IsProtocolError(err error) bool {
	return IsErrorType(err,
		ErrTypeInvalidMessageFormat,
		ErrTypeMessageNotObject,
		ErrTypeInvalidAck,
	)
}

// IsRetryableError 判断调用方是否可以稍后重试
func IsRetryableError(err error) bool {
	return IsErrorType(err,
		ErrTypeQueueFull,
		ErrTypeAckTimeout,
		ErrTypeAckConnectionLost,
	)
}
