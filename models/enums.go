/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 21:40:12
 * @FilePath: \go-alertsock\models\enums.go
 * @Description: 枚举类型定义
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

// ConnectionStatus 连接状态
type ConnectionStatus string

const (
	ConnectionStatusDisconnected ConnectionStatus = "disconnected" // 尚未发起连接
	ConnectionStatusConnecting   ConnectionStatus = "connecting"   // 连接中（含退避等待）
	ConnectionStatusConnected    ConnectionStatus = "connected"    // 已连接，可写
	ConnectionStatusError        ConnectionStatus = "error"        // 连接错误，即将重连
	ConnectionStatusClosed       ConnectionStatus = "closed"       // 已主动关闭，终态
)

// String 实现Stringer接口
func (s ConnectionStatus) String() string {
	return string(s)
}

// IsValid 检查连接状态是否有效
func (s ConnectionStatus) IsValid() bool {
	return ConnectionStatusValidator.IsValid(s)
}

// IsReady 是否可以写入
func (s ConnectionStatus) IsReady() bool {
	return s == ConnectionStatusConnected
}

// AckStatus ACK状态
type AckStatus string

const (
	AckStatusPending   AckStatus = "pending"   // 等待确认
	AckStatusConfirmed AckStatus = "confirmed" // 已确认
	AckStatusTimeout   AckStatus = "timeout"   // 超时
	AckStatusFailed    AckStatus = "failed"    // 连接错误导致失败
	AckStatusCancelled AckStatus = "cancelled" // 调用方取消
)

// String 实现Stringer接口
func (s AckStatus) String() string {
	return string(s)
}

// IsValid 检查ACK状态是否有效
func (s AckStatus) IsValid() bool {
	return AckStatusValidator.IsValid(s)
}

// IsFinal 是否为终态
func (s AckStatus) IsFinal() bool {
	return s != AckStatusPending
}

// InboundType 入站消息类型
type InboundType string

const (
	InboundTypeAck InboundType = "ack" // ACK确认
)

// String 实现Stringer接口
func (t InboundType) String() string {
	return string(t)
}
