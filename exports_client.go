/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-12-28 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 23:40:12
 * @FilePath: \go-alertsock\exports_client.go
 * @Description: Client 模块类型导出
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package alertsock

import "github.com/kamalyes/go-alertsock/client"

// ============================================
// Client - 持久化套接字客户端
// ============================================

// Client 告警套接字客户端
type Client = client.Client

// Config 客户端配置
type Config = client.Config

// Stats 客户端统计快照
type Stats = client.Stats

// NewClient 创建客户端并立即开始连接
var NewClient = client.New

// NewDefaultConfig 创建默认配置
var NewDefaultConfig = client.NewDefaultConfig

// 默认配置常量
const (
	DefaultQueueCapacity     = client.DefaultQueueCapacity
	DefaultWriteWatermark    = client.DefaultWriteWatermark
	DefaultReconnectDelay    = client.DefaultReconnectDelay
	DefaultMaxReconnectDelay = client.DefaultMaxReconnectDelay
)

// ============================================================================
// Client 方法导出 - 这些方法通过 Client 实例调用
// ============================================================================

// 注意：以下是 Client 类型的方法列表，通过 Client 实例调用
// 例如：c, err := alertsock.NewClient(alertsock.NewDefaultConfig("/run/alerts.sock"))

// 发送与确认：
// - Write(message string) bool: 入队一行消息，队列已满返回 false
// - WatchAck(sequence int64, timeout time.Duration) (*PendingAck, error): 注册ACK等待者
// - WaitForAck(ctx context.Context, sequence int64, timeout time.Duration) (*AckResult, error): 等待ACK

// 生命周期：
// - Close() error: 停止重连并释放连接
// - Status() ConnectionStatus / IsConnected() bool / Stats() Stats

// 回调与死信：
// - OnConnected / OnConnectError / OnDisconnected / OnMessageDropped
// - ReplayDeadLetters(ctx context.Context, max int) (int, error)
