/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2020-09-06 09:50:55
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 10:07:17
 * @FilePath: \go-alertsock\client\config.go
 * @Description: Config 结构体
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"fmt"
	"time"

	"github.com/kamalyes/go-alertsock/middleware"
	"github.com/kamalyes/go-alertsock/models"
	"github.com/kamalyes/go-alertsock/repository"
	wscconfig "github.com/kamalyes/go-config/pkg/wsc"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
)

// 默认配置
const (
	DefaultNetwork           = "unix"
	DefaultQueueCapacity     = 1024
	DefaultWriteWatermark    = 16 * 1024
	DefaultReconnectDelay    = 1 * time.Second
	DefaultMaxReconnectDelay = 30 * time.Second
	DefaultDialTimeout       = 5 * time.Second
	DefaultReadBufferSize    = 4096
	DefaultWriteTimeout      = 10 * time.Second

	// BatchWatermarkRatio 批次上限占写水位的比例，给传输层缓冲留余量
	BatchWatermarkRatio = 0.9
)

// Config 结构体表示告警套接字客户端的配置
type Config struct {
	SocketPath        string                          // 套接字路径
	Network           string                          // 拨号网络类型
	QueueCapacity     int                             // 发送队列容量
	WriteWatermark    int                             // 写水位（字节）
	ReconnectDelay    time.Duration                   // 首次失败后的重连延迟
	MaxReconnectDelay time.Duration                   // 最大重连延迟
	DialTimeout       time.Duration                   // 单次拨号超时
	ReadBufferSize    int                             // 读缓冲大小
	WriteTimeout      time.Duration                   // 单批写超时
	Logger            middleware.AlertLogger          // 日志器
	DeadLetter        repository.DeadLetterRepository // 死信仓库，可为空
}

// NewDefaultConfig 创建默认配置
func NewDefaultConfig(socketPath string) *Config {
	return &Config{
		SocketPath:        socketPath,
		Network:           DefaultNetwork,
		QueueCapacity:     DefaultQueueCapacity,
		WriteWatermark:    DefaultWriteWatermark,
		ReconnectDelay:    DefaultReconnectDelay,
		MaxReconnectDelay: DefaultMaxReconnectDelay,
		DialTimeout:       DefaultDialTimeout,
		ReadBufferSize:    DefaultReadBufferSize,
		WriteTimeout:      DefaultWriteTimeout,
	}
}

// FromWSC 使用共享的 wsc 配置覆盖重连与队列参数
func (c *Config) FromWSC(wsc *wscconfig.WSC) *Config {
	if wsc == nil {
		return c
	}
	c.ReconnectDelay = mathx.IfNotZero(wsc.MinRecTime, c.ReconnectDelay)
	c.MaxReconnectDelay = mathx.IfNotZero(wsc.MaxRecTime, c.MaxReconnectDelay)
	c.QueueCapacity = mathx.IfNotZero(wsc.MessageBufferSize, c.QueueCapacity)
	c.WriteTimeout = mathx.IfNotZero(wsc.WriteTimeout, c.WriteTimeout)
	if c.Logger == nil {
		c.Logger = middleware.InitLogger(wsc)
	}
	return c
}

// WithNetwork 设置拨号网络类型并返回当前配置对象
func (c *Config) WithNetwork(network string) *Config {
	c.Network = network
	return c
}

// WithQueueCapacity 设置队列容量并返回当前配置对象
func (c *Config) WithQueueCapacity(capacity int) *Config {
	c.QueueCapacity = capacity
	return c
}

// WithWriteWatermark 设置写水位并返回当前配置对象
func (c *Config) WithWriteWatermark(size int) *Config {
	c.WriteWatermark = size
	return c
}

// WithReconnectDelay 设置重连延迟并返回当前配置对象
func (c *Config) WithReconnectDelay(d time.Duration) *Config {
	c.ReconnectDelay = d
	return c
}

// WithMaxReconnectDelay 设置最大重连延迟并返回当前配置对象
func (c *Config) WithMaxReconnectDelay(d time.Duration) *Config {
	c.MaxReconnectDelay = d
	return c
}

// WithDialTimeout 设置拨号超时并返回当前配置对象
func (c *Config) WithDialTimeout(d time.Duration) *Config {
	c.DialTimeout = d
	return c
}

// WithReadBufferSize 设置读缓冲大小并返回当前配置对象
func (c *Config) WithReadBufferSize(size int) *Config {
	c.ReadBufferSize = size
	return c
}

// WithWriteTimeout 设置写超时并返回当前配置对象
func (c *Config) WithWriteTimeout(d time.Duration) *Config {
	c.WriteTimeout = d
	return c
}

// WithLogger 设置日志器并返回当前配置对象
func (c *Config) WithLogger(l middleware.AlertLogger) *Config {
	c.Logger = l
	return c
}

// WithDeadLetter 设置死信仓库并返回当前配置对象
func (c *Config) WithDeadLetter(repo repository.DeadLetterRepository) *Config {
	c.DeadLetter = repo
	return c
}

// BatchLimit 单批次字节上限
func (c *Config) BatchLimit() int {
	return int(float64(c.WriteWatermark) * BatchWatermarkRatio)
}

// Validate 校验配置，零值字段先补默认值
func (c *Config) Validate() error {
	c.Network = mathx.IF(c.Network == "", DefaultNetwork, c.Network)
	c.WriteWatermark = mathx.IfNotZero(c.WriteWatermark, DefaultWriteWatermark)
	c.ReconnectDelay = mathx.IfNotZero(c.ReconnectDelay, DefaultReconnectDelay)
	c.MaxReconnectDelay = mathx.IfNotZero(c.MaxReconnectDelay, DefaultMaxReconnectDelay)
	c.DialTimeout = mathx.IfNotZero(c.DialTimeout, DefaultDialTimeout)
	c.ReadBufferSize = mathx.IfNotZero(c.ReadBufferSize, DefaultReadBufferSize)
	c.WriteTimeout = mathx.IfNotZero(c.WriteTimeout, DefaultWriteTimeout)
	if c.Logger == nil {
		c.Logger = middleware.DefaultLogger
	}

	switch {
	case c.SocketPath == "":
		return invalidConfig("socket path is required")
	case c.QueueCapacity <= 0:
		return invalidConfig(fmt.Sprintf("queue capacity must be positive, got %d", c.QueueCapacity))
	case c.WriteWatermark < 0:
		return invalidConfig(fmt.Sprintf("write watermark must be positive, got %d", c.WriteWatermark))
	case c.ReconnectDelay < 0 || c.MaxReconnectDelay < 0:
		return invalidConfig("reconnect delay must be positive")
	case c.ReconnectDelay > c.MaxReconnectDelay:
		return invalidConfig(fmt.Sprintf("reconnect delay %s exceeds max %s", c.ReconnectDelay, c.MaxReconnectDelay))
	case c.ReadBufferSize < 0:
		return invalidConfig(fmt.Sprintf("read buffer size must be positive, got %d", c.ReadBufferSize))
	}
	return nil
}

func invalidConfig(reason string) error {
	return errorx.NewError(models.ErrTypeConfigValidationFailed, reason)
}
