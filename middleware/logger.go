/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-11-22 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 10:40:12
 * @FilePath: \go-alertsock\middleware\logger.go
 * @Description: 告警客户端日志器 - 基于 go-logger，按套接字路径绑定字段
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package middleware

import (
	"os"
	"time"

	wscconfig "github.com/kamalyes/go-config/pkg/wsc"
	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
)

// DefaultLogPrefix 默认日志前缀
const DefaultLogPrefix = "[ALERTSOCK] "

// AlertLogger 直接使用 go-logger.ILogger
type AlertLogger = logger.ILogger

// DefaultLogger 未显式配置日志器时使用
var DefaultLogger AlertLogger = NewDefaultAlertLogger()

// SetDefaultLogger 替换默认日志器，只影响之后创建的客户端与发送器
func SetDefaultLogger(l AlertLogger) {
	if l != nil {
		DefaultLogger = l
	}
}

// NewAlertLogger 按级别名（debug/info/warn/error）创建日志器，无法识别时使用 info
func NewAlertLogger(level string) AlertLogger {
	return newConsoleLogger(parseLevel(level), DefaultLogPrefix)
}

// NewDefaultAlertLogger 创建 info 级别的控制台日志器
func NewDefaultAlertLogger() AlertLogger {
	return newConsoleLogger(logger.INFO, DefaultLogPrefix)
}

// NewNoOpLogger 创建空日志实例
func NewNoOpLogger() AlertLogger {
	return logger.NewEmptyLogger()
}

// InitLogger 根据共享的 wsc 日志配置初始化日志器
// 未启用日志时返回默认日志器；文件类输出仍写到控制台，由部署方重定向
func InitLogger(config *wscconfig.WSC) AlertLogger {
	if config == nil || config.Logging == nil || !config.Logging.Enabled {
		return NewDefaultAlertLogger()
	}

	cfg := config.Logging
	l := logger.NewLogger().
		WithLevel(parseLevel(cfg.GetLogLevel())).
		WithPrefix(mathx.IfNotZero(cfg.Prefix, DefaultLogPrefix)).
		WithShowCaller(cfg.ShowCaller).
		WithColorful(cfg.Colorful).
		WithTimeFormat(mathx.IfNotZero(cfg.TimeFormat, time.DateTime))
	if cfg.Format != "" {
		l = l.WithFormat(cfg.Format)
	}
	if cfg.Output == logger.OutputStderr {
		l = l.WithOutput(os.Stderr)
	}
	return l
}

// ForSocket 返回绑定了套接字路径的日志器，同一进程连接多个套接字时便于区分
func ForSocket(l AlertLogger, socketPath string) AlertLogger {
	if l == nil {
		l = DefaultLogger
	}
	return l.WithField("socket", socketPath)
}

func newConsoleLogger(level logger.LogLevel, prefix string) *logger.Logger {
	return logger.NewLogger().
		WithLevel(level).
		WithPrefix(prefix).
		WithShowCaller(false).
		WithColorful(true).
		WithTimeFormat(time.DateTime)
}

func parseLevel(level string) logger.LogLevel {
	l, err := logger.ParseLevel(level)
	return mathx.IF(err == nil, l, logger.INFO)
}
