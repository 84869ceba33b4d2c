/**
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-01-31 09:08:55
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-14 11:08:55
 * @FilePath: \go-alertsock\repository\constants.go
 * @Description: Repository 层常量定义 - 统一管理 Redis key 前缀
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package repository

import "time"

const (
	// DefaultDeadLetterKeyPrefix 死信队列默认 key 前缀
	DefaultDeadLetterKeyPrefix = "alertsock:deadletter:"

	// DefaultDeadLetterName 死信队列默认名称
	DefaultDeadLetterName = "default"

	// DefaultDeadLetterTTL 死信默认保留时间
	DefaultDeadLetterTTL = 24 * time.Hour
)
