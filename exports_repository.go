/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-12-28 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-15 15:20:09
 * @FilePath: \go-alertsock\exports_repository.go
 * @Description: Repository 模块类型导出
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package alertsock

import "github.com/kamalyes/go-alertsock/repository"

// ============================================
// Dead Letter Repository - 死信仓储
// ============================================

// DeadLetterRepository 死信仓储接口
type DeadLetterRepository = repository.DeadLetterRepository

// RedisDeadLetterRepository Redis 死信仓储实现
type RedisDeadLetterRepository = repository.RedisDeadLetterRepository

// MemoryDeadLetterRepository 内存死信仓储实现
type MemoryDeadLetterRepository = repository.MemoryDeadLetterRepository

// NewRedisDeadLetterRepository 创建 Redis 死信仓储
var NewRedisDeadLetterRepository = repository.NewRedisDeadLetterRepository

// NewMemoryDeadLetterRepository 创建内存死信仓储
var NewMemoryDeadLetterRepository = repository.NewMemoryDeadLetterRepository
