/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2020-09-06 09:50:55
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 10:00:51
 * @FilePath: \go-alertsock\client\config_test.go
 * @Description:
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"testing"
	"time"

	"github.com/kamalyes/go-alertsock/middleware"
	"github.com/kamalyes/go-alertsock/models"
	"github.com/kamalyes/go-alertsock/repository"
	wscconfig "github.com/kamalyes/go-config/pkg/wsc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig("/tmp/alert.sock")

	assert.Equal(t, "/tmp/alert.sock", config.SocketPath)
	assert.Equal(t, "unix", config.Network)
	assert.Equal(t, 1024, config.QueueCapacity)
	assert.Equal(t, 16384, config.WriteWatermark)
	assert.Equal(t, time.Second, config.ReconnectDelay)
	assert.Equal(t, 30*time.Second, config.MaxReconnectDelay)
	assert.Equal(t, 14745, config.BatchLimit())
}

func TestConfigMethods(t *testing.T) {
	repo := repository.NewMemoryDeadLetterRepository(0)
	l := middleware.NewNoOpLogger()

	config := NewDefaultConfig("/tmp/alert.sock").
		WithNetwork("unixpacket").
		WithQueueCapacity(8).
		WithWriteWatermark(1000).
		WithReconnectDelay(5 * time.Millisecond).
		WithMaxReconnectDelay(time.Second).
		WithDialTimeout(2 * time.Second).
		WithReadBufferSize(512).
		WithWriteTimeout(3 * time.Second).
		WithLogger(l).
		WithDeadLetter(repo)

	assert.Equal(t, "unixpacket", config.Network)
	assert.Equal(t, 8, config.QueueCapacity)
	assert.Equal(t, 900, config.BatchLimit())
	assert.Equal(t, 5*time.Millisecond, config.ReconnectDelay)
	assert.Equal(t, time.Second, config.MaxReconnectDelay)
	assert.Equal(t, 2*time.Second, config.DialTimeout)
	assert.Equal(t, 512, config.ReadBufferSize)
	assert.Equal(t, 3*time.Second, config.WriteTimeout)
	assert.Equal(t, l, config.Logger)
	assert.Equal(t, repo, config.DeadLetter)
}

func TestConfigValidate(t *testing.T) {
	t.Run("零值字段补默认值", func(t *testing.T) {
		config := &Config{SocketPath: "/tmp/a.sock", QueueCapacity: 4}
		require.NoError(t, config.Validate())
		assert.Equal(t, DefaultNetwork, config.Network)
		assert.Equal(t, DefaultWriteWatermark, config.WriteWatermark)
		assert.Equal(t, DefaultReconnectDelay, config.ReconnectDelay)
		assert.Equal(t, DefaultMaxReconnectDelay, config.MaxReconnectDelay)
		assert.Equal(t, DefaultReadBufferSize, config.ReadBufferSize)
		assert.NotNil(t, config.Logger)
	})

	cases := []struct {
		name   string
		config *Config
	}{
		{"缺少套接字路径", NewDefaultConfig("")},
		{"队列容量为0", NewDefaultConfig("/tmp/a.sock").WithQueueCapacity(0)},
		{"队列容量为负", NewDefaultConfig("/tmp/a.sock").WithQueueCapacity(-1)},
		{"重连延迟大于上限", NewDefaultConfig("/tmp/a.sock").WithReconnectDelay(time.Minute).WithMaxReconnectDelay(time.Second)},
		{"负的写水位", NewDefaultConfig("/tmp/a.sock").WithWriteWatermark(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			require.Error(t, err)
			assert.True(t, models.IsErrorType(err, models.ErrTypeConfigValidationFailed))
		})
	}
}

func TestConfigFromWSC(t *testing.T) {
	t.Run("空配置不修改", func(t *testing.T) {
		config := NewDefaultConfig("/tmp/a.sock").FromWSC(nil)
		assert.Equal(t, DefaultReconnectDelay, config.ReconnectDelay)
		assert.Nil(t, config.Logger)
	})

	t.Run("覆盖重连与队列参数", func(t *testing.T) {
		wsc := wscconfig.Default()
		wsc.MinRecTime = 3 * time.Second
		wsc.MaxRecTime = 9 * time.Second
		wsc.MessageBufferSize = 64

		config := NewDefaultConfig("/tmp/a.sock").FromWSC(wsc)
		assert.Equal(t, 3*time.Second, config.ReconnectDelay)
		assert.Equal(t, 9*time.Second, config.MaxReconnectDelay)
		assert.Equal(t, 64, config.QueueCapacity)
		assert.NotNil(t, config.Logger)
		require.NoError(t, config.Validate())
	})
}

// TestBackoffSequence 第k次失败等待 min(default*2^(k-1), max)，成功后重新从默认值开始
func TestBackoffSequence(t *testing.T) {
	config := NewDefaultConfig("/tmp/a.sock").
		WithReconnectDelay(100 * time.Millisecond).
		WithMaxReconnectDelay(time.Second)
	b := newBackoff(config)

	expected := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
		time.Second,
	}
	for i, want := range expected {
		assert.Equal(t, want, b.Duration(), "failure %d", i+1)
	}

	b.Reset()
	assert.Equal(t, 100*time.Millisecond, b.Duration())
}
