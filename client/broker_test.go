/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 15:30:12
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 22:11:40
 * @FilePath: \go-alertsock\client\broker_test.go
 * @Description: 测试用的 Unix 套接字 broker
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"bufio"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kamalyes/go-alertsock/middleware"
	"github.com/kamalyes/go-alertsock/protocol"
	"github.com/stretchr/testify/require"
)

// fakeBroker 接收客户端写出的行，可选自动回复ACK
type fakeBroker struct {
	path     string
	listener net.Listener
	lines    chan string
	autoAck  bool

	mu    sync.Mutex
	conns []net.Conn
}

func newFakeBroker(t *testing.T, autoAck bool) *fakeBroker {
	t.Helper()
	path := filepath.Join(t.TempDir(), "broker.sock")
	return startFakeBroker(t, path, autoAck)
}

func startFakeBroker(t *testing.T, path string, autoAck bool) *fakeBroker {
	t.Helper()
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)

	b := &fakeBroker{
		path:     path,
		listener: ln,
		lines:    make(chan string, 1024),
		autoAck:  autoAck,
	}
	go b.acceptLoop()
	t.Cleanup(b.Close)
	return b
}

func (b *fakeBroker) acceptLoop() {
	for {
		conn, err := b.listener.Accept()
		if err != nil {
			return
		}
		b.mu.Lock()
		b.conns = append(b.conns, conn)
		b.mu.Unlock()
		go b.serve(conn)
	}
}

func (b *fakeBroker) serve(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		b.lines <- line
		if !b.autoAck {
			continue
		}
		if alert, err := protocol.DecodeAlert(line); err == nil && alert.Ack {
			_, _ = conn.Write([]byte(protocol.EncodeAck(alert.Sequence) + "\n"))
		}
	}
}

// send 向最近建立的连接写原始数据
func (b *fakeBroker) send(t *testing.T, data string) {
	t.Helper()
	b.awaitConn(t)
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.conns[len(b.conns)-1].Write([]byte(data))
	require.NoError(t, err)
}

// dropConnections 断开所有已建立的连接，监听继续
func (b *fakeBroker) dropConnections() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, conn := range b.conns {
		_ = conn.Close()
	}
	b.conns = nil
}

// awaitConn 等待至少一个连接被接受
func (b *fakeBroker) awaitConn(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool { return b.connCount() > 0 }, 3*time.Second, 5*time.Millisecond)
}

func (b *fakeBroker) connCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

func (b *fakeBroker) Close() {
	_ = b.listener.Close()
	b.dropConnections()
}

// next 读取下一行，超时视为失败
func (b *fakeBroker) next(t *testing.T) string {
	t.Helper()
	select {
	case line := <-b.lines:
		return line
	case <-time.After(3 * time.Second):
		t.Fatal("等待 broker 收到消息超时")
		return ""
	}
}

func testConfig(path string) *Config {
	return NewDefaultConfig(path).
		WithReconnectDelay(20 * time.Millisecond).
		WithMaxReconnectDelay(200 * time.Millisecond).
		WithDialTimeout(time.Second).
		WithLogger(middleware.NewNoOpLogger())
}

func newTestClient(t *testing.T, config *Config) *Client {
	t.Helper()
	c, err := New(config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func waitConnected(t *testing.T, c *Client) {
	t.Helper()
	require.Eventually(t, c.IsConnected, 3*time.Second, 5*time.Millisecond)
}
