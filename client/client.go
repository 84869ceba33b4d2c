/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-09-06 09:50:55
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 20:05:53
 * @FilePath: \go-alertsock\client\client.go
 * @Description: Client 结构体及其对外方法
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"context"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jpillora/backoff"
	"github.com/kamalyes/go-alertsock/middleware"
	"github.com/kamalyes/go-alertsock/models"
	"github.com/kamalyes/go-alertsock/protocol"
	"github.com/kamalyes/go-alertsock/queue"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// eventBufferSize 事件通道缓冲
const eventBufferSize = 256

// Client 持久化的本地套接字告警客户端
// 连接相关的状态只在事件循环协程内读写；队列与ACK表各自加锁，供调用方直接访问
type Client struct {
	config       *Config
	logger       middleware.AlertLogger
	stateMachine *syncx.StateMachine[models.ConnectionStatus] // 连接状态机

	queueMu sync.Mutex
	queue   *queue.BoundedDeque[string] // 发送队列
	acks    *protocol.AckTable          // 待确认序号表

	ctx      context.Context
	cancel   context.CancelFunc
	events   chan func()   // 投递到事件循环的操作
	postMu   sync.RWMutex  // 保护 Close 与 post 的竞争
	kick     chan struct{} // 排空触发，缓冲为1自动合并
	loopDone chan struct{}
	closed   atomic.Bool
	once     sync.Once

	// 以下字段归事件循环所有
	conn       net.Conn
	generation uint64
	backoff    *backoff.Backoff
	writing    *string // 正在写的批次，至多一个
	decoder    *protocol.LineDecoder
	timer      *time.Timer // 重连定时器

	stats clientStats

	// 回调函数
	onConnected      atomic.Value // 连接成功回调 func()
	onConnectError   atomic.Value // 连接失败回调 func(error)
	onDisconnected   atomic.Value // 连接断开回调 func(error)
	onMessageDropped atomic.Value // 消息被丢弃回调 func(string)
}

// New 创建客户端并立即发起首次连接（无延迟）
func New(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	q, err := queue.NewBoundedDeque[string](config.QueueCapacity)
	if err != nil {
		return nil, err
	}

	sm := syncx.NewStateMachine(models.ConnectionStatusDisconnected)
	sm.AllowTransitions(models.ConnectionStatusDisconnected, models.ConnectionStatusConnecting, models.ConnectionStatusClosed)
	sm.AllowTransitions(models.ConnectionStatusConnecting, models.ConnectionStatusConnected, models.ConnectionStatusError, models.ConnectionStatusClosed)
	sm.AllowTransitions(models.ConnectionStatusConnected, models.ConnectionStatusError, models.ConnectionStatusClosed)
	sm.AllowTransitions(models.ConnectionStatusError, models.ConnectionStatusConnecting, models.ConnectionStatusClosed)

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		config:       config,
		logger:       middleware.ForSocket(config.Logger, config.SocketPath),
		stateMachine: sm,
		queue:        q,
		acks:         protocol.NewAckTable(),
		ctx:          ctx,
		cancel:       cancel,
		events:       make(chan func(), eventBufferSize),
		kick:         make(chan struct{}, 1),
		loopDone:     make(chan struct{}),
		backoff:      newBackoff(config),
		decoder:      protocol.NewLineDecoder(),
	}

	c.post(func() { c.scheduleConnect(0) })
	go c.run()
	return c, nil
}

// Write 将一行消息放入发送队列，队列已满返回 false
// 不阻塞，实际写出由事件循环异步完成
func (c *Client) Write(message string) bool {
	if c.closed.Load() {
		return false
	}
	if strings.IndexByte(message, protocol.LineDelimiter) >= 0 {
		c.logger.ErrorKV("消息包含换行符，已拒绝", "error", models.ErrMessageHasNewline, "message", message)
		return false
	}

	closed := false
	accepted := syncx.WithLockReturnValue(&c.queueMu, func() bool {
		// 与 Close 在同一把锁下判断，关闭之后不会再有消息入队
		if c.closed.Load() {
			closed = true
			return false
		}
		return c.queue.EnqueueTail(message)
	})
	if closed {
		return false
	}
	if !accepted {
		c.stats.rejected.Add(1)
		return false
	}

	c.triggerDrain()
	return true
}

// WatchAck 注册序号等待者但不阻塞，需要在写出消息之前调用
// timeout 为 0 表示一直等到ACK或连接错误
func (c *Client) WatchAck(sequence int64, timeout time.Duration) (*protocol.PendingAck, error) {
	if c.closed.Load() {
		return nil, models.ErrClientClosed
	}
	return c.acks.Register(sequence, timeout)
}

// WaitForAck 等待指定序号的ACK
// 超时、连接错误与上下文取消分别返回不同类型的错误
func (c *Client) WaitForAck(ctx context.Context, sequence int64, timeout time.Duration) (*protocol.AckResult, error) {
	pa, err := c.WatchAck(sequence, timeout)
	if err != nil {
		return nil, err
	}
	return pa.Wait(ctx)
}

// Close 停止重连并释放连接，剩余的ACK等待者以客户端关闭失败
// 可重复调用
func (c *Client) Close() error {
	c.once.Do(func() {
		syncx.WithLock(&c.queueMu, func() {
			c.closed.Store(true)
		})
		c.cancel()
		<-c.loopDone

		// 事件循环已退出，可以安全访问其私有字段
		if c.timer != nil {
			c.timer.Stop()
		}
		if c.conn != nil {
			_ = c.conn.Close()
			c.conn = nil
		}
		c.generation++
		c.flushEvents()
		failed := c.acks.Shutdown()
		_ = c.stateMachine.TransitionTo(models.ConnectionStatusClosed)

		c.logger.InfoKV("告警客户端已关闭",
			"queued", c.QueueLen(),
			"failed_acks", failed,
		)
	})
	return nil
}

// Status 当前连接状态
func (c *Client) Status() models.ConnectionStatus {
	return c.stateMachine.CurrentState()
}

// IsConnected 是否已连接
func (c *Client) IsConnected() bool {
	return c.Status().IsReady()
}

// IsClosed 是否已关闭
func (c *Client) IsClosed() bool {
	return c.closed.Load()
}

// QueueLen 队列中的消息数
func (c *Client) QueueLen() int {
	return syncx.WithLockReturnValue(&c.queueMu, func() int {
		return c.queue.Len()
	})
}

// OnConnected 设置连接成功的回调
// 所有回调都在事件循环协程内执行，不能在回调里调用 Close，耗时操作请另起协程
func (c *Client) OnConnected(f func()) {
	c.onConnected.Store(f)
}

// OnConnectError 设置连接失败的回调
func (c *Client) OnConnectError(f func(err error)) {
	c.onConnectError.Store(f)
}

// OnDisconnected 设置已建立的连接断开时的回调
func (c *Client) OnDisconnected(f func(err error)) {
	c.onDisconnected.Store(f)
}

// OnMessageDropped 设置消息重新入队失败被丢弃时的回调
func (c *Client) OnMessageDropped(f func(message string)) {
	c.onMessageDropped.Store(f)
}

// ReplayDeadLetters 把死信重新写回发送队列，max <= 0 表示不限制数量
// 队列拒绝时该消息放回死信队头并停止
func (c *Client) ReplayDeadLetters(ctx context.Context, max int) (int, error) {
	repo := c.config.DeadLetter
	if repo == nil {
		return 0, models.ErrDeadLetterNotSet
	}

	replayed := 0
	for max <= 0 || replayed < max {
		message, ok, err := repo.Pop(ctx)
		if err != nil {
			return replayed, err
		}
		if !ok {
			break
		}
		if !c.Write(message) {
			if err := repo.PushFront(ctx, message); err != nil {
				return replayed, err
			}
			break
		}
		replayed++
	}

	if replayed > 0 {
		c.logger.InfoKV("死信已回放", "count", replayed)
	}
	return replayed, nil
}

// post 投递到事件循环，循环已停止时返回 false
// 上下文取消后 select 仍可能选中有缓冲的事件通道，所以先检查一次，
// 并持有 postMu 读锁，Close 拿到写锁之后不会再有新事件进入通道
func (c *Client) post(fn func()) bool {
	return syncx.WithRLockReturnValue(&c.postMu, func() bool {
		if c.ctx.Err() != nil {
			return false
		}
		select {
		case c.events <- fn:
			return true
		case <-c.ctx.Done():
			return false
		}
	})
}

// flushEvents 循环退出后执行通道里剩下的事件
// 此时 closed 已置位且 generation 已前进，拨号结果只会关闭连接，其余事件直接丢弃
func (c *Client) flushEvents() int {
	syncx.WithLock(&c.postMu, func() {})
	flushed := 0
	for {
		select {
		case fn := <-c.events:
			fn()
			flushed++
		default:
			return flushed
		}
	}
}

// triggerDrain 请求一次排空，已有未处理的请求时直接合并
func (c *Client) triggerDrain() {
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// run 事件循环，阻塞到 Close
func (c *Client) run() {
	defer close(c.loopDone)

	syncx.NewEventLoop(c.ctx).
		// 连接生命周期、读写结果都通过事件通道串行处理
		OnChannel(c.events, func(fn func()) { fn() }).
		// 排空请求
		OnChannel(c.kick, func(struct{}) { c.drain() }).
		OnPanic(func(r interface{}) {
			c.logger.ErrorKV("告警客户端事件循环panic", "panic", r)
		}).
		OnShutdown(func() {
			c.logger.DebugKV("告警客户端事件循环已停止")
		}).
		Run()
}

func (c *Client) notifyConnected() {
	if f := c.onConnected.Load(); f != nil {
		f.(func())()
	}
}

func (c *Client) notifyConnectError(err error) {
	if f := c.onConnectError.Load(); f != nil {
		f.(func(error))(err)
	}
}

func (c *Client) notifyDisconnected(err error) {
	if f := c.onDisconnected.Load(); f != nil {
		f.(func(error))(err)
	}
}

func (c *Client) notifyMessageDropped(message string) {
	if f := c.onMessageDropped.Load(); f != nil {
		f.(func(string))(message)
	}
}
