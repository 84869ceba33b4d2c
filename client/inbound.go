/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-13 14:02:44
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 19:40:10
 * @FilePath: \go-alertsock\client\inbound.go
 * @Description: 入站数据分帧与消息分发
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"strings"

	"github.com/kamalyes/go-alertsock/models"
	"github.com/kamalyes/go-alertsock/protocol"
)

// onData 处理一个入站数据块，逐行按顺序分发
func (c *Client) onData(gen uint64, chunk []byte) {
	if gen != c.generation {
		return
	}
	for _, line := range c.decoder.Feed(chunk) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.dispatch(line)
	}
}

// dispatch 解析并处理一行，错误只记录日志并跳过该行
func (c *Client) dispatch(line string) {
	msg, err := protocol.ParseInbound(line)
	if err != nil {
		c.stats.invalid.Add(1)
		if models.IsErrorType(err, models.ErrTypeInvalidMessageFormat) {
			c.logger.ErrorKV("入站消息不是合法JSON", "error", err)
		} else {
			c.logger.WarnKV("入站消息格式错误", "error", err)
		}
		return
	}

	switch m := msg.(type) {
	case *protocol.AckMessage:
		if c.acks.Confirm(m.Sequence) {
			c.stats.acks.Add(1)
			return
		}
		c.stats.unknownAcks.Add(1)
		c.logger.WarnKV("收到未知序号的ACK", "sequence", m.Sequence)
	case *protocol.UnknownMessage:
		c.stats.invalid.Add(1)
		c.logger.WarnKV("未知的入站消息类型", "type", m.Type, "message", m.Raw)
	}
}
