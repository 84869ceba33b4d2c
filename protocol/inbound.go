/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 19:02:47
 * @FilePath: \go-alertsock\protocol\inbound.go
 * @Description: 入站消息解析，封闭的消息变体 + 未知变体
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package protocol

import (
	"encoding/json"
	"strconv"

	"github.com/kamalyes/go-alertsock/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// InboundMessage 入站消息
// 只有本包内的类型可以实现，新增消息类型时在 ParseInbound 中显式分支
type InboundMessage interface {
	inbound()
	// Kind 消息类型
	Kind() models.InboundType
}

// AckMessage 对某个序号的确认
type AckMessage struct {
	Sequence int64 `json:"sequence"`
}

func (*AckMessage) inbound() {}

// Kind 实现 InboundMessage
func (*AckMessage) Kind() models.InboundType { return models.InboundTypeAck }

// UnknownMessage 无法识别类型的消息，保留原始内容用于日志
type UnknownMessage struct {
	Type string
	Raw  string
}

func (*UnknownMessage) inbound() {}

// Kind 实现 InboundMessage
func (m *UnknownMessage) Kind() models.InboundType { return models.InboundType(m.Type) }

// maxLoggedLine 错误信息中保留的原始行长度
const maxLoggedLine = 256

// ParseInbound 解析一行入站数据
//   - 非法JSON:       ErrTypeInvalidMessageFormat
//   - JSON但不是对象: ErrTypeMessageNotObject
//   - ack缺少整数序号: ErrTypeInvalidAck
//   - 其他 type:      返回 *UnknownMessage
func ParseInbound(line string) (InboundMessage, error) {
	data := []byte(line)
	if !json.Valid(data) {
		return nil, errorx.NewError(models.ErrTypeInvalidMessageFormat, truncate(line))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, errorx.NewError(models.ErrTypeMessageNotObject, truncate(line))
	}

	var msgType string
	if raw, ok := fields["type"]; ok {
		// type 不是字符串时按未知类型处理
		_ = json.Unmarshal(raw, &msgType)
	}

	switch models.InboundType(msgType) {
	case models.InboundTypeAck:
		seq, ok := parseSequence(fields["sequence"])
		if !ok {
			return nil, errorx.NewError(models.ErrTypeInvalidAck, truncate(line))
		}
		return &AckMessage{Sequence: seq}, nil
	default:
		return &UnknownMessage{Type: msgType, Raw: line}, nil
	}
}

// parseSequence 序号允许整数或整数字符串（出站消息里序号是字符串）
func parseSequence(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func truncate(line string) string {
	if len(line) <= maxLoggedLine {
		return line
	}
	return line[:maxLoggedLine] + "..."
}
