/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-15 10:12:26
 * @FilePath: \go-alertsock\protocol\alert.go
 * @Description: 出站告警消息
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package protocol

import (
	"encoding/json"
	"strconv"

	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// AlertMessage 出站告警，序列化后为一行JSON
type AlertMessage struct {
	Sequence int64  `json:"-"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Channel  string `json:"channel,omitempty"`
	Ack      bool   `json:"ack,omitempty"`
}

// alertWire 线上格式，sequence 以字符串形式传输
type alertWire struct {
	Sequence string `json:"sequence"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Channel  string `json:"channel,omitempty"`
	Ack      bool   `json:"ack,omitempty"`
}

// Encode 序列化为单行JSON（不含结尾换行）
// encoding/json 会把字符串里的换行转义为 \n，因此结果中不会出现裸换行
func (m *AlertMessage) Encode() (string, error) {
	data, err := json.Marshal(alertWire{
		Sequence: strconv.FormatInt(m.Sequence, 10),
		Name:     m.Name,
		Message:  m.Message,
		Channel:  m.Channel,
		Ack:      m.Ack,
	})
	if err != nil {
		return "", errorx.WrapError("encode alert message failed", err)
	}
	return string(data), nil
}

// DecodeAlert 解析出站告警，供模拟 broker 与测试使用
func DecodeAlert(line string) (*AlertMessage, error) {
	var wire alertWire
	if err := json.Unmarshal([]byte(line), &wire); err != nil {
		return nil, errorx.WrapError("decode alert message failed", err)
	}
	seq, err := strconv.ParseInt(wire.Sequence, 10, 64)
	if err != nil {
		return nil, errorx.WrapError("invalid alert sequence", err)
	}
	return &AlertMessage{
		Sequence: seq,
		Name:     wire.Name,
		Message:  wire.Message,
		Channel:  wire.Channel,
		Ack:      wire.Ack,
	}, nil
}

// EncodeAck 序列化一条ACK，供模拟 broker 与测试使用
func EncodeAck(sequence int64) string {
	return `{"type":"ack","sequence":` + strconv.FormatInt(sequence, 10) + `}`
}
