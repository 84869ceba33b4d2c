/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 19:05:13
 * @FilePath: \go-alertsock\protocol\inbound_test.go
 * @Description:
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package protocol

import (
	"strings"
	"testing"

	"github.com/kamalyes/go-alertsock/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInbound(t *testing.T) {
	t.Run("合法ACK", func(t *testing.T) {
		msg, err := ParseInbound(`{"type":"ack","sequence":42}`)
		require.NoError(t, err)

		ack, ok := msg.(*AckMessage)
		require.True(t, ok)
		assert.Equal(t, int64(42), ack.Sequence)
		assert.Equal(t, models.InboundTypeAck, msg.Kind())
	})

	t.Run("字符串序号", func(t *testing.T) {
		msg, err := ParseInbound(`{"type":"ack","sequence":"7"}`)
		require.NoError(t, err)
		assert.Equal(t, int64(7), msg.(*AckMessage).Sequence)
	})

	t.Run("未知类型", func(t *testing.T) {
		line := `{"type":"ping","id":1}`
		msg, err := ParseInbound(line)
		require.NoError(t, err)

		unknown, ok := msg.(*UnknownMessage)
		require.True(t, ok)
		assert.Equal(t, "ping", unknown.Type)
		assert.Equal(t, line, unknown.Raw)
	})

	t.Run("缺少type", func(t *testing.T) {
		msg, err := ParseInbound(`{"sequence":1}`)
		require.NoError(t, err)
		assert.IsType(t, &UnknownMessage{}, msg)
	})

	t.Run("非法JSON", func(t *testing.T) {
		_, err := ParseInbound(`{"type":"ack",`)
		require.Error(t, err)
		assert.True(t, models.IsErrorType(err, models.ErrTypeInvalidMessageFormat))
		assert.True(t, models.IsProtocolError(err))
	})

	t.Run("JSON但不是对象", func(t *testing.T) {
		for _, line := range []string{`[1,2]`, `"ack"`, `12`, `null`} {
			_, err := ParseInbound(line)
			require.Error(t, err, line)
			assert.True(t, models.IsErrorType(err, models.ErrTypeMessageNotObject), line)
		}
	})

	t.Run("ACK序号非法", func(t *testing.T) {
		for _, line := range []string{
			`{"type":"ack"}`,
			`{"type":"ack","sequence":1.5}`,
			`{"type":"ack","sequence":"abc"}`,
			`{"type":"ack","sequence":true}`,
		} {
			_, err := ParseInbound(line)
			require.Error(t, err, line)
			assert.True(t, models.IsErrorType(err, models.ErrTypeInvalidAck), line)
		}
	})

	t.Run("超长行错误信息被截断", func(t *testing.T) {
		_, err := ParseInbound("{" + strings.Repeat("x", 2000))
		require.Error(t, err)
		assert.Less(t, len(err.Error()), 1000)
	})
}
