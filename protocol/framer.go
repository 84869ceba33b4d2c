/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-14 20:31:09
 * @FilePath: \go-alertsock\protocol\framer.go
 * @Description: 按换行符切分入站字节流
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package protocol

import (
	"bytes"
)

// LineDelimiter 行分隔符，线上协议只认 \n
const LineDelimiter = '\n'

// LineDecoder 可重入的按行解码器
// 未完整的尾部片段保留在缓冲区，等待后续数据补齐；长度不设上限
type LineDecoder struct {
	buf []byte
}

// NewLineDecoder 创建行解码器
func NewLineDecoder() *LineDecoder {
	return &LineDecoder{}
}

// Feed 追加一段数据并返回其中所有完整的行（不含换行符），顺序与到达顺序一致
// chunk 中没有换行时只做缓存，返回 nil
func (d *LineDecoder) Feed(chunk []byte) []string {
	if len(chunk) == 0 {
		return nil
	}
	if bytes.IndexByte(chunk, LineDelimiter) < 0 {
		d.buf = append(d.buf, chunk...)
		return nil
	}

	d.buf = append(d.buf, chunk...)

	var lines []string
	rest := d.buf
	for {
		idx := bytes.IndexByte(rest, LineDelimiter)
		if idx < 0 {
			break
		}
		lines = append(lines, string(rest[:idx]))
		rest = rest[idx+1:]
	}

	// 剩余片段拷贝到新切片，避免持有已消费的大块内存
	d.buf = append([]byte(nil), rest...)
	return lines
}

// Buffered 返回尚未成行的字节数
func (d *LineDecoder) Buffered() int {
	return len(d.buf)
}

// Reset 丢弃未成行的数据，连接重建时调用
func (d *LineDecoder) Reset() {
	d.buf = nil
}
