/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2025-12-05 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-15 16:27:55
 * @FilePath: \go-alertsock\middleware\escalation.go
 * @Description: 告警无法投递时的升级通知 - 邮件通知（接口定义）
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package middleware

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
)

// EmailSender 邮件发送接口（由外部实现）
type EmailSender interface {
	SendEmailWithHTML(ctx context.Context, to []string, subject, htmlBody string) error
}

// EscalationReason 升级原因
type EscalationReason string

const (
	EscalationReasonQueueFull      EscalationReason = "queue_full"      // 发送队列已满
	EscalationReasonAckTimeout     EscalationReason = "ack_timeout"     // 等待ACK超时
	EscalationReasonConnectionLost EscalationReason = "connection_lost" // 等待ACK期间连接断开
)

// Escalation 一次升级通知的内容
type Escalation struct {
	Sequence int64
	Name     string
	Message  string
	Channel  string
	Reason   EscalationReason
	Error    string
}

// Escalator 告警无法投递时的兜底通知
type Escalator interface {
	Escalate(ctx context.Context, e *Escalation)
}

// EscalationService 基于邮件的升级通知
type EscalationService struct {
	emailSender EmailSender
	recipients  []string
	appName     string
	subject     string
	template    *template.Template
	logger      AlertLogger
}

// EscalationTemplateData 邮件模板数据
type EscalationTemplateData struct {
	AppName      string
	Sequence     int64
	Name         string
	Message      string
	Channel      string
	Reason       string
	Error        string
	TriggerTime  string
	GenerateTime string
}

// DefaultEscalationTemplate 默认邮件模板
const DefaultEscalationTemplate = `<h3>[{{.AppName}}] alert not delivered</h3>
<p>sequence: {{.Sequence}} name: {{.Name}} channel: {{.Channel}}</p>
<p>reason: {{.Reason}} {{.Error}}</p>
<pre>{{.Message}}</pre>
<p>{{.TriggerTime}}</p>`

// NewEscalationService 创建升级通知服务
func NewEscalationService(
	emailSender EmailSender,
	recipients []string,
	appName, subject, templateHTML string,
	logger AlertLogger,
) (*EscalationService, error) {
	templateHTML = mathx.IF(templateHTML == "", DefaultEscalationTemplate, templateHTML)
	subject = mathx.IF(subject == "", "alert delivery failed", subject)

	tmpl, err := template.New("escalation").Parse(templateHTML)
	if err != nil {
		return nil, errorx.WrapError("解析升级邮件模板失败", err)
	}

	// 如果未提供 logger,使用默认 logger
	if logger == nil {
		logger = DefaultLogger
	}

	return &EscalationService{
		emailSender: emailSender,
		recipients:  recipients,
		appName:     appName,
		subject:     subject,
		template:    tmpl,
		logger:      logger,
	}, nil
}

// Escalate 发送升级邮件
func (s *EscalationService) Escalate(ctx context.Context, e *Escalation) {
	if s.emailSender == nil || len(s.recipients) == 0 || e == nil {
		return
	}

	body, err := s.render(e)
	if err != nil {
		s.logger.ErrorKV("渲染升级邮件模板失败",
			"sequence", e.Sequence,
			"reason", e.Reason,
			"error", err,
		)
		return
	}

	err = s.emailSender.SendEmailWithHTML(ctx, s.recipients, s.subject, body)
	mathx.When(err != nil).
		Then(func() {
			s.logger.ErrorKV("发送升级邮件失败",
				"sequence", e.Sequence,
				"name", e.Name,
				"reason", e.Reason,
				"error", err,
			)
		}).
		Else(func() {
			s.logger.WarnKV("已发送升级邮件",
				"sequence", e.Sequence,
				"name", e.Name,
				"reason", e.Reason,
			)
		}).
		Do()
}

// render 渲染邮件模板
func (s *EscalationService) render(e *Escalation) (string, error) {
	now := time.Now()
	data := EscalationTemplateData{
		AppName:      s.appName,
		Sequence:     e.Sequence,
		Name:         e.Name,
		Message:      e.Message,
		Channel:      e.Channel,
		Reason:       string(e.Reason),
		Error:        e.Error,
		TriggerTime:  now.Format(time.DateTime),
		GenerateTime: now.Format(time.RFC3339),
	}

	var buf bytes.Buffer
	if err := s.template.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
