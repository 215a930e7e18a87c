// Package mail 实现邮件通知：SMTP 发送器与模板渲染.
// 发送是尽力而为的：SMTP 不可用时熔断器打开，后续发送直接跳过并记录日志.
package mail

import (
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/yeisme/assetvault/pkg/configs"
	alog "github.com/yeisme/assetvault/pkg/log"
	"github.com/yeisme/assetvault/pkg/metrics"
)

// Sender 通过 SMTP 发送 HTML 邮件.
type Sender struct {
	cfg     configs.MailConfig
	breaker *gobreaker.CircuitBreaker
}

// NewSender 创建邮件发送器.
func NewSender(cfg configs.MailConfig) *Sender {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "smtp",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			alog.Logger().Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("smtp 熔断器状态变化")
		},
	})

	return &Sender{cfg: cfg, breaker: cb}
}

// Send 发送一封 HTML 邮件. 未启用邮件时静默跳过.
func (s *Sender) Send(to, subject, htmlBody string) error {
	if !s.cfg.Enabled {
		metrics.MailSendCounter.WithLabelValues("skipped").Inc()

		return nil
	}

	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.send(to, subject, htmlBody)
	})
	if err != nil {
		metrics.MailSendCounter.WithLabelValues("failed").Inc()

		return err
	}

	metrics.MailSendCounter.WithLabelValues("sent").Inc()

	return nil
}

func (s *Sender) send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.Username, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}

// 模板在包初始化时解析，模板错误在启动时即暴露.
var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: sans-serif; max-width: 600px;">
  <h2>欢迎使用 Asset Vault，{{.Name}}！</h2>
  <p>你的账号已创建成功，现在可以上传和管理文件了。</p>
  <p><a href="{{.DashboardURL}}">进入控制台</a></p>
</div>`))

	uploadTmpl = template.Must(template.New("upload").Parse(`
<div style="font-family: sans-serif; max-width: 600px;">
  <h2>文件上传成功</h2>
  <p>{{.Name}}，你的文件已保存：</p>
  <ul>
    <li>文件名：{{.FileName}}</li>
    <li>类型：{{.FileType}}</li>
    <li>大小：{{.SizeHuman}}</li>
  </ul>
  <p><a href="{{.DashboardURL}}">查看我的文件</a></p>
</div>`))
)

// WelcomeData 欢迎邮件模板数据.
type WelcomeData struct {
	Name         string
	DashboardURL string
}

// UploadData 上传通知邮件模板数据.
type UploadData struct {
	Name         string
	FileName     string
	FileType     string
	SizeHuman    string
	DashboardURL string
}

// RenderWelcome 渲染欢迎邮件正文.
func RenderWelcome(data WelcomeData) (string, error) {
	var b strings.Builder
	if err := welcomeTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render welcome mail: %w", err)
	}

	return b.String(), nil
}

// RenderUpload 渲染上传通知邮件正文.
func RenderUpload(data UploadData) (string, error) {
	var b strings.Builder
	if err := uploadTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render upload mail: %w", err)
	}

	return b.String(), nil
}

// HumanSize 把字节数格式化为可读字符串.
func HumanSize(n int64) string {
	const unit = 1024

	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
