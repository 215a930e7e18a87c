package mail

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/assetvault/pkg/internal/storage/mq"
	alog "github.com/yeisme/assetvault/pkg/log"
	"github.com/yeisme/assetvault/pkg/queue"
)

// Notifier 订阅领域事件并发送对应的通知邮件.
// 任何失败只记录日志，不会传播回事件发布方.
type Notifier struct {
	sender       *Sender
	dashboardURL string
}

// NewNotifier 创建邮件通知器.
func NewNotifier(sender *Sender, dashboardURL string) *Notifier {
	return &Notifier{sender: sender, dashboardURL: dashboardURL}
}

// Start 启动订阅循环，ctx 取消时退出.
func (n *Notifier) Start(ctx context.Context, bus *mq.Client) error {
	registered, err := bus.Subscribe(ctx, queue.TopicUserRegistered)
	if err != nil {
		return err
	}

	uploaded, err := bus.Subscribe(ctx, queue.TopicFileUploaded)
	if err != nil {
		return err
	}

	go n.consumeRegistered(registered)
	go n.consumeUploaded(uploaded)

	return nil
}

func (n *Notifier) consumeRegistered(msgs <-chan *message.Message) {
	for msg := range msgs {
		n.handleRegistered(msg)
		msg.Ack()
	}
}

func (n *Notifier) consumeUploaded(msgs <-chan *message.Message) {
	for msg := range msgs {
		n.handleUploaded(msg)
		msg.Ack()
	}
}

func (n *Notifier) handleRegistered(msg *message.Message) {
	env, err := queue.Parse[queue.UserRegistered](msg)
	if err != nil {
		alog.Logger().Error().Err(err).Str("msg", msg.UUID).Msg("解析注册事件失败")

		return
	}

	body, err := RenderWelcome(WelcomeData{
		Name:         env.Payload.Name,
		DashboardURL: n.dashboardURL,
	})
	if err != nil {
		alog.Logger().Error().Err(err).Msg("渲染欢迎邮件失败")

		return
	}

	if err := n.sender.Send(env.Payload.Email, "欢迎使用 Asset Vault", body); err != nil {
		alog.Logger().Warn().Err(err).Str("to", env.Payload.Email).Msg("欢迎邮件发送失败")
	}
}

func (n *Notifier) handleUploaded(msg *message.Message) {
	env, err := queue.Parse[queue.FileUploaded](msg)
	if err != nil {
		alog.Logger().Error().Err(err).Str("msg", msg.UUID).Msg("解析上传事件失败")

		return
	}

	body, err := RenderUpload(UploadData{
		Name:         env.Payload.OwnerName,
		FileName:     env.Payload.FileName,
		FileType:     env.Payload.FileType,
		SizeHuman:    HumanSize(env.Payload.Size),
		DashboardURL: n.dashboardURL,
	})
	if err != nil {
		alog.Logger().Error().Err(err).Msg("渲染上传通知邮件失败")

		return
	}

	if err := n.sender.Send(env.Payload.OwnerEmail, "文件上传成功", body); err != nil {
		alog.Logger().Warn().Err(err).Str("to", env.Payload.OwnerEmail).Msg("上传通知邮件发送失败")
	}
}
