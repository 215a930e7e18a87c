// Package queue 定义领域事件的主题、信封格式与编解码.
// 事件经 sonic 序列化后通过 watermill 消息总线投递.
package queue

import (
	"time"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"
)

// 领域事件主题.
const (
	TopicUserRegistered = "av.user.registered"
	TopicFileUploaded   = "av.file.uploaded"
	TopicFileDeleted    = "av.file.deleted"
)

// Header 事件公共头.
type Header struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Envelope 事件信封，Payload 按主题约定.
type Envelope[T any] struct {
	Header  Header `json:"header"`
	Payload T      `json:"payload"`
}

// UserRegistered 用户注册事件负载.
type UserRegistered struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// FileUploaded 文件上传事件负载.
type FileUploaded struct {
	FileID     uint   `json:"fileId"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	Size       int64  `json:"size"`
	OwnerID    uint   `json:"ownerId"`
	OwnerEmail string `json:"ownerEmail"`
	OwnerName  string `json:"ownerName"`
}

// FileDeleted 文件删除事件负载.
type FileDeleted struct {
	FileID   uint   `json:"fileId"`
	FileName string `json:"fileName"`
	OwnerID  uint   `json:"ownerId"`
}

// NewMessage 把负载包装为信封并编码成 watermill 消息.
func NewMessage[T any](topic string, payload T) (*message.Message, error) {
	env := Envelope[T]{
		Header: Header{
			ID:         watermill.NewUUID(),
			Topic:      topic,
			OccurredAt: time.Now(),
		},
		Payload: payload,
	}

	data, err := sonic.Marshal(env)
	if err != nil {
		return nil, err
	}

	return message.NewMessage(env.Header.ID, data), nil
}

// Parse 从 watermill 消息解出信封.
func Parse[T any](msg *message.Message) (*Envelope[T], error) {
	var env Envelope[T]
	if err := sonic.Unmarshal(msg.Payload, &env); err != nil {
		return nil, err
	}

	return &env, nil
}
