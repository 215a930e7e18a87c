// Package mq 提供基于 Watermill 的进程内消息总线.
// 事件（用户注册、文件上传/删除）由业务层发布，通知订阅者异步消费，
// 发布失败或消费失败都不影响触发事件的主操作.
package mq

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	alog "github.com/yeisme/assetvault/pkg/log"
)

// Client 封装 watermill Publisher 与 Subscriber.
type Client struct {
	pubsub *gochannel.GoChannel
}

// New 创建进程内消息总线.
func New() *Client {
	logger := &zerologAdapter{l: alog.Logger()}

	ps := gochannel.NewGoChannel(gochannel.Config{
		// 订阅者阻塞时丢事件比阻塞请求好，给一点缓冲
		OutputChannelBuffer: 64,
	}, logger)

	return &Client{pubsub: ps}
}

// Publish 便捷发布.
func (c *Client) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	if c == nil || c.pubsub == nil {
		return fmt.Errorf("mq publisher not initialized")
	}

	for _, m := range msgs {
		if err := c.pubsub.Publish(topic, m); err != nil {
			return err
		}
	}

	return nil
}

// Subscribe 便捷订阅.
func (c *Client) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if c == nil || c.pubsub == nil {
		return nil, fmt.Errorf("mq subscriber not initialized")
	}

	return c.pubsub.Subscribe(ctx, topic)
}

// Close 关闭资源.
func (c *Client) Close() error {
	if c == nil || c.pubsub == nil {
		return nil
	}

	return c.pubsub.Close()
}
