package mq

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"AttendSheet/config"
	"AttendSheet/pkg/logger"
	pkgmq "AttendSheet/pkg/mq"
)

type MessageHandler func(ctx context.Context, body []byte) error

type ConsumeOptions struct {
	Queue         string
	ConsumerTag   string
	PrefetchCount int
	Handler       MessageHandler
}

// Consume 阻塞消费指定队列，处理失败 Nack 并重新入队。
// ctx 取消后随通道关闭自然退出。
func Consume(ctx context.Context, opts ConsumeOptions) error {
	if conn == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if opts.PrefetchCount > 0 {
		if err := ch.Qos(opts.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	msgs, err := ch.Consume(
		opts.Queue,
		opts.ConsumerTag,
		false, // auto-ack = false
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logger.Logger.Info("Started consuming messages",
		zap.String("queue", opts.Queue),
		zap.String("consumer_tag", opts.ConsumerTag),
		zap.Int("prefetch_count", opts.PrefetchCount),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			msgCtx, span := pkgmq.StartConsumeSpan(ctx, config.Cfg.ServiceName, opts.Queue, msg)
			start := time.Now()
			err := opts.Handler(msgCtx, msg.Body)
			pkgmq.RecordConsume(msgCtx, opts.Queue, time.Since(start).Seconds(), err)
			span.End()

			if err != nil {
				logger.Logger.Error("Failed to process message",
					zap.String("queue", opts.Queue),
					zap.String("consumer_tag", opts.ConsumerTag),
					zap.Error(err),
				)

				_ = msg.Nack(false, true) // requeue = true
				continue
			}

			_ = msg.Ack(false)
		}
	}
}
