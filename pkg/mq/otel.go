package mq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	mqMessagesTotal   metric.Int64Counter
	mqMessageDuration metric.Float64Histogram
	mqPublishErrors   metric.Int64Counter
	mqConsumeErrors   metric.Int64Counter
)

// InitMQMetrics 初始化 RabbitMQ 指标
func InitMQMetrics(meter metric.Meter) error {
	var err error

	mqMessagesTotal, err = meter.Int64Counter(
		"mq.messages.total",
		metric.WithDescription("Total number of RabbitMQ messages"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	mqMessageDuration, err = meter.Float64Histogram(
		"mq.message.duration",
		metric.WithDescription("RabbitMQ message processing duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5),
	)
	if err != nil {
		return err
	}

	mqPublishErrors, err = meter.Int64Counter(
		"mq.publish.errors",
		metric.WithDescription("Number of RabbitMQ publish errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	mqConsumeErrors, err = meter.Int64Counter(
		"mq.consume.errors",
		metric.WithDescription("Number of RabbitMQ consume errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// PublishWithTracing 发布消息，注入追踪上下文到消息头并上报指标
func PublishWithTracing(
	ctx context.Context,
	ch *amqp.Channel,
	serviceName, exchange, routingKey string,
	msg amqp.Publishing,
) error {
	tracer := otel.Tracer(serviceName + ".rabbitmq")

	spanName := "rabbitmq.publish"
	if exchange != "" {
		spanName = "rabbitmq.publish." + exchange
	}

	ctx, span := tracer.Start(ctx, spanName, trace.WithAttributes(
		semconv.MessagingSystem("rabbitmq"),
		attribute.String("messaging.destination.name", exchange),
		attribute.String("messaging.rabbitmq.routing_key", routingKey),
		attribute.String("service.name", serviceName),
	))
	defer span.End()

	headers := make(amqp.Table)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	otel.GetTextMapPropagator().Inject(ctx, &MessageHeaderCarrier{Headers: headers})
	msg.Headers = headers

	startTime := time.Now()
	err := ch.PublishWithContext(ctx, exchange, routingKey, false, false, msg)
	duration := time.Since(startTime).Seconds()

	status := "success"
	if err != nil {
		status = "error"
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		mqPublishErrors.Add(ctx, 1)
	} else {
		span.SetStatus(codes.Ok, "Message published successfully")
	}

	labels := []attribute.KeyValue{
		semconv.MessagingSystem("rabbitmq"),
		attribute.String("messaging.operation", "publish"),
		attribute.String("messaging.rabbitmq.routing_key", routingKey),
		attribute.String("messaging.status", status),
	}

	mqMessagesTotal.Add(ctx, 1, metric.WithAttributes(labels...))
	mqMessageDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return err
}

// StartConsumeSpan 从消息头提取追踪上下文并创建处理 Span，
// 调用方负责在处理结束后 End
func StartConsumeSpan(ctx context.Context, serviceName, queue string, msg amqp.Delivery) (context.Context, trace.Span) {
	tracer := otel.Tracer(serviceName + ".rabbitmq")

	msgCtx := otel.GetTextMapPropagator().Extract(ctx, &MessageHeaderCarrier{Headers: msg.Headers})

	return tracer.Start(msgCtx, "rabbitmq.consume."+queue, trace.WithAttributes(
		semconv.MessagingSystem("rabbitmq"),
		semconv.MessagingDestinationName(queue),
		semconv.MessagingMessageID(msg.MessageId),
		attribute.String("messaging.rabbitmq.routing_key", msg.RoutingKey),
		attribute.String("service.name", serviceName),
	))
}

// RecordConsume 上报一条消息的消费结果
func RecordConsume(ctx context.Context, queue string, duration float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
		mqConsumeErrors.Add(ctx, 1)
	}

	labels := []attribute.KeyValue{
		semconv.MessagingSystem("rabbitmq"),
		attribute.String("messaging.operation", "consume"),
		attribute.String("messaging.rabbitmq.queue", queue),
		attribute.String("messaging.status", status),
	}

	mqMessagesTotal.Add(ctx, 1, metric.WithAttributes(labels...))
	mqMessageDuration.Record(ctx, duration, metric.WithAttributes(labels...))
}

// MessageHeaderCarrier 实现 propagation.TextMapCarrier 接口
type MessageHeaderCarrier struct {
	Headers amqp.Table
}

var _ propagation.TextMapCarrier = (*MessageHeaderCarrier)(nil)

func (m *MessageHeaderCarrier) Get(key string) string {
	if val, ok := m.Headers[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func (m *MessageHeaderCarrier) Set(key, value string) {
	if m.Headers == nil {
		m.Headers = make(amqp.Table)
	}
	m.Headers[key] = value
}

func (m *MessageHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(m.Headers))
	for k := range m.Headers {
		keys = append(keys, k)
	}
	return keys
}
