package transaction

import (
	"context"
	"log"

	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// EventPublisher 借阅事件发布接口
// 设计说明：借阅事件是旁路输出（通知、统计等下游消费），
// 发布失败不回滚借阅事务，依赖接口便于测试和降级
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event mq.LoanEvent) error
}

// AMQPPublisher RabbitMQ事件发布器
type AMQPPublisher struct {
	publisher *mq.Publisher
}

// NewAMQPPublisher 创建RabbitMQ事件发布器
func NewAMQPPublisher(publisher *mq.Publisher) *AMQPPublisher {
	return &AMQPPublisher{publisher: publisher}
}

// Publish 发布事件并记录指标
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, event mq.LoanEvent) error {
	if err := p.publisher.Publish(ctx, routingKey, event); err != nil {
		return err
	}
	metrics.EventsPublishedTotal.WithLabelValues(routingKey).Inc()
	return nil
}

// NoopPublisher 空实现（未配置消息队列时使用）
// 只打一行日志，保证借阅主流程不依赖broker
type NoopPublisher struct{}

// Publish 丢弃事件
func (NoopPublisher) Publish(ctx context.Context, routingKey string, event mq.LoanEvent) error {
	log.Printf("借阅事件(未启用MQ): key=%s transaction_id=%d", routingKey, event.TransactionID)
	return nil
}
