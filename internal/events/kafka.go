package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/vadhh/menuweb/internal/domain"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, OrderEvent{
		ID:          uuid.NewString(),
		Type:        TypeOrderCreated,
		OrderID:     order.ID.Hex(),
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		OccurredAt:  time.Now(),
	})
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return p.publish(ctx, OrderEvent{
		ID:         uuid.NewString(),
		Type:       TypeOrderStatusChanged,
		OrderID:    orderID,
		Status:     string(status),
		OccurredAt: time.Now(),
	})
}

func (p *KafkaPublisher) OrderDeleted(ctx context.Context, orderID string) error {
	return p.publish(ctx, OrderEvent{
		ID:         uuid.NewString(),
		Type:       TypeOrderDeleted,
		OrderID:    orderID,
		OccurredAt: time.Now(),
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
