package events

import (
	"context"
	"time"

	"github.com/vadhh/menuweb/internal/domain"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
	TypeOrderDeleted       = "order.deleted"
)

// OrderEvent is the wire payload emitted on order lifecycle changes.
type OrderEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status,omitempty"`
	TotalAmount float64   `json:"total_amount,omitempty"`
	ItemCount   int       `json:"item_count,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher emits order lifecycle events. Publishing is best-effort:
// callers log failures and never fail the request over them.
type Publisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, orderID string, status domain.OrderStatus) error
	OrderDeleted(ctx context.Context, orderID string) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, *domain.Order) error { return nil }

func (NopPublisher) OrderStatusChanged(context.Context, string, domain.OrderStatus) error {
	return nil
}

func (NopPublisher) OrderDeleted(context.Context, string) error { return nil }

func (NopPublisher) Close() error { return nil }
