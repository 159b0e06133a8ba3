package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus validates enum membership. Transitions between
// statuses are otherwise unrestricted.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// OrderItem is a snapshot taken at order time. Later edits to the
// product never change it.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

type Order struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Items         []OrderItem         `bson:"items" json:"items"`
	TotalAmount   float64             `bson:"total_amount" json:"totalAmount"`
	OrderDate     time.Time           `bson:"order_date" json:"orderDate"`
	Status        OrderStatus         `bson:"status" json:"status"`
	CustomerName  string              `bson:"customer_name,omitempty" json:"customerName,omitempty"`
	CustomerEmail string              `bson:"customer_email,omitempty" json:"customerEmail,omitempty"`
}

// OrderCounts holds per-status order totals for the admin dashboard.
type OrderCounts struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
}
