package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/vadhh/menuweb/internal/domain"
	"github.com/vadhh/menuweb/internal/events"
	"github.com/vadhh/menuweb/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyOrder      = errors.New("order items cannot be empty")
	ErrMalformedItem   = errors.New("missing fields in one or more order items")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
	ErrInvalidPrice    = errors.New("item price cannot be negative")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// OrderItemInput is one submitted cart line. Quantity and Price are
// pointers so an omitted field is distinguishable from a zero.
type OrderItemInput struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Quantity  *int     `json:"quantity"`
	Price     *float64 `json:"price"`
}

type CreateOrderRequest struct {
	Items         []OrderItemInput `json:"items"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`

	// UserID is the authenticated account, when there is one. Empty
	// means a guest order.
	UserID string `json:"-"`
}

type OrderService struct {
	repo      repository.OrderRepository
	publisher events.Publisher
}

func NewOrderService(repo repository.OrderRepository, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &OrderService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateOrder validates the submitted items, snapshots them verbatim
// and persists a Pending order. Client-supplied names and prices are
// trusted as-is; there is no re-pricing against the product records.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var totalAmount float64
	items := make([]domain.OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		if item.ProductID == "" || item.Name == "" || item.Quantity == nil || item.Price == nil {
			return nil, ErrMalformedItem
		}
		if *item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for item %s must be positive", ErrInvalidQuantity, item.Name)
		}
		if *item.Price < 0 {
			return nil, fmt.Errorf("%w: price for item %s cannot be negative", ErrInvalidPrice, item.Name)
		}

		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad product id for item %s", ErrMalformedItem, item.Name)
		}

		totalAmount += float64(*item.Quantity) * *item.Price
		items = append(items, domain.OrderItem{
			ProductID: productID,
			Name:      item.Name,
			Quantity:  *item.Quantity,
			Price:     *item.Price,
		})
	}

	order := &domain.Order{
		Items:       items,
		TotalAmount: totalAmount,
		OrderDate:   time.Now(),
		Status:      domain.OrderStatusPending,
	}

	if req.UserID != "" {
		userID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad user id", ErrMalformedItem)
		}
		order.UserID = &userID
	} else {
		// Guest checkout: contact fields are optional
		order.CustomerName = req.CustomerName
		order.CustomerEmail = req.CustomerEmail
	}

	if err := s.repo.Create(ctx, order); err != nil {
		log.Printf("repo create order error: %v \n", err)
		return nil, err
	}

	if err := s.publisher.OrderCreated(ctx, order); err != nil {
		log.Printf("publish order created error: %v \n", err)
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.repo.GetByID(ctx, oid)
}

// ListOrders returns every order, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// OrderCounts returns per-status totals for the admin dashboard.
func (s *OrderService) OrderCounts(ctx context.Context) (*domain.OrderCounts, error) {
	return s.repo.Counts(ctx)
}

// UpdateStatus overwrites the status with any member of the enum. Every
// transition is legal, including moving a Completed order back to
// Pending.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.repo.UpdateStatus(ctx, oid, parsed)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.OrderStatusChanged(ctx, order.ID.Hex(), parsed); err != nil {
		log.Printf("publish status change error: %v \n", err)
	}

	return order, nil
}

// DeleteOrder removes the order permanently. There is no soft delete
// and no recovery path.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}

	if err := s.publisher.OrderDeleted(ctx, id); err != nil {
		log.Printf("publish order deleted error: %v \n", err)
	}

	return nil
}
