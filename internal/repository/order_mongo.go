package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vadhh/menuweb/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderMongoRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderMongoRepository{
		collection: db.Collection("orders"),
	}
}

// Create persists the order with its embedded line-item snapshot. Items
// are stored verbatim; a later edit of a product never rewrites them.
func (r *orderMongoRepository) Create(ctx context.Context, order *domain.Order) error {
	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *orderMongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// List returns all orders newest-first. Orders placed by an account
// get the account's email joined in so the admin view can show a
// contact without a second query; guest orders keep their own.
func (r *orderMongoRepository) List(ctx context.Context) ([]*domain.Order, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "order_date", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "account"},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "customer_email", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				"$customer_email",
				bson.D{{Key: "$arrayElemAt", Value: bson.A{"$account.email", 0}}},
			}}}},
		}}},
		{{Key: "$unset", Value: "account"}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (r *orderMongoRepository) Counts(ctx context.Context) (*domain.OrderCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status domain.OrderStatus `bson:"_id"`
		Count  int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode order counts: %w", err)
	}

	counts := &domain.OrderCounts{}
	for _, row := range rows {
		switch row.Status {
		case domain.OrderStatusPending:
			counts.Pending = row.Count
		case domain.OrderStatusProcessing:
			counts.Processing = row.Count
		case domain.OrderStatusCompleted:
			counts.Completed = row.Count
		}
	}

	return counts, nil
}

// UpdateStatus overwrites the status field in place. No transition
// graph is enforced and no prior status is retained.
func (r *orderMongoRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) (*domain.Order, error) {
	update := bson.M{"$set": bson.M{"status": status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order domain.Order
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

// Delete removes the order and its embedded items for good.
func (r *orderMongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *orderMongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "order_date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	return nil
}
