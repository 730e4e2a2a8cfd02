package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hariomfashion/backend/internal/models"
)

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{collection: db.Collection("orders")}
}

func (r *orderRepository) Insert(ctx context.Context, order *models.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) FindLatestByUser(ctx context.Context, user primitive.ObjectID) (*models.Order, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"user": user}, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get latest order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// MarkPaid is the durable half of the payment-confirmed transition. The filter
// requires is_paid=false, so whichever of the client verify flow and the
// webhook gets here first wins and the loser (or a redelivery) matches nothing.
func (r *orderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, result models.PaymentResult, paidAt time.Time) (bool, error) {
	filter := bson.M{"_id": id, "is_paid": false}
	update := bson.M{
		"$set": bson.M{
			"is_paid":        true,
			"paid_at":        paidAt,
			"status":         models.OrderStatusProcessing,
			"payment_result": result,
			"updated_at":     paidAt,
		},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &order, nil
}

// OrdersWithoutLedger joins orders against payments and returns those with no
// ledger row. A crash between the order insert and the payment insert at
// checkout is the only way these appear.
func (r *orderRepository) OrdersWithoutLedger(ctx context.Context) ([]models.Order, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "payments",
			"localField":   "_id",
			"foreignField": "order",
			"as":           "ledger",
		}}},
		bson.D{{Key: "$match", Value: bson.M{"ledger": bson.M{"$size": 0}}}},
		bson.D{{Key: "$project", Value: bson.M{"ledger": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders without ledger: %w", err)
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders without ledger: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) CountByMethod(ctx context.Context, method string, requirePaid bool) (int64, error) {
	filter := bson.M{"payment_method": method}
	if requirePaid {
		filter["is_paid"] = true
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *orderRepository) CountUnpaid(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"is_paid": false})
}
