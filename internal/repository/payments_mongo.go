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

type paymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &paymentRepository{collection: db.Collection("payments")}
}

func (r *paymentRepository) Insert(ctx context.Context, payment *models.Payment) error {
	if payment.CreatedAt.IsZero() {
		now := time.Now()
		payment.CreatedAt = now
		payment.UpdatedAt = now
	}

	res, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	payment.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *paymentRepository) FindByOrder(ctx context.Context, order primitive.ObjectID) (*models.Payment, error) {
	var payment models.Payment
	err := r.collection.FindOne(ctx, bson.M{"order": order}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, order primitive.ObjectID, method string, now time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"status":     models.PaymentStatusPaid,
			"method":     method,
			"updated_at": now,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"order": order}, update)
	if err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *paymentRepository) CreateIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}
	return nil
}
