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

type wishlistRepository struct {
	collection *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) WishlistRepository {
	return &wishlistRepository{collection: db.Collection("wishlists")}
}

func (r *wishlistRepository) Get(ctx context.Context, user primitive.ObjectID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.collection.FindOne(ctx, bson.M{"user": user}).Decode(&wishlist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWishlistNotFound
		}
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	return &wishlist, nil
}

func (r *wishlistRepository) Upsert(ctx context.Context, wishlist *models.Wishlist) error {
	now := time.Now()
	if wishlist.CreatedAt.IsZero() {
		wishlist.CreatedAt = now
	}
	wishlist.UpdatedAt = now
	if wishlist.Products == nil {
		wishlist.Products = []models.WishlistItem{}
	}

	filter := bson.M{"user": wishlist.User}
	update := bson.M{"$set": bson.M{
		"user":       wishlist.User,
		"products":   wishlist.Products,
		"created_at": wishlist.CreatedAt,
		"updated_at": wishlist.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert wishlist: %w", err)
	}
	return nil
}

func (r *wishlistRepository) RemoveProduct(ctx context.Context, user, product primitive.ObjectID) error {
	filter := bson.M{"user": user}
	update := bson.M{
		"$pull": bson.M{"products": bson.M{"product": product}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrWishlistNotFound
	}
	return nil
}

func (r *wishlistRepository) CreateIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create wishlist indexes: %w", err)
	}
	return nil
}
