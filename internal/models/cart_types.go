package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a single line in a shopper's cart. Unlike an OrderItem it holds
// no price snapshot; the cart is resolved against the live catalog at
// checkout.
type CartItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int                `json:"quantity" bson:"quantity"`
}

// Cart is the model for the 'carts' collection (one per user).
type Cart struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Items     []CartItem         `json:"items" bson:"items"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// WishlistItem wraps a product reference so additions carry their own
// timestamp.
type WishlistItem struct {
	Product primitive.ObjectID `json:"product" bson:"product"`
	AddedAt time.Time          `json:"addedAt" bson:"added_at"`
}

// Wishlist is the model for the 'wishlists' collection (one per user).
type Wishlist struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Products  []WishlistItem     `json:"products" bson:"products"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
