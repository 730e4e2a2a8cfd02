package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is the model for the 'reviews' collection. Reviews are left by name,
// not by account, so User here is free text.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Product   primitive.ObjectID `json:"product" bson:"product"`
	User      string             `json:"user" bson:"user"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
