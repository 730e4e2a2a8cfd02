package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the model for the 'products' collection.
type Product struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Slug          string             `json:"slug" bson:"slug"`
	Price         float64            `json:"price" bson:"price"`
	OriginalPrice float64            `json:"originalPrice,omitempty" bson:"original_price,omitempty"`
	Category      string             `json:"category" bson:"category"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`

	// Clothing-specific attributes
	Fabric           string   `json:"fabric,omitempty" bson:"fabric,omitempty"`
	CareInstructions string   `json:"careInstructions,omitempty" bson:"care_instructions,omitempty"`
	Sizes            []string `json:"sizes,omitempty" bson:"sizes,omitempty"`
	Colors           []string `json:"colors,omitempty" bson:"colors,omitempty"`

	IsTrending bool     `json:"isTrending" bson:"is_trending"`
	Images     []string `json:"images" bson:"images"`
	MainImage  string   `json:"mainImage" bson:"main_image"`

	Rating      float64 `json:"rating" bson:"rating"`
	ReviewCount int     `json:"reviewCount" bson:"review_count"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
