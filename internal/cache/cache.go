package cache

import (
	"context"
	"errors"

	"github.com/hariomfashion/backend/internal/models"
)

// ProductCache is a read-through cache in front of the catalog. The product
// list and category pages are by far the hottest reads on the site.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product) error
	GetList(ctx context.Context, key string) ([]models.Product, error)
	SetList(ctx context.Context, key string, products []models.Product) error
	// Invalidate drops every cached catalog entry; called after any product
	// write since list keys are unbounded.
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
