package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hariomfashion/backend/internal/models"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrWishlistNotFound = errors.New("wishlist not found")
	ErrReviewNotFound   = errors.New("review not found")
)

type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, phone string, address *models.Address) (*models.User, error)
	IncrementOrderCount(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}

type ProductRepository interface {
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindLatestByUser(ctx context.Context, user primitive.ObjectID) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)

	// MarkPaid applies the payment-confirmed transition as a conditional
	// single-document update filtered on is_paid=false. It returns false when
	// the order was already paid, which is how both confirmation paths stay
	// idempotent under races and redelivery.
	MarkPaid(ctx context.Context, id primitive.ObjectID, result models.PaymentResult, paidAt time.Time) (bool, error)

	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)

	// OrdersWithoutLedger finds orders that have no matching payments row, for
	// the reconciler to repair.
	OrdersWithoutLedger(ctx context.Context) ([]models.Order, error)

	CountByMethod(ctx context.Context, method string, requirePaid bool) (int64, error)
	CountUnpaid(ctx context.Context) (int64, error)
}

type PaymentRepository interface {
	Insert(ctx context.Context, payment *models.Payment) error
	FindByOrder(ctx context.Context, order primitive.ObjectID) (*models.Payment, error)
	FindAll(ctx context.Context) ([]models.Payment, error)

	// MarkPaid flips the ledger row for an order to Paid with the settled
	// method. It is an absolute $set, so reapplying it is harmless.
	MarkPaid(ctx context.Context, order primitive.ObjectID, method string, now time.Time) error
}

type CartRepository interface {
	Get(ctx context.Context, user primitive.ObjectID) (*models.Cart, error)
	Upsert(ctx context.Context, cart *models.Cart) error
	RemoveItem(ctx context.Context, user, product primitive.ObjectID) error
	Clear(ctx context.Context, user primitive.ObjectID) error
}

type WishlistRepository interface {
	Get(ctx context.Context, user primitive.ObjectID) (*models.Wishlist, error)
	Upsert(ctx context.Context, wishlist *models.Wishlist) error
	RemoveProduct(ctx context.Context, user, product primitive.ObjectID) error
}

type ReviewRepository interface {
	Insert(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindAll(ctx context.Context) ([]models.Review, error)
	FindByProduct(ctx context.Context, product primitive.ObjectID) ([]models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// Store bundles every repository so handlers take one dependency.
type Store struct {
	Users     UserRepository
	Products  ProductRepository
	Orders    OrderRepository
	Payments  PaymentRepository
	Carts     CartRepository
	Wishlists WishlistRepository
	Reviews   ReviewRepository
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		Users:     NewUserRepository(db),
		Products:  NewProductRepository(db),
		Orders:    NewOrderRepository(db),
		Payments:  NewPaymentRepository(db),
		Carts:     NewCartRepository(db),
		Wishlists: NewWishlistRepository(db),
		Reviews:   NewReviewRepository(db),
	}
}

// EnsureIndexes creates the unique indexes the handlers rely on. Called once
// at startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	type indexed interface {
		CreateIndexes(ctx context.Context) error
	}
	for _, repo := range []interface{}{s.Users, s.Products, s.Payments, s.Carts, s.Wishlists} {
		if ix, ok := repo.(indexed); ok {
			if err := ix.CreateIndexes(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
