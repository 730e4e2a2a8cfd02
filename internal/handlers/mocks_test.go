package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/models"
	"github.com/hariomfashion/backend/internal/repository"
)

// Hand-written in-memory mocks for the repository interfaces. Each keeps just
// enough state to let a test assert what the handler persisted, plus error
// toggles for the failure paths.

type mockUserRepo struct {
	Users          map[primitive.ObjectID]*models.User
	OrderCountIncs map[primitive.ObjectID]int
	InsertErr      error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		Users:          make(map[primitive.ObjectID]*models.User),
		OrderCountIncs: make(map[primitive.ObjectID]int),
	}
}

func (m *mockUserRepo) Insert(_ context.Context, user *models.User) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	for _, u := range m.Users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	m.Users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := m.Users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, phone string, address *models.Address) (*models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Phone = phone
	if address != nil {
		u.Address = *address
	}
	return u, nil
}

func (m *mockUserRepo) IncrementOrderCount(_ context.Context, id primitive.ObjectID) error {
	m.OrderCountIncs[id]++
	return nil
}

func (m *mockUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.Users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.Users)), nil
}

type mockProductRepo struct {
	Products map[primitive.ObjectID]*models.Product
}

func newMockProductRepo(products ...*models.Product) *mockProductRepo {
	m := &mockProductRepo{Products: make(map[primitive.ObjectID]*models.Product)}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		m.Products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Insert(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	m.Products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, product *models.Product) error {
	if _, ok := m.Products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.Products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.Products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.Products, id)
	return nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.Products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, p := range m.Products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := m.Products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) FindAll(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.Products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) FindByCategory(_ context.Context, category string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.Products {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.Products)), nil
}

type mockOrderRepo struct {
	Orders    map[primitive.ObjectID]*models.Order
	InsertErr error
}

func newMockOrderRepo(orders ...*models.Order) *mockOrderRepo {
	m := &mockOrderRepo{Orders: make(map[primitive.ObjectID]*models.Order)}
	for _, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		m.Orders[o.ID] = o
	}
	return m
}

func (m *mockOrderRepo) Insert(_ context.Context, order *models.Order) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	m.Orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := m.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockOrderRepo) FindLatestByUser(_ context.Context, user primitive.ObjectID) (*models.Order, error) {
	var latest *models.Order
	for _, o := range m.Orders {
		if o.User != user {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	if latest == nil {
		return nil, repository.ErrOrderNotFound
	}
	return latest, nil
}

func (m *mockOrderRepo) FindAll(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.Orders {
		out = append(out, *o)
	}
	return out, nil
}

// MarkPaid mirrors the conditional-update semantics of the real repository: it
// only transitions an order that is still unpaid, and an id with no match
// reports false rather than an error.
func (m *mockOrderRepo) MarkPaid(_ context.Context, id primitive.ObjectID, result models.PaymentResult, paidAt time.Time) (bool, error) {
	o, ok := m.Orders[id]
	if !ok {
		return false, nil
	}
	return o.ApplyPaymentConfirmation(result, paidAt), nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	o, ok := m.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return o, nil
}

func (m *mockOrderRepo) OrdersWithoutLedger(_ context.Context) ([]models.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) CountByMethod(_ context.Context, method string, requirePaid bool) (int64, error) {
	var n int64
	for _, o := range m.Orders {
		if o.PaymentMethod == method && (!requirePaid || o.IsPaid) {
			n++
		}
	}
	return n, nil
}

func (m *mockOrderRepo) CountUnpaid(_ context.Context) (int64, error) {
	var n int64
	for _, o := range m.Orders {
		if !o.IsPaid {
			n++
		}
	}
	return n, nil
}

type mockPaymentRepo struct {
	Payments  map[primitive.ObjectID]*models.Payment // keyed by order id
	InsertErr error
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{Payments: make(map[primitive.ObjectID]*models.Payment)}
}

func (m *mockPaymentRepo) Insert(_ context.Context, payment *models.Payment) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	payment.ID = primitive.NewObjectID()
	m.Payments[payment.Order] = payment
	return nil
}

func (m *mockPaymentRepo) FindByOrder(_ context.Context, order primitive.ObjectID) (*models.Payment, error) {
	p, ok := m.Payments[order]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}
	return p, nil
}

func (m *mockPaymentRepo) FindAll(_ context.Context) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range m.Payments {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPaymentRepo) MarkPaid(_ context.Context, order primitive.ObjectID, method string, now time.Time) error {
	p, ok := m.Payments[order]
	if !ok {
		return repository.ErrPaymentNotFound
	}
	p.Status = models.PaymentStatusPaid
	p.Method = method
	p.UpdatedAt = now
	return nil
}

type mockCartRepo struct {
	Carts map[primitive.ObjectID]*models.Cart // keyed by user id
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{Carts: make(map[primitive.ObjectID]*models.Cart)}
}

func (m *mockCartRepo) Get(_ context.Context, user primitive.ObjectID) (*models.Cart, error) {
	cart, ok := m.Carts[user]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	return cart, nil
}

func (m *mockCartRepo) Upsert(_ context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	m.Carts[cart.User] = cart
	return nil
}

func (m *mockCartRepo) RemoveItem(_ context.Context, user, product primitive.ObjectID) error {
	cart, ok := m.Carts[user]
	if !ok {
		return nil
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Product != product {
			items = append(items, item)
		}
	}
	cart.Items = items
	return nil
}

func (m *mockCartRepo) Clear(_ context.Context, user primitive.ObjectID) error {
	if cart, ok := m.Carts[user]; ok {
		cart.Items = nil
	}
	return nil
}

type mockWishlistRepo struct {
	Wishlists map[primitive.ObjectID]*models.Wishlist // keyed by user id
}

func newMockWishlistRepo() *mockWishlistRepo {
	return &mockWishlistRepo{Wishlists: make(map[primitive.ObjectID]*models.Wishlist)}
}

func (m *mockWishlistRepo) Get(_ context.Context, user primitive.ObjectID) (*models.Wishlist, error) {
	w, ok := m.Wishlists[user]
	if !ok {
		return nil, repository.ErrWishlistNotFound
	}
	return w, nil
}

func (m *mockWishlistRepo) Upsert(_ context.Context, wishlist *models.Wishlist) error {
	if wishlist.ID.IsZero() {
		wishlist.ID = primitive.NewObjectID()
	}
	m.Wishlists[wishlist.User] = wishlist
	return nil
}

func (m *mockWishlistRepo) RemoveProduct(_ context.Context, user, product primitive.ObjectID) error {
	w, ok := m.Wishlists[user]
	if !ok {
		return nil
	}
	items := w.Products[:0]
	for _, item := range w.Products {
		if item.Product != product {
			items = append(items, item)
		}
	}
	w.Products = items
	return nil
}

type mockReviewRepo struct {
	Reviews map[primitive.ObjectID]*models.Review
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{Reviews: make(map[primitive.ObjectID]*models.Review)}
}

func (m *mockReviewRepo) Insert(_ context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	m.Reviews[review.ID] = review
	return nil
}

func (m *mockReviewRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	r, ok := m.Reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	return r, nil
}

func (m *mockReviewRepo) FindAll(_ context.Context) ([]models.Review, error) {
	var out []models.Review
	for _, r := range m.Reviews {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockReviewRepo) FindByProduct(_ context.Context, product primitive.ObjectID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range m.Reviews {
		if r.Product == product {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.Reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(m.Reviews, id)
	return nil
}

func (m *mockReviewRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.Reviews)), nil
}
