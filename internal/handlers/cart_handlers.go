package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/models"
	"github.com/hariomfashion/backend/internal/repository"
)

//
// --- Cart Handlers ---
//

// populatedCartItem pairs a cart line with its live product document so the
// frontend can render the cart without extra round trips.
type populatedCartItem struct {
	Product  *models.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// GetCart is the handler for GET /api/cart. A user with no cart yet gets an
// empty one rather than a 404.
func (h *Handlers) GetCart(c *gin.Context) {
	userID := currentUserID(c)

	cart, err := h.Store.Carts.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			c.JSON(http.StatusOK, gin.H{"items": []populatedCartItem{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	items, err := h.populateCart(c, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddToCart is the handler for POST /api/cart. Adding a product already in
// the cart bumps its quantity instead of creating a second line.
func (h *Handlers) AddToCart(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	// The product must exist before it can go in a cart.
	if _, err := h.Store.Products.FindByID(c.Request.Context(), productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	now := time.Now()
	cart, err := h.Store.Carts.Get(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		cart = &models.Cart{User: userID, CreatedAt: now}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].Product == productID {
			cart.Items[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{Product: productID, Quantity: req.Quantity})
	}
	cart.UpdatedAt = now

	if err := h.Store.Carts.Upsert(c.Request.Context(), cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	items, err := h.populateCart(c, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdateCartItem is the handler for PUT /api/cart/:productId. A quantity of
// zero removes the line.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	userID := currentUserID(c)
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Quantity <= 0 {
		err := h.Store.Carts.RemoveItem(c.Request.Context(), userID, productID)
		if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
		return
	}

	cart, err := h.Store.Carts.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].Product == productID {
			cart.Items[i].Quantity = req.Quantity
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		return
	}
	cart.UpdatedAt = time.Now()

	if err := h.Store.Carts.Upsert(c.Request.Context(), cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	items, err := h.populateCart(c, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RemoveFromCart is the handler for DELETE /api/cart/:productId.
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	userID := currentUserID(c)
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	// Removing from a cart that does not exist is the same outcome.
	err = h.Store.Carts.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// ClearCart is the handler for DELETE /api/cart.
func (h *Handlers) ClearCart(c *gin.Context) {
	userID := currentUserID(c)

	err := h.Store.Carts.Clear(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// populateCart resolves cart lines against the catalog in one batched read.
// Lines whose product has since been deleted are silently dropped.
func (h *Handlers) populateCart(c *gin.Context, cart *models.Cart) ([]populatedCartItem, error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.Product)
	}

	products, err := h.Store.Products.FindByIDs(c.Request.Context(), ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]populatedCartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := byID[item.Product]
		if !ok {
			continue
		}
		items = append(items, populatedCartItem{Product: product, Quantity: item.Quantity})
	}
	return items, nil
}
