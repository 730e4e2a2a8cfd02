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
// --- Wishlist Handlers ---
//

// GetWishlist is the handler for GET /api/wishlist, returning the saved
// products populated from the catalog.
func (h *Handlers) GetWishlist(c *gin.Context) {
	userID := currentUserID(c)

	wishlist, err := h.Store.Wishlists.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrWishlistNotFound) {
			c.JSON(http.StatusOK, gin.H{"products": []models.Product{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	ids := make([]primitive.ObjectID, 0, len(wishlist.Products))
	for _, item := range wishlist.Products {
		ids = append(ids, item.Product)
	}
	products, err := h.Store.Products.FindByIDs(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// AddToWishlist is the handler for POST /api/wishlist. Saving a product twice
// is a no-op.
func (h *Handlers) AddToWishlist(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		ProductID string `json:"productId"`
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

	if _, err := h.Store.Products.FindByID(c.Request.Context(), productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	now := time.Now()
	wishlist, err := h.Store.Wishlists.Get(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrWishlistNotFound) {
		wishlist = &models.Wishlist{User: userID, CreatedAt: now}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	for _, item := range wishlist.Products {
		if item.Product == productID {
			c.JSON(http.StatusOK, gin.H{"message": "Product already in wishlist"})
			return
		}
	}
	wishlist.Products = append(wishlist.Products, models.WishlistItem{Product: productID, AddedAt: now})
	wishlist.UpdatedAt = now

	if err := h.Store.Wishlists.Upsert(c.Request.Context(), wishlist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product added to wishlist"})
}

// RemoveFromWishlist is the handler for DELETE /api/wishlist/:productId.
func (h *Handlers) RemoveFromWishlist(c *gin.Context) {
	userID := currentUserID(c)
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	// An absent wishlist means the product is already not on it.
	err = h.Store.Wishlists.RemoveProduct(c.Request.Context(), userID, productID)
	if err != nil && !errors.Is(err, repository.ErrWishlistNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist"})
}
