package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/models"
	"github.com/hariomfashion/backend/internal/repository"
)

//
// --- Review Handlers ---
//

// CreateReview is the handler for POST /api/reviews. Reviews are open to
// anyone; the reviewer supplies a display name.
func (h *Handlers) CreateReview(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
		User      string `json:"user"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.User == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
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
	review := &models.Review{
		Product:   productID,
		User:      req.User,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Store.Reviews.Insert(c.Request.Context(), review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	h.refreshProductRating(c, productID)
	c.JSON(http.StatusCreated, review)
}

// GetProductReviews is the handler for GET /api/reviews/product/:productId.
func (h *Handlers) GetProductReviews(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	reviews, err := h.Store.Reviews.FindByProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// populatedReview adds the product name so the back-office review list is
// readable without chasing ids.
type populatedReview struct {
	models.Review
	ProductName string `json:"productName"`
}

// GetAllReviews is the handler for GET /api/admin/reviews (back office).
func (h *Handlers) GetAllReviews(c *gin.Context) {
	reviews, err := h.Store.Reviews.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	// 1. Collect the distinct product ids across every review.
	seen := make(map[primitive.ObjectID]bool)
	ids := make([]primitive.ObjectID, 0, len(reviews))
	for _, r := range reviews {
		if !seen[r.Product] {
			seen[r.Product] = true
			ids = append(ids, r.Product)
		}
	}

	// 2. Resolve names in one batched read.
	products, err := h.Store.Products.FindByIDs(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	names := make(map[primitive.ObjectID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	populated := make([]populatedReview, 0, len(reviews))
	for _, r := range reviews {
		populated = append(populated, populatedReview{Review: r, ProductName: names[r.Product]})
	}
	c.JSON(http.StatusOK, populated)
}

// DeleteReview is the handler for DELETE /api/admin/reviews/:id (back office).
func (h *Handlers) DeleteReview(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	// Fetch first so the rating refresh knows which product to recompute.
	review, err := h.Store.Reviews.FindByID(c.Request.Context(), reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	if err := h.Store.Reviews.Delete(c.Request.Context(), reviewID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	h.refreshProductRating(c, review.Product)
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// refreshProductRating recomputes a product's average rating and review count
// from its reviews. Failures are logged, not surfaced; the review write
// itself already succeeded.
func (h *Handlers) refreshProductRating(c *gin.Context, productID primitive.ObjectID) {
	ctx := c.Request.Context()

	reviews, err := h.Store.Reviews.FindByProduct(ctx, productID)
	if err != nil {
		log.Printf("Rating refresh failed for product %s: %v", productID.Hex(), err)
		return
	}
	product, err := h.Store.Products.FindByID(ctx, productID)
	if err != nil {
		log.Printf("Rating refresh failed for product %s: %v", productID.Hex(), err)
		return
	}

	product.ReviewCount = len(reviews)
	if len(reviews) == 0 {
		product.Rating = 0
	} else {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		product.Rating = float64(sum) / float64(len(reviews))
	}

	if err := h.Store.Products.Update(ctx, product); err != nil {
		log.Printf("Rating refresh failed for product %s: %v", productID.Hex(), err)
		return
	}
	h.invalidateCatalog(c)
}
