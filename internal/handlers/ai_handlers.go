package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/repository"
)

// GenerateDescription is the handler for POST /api/admin/products/:id/describe
// (back office). It drafts a description with Gemini and returns it for the
// admin to review; saving is a separate product update.
func (h *Handlers) GenerateDescription(c *gin.Context) {
	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI description service is not configured"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, err := h.Store.Products.FindByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	description, err := h.AI.GenerateProductDescription(c.Request.Context(), product)
	if err != nil {
		log.Printf("Description generation failed for product %s: %v", productID.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate description"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}
