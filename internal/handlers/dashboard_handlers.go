package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hariomfashion/backend/internal/models"
)

// GetDashboardStats is the handler for GET /api/admin/dashboard (back
// office). It aggregates the headline numbers shown on the admin landing
// page.
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	productCount, err := h.Store.Products.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}
	userCount, err := h.Store.Users.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}
	reviewCount, err := h.Store.Reviews.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	codCount, err := h.Store.Orders.CountByMethod(ctx, models.MethodCOD, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}
	cardPaid, err := h.Store.Orders.CountByMethod(ctx, models.MethodCard, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}
	upiPaid, err := h.Store.Orders.CountByMethod(ctx, models.MethodUPI, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}
	unpaid, err := h.Store.Orders.CountUnpaid(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": productCount,
		"users":    userCount,
		"reviews":  reviewCount,
		"payments": gin.H{
			"cod":     codCount,
			"card":    cardPaid,
			"upi":     upiPaid,
			"pending": unpaid,
		},
	})
}
