package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/models"
	"github.com/hariomfashion/backend/internal/repository"
)

//
// --- Back-Office Order Handlers ---
//

// populatedOrder carries the user summary alongside the order for the admin
// dashboard; items already hold their product snapshots.
type populatedOrder struct {
	models.Order
	UserInfo *userSummary `json:"userInfo,omitempty"`
}

// GetAllOrders is the handler for GET /api/admin/orders.
func (h *Handlers) GetAllOrders(c *gin.Context) {
	orders, err := h.Store.Orders.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	// Attach user summaries in one query instead of per order.
	seen := map[primitive.ObjectID]bool{}
	var userIDs []primitive.ObjectID
	for _, o := range orders {
		if !seen[o.User] {
			seen[o.User] = true
			userIDs = append(userIDs, o.User)
		}
	}
	users := map[primitive.ObjectID]*userSummary{}
	if len(userIDs) > 0 {
		found, err := h.Store.Users.FindByIDs(c.Request.Context(), userIDs)
		if err == nil {
			for i := range found {
				users[found[i].ID] = summarize(&found[i])
			}
		}
	}

	populated := make([]populatedOrder, 0, len(orders))
	for _, o := range orders {
		populated = append(populated, populatedOrder{Order: o, UserInfo: users[o.User]})
	}

	c.JSON(http.StatusOK, populated)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus is the handler for PUT /api/admin/orders/:id/status.
// The status vocabulary is a closed set; anything else is rejected without
// touching the order.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !models.ValidStatusUpdate(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.Store.Orders.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}
