package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/models"
)

// paymentStats is the per-method breakdown on the admin payments page.
type paymentStats struct {
	Card        int64   `json:"card"`
	UPI         int64   `json:"upi"`
	COD         int64   `json:"cod"`
	Pending     int64   `json:"pending"`
	TotalAmount float64 `json:"totalAmount"`
}

type populatedPayment struct {
	models.Payment
	UserInfo *userSummary `json:"userInfo,omitempty"`
}

// GetPaymentStats is the handler for GET /api/admin/payments: the full ledger
// plus a settled-vs-pending breakdown.
func (h *Handlers) GetPaymentStats(c *gin.Context) {
	payments, err := h.Store.Payments.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment stats"})
		return
	}

	var stats paymentStats
	for _, p := range payments {
		stats.TotalAmount += p.Amount
		if p.Status == models.PaymentStatusPending {
			stats.Pending++
			continue
		}
		switch p.Method {
		case models.MethodCard:
			stats.Card++
		case models.MethodUPI:
			stats.UPI++
		case models.MethodCOD:
			stats.COD++
		}
	}

	seen := map[primitive.ObjectID]bool{}
	var userIDs []primitive.ObjectID
	for _, p := range payments {
		if !seen[p.User] {
			seen[p.User] = true
			userIDs = append(userIDs, p.User)
		}
	}
	users := map[primitive.ObjectID]*userSummary{}
	if len(userIDs) > 0 {
		if found, err := h.Store.Users.FindByIDs(c.Request.Context(), userIDs); err == nil {
			for i := range found {
				users[found[i].ID] = summarize(&found[i])
			}
		}
	}

	populated := make([]populatedPayment, 0, len(payments))
	for _, p := range payments {
		populated = append(populated, populatedPayment{Payment: p, UserInfo: users[p.User]})
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats, "payments": populated})
}
