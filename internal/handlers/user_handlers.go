package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/models"
)

// GetMe is the handler for GET /api/users/me.
func (h *Handlers) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

type updateProfileRequest struct {
	Phone   string          `json:"phone"`
	Address *models.Address `json:"address"`
}

// UpdateMe is the handler for PUT /api/users/me. Phone and address are the
// fulfilment data order creation insists on.
func (h *Handlers) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.Store.Users.UpdateProfile(c.Request.Context(), currentUserID(c), req.Phone, req.Address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// userListing is the trimmed shape for the admin users list.
type userListing struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Orders    int                `json:"orders"`
	CreatedAt time.Time          `json:"createdAt"`
}

// GetAllUsers is the handler for GET /api/admin/users (back office).
func (h *Handlers) GetAllUsers(c *gin.Context) {
	users, err := h.Store.Users.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	listings := make([]userListing, 0, len(users))
	for _, u := range users {
		listings = append(listings, userListing{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Orders:    u.Orders,
			CreatedAt: u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, listings)
}
