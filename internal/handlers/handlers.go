package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/ai"
	"github.com/hariomfashion/backend/internal/cache"
	"github.com/hariomfashion/backend/internal/config"
	"github.com/hariomfashion/backend/internal/gateway"
	"github.com/hariomfashion/backend/internal/middleware"
	"github.com/hariomfashion/backend/internal/models"
	"github.com/hariomfashion/backend/internal/repository"
)

// Handlers holds every dependency the route handlers need. Everything is
// injected from main; there are no package-level clients or secrets.
type Handlers struct {
	Store   *repository.Store
	Gateway *gateway.Client
	Cache   cache.ProductCache // nil when REDIS_ADDR is unset
	AI      *ai.Service        // nil when GEMINI_API_KEY is unset
	Config  *config.Config
}

// currentUser returns the shopper document stashed by the auth middleware.
func currentUser(c *gin.Context) *models.User {
	raw, _ := c.Get(middleware.ContextUser)
	user, _ := raw.(*models.User)
	return user
}

// currentUserID returns the shopper id stashed by the auth middleware.
func currentUserID(c *gin.Context) primitive.ObjectID {
	raw, _ := c.Get(middleware.ContextUserID)
	id, _ := raw.(primitive.ObjectID)
	return id
}

// userSummary is the trimmed user shape attached to populated responses.
type userSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Phone string             `json:"phone,omitempty"`
}

func summarize(u *models.User) *userSummary {
	return &userSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}
