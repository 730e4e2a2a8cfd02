package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/models"
)

func TestCreateReviewRefreshesRating(t *testing.T) {
	app := newTestApp()

	product := &models.Product{Name: "Kurta", Price: 500}
	require.NoError(t, app.Products.Insert(nil, product))

	for _, rating := range []int{5, 4} {
		c, w := jsonRequest(t, http.MethodPost, "/api/reviews", gin.H{
			"productId": product.ID.Hex(),
			"user":      "Asha",
			"rating":    rating,
			"comment":   "Lovely fabric",
		}, nil)
		app.CreateReview(c)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	refreshed, err := app.Products.FindByID(nil, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed.ReviewCount)
	assert.Equal(t, 4.5, refreshed.Rating)
}

func TestCreateReviewRejectsBadRating(t *testing.T) {
	app := newTestApp()

	product := &models.Product{Name: "Saree", Price: 1500}
	require.NoError(t, app.Products.Insert(nil, product))

	for _, rating := range []int{0, 6, -1} {
		c, w := jsonRequest(t, http.MethodPost, "/api/reviews", gin.H{
			"productId": product.ID.Hex(),
			"user":      "Asha",
			"rating":    rating,
		}, nil)
		app.CreateReview(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d should be rejected", rating)
	}
	assert.Empty(t, app.Reviews.Reviews)
}

func TestDeleteReviewRecomputesRating(t *testing.T) {
	app := newTestApp()

	product := &models.Product{Name: "Lehenga", Price: 2500}
	require.NoError(t, app.Products.Insert(nil, product))

	review := &models.Review{Product: product.ID, User: "Asha", Rating: 1}
	require.NoError(t, app.Reviews.Insert(nil, review))

	c, w := jsonRequest(t, http.MethodDelete, "/api/admin/reviews/"+review.ID.Hex(), nil, nil)
	c.Params = gin.Params{{Key: "id", Value: review.ID.Hex()}}
	app.DeleteReview(c)
	require.Equal(t, http.StatusOK, w.Code)

	refreshed, err := app.Products.FindByID(nil, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, refreshed.ReviewCount)
	assert.Equal(t, 0.0, refreshed.Rating)
}

func TestGetAllReviewsPopulatesProductNames(t *testing.T) {
	app := newTestApp()

	product := &models.Product{Name: "Sherwani", Price: 4000}
	require.NoError(t, app.Products.Insert(nil, product))
	require.NoError(t, app.Reviews.Insert(nil, &models.Review{Product: product.ID, User: "Ravi", Rating: 5}))

	c, w := jsonRequest(t, http.MethodGet, "/api/admin/reviews", nil, nil)
	app.GetAllReviews(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []struct {
		ID          primitive.ObjectID `json:"id"`
		ProductName string             `json:"productName"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Sherwani", resp[0].ProductName)
}

func TestDashboardStats(t *testing.T) {
	app := newTestApp()

	user := testShopper()
	app.Users.Users[user.ID] = user

	product := &models.Product{Name: "Kurta", Price: 500}
	require.NoError(t, app.Products.Insert(nil, product))
	require.NoError(t, app.Reviews.Insert(nil, &models.Review{Product: product.ID, User: "Asha", Rating: 4}))

	paid := &models.Order{User: user.ID, PaymentMethod: models.MethodCard, Status: models.OrderStatusProcessing, IsPaid: true}
	unpaid := &models.Order{User: user.ID, PaymentMethod: models.MethodCOD, Status: models.OrderStatusPending}
	require.NoError(t, app.Orders.Insert(nil, paid))
	require.NoError(t, app.Orders.Insert(nil, unpaid))

	c, w := jsonRequest(t, http.MethodGet, "/api/admin/dashboard", nil, nil)
	app.GetDashboardStats(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products int64 `json:"products"`
		Users    int64 `json:"users"`
		Reviews  int64 `json:"reviews"`
		Payments struct {
			COD     int64 `json:"cod"`
			Card    int64 `json:"card"`
			UPI     int64 `json:"upi"`
			Pending int64 `json:"pending"`
		} `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Products)
	assert.Equal(t, int64(1), resp.Users)
	assert.Equal(t, int64(1), resp.Reviews)
	assert.Equal(t, int64(1), resp.Payments.COD)
	assert.Equal(t, int64(1), resp.Payments.Card)
	assert.Equal(t, int64(0), resp.Payments.UPI)
	assert.Equal(t, int64(1), resp.Payments.Pending)
}
