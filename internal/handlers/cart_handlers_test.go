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

func TestAddToCartMergesQuantity(t *testing.T) {
	app := newTestApp()
	user := testShopper()
	app.Users.Users[user.ID] = user

	product := &models.Product{Name: "Kurta", Price: 500}
	require.NoError(t, app.Products.Insert(nil, product))

	body := gin.H{"productId": product.ID.Hex(), "quantity": 1}
	c, w := jsonRequest(t, http.MethodPost, "/api/cart", body, user)
	app.AddToCart(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = jsonRequest(t, http.MethodPost, "/api/cart", body, user)
	app.AddToCart(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []populatedCartItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "Kurta", resp.Items[0].Product.Name)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	app := newTestApp()
	user := testShopper()
	app.Users.Users[user.ID] = user

	c, w := jsonRequest(t, http.MethodPost, "/api/cart", gin.H{
		"productId": primitive.NewObjectID().Hex(),
		"quantity":  1,
	}, user)
	app.AddToCart(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCartDropsDeletedProducts(t *testing.T) {
	app := newTestApp()
	user := testShopper()
	app.Users.Users[user.ID] = user

	kept := &models.Product{Name: "Saree", Price: 1500}
	doomed := &models.Product{Name: "Old Stock", Price: 200}
	require.NoError(t, app.Products.Insert(nil, kept))
	require.NoError(t, app.Products.Insert(nil, doomed))

	for _, p := range []*models.Product{kept, doomed} {
		c, w := jsonRequest(t, http.MethodPost, "/api/cart", gin.H{"productId": p.ID.Hex(), "quantity": 1}, user)
		app.AddToCart(c)
		require.Equal(t, http.StatusOK, w.Code)
	}

	require.NoError(t, app.Products.Delete(nil, doomed.ID))

	c, w := jsonRequest(t, http.MethodGet, "/api/cart", nil, user)
	app.GetCart(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []populatedCartItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Saree", resp.Items[0].Product.Name)
}

func TestUpdateCartItemZeroRemovesLine(t *testing.T) {
	app := newTestApp()
	user := testShopper()
	app.Users.Users[user.ID] = user

	product := &models.Product{Name: "Dupatta", Price: 300}
	require.NoError(t, app.Products.Insert(nil, product))

	c, w := jsonRequest(t, http.MethodPost, "/api/cart", gin.H{"productId": product.ID.Hex(), "quantity": 3}, user)
	app.AddToCart(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = jsonRequest(t, http.MethodPut, "/api/cart/"+product.ID.Hex(), gin.H{"quantity": 0}, user)
	c.Params = gin.Params{{Key: "productId", Value: product.ID.Hex()}}
	app.UpdateCartItem(c)
	require.Equal(t, http.StatusOK, w.Code)

	cart, err := app.Carts.Get(nil, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
