package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hariomfashion/backend/internal/auth"
	"github.com/hariomfashion/backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp()

	c, w := jsonRequest(t, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Asha Patil",
		"email":    "  Asha@Example.com ",
		"password": "supersecret",
	}, nil)
	app.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var reg struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Token)

	// Email is stored normalized.
	assert.Equal(t, "asha@example.com", reg.User.Email)

	sub, err := auth.ValidateToken(app.Config.JWTSecret, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID.Hex(), sub)

	// Login with the original casing still works.
	c, w = jsonRequest(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "ASHA@example.com",
		"password": "supersecret",
	}, nil)
	app.Login(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	app := newTestApp()

	c, w := jsonRequest(t, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "short",
	}, nil)
	app.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, app.Users.Users)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app := newTestApp()

	body := gin.H{"name": "Asha", "email": "asha@example.com", "password": "supersecret"}
	c, w := jsonRequest(t, http.MethodPost, "/api/auth/register", body, nil)
	app.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = jsonRequest(t, http.MethodPost, "/api/auth/register", body, nil)
	app.Register(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, app.Users.Users, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp()

	c, w := jsonRequest(t, http.MethodPost, "/api/auth/register", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "supersecret",
	}, nil)
	app.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	// Unknown email and wrong password must be indistinguishable.
	for _, body := range []gin.H{
		{"email": "asha@example.com", "password": "wrongwrong"},
		{"email": "nobody@example.com", "password": "supersecret"},
	} {
		c, w = jsonRequest(t, http.MethodPost, "/api/auth/login", body, nil)
		app.Login(c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password")
	}
}

func TestAdminLogin(t *testing.T) {
	app := newTestApp()

	c, w := jsonRequest(t, http.MethodPost, "/api/auth/admin/login", gin.H{
		"username": "admin",
		"password": "admin-password",
	}, nil)
	app.AdminLogin(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	username, err := auth.ValidateAdminToken(app.Config.JWTSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	// An admin token must never pass shopper validation.
	_, err = auth.ValidateToken(app.Config.JWTSecret, resp.Token)
	assert.Error(t, err)

	c, w = jsonRequest(t, http.MethodPost, "/api/auth/admin/login", gin.H{
		"username": "admin",
		"password": "not-the-password",
	}, nil)
	app.AdminLogin(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
