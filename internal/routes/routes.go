package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hariomfashion/backend/internal/handlers"
	"github.com/hariomfashion/backend/internal/middleware"
)

// CORSMiddleware tells the browser the storefront origin may call us. The
// origin comes from configuration so staging and production differ only by
// env.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Allow only the configured storefront origin.
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)

		// 2. Allow credentials and the headers we actually use (Authorization
		// carries the JWT).
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")

		// 3. Allow the HTTP methods the API uses.
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// 4. Handle the preflight OPTIONS request.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware(h.Config.AllowedOrigin))

	// The webhook is mounted before everything else. Its handler verifies an
	// HMAC over the raw request body, so nothing may touch the body before it.
	router.POST("/api/webhooks/razorpay", h.RazorpayWebhook)

	api := router.Group("/api")
	{
		// --- Health Check (Public) ---
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// --- Auth Routes (Public) ---
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/admin/login", h.AdminLogin)

		// --- Catalog Routes (Public) ---
		api.GET("/products", h.GetAllProducts)
		api.GET("/products/category/:category", h.GetProductsByCategory)
		api.GET("/products/slug/:slug", h.GetProductBySlug)
		api.GET("/products/:id", h.GetProduct)

		// --- Review Routes (Public) ---
		api.POST("/reviews", h.CreateReview)
		api.GET("/reviews/product/:productId", h.GetProductReviews)

		// --- Shopper Routes (Login Required) ---
		authed := api.Group("/")
		authed.Use(middleware.AuthMiddleware(h.Config.JWTSecret, h.Store.Users))
		{
			authed.GET("/users/me", h.GetMe)
			authed.PUT("/users/me", h.UpdateMe)

			authed.GET("/cart", h.GetCart)
			authed.POST("/cart", h.AddToCart)
			authed.PUT("/cart/:productId", h.UpdateCartItem)
			authed.DELETE("/cart/:productId", h.RemoveFromCart)
			authed.DELETE("/cart", h.ClearCart)

			authed.GET("/wishlist", h.GetWishlist)
			authed.POST("/wishlist", h.AddToWishlist)
			authed.DELETE("/wishlist/:productId", h.RemoveFromWishlist)

			authed.POST("/orders", h.CreateOrder)
			authed.POST("/orders/verify", h.VerifyPayment)
			authed.GET("/orders/latest", h.GetLatestOrder)
		}

		// --- Back-Office Routes (Admin Token Required) ---
		admin := api.Group("/admin")
		admin.Use(middleware.AdminMiddleware(h.Config.JWTSecret))
		{
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.POST("/products/:id/describe", h.GenerateDescription)

			admin.GET("/orders", h.GetAllOrders)
			admin.PUT("/orders/:id/status", h.UpdateOrderStatus)
			admin.PUT("/orders/:id/pay", h.MarkOrderPaid)

			admin.GET("/payments", h.GetPaymentStats)
			admin.GET("/dashboard", h.GetDashboardStats)

			admin.GET("/users", h.GetAllUsers)

			admin.GET("/reviews", h.GetAllReviews)
			admin.DELETE("/reviews/:id", h.DeleteReview)
		}
	}

	return router
}
