package handlers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/models"
	"github.com/hariomfashion/backend/internal/repository"
)

//
// --- Order Lifecycle Handlers ---
//

type checkoutItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Items         []checkoutItem `json:"items"`
	ShippingFee   *float64       `json:"shippingFee"`
	PaymentMethod string         `json:"paymentMethod"`
}

// CreateOrder is the handler for POST /api/orders.
func (h *Handlers) CreateOrder(c *gin.Context) {
	user := currentUser(c)

	// 1. --- Validate Request ---
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required"})
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
		return
	}

	shippingFee := models.DefaultShippingFee
	if req.ShippingFee != nil {
		shippingFee = *req.ShippingFee
	}

	productIDs := make([]primitive.ObjectID, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		productIDs = append(productIDs, id)
	}

	// 2. --- Resolve Every Product (all-or-nothing) ---
	products, err := h.Store.Products.FindByIDs(c.Request.Context(), productIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up products"})
		return
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// 3. --- Snapshot Items & Compute Total ---
	// Name, price and image are frozen into the order here; later catalog
	// edits can never change what this customer pays.
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for i, item := range req.Items {
		product, ok := byID[productIDs[i]]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Some products not found"})
			return
		}
		mainImage := product.MainImage
		if mainImage == "" && len(product.Images) > 0 {
			mainImage = product.Images[0]
		}
		orderItems = append(orderItems, models.OrderItem{
			Product:   product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			MainImage: mainImage,
		})
	}
	total := models.OrderTotal(orderItems, shippingFee)

	// 4. --- Require Fulfilment Data ---
	if !user.HasShippingDetails() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill phone and address"})
		return
	}

	// 5. --- Persist the Order ---
	// COD starts Pending. Electronic methods start Created and stay unpaid
	// until a signature-verified confirmation arrives; the paid flag is never
	// set on trust.
	status := models.OrderStatusCreated
	if req.PaymentMethod == models.MethodCOD {
		status = models.OrderStatusPending
	}

	order := &models.Order{
		User:          user.ID,
		Items:         orderItems,
		Total:         total,
		ShippingFee:   shippingFee,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
		IsPaid:        false,
	}
	if err := h.Store.Orders.Insert(c.Request.Context(), order); err != nil {
		log.Printf("Order insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	// 6. --- Bump the Lifetime Order Counter ---
	if err := h.Store.Users.IncrementOrderCount(c.Request.Context(), user.ID); err != nil {
		// Non-critical bookkeeping; the order itself is already safe.
		log.Printf("Order counter update failed for user %s: %v", user.ID.Hex(), err)
	}

	// 7. --- Create the Payment Ledger Row ---
	// If this write is lost (crash, partition) the reconciler rebuilds it
	// from the order, so we log and carry on instead of failing the checkout.
	if err := h.Store.Payments.Insert(c.Request.Context(), models.PaymentForOrder(order, time.Now())); err != nil {
		log.Printf("Ledger insert failed for order %s: %v", order.ID.Hex(), err)
	}

	// 8. --- Open a Gateway Session for Electronic Methods ---
	var session interface{}
	if req.PaymentMethod == models.MethodCard || req.PaymentMethod == models.MethodUPI {
		amountPaise := int64(math.Round(total * 100))
		s, err := h.Gateway.CreateOrder(c.Request.Context(), amountPaise, "INR", order.ID.Hex())
		if err != nil {
			// The order is persisted but unpaid, which is a consistent state:
			// the client can retry checkout and the webhook remains the
			// authoritative confirmation path. What we must not do is
			// pretend this succeeded.
			log.Printf("Gateway session failed for order %s: %v", order.ID.Hex(), err)
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "Failed to create payment session",
				"orderId": order.ID.Hex(),
			})
			return
		}
		session = s
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Order created successfully",
		"orderId":        order.ID.Hex(),
		"total":          total,
		"paymentSession": session,
	})
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderID           string `json:"orderId"`
}

// VerifyPayment is the handler for POST /api/orders/verify: the client-relayed
// confirmation path. The signature check is the forgery defense; nothing is
// mutated until it passes.
func (h *Handlers) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment verification data"})
		return
	}

	// 1. --- Verify the Signature ---
	if !h.Gateway.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.Store.Orders.FindByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	// 2. --- Apply the Transition (idempotent) ---
	now := time.Now()
	result := models.PaymentResult{
		ID:     req.RazorpayPaymentID,
		Status: "Paid",
		Details: map[string]interface{}{
			"razorpay_order_id":  req.RazorpayOrderID,
			"razorpay_signature": req.RazorpaySignature,
		},
	}

	transitioned, err := h.Store.Orders.MarkPaid(c.Request.Context(), orderID, result, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment verification failed"})
		return
	}

	if transitioned {
		order.ApplyPaymentConfirmation(result, now)
		h.settleLedger(c, orderID, order.PaymentMethod, now)
	} else {
		// Already paid: the webhook (or an earlier call) got here first.
		// Re-read so the response reflects the settled state.
		if settled, err := h.Store.Orders.FindByID(c.Request.Context(), orderID); err == nil {
			order = settled
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment verified successfully", "order": order})
}

// MarkOrderPaid is the handler for PUT /api/admin/orders/:id/pay: manual COD
// settlement from the back office. No signature here; this path is trusted.
func (h *Handlers) MarkOrderPaid(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	if _, err := h.Store.Orders.FindByID(c.Request.Context(), orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	now := time.Now()
	result := models.PaymentResult{
		ID:     "manual_" + uuid.NewString(),
		Status: "COD Paid",
	}

	transitioned, err := h.Store.Orders.MarkPaid(c.Request.Context(), orderID, result, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating COD payment"})
		return
	}
	if transitioned {
		h.settleLedger(c, orderID, models.MethodCOD, now)
	}

	c.JSON(http.StatusOK, gin.H{"message": "COD payment marked as paid"})
}

// GetLatestOrder is the handler for GET /api/orders/latest.
func (h *Handlers) GetLatestOrder(c *gin.Context) {
	user := currentUser(c)

	order, err := h.Store.Orders.FindLatestByUser(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No orders found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch latest order"})
		return
	}

	// Items already carry their product snapshots; only the user needs
	// attaching.
	c.JSON(http.StatusOK, gin.H{"order": order, "user": summarize(user)})
}

// settleLedger flips the order's payment row to Paid. The update is an
// absolute $set so webhook redelivery or a verify/webhook race cannot
// double-count; a missing row is left for the reconciler.
func (h *Handlers) settleLedger(c *gin.Context, orderID primitive.ObjectID, method string, now time.Time) {
	err := h.Store.Payments.MarkPaid(c.Request.Context(), orderID, method, now)
	if err != nil && !errors.Is(err, repository.ErrPaymentNotFound) {
		log.Printf("Ledger update failed for order %s: %v", orderID.Hex(), err)
	}
	if errors.Is(err, repository.ErrPaymentNotFound) {
		log.Printf("No ledger row for order %s; reconciler will rebuild it", orderID.Hex())
	}
}
