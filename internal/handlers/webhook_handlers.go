package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/models"
	"github.com/hariomfashion/backend/internal/repository"
)

// RazorpayWebhook is the handler for POST /api/webhooks/razorpay, the
// asynchronous confirmation path.
//
// The signature is HMAC-SHA256 over the exact raw bytes of the body, so this
// handler reads the body itself and the route must never sit behind anything
// that parses or rewrites it. After the signature check we acknowledge
// everything — including orders we can't find — because a non-2xx makes the
// gateway retry forever.
func (h *Handlers) RazorpayWebhook(c *gin.Context) {
	rawBody, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	// 1. --- Verify the Signature over the Raw Bytes ---
	signature := c.GetHeader("X-Razorpay-Signature")
	if !h.Gateway.VerifyWebhookSignature(rawBody, signature) {
		log.Printf("Webhook signature mismatch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	// 2. --- Parse the Verified Payload ---
	var payload struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity map[string]interface{} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	// Only captured payments matter; acknowledge everything else.
	if payload.Event != "payment.captured" {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	entity := payload.Payload.Payment.Entity
	receipt := extractReceipt(entity)
	if receipt == "" {
		log.Printf("Webhook received with no receipt/orderId")
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(receipt)
	if err != nil {
		log.Printf("Webhook receipt %q is not an order id", receipt)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	// 3. --- Apply the Transition (idempotent) ---
	paymentID, _ := entity["id"].(string)
	now := time.Now()
	result := models.PaymentResult{
		ID:      paymentID,
		Status:  "Captured",
		Details: entity,
	}

	transitioned, err := h.Store.Orders.MarkPaid(c.Request.Context(), orderID, result, now)
	if err != nil {
		log.Printf("Webhook failed to mark order %s paid: %v", receipt, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if transitioned {
		// Find the order's method for the ledger; a missing order can't
		// happen here since MarkPaid matched it.
		method := models.MethodCard
		if order, err := h.Store.Orders.FindByID(c.Request.Context(), orderID); err == nil {
			method = order.PaymentMethod
		}
		h.settleLedger(c, orderID, method, now)
		log.Printf("Order %s marked as paid via webhook", receipt)
	} else {
		// Redelivery, an unknown order, or the client verify flow won the
		// race. All of these are fine; just acknowledge.
		if _, err := h.Store.Orders.FindByID(c.Request.Context(), orderID); errors.Is(err, repository.ErrOrderNotFound) {
			log.Printf("No order found for webhook receipt %s", receipt)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// extractReceipt pulls our internal order id out of the gateway payload: the
// notes.orderId the checkout attached, or the receipt field as fallback.
func extractReceipt(entity map[string]interface{}) string {
	if notes, ok := entity["notes"].(map[string]interface{}); ok {
		if id, ok := notes["orderId"].(string); ok && id != "" {
			return id
		}
	}
	if receipt, ok := entity["receipt"].(string); ok {
		return receipt
	}
	return ""
}
