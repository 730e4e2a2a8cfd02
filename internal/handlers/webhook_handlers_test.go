package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/models"
)

func webhookBody(t *testing.T, event, paymentID, receipt string) []byte {
	t.Helper()
	body, err := json.Marshal(gin.H{
		"event": event,
		"payload": gin.H{
			"payment": gin.H{
				"entity": gin.H{
					"id":      paymentID,
					"receipt": receipt,
					"notes":   gin.H{"orderId": receipt},
				},
			},
		},
	})
	require.NoError(t, err)
	return body
}

func webhookRequest(rawBody []byte, signature string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/webhooks/razorpay", bytes.NewReader(rawBody))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("X-Razorpay-Signature", signature)
	return c, w
}

func signWebhook(rawBody []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookPaymentCaptured(t *testing.T) {
	app := newTestApp()

	order := &models.Order{
		User:          primitive.NewObjectID(),
		Total:         1299,
		PaymentMethod: models.MethodUPI,
		Status:        models.OrderStatusCreated,
	}
	require.NoError(t, app.Orders.Insert(nil, order))
	require.NoError(t, app.Payments.Insert(nil, models.PaymentForOrder(order, order.CreatedAt)))

	body := webhookBody(t, "payment.captured", "pay_hook1", order.ID.Hex())
	c, w := webhookRequest(body, signWebhook(body))
	app.RazorpayWebhook(c)

	require.Equal(t, http.StatusOK, w.Code)

	settled, err := app.Orders.FindByID(nil, order.ID)
	require.NoError(t, err)
	assert.True(t, settled.IsPaid)
	assert.Equal(t, models.OrderStatusProcessing, settled.Status)
	require.NotNil(t, settled.PaymentResult)
	assert.Equal(t, "pay_hook1", settled.PaymentResult.ID)

	payment, err := app.Payments.FindByOrder(nil, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.Equal(t, models.MethodUPI, payment.Method)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app := newTestApp()

	order := &models.Order{
		User:          primitive.NewObjectID(),
		Total:         1299,
		PaymentMethod: models.MethodCard,
		Status:        models.OrderStatusCreated,
	}
	require.NoError(t, app.Orders.Insert(nil, order))

	body := webhookBody(t, "payment.captured", "pay_hook1", order.ID.Hex())

	// Signed over different bytes than what is delivered.
	badSig := signWebhook(append([]byte(" "), body...))
	c, w := webhookRequest(body, badSig)
	app.RazorpayWebhook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	unchanged, err := app.Orders.FindByID(nil, order.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.IsPaid)
}

func TestWebhookDuplicateDelivery(t *testing.T) {
	app := newTestApp()

	order := &models.Order{
		User:          primitive.NewObjectID(),
		Total:         899,
		PaymentMethod: models.MethodCard,
		Status:        models.OrderStatusCreated,
	}
	require.NoError(t, app.Orders.Insert(nil, order))
	require.NoError(t, app.Payments.Insert(nil, models.PaymentForOrder(order, order.CreatedAt)))

	body := webhookBody(t, "payment.captured", "pay_hook2", order.ID.Hex())
	sig := signWebhook(body)

	c, w := webhookRequest(body, sig)
	app.RazorpayWebhook(c)
	require.Equal(t, http.StatusOK, w.Code)

	first, err := app.Orders.FindByID(nil, order.ID)
	require.NoError(t, err)
	firstPaidAt := *first.PaidAt

	// Redelivery must ack without touching the settled order.
	c, w = webhookRequest(body, sig)
	app.RazorpayWebhook(c)
	require.Equal(t, http.StatusOK, w.Code)

	second, err := app.Orders.FindByID(nil, order.ID)
	require.NoError(t, err)
	assert.Equal(t, firstPaidAt, *second.PaidAt)
}

func TestWebhookUnknownOrderIsAcked(t *testing.T) {
	app := newTestApp()

	body := webhookBody(t, "payment.captured", "pay_hook3", primitive.NewObjectID().Hex())
	c, w := webhookRequest(body, signWebhook(body))
	app.RazorpayWebhook(c)

	// A non-2xx would make the gateway retry forever.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	app := newTestApp()

	order := &models.Order{
		User:          primitive.NewObjectID(),
		Total:         450,
		PaymentMethod: models.MethodUPI,
		Status:        models.OrderStatusCreated,
	}
	require.NoError(t, app.Orders.Insert(nil, order))

	body := webhookBody(t, "payment.authorized", "pay_hook4", order.ID.Hex())
	c, w := webhookRequest(body, signWebhook(body))
	app.RazorpayWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	unchanged, err := app.Orders.FindByID(nil, order.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.IsPaid)
}
