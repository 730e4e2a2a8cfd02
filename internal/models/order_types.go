package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Stored as plain strings, but the handlers only ever write
// the values below.
const (
	OrderStatusPending    = "Pending"    // COD order placed, nothing settled yet
	OrderStatusCreated    = "Created"    // electronic order placed, awaiting gateway confirmation
	OrderStatusProcessing = "Processing" // payment confirmed, being fulfilled
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

// Payment methods accepted at checkout.
const (
	MethodCOD  = "COD"
	MethodUPI  = "UPI"
	MethodCard = "CARD"
)

// DefaultShippingFee is applied when the checkout request omits a fee.
const DefaultShippingFee = 49.0

// OrderItem is a snapshot of a product at the moment the order was placed.
// Name, price and image are frozen here so later catalog edits never change
// what the customer agreed to pay.
type OrderItem struct {
	Product   primitive.ObjectID `json:"product" bson:"product"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	MainImage string             `json:"mainImage" bson:"main_image"`
}

// PaymentResult records what the gateway (or an admin, for COD) told us about
// the settlement of an order.
type PaymentResult struct {
	ID      string                 `json:"id" bson:"id"`
	Status  string                 `json:"status" bson:"status"`
	Details map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`
}

// Order is the model for the 'orders' collection.
type Order struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User          primitive.ObjectID `json:"user" bson:"user"`
	Items         []OrderItem        `json:"items" bson:"items"`
	Total         float64            `json:"total" bson:"total"`
	ShippingFee   float64            `json:"shippingFee" bson:"shipping_fee"`
	PaymentMethod string             `json:"paymentMethod" bson:"payment_method"`
	Status        string             `json:"status" bson:"status"`
	IsPaid        bool               `json:"isPaid" bson:"is_paid"`
	PaidAt        *time.Time         `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
	PaymentResult *PaymentResult     `json:"paymentResult,omitempty" bson:"payment_result,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ValidPaymentMethod reports whether m is one of COD / UPI / CARD.
func ValidPaymentMethod(m string) bool {
	return m == MethodCOD || m == MethodUPI || m == MethodCard
}

// ValidStatusUpdate reports whether s is a status the back office is allowed
// to set. This is a closed set; anything else is rejected outright.
func ValidStatusUpdate(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderTotal computes the order total from the snapshotted items plus the
// shipping fee.
func OrderTotal(items []OrderItem, shippingFee float64) float64 {
	total := shippingFee
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ApplyPaymentConfirmation moves the order into its paid state. This is the
// single transition shared by the client verify flow, the gateway webhook and
// the manual COD settlement. Calling it on an already-paid order is a no-op,
// so the client and webhook paths can repeat or race without damage.
// It returns true if the order actually transitioned.
func (o *Order) ApplyPaymentConfirmation(result PaymentResult, now time.Time) bool {
	if o.IsPaid {
		return false
	}
	o.IsPaid = true
	o.PaidAt = &now
	o.Status = OrderStatusProcessing
	o.PaymentResult = &result
	o.UpdatedAt = now
	return true
}
