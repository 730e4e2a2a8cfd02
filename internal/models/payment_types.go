package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment ledger statuses.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
)

// Payment is the model for the 'payments' collection: one row per order,
// mirroring the order's method, amount and settlement state for reporting.
type Payment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Order     primitive.ObjectID `json:"order" bson:"order"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Method    string             `json:"method" bson:"method"`
	Amount    float64            `json:"amount" bson:"amount"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// PaymentForOrder builds the ledger row mirroring an order. A fresh order
// yields a Pending row; the reconciler also uses this to rebuild a row for an
// order that was already confirmed, so the paid flag carries over.
func PaymentForOrder(o *Order, now time.Time) *Payment {
	status := PaymentStatusPending
	if o.IsPaid {
		status = PaymentStatusPaid
	}
	return &Payment{
		Order:     o.ID,
		User:      o.User,
		Method:    o.PaymentMethod,
		Amount:    o.Total,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
