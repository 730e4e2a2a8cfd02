package handlers

import (
	"context"
	"log"
	"time"

	"github.com/hariomfashion/backend/internal/models"
)

// ReconcileLedger rebuilds payments rows for orders that are missing one.
// Checkout tolerates a failed ledger insert rather than failing the order, so
// this runs periodically to close the gap. Safe to run concurrently with
// traffic: the rows it inserts are derived from the order document alone.
func (h *Handlers) ReconcileLedger(ctx context.Context) {
	orders, err := h.Store.Orders.OrdersWithoutLedger(ctx)
	if err != nil {
		log.Printf("Ledger reconciliation scan failed: %v", err)
		return
	}
	if len(orders) == 0 {
		return
	}

	repaired := 0
	for i := range orders {
		payment := models.PaymentForOrder(&orders[i], time.Now())
		if err := h.Store.Payments.Insert(ctx, payment); err != nil {
			log.Printf("Ledger rebuild failed for order %s: %v", orders[i].ID.Hex(), err)
			continue
		}
		repaired++
	}
	log.Printf("Ledger reconciliation rebuilt %d of %d missing rows", repaired, len(orders))
}
