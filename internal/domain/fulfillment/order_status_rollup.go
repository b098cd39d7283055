package fulfillment

import (
	"github.com/tailorbase/backend/internal/domain/shared"
)

// OrderStatusRollup is the single per-order composed status record. There is
// at most one row per OrderID; every transition that maps to a phrase
// unconditionally overwrites it.
type OrderStatusRollup struct {
	shared.BaseEntity
	OrderID string
	Status  string
}

// NewOrderStatusRollup creates the rollup row for an order's first observed transition
func NewOrderStatusRollup(orderID, phrase string) (*OrderStatusRollup, error) {
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	return &OrderStatusRollup{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Status:     phrase,
	}, nil
}

// Overwrite replaces the composed phrase
func (r *OrderStatusRollup) Overwrite(phrase string) {
	r.Status = phrase
	r.Touch()
}
