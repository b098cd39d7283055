// Package integration contains the upstream e-commerce bounded context.
//
// Design Pattern: Ports & Adapters
//   - OrderReader is the port for reading normalized order snapshots from
//     the upstream platform the storefront sells through
//   - Adapters (Shopify REST Admin API, caching decorators) live in the
//     infrastructure layer
package integration

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrPlatformNotConfigured   = errors.New("integration: platform not configured")
	ErrPlatformRequestFailed   = errors.New("integration: platform request failed")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")
	ErrPlatformRateLimited     = errors.New("integration: platform rate limited")
	ErrOrderNotFound           = errors.New("integration: upstream order not found")
)

// PropertyBag is the string-keyed custom property set attached to an
// upstream cart line. Lookup reports whether the key was present, so callers
// can make "missing key" an explicit branch instead of silent null flow.
type PropertyBag map[string]string

// Lookup resolves a property key
func (b PropertyBag) Lookup(key string) (string, bool) {
	v, ok := b[key]
	return v, ok
}

// UpstreamAddress is the shipping address of an upstream order
type UpstreamAddress struct {
	Name        string
	Address1    string
	Zip         string
	Country     string
	Province    string
	Phone       string
}

// UpstreamCartLine is one line item of an upstream order
type UpstreamCartLine struct {
	VariantID  string
	Title      string
	Quantity   int
	Price      decimal.Decimal
	Image      string
	Properties PropertyBag
}

// UpstreamOrder is the normalized read-only order snapshot returned by the
// platform adapter. StatusTag is the platform's own status label for the
// order; the fulfillment workflow consumes it verbatim.
type UpstreamOrder struct {
	ID              string
	Name            string
	CustomerID      string
	Email           string
	CreatedAt       time.Time
	StatusTag       string
	TotalPrice      decimal.Decimal
	ShippingAddress UpstreamAddress
	Lines           []UpstreamCartLine
}

// FirstLine returns the first cart line, or nil for an empty order
func (o *UpstreamOrder) FirstLine() *UpstreamCartLine {
	if len(o.Lines) == 0 {
		return nil
	}
	return &o.Lines[0]
}

// OrderPage is one page of an upstream order listing
type OrderPage struct {
	Orders     []UpstreamOrder
	NextCursor string
}

// OrderReader is the read-only port to the upstream platform
type OrderReader interface {
	// GetOrder retrieves one order by its upstream identifier
	GetOrder(ctx context.Context, orderID string) (*UpstreamOrder, error)

	// ListOrders retrieves a page of orders; an empty cursor starts from
	// the newest order
	ListOrders(ctx context.Context, cursor string, pageSize int) (*OrderPage, error)
}
