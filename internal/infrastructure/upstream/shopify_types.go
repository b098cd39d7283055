package upstream

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tailorbase/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Shopify REST Admin API Payload Types
// ---------------------------------------------------------------------------

// ShopifyOrderResponse is the response wrapper for GET /orders/{id}.json
type ShopifyOrderResponse struct {
	Order *ShopifyOrder `json:"order"`
}

// ShopifyOrderListResponse is the response wrapper for GET /orders.json
type ShopifyOrderListResponse struct {
	Orders []ShopifyOrder `json:"orders"`
}

// ShopifyErrorResponse is the error payload returned on non-2xx responses
type ShopifyErrorResponse struct {
	Errors any `json:"errors,omitempty"`
}

// ShopifyOrder is the subset of the Admin API order resource the workflow
// consumes
type ShopifyOrder struct {
	ID                int64                `json:"id"`
	Name              string               `json:"name"`
	Email             string               `json:"email"`
	CreatedAt         time.Time            `json:"created_at"`
	FinancialStatus   string               `json:"financial_status"`
	FulfillmentStatus string               `json:"fulfillment_status"`
	Tags              string               `json:"tags"`
	TotalPrice        string               `json:"total_price"`
	Customer          *ShopifyCustomer     `json:"customer,omitempty"`
	ShippingAddress   *ShopifyAddress      `json:"shipping_address,omitempty"`
	LineItems         []ShopifyLineItem    `json:"line_items"`
}

// ShopifyCustomer identifies the buyer on an order
type ShopifyCustomer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ShopifyAddress is the order shipping address
type ShopifyAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Province string `json:"province"`
	Phone    string `json:"phone"`
}

// ShopifyLineItem is one purchased line of an order
type ShopifyLineItem struct {
	ID         int64               `json:"id"`
	VariantID  int64               `json:"variant_id"`
	Title      string              `json:"title"`
	Quantity   int                 `json:"quantity"`
	Price      string              `json:"price"`
	Properties []ShopifyProperty   `json:"properties"`
}

// ShopifyProperty is one custom property attached to a line item. Shopify
// models these as name/value pairs rather than a map.
type ShopifyProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// statusTag derives the workflow-facing status label for an order. The
// fulfillment status is the more specific signal; unfulfilled orders fall
// back to the financial status.
func (o *ShopifyOrder) statusTag() string {
	if o.FulfillmentStatus != "" {
		return o.FulfillmentStatus
	}
	return o.FinancialStatus
}

func parsePrice(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return price
}

func propertyBag(props []ShopifyProperty) integration.PropertyBag {
	bag := make(integration.PropertyBag, len(props))
	for _, p := range props {
		bag[p.Name] = p.Value
	}
	return bag
}
