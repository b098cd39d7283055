package fulfillment

import (
	"encoding/json"
	"time"

	"github.com/tailorbase/backend/internal/domain/shared"
)

// ShippingInformation is the shipping address slice of an order context
// snapshot. Field names are contractual; the serialized form round-trips
// through the persisted addressInformation blob.
type ShippingInformation struct {
	CustomerName string `json:"customerName"`
	PlotNumber   string `json:"plotNumber"`
	PinCode      string `json:"pinCode"`
	Country      string `json:"country"`
	State        string `json:"state"`
	PhoneNumber  string `json:"phoneNumber"`
}

// CartLine is one cart item inside an order context snapshot
type CartLine struct {
	TeeType       string `json:"teeType"`
	PocketType    string `json:"pocketType"`
	SleeveType    string `json:"sleeveType"`
	Color         string `json:"color"`
	QuantityCount int    `json:"quantityCount"`
	Image         string `json:"image"`
}

// OrderContext is the read-only bundle of customer, shipping, cart and
// upstream-status data attached to every transition. The UpstreamStatus
// field is the tag consulted by the rollup table and is the only field the
// workflow ever mutates.
type OrderContext struct {
	UserName       string              `json:"userName"`
	UserEmail      string              `json:"userEmail"`
	UpstreamStatus UpstreamTag         `json:"orderStatus"`
	OrderNumber    string              `json:"orderNumber"`
	OrderDate      time.Time           `json:"orderDate"`
	Shipping       ShippingInformation `json:"shippingInformationDto"`
	CartLines      []CartLine          `json:"orderCartDtoList"`
}

// Encode serializes the snapshot into the persisted blob form
func (c *OrderContext) Encode() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", shared.NewDomainError("MALFORMED_DATA", "Order context could not be serialized")
	}
	return string(data), nil
}

// DecodeOrderContext parses a persisted addressInformation blob back into a
// typed snapshot. Unlike the property-bag scan, a parse failure here is an
// error: the blob is written by this system and must stay well-formed.
func DecodeOrderContext(blob string) (*OrderContext, error) {
	var c OrderContext
	if err := json.Unmarshal([]byte(blob), &c); err != nil {
		return nil, shared.NewDomainError("MALFORMED_DATA", "Address information blob is not valid JSON")
	}
	return &c, nil
}
