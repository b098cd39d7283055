package fulfillment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/domain/integration"
	"github.com/tailorbase/backend/internal/domain/shared"
)

// ContextBootstrapper synthesizes a ledger line for orders the workflow has
// never seen. Read paths (order detail views) consult it lazily; the
// synthesized line is a read-only context object and is NOT persisted here.
type ContextBootstrapper struct {
	lines fulfillment.OrderStatusLineRepository
}

// NewContextBootstrapper creates a new ContextBootstrapper
func NewContextBootstrapper(lines fulfillment.OrderStatusLineRepository) *ContextBootstrapper {
	return &ContextBootstrapper{lines: lines}
}

// EnsureLines returns the persisted ledger lines for an order unchanged, or,
// when none exist, exactly one line synthesized from the upstream order's
// first cart line. The property-bag scan is best effort: missing keys yield
// empty fields, never an error. Calling twice without an intervening write
// yields equivalent content both times.
func (b *ContextBootstrapper) EnsureLines(ctx context.Context, orderID string, upstream *integration.UpstreamOrder) ([]fulfillment.OrderStatusLine, error) {
	existing, err := b.lines.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	if upstream == nil {
		return nil, shared.ErrNotFound
	}

	line, err := b.synthesize(orderID, upstream)
	if err != nil {
		return nil, err
	}
	return []fulfillment.OrderStatusLine{*line}, nil
}

// synthesize builds one unsaved line from the upstream snapshot
func (b *ContextBootstrapper) synthesize(orderID string, upstream *integration.UpstreamOrder) (*fulfillment.OrderStatusLine, error) {
	line, err := fulfillment.NewOrderStatusLine(orderID, upstream.CustomerID, false, fulfillment.PhaseStartProduction, "system")
	if err != nil {
		return nil, err
	}

	if first := upstream.FirstLine(); first != nil {
		line.Measurements = fitting.MeasurementSetFromProperties(first.Properties)
		sizeName, _ := first.Properties.Lookup(fitting.FieldSizeName)
		line.SizeName = sizeName
		line.Fit = first.VariantID
	}

	octx := OrderContextFromUpstream(upstream)
	if err := line.AttachContext(&octx); err != nil {
		return nil, err
	}
	return line, nil
}

// OrderContextFromUpstream builds a typed order context snapshot out of a
// normalized upstream order.
func OrderContextFromUpstream(upstream *integration.UpstreamOrder) fulfillment.OrderContext {
	cartLines := make([]fulfillment.CartLine, 0, len(upstream.Lines))
	for _, ul := range upstream.Lines {
		get := func(key string) string {
			v, _ := ul.Properties.Lookup(key)
			return v
		}
		cartLines = append(cartLines, fulfillment.CartLine{
			TeeType:       get("teeType"),
			PocketType:    get("pocketType"),
			SleeveType:    get("sleeveType"),
			Color:         get("color"),
			QuantityCount: ul.Quantity,
			Image:         ul.Image,
		})
	}

	return fulfillment.OrderContext{
		UserName:       upstream.ShippingAddress.Name,
		UserEmail:      upstream.Email,
		UpstreamStatus: fulfillment.UpstreamTag(upstream.StatusTag),
		OrderNumber:    upstream.Name,
		OrderDate:      upstream.CreatedAt,
		Shipping: fulfillment.ShippingInformation{
			CustomerName: upstream.ShippingAddress.Name,
			PlotNumber:   upstream.ShippingAddress.Address1,
			PinCode:      upstream.ShippingAddress.Zip,
			Country:      upstream.ShippingAddress.Country,
			State:        upstream.ShippingAddress.Province,
			PhoneNumber:  upstream.ShippingAddress.Phone,
		},
		CartLines: cartLines,
	}
}

// OrderTotal sums the upstream cart line amounts. Used by the order detail
// view when the upstream total is absent.
func OrderTotal(upstream *integration.UpstreamOrder) decimal.Decimal {
	if !upstream.TotalPrice.IsZero() {
		return upstream.TotalPrice
	}
	total := decimal.Zero
	for _, ul := range upstream.Lines {
		total = total.Add(ul.Price.Mul(decimal.NewFromInt(int64(ul.Quantity))))
	}
	return total
}
