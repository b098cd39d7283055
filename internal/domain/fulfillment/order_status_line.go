package fulfillment

import (
	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/shared"
)

// OrderStatusLine is one persisted status record, scoped to a single cart
// item of an upstream order. Several lines may share one OrderID; the
// measurement copy is deliberately denormalized from the customer's profile
// so the production floor sees the values the garment was cut to.
type OrderStatusLine struct {
	shared.AuditedEntity
	OrderID        string
	CustomerID     string
	Status         PhaseLabel
	FitSample      bool
	TrackingNumber *string

	// AddressInformation is the serialized OrderContext snapshot taken
	// when the line was created. Its embedded orderStatus tag is mutated
	// through SetUpstreamTag, never by ad hoc string surgery.
	AddressInformation string

	// Denormalized measurement copy plus the fit and size it was taken for.
	SizeName     string
	Fit          string
	Measurements fitting.MeasurementSet
}

// NewOrderStatusLine creates a status line for one cart item
func NewOrderStatusLine(orderID, customerID string, fitSample bool, status PhaseLabel, createdBy string) (*OrderStatusLine, error) {
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if status == "" {
		return nil, shared.NewDomainError("INVALID_STATUS", "Status label cannot be empty")
	}

	return &OrderStatusLine{
		AuditedEntity: shared.NewAuditedEntity(createdBy),
		OrderID:       orderID,
		CustomerID:    customerID,
		FitSample:     fitSample,
		Status:        status,
	}, nil
}

// Track returns the status vocabulary this line follows
func (l *OrderStatusLine) Track() Track {
	return TrackFor(l.FitSample)
}

// Advance overwrites the line's phase label and, when supplied, the tracking
// number. Every transition calls this exactly once.
func (l *OrderStatusLine) Advance(status PhaseLabel, trackingNumber *string, actor string) error {
	if status == "" {
		return shared.NewDomainError("INVALID_STATUS", "Status label cannot be empty")
	}
	l.Status = status
	if trackingNumber != nil {
		l.TrackingNumber = trackingNumber
	}
	l.RecordUpdate(actor)
	return nil
}

// AttachContext stores the serialized order context snapshot on the line
func (l *OrderStatusLine) AttachContext(octx *OrderContext) error {
	blob, err := octx.Encode()
	if err != nil {
		return err
	}
	l.AddressInformation = blob
	return nil
}

// Context decodes the stored snapshot
func (l *OrderStatusLine) Context() (*OrderContext, error) {
	return DecodeOrderContext(l.AddressInformation)
}

// SetUpstreamTag rewrites the embedded upstream status tag inside the stored
// snapshot, preserving every other field of the blob.
func (l *OrderStatusLine) SetUpstreamTag(tag UpstreamTag, actor string) error {
	octx, err := l.Context()
	if err != nil {
		return err
	}
	octx.UpstreamStatus = tag
	if err := l.AttachContext(octx); err != nil {
		return err
	}
	l.RecordUpdate(actor)
	return nil
}

// CopyMeasurements overwrites the denormalized measurement copy. Used by
// feedback reconciliation to keep the line in step with the profile.
func (l *OrderStatusLine) CopyMeasurements(ms fitting.MeasurementSet, actor string) {
	l.Measurements = ms
	l.RecordUpdate(actor)
}
