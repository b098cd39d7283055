package fitting

import (
	"encoding/json"

	"github.com/tailorbase/backend/internal/domain/shared"
)

// FeedbackPayload is the typed view of the feedback blob a customer submits
// after trying a fit sample. Measurement corrections are keyed by field name
// (see the Field* constants); the originating profile is identified by
// customerId and sizeName.
type FeedbackPayload struct {
	CustomerID   string            `json:"customerId"`
	SizeName     string            `json:"sizeName"`
	Measurements map[string]string `json:"measurements"`
}

// MeasurementFeedback is one customer feedback submission for an order's fit
// sample. The payload is stored as submitted and reparsed when an admin
// approves or edits it.
type MeasurementFeedback struct {
	shared.AuditedEntity
	OrderID  string
	Payload  string
	Approved bool
}

// NewMeasurementFeedback stores a feedback submission for an order
func NewMeasurementFeedback(orderID, payload string, approved bool, createdBy string) (*MeasurementFeedback, error) {
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if _, err := ParseFeedbackPayload(payload); err != nil {
		return nil, err
	}

	return &MeasurementFeedback{
		AuditedEntity: shared.NewAuditedEntity(createdBy),
		OrderID:       orderID,
		Payload:       payload,
		Approved:      approved,
	}, nil
}

// ParsePayload parses the stored payload blob
func (f *MeasurementFeedback) ParsePayload() (*FeedbackPayload, error) {
	return ParseFeedbackPayload(f.Payload)
}

// Overwrite replaces the payload, approval flag and audit fields.
// Called once, on admin approval or edit.
func (f *MeasurementFeedback) Overwrite(payload string, approved bool, editor string) error {
	if _, err := ParseFeedbackPayload(payload); err != nil {
		return err
	}
	f.Payload = payload
	f.Approved = approved
	f.RecordUpdate(editor)
	return nil
}

// ParseFeedbackPayload decodes a feedback blob. A payload that does not
// identify its originating profile is malformed.
func ParseFeedbackPayload(payload string) (*FeedbackPayload, error) {
	var p FeedbackPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, shared.NewDomainError("MALFORMED_DATA", "Feedback payload is not valid JSON")
	}
	if p.CustomerID == "" || p.SizeName == "" {
		return nil, shared.NewDomainError("MALFORMED_DATA", "Feedback payload is missing customerId or sizeName")
	}
	return &p, nil
}
