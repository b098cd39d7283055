package fitting

import (
	"github.com/tailorbase/backend/internal/domain/shared"
)

// MeasurementProfile is the canonical per-(customer, size) measurement
// record. At most one profile exists per (CustomerID, SizeName); creation of
// a duplicate is rejected by the repository with ErrAlreadyExists.
type MeasurementProfile struct {
	shared.AuditedEntity
	CustomerID   string
	SizeName     string
	Measurements MeasurementSet

	// NewSize marks a size the customer defined themselves rather than
	// picked from the standard chart. Cleared once a feedback cycle has
	// corrected the measurements.
	NewSize bool

	// FeedbackFormSubmitted tracks whether the customer has returned the
	// fit-sample feedback form for this profile.
	FeedbackFormSubmitted bool

	// AdminUpdated is set when an admin, not the customer, last changed
	// the measurements.
	AdminUpdated bool
}

// NewMeasurementProfile creates a profile for a customer and size name
func NewMeasurementProfile(customerID, sizeName string, measurements MeasurementSet, createdBy string) (*MeasurementProfile, error) {
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if sizeName == "" {
		return nil, shared.NewDomainError("INVALID_SIZE_NAME", "Size name cannot be empty")
	}

	return &MeasurementProfile{
		AuditedEntity: shared.NewAuditedEntity(createdBy),
		CustomerID:    customerID,
		SizeName:      sizeName,
		Measurements:  measurements,
	}, nil
}

// UpdateMeasurements overwrites the ten fields in place
func (p *MeasurementProfile) UpdateMeasurements(measurements MeasurementSet, actor string, byAdmin bool) {
	p.Measurements = measurements
	p.AdminUpdated = byAdmin
	p.RecordUpdate(actor)
}

// MarkFeedbackSubmitted records the outcome of a feedback form submission.
// The flag mirrors the feedback's approval state, matching how the order
// workflow reads it back.
func (p *MeasurementProfile) MarkFeedbackSubmitted(approved bool, actor string) {
	p.FeedbackFormSubmitted = approved
	p.RecordUpdate(actor)
}

// ApplyFeedbackCorrections overwrites the corrected fields and clears the
// NewSize marker; the size is considered settled after a feedback cycle.
func (p *MeasurementProfile) ApplyFeedbackCorrections(corrections map[string]string, actor string) {
	p.Measurements.ApplyCorrections(corrections)
	p.NewSize = false
	p.RecordUpdate(actor)
}
