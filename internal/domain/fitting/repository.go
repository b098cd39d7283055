package fitting

import (
	"context"

	"github.com/google/uuid"
)

// MeasurementProfileRepository defines the interface for measurement profile persistence
type MeasurementProfileRepository interface {
	// FindByID finds a profile by ID
	FindByID(ctx context.Context, id uuid.UUID) (*MeasurementProfile, error)

	// FindByCustomerAndSize finds the unique profile for a (customer, size) pair
	FindByCustomerAndSize(ctx context.Context, customerID, sizeName string) (*MeasurementProfile, error)

	// FindAllByCustomer finds all profiles for a customer
	FindAllByCustomer(ctx context.Context, customerID string) ([]MeasurementProfile, error)

	// Create inserts a new profile. Fails with ErrAlreadyExists when a
	// profile for the same (customer, size) pair already exists.
	Create(ctx context.Context, profile *MeasurementProfile) error

	// Save updates an existing profile in place
	Save(ctx context.Context, profile *MeasurementProfile) error
}

// MeasurementFeedbackRepository defines the interface for feedback persistence
type MeasurementFeedbackRepository interface {
	// FindByID finds a feedback row by ID
	FindByID(ctx context.Context, id uuid.UUID) (*MeasurementFeedback, error)

	// FindByOrderID finds all feedback rows submitted for an order
	FindByOrderID(ctx context.Context, orderID string) ([]MeasurementFeedback, error)

	// Save creates or updates a feedback row
	Save(ctx context.Context, feedback *MeasurementFeedback) error
}
