package fitting

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/shared"
	"github.com/tailorbase/backend/internal/infrastructure/telemetry"
)

// MeasurementService manages the canonical per-(customer, size) measurement
// profiles. At most one profile exists per pair; a save either creates the
// profile or overwrites the existing one.
type MeasurementService struct {
	profiles fitting.MeasurementProfileRepository
	logger   *zap.Logger
}

// NewMeasurementService creates a new MeasurementService
func NewMeasurementService(profiles fitting.MeasurementProfileRepository, logger *zap.Logger) *MeasurementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeasurementService{
		profiles: profiles,
		logger:   logger,
	}
}

// SaveProfile creates the profile for (customerID, req.SizeName) or, when it
// already exists, overwrites its measurements in place.
func (s *MeasurementService) SaveProfile(ctx context.Context, customerID string, req SaveMeasurementProfileRequest) (*MeasurementProfileResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fitting", "save_profile",
		telemetry.WithAttribute("customer_id", customerID),
		telemetry.WithAttribute("size_name", req.SizeName),
	)
	defer span.End()

	profile, err := s.profiles.FindByCustomerAndSize(ctx, customerID, req.SizeName)
	switch {
	case err == nil:
		profile.UpdateMeasurements(req.Measurements.ToSet(), req.Actor, req.ByAdmin)
		profile.NewSize = req.NewSize
		if err := s.profiles.Save(ctx, profile); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		profile, err = fitting.NewMeasurementProfile(customerID, req.SizeName, req.Measurements.ToSet(), req.Actor)
		if err != nil {
			return nil, err
		}
		profile.NewSize = req.NewSize
		profile.AdminUpdated = req.ByAdmin
		if err := s.profiles.Create(ctx, profile); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	default:
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := ToMeasurementProfileResponse(profile)
	return &response, nil
}

// GetProfile returns one profile by ID
func (s *MeasurementService) GetProfile(ctx context.Context, id uuid.UUID) (*MeasurementProfileResponse, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMeasurementProfileResponse(profile)
	return &response, nil
}

// GetProfileBySize returns the unique profile for a (customer, size) pair
func (s *MeasurementService) GetProfileBySize(ctx context.Context, customerID, sizeName string) (*MeasurementProfileResponse, error) {
	profile, err := s.profiles.FindByCustomerAndSize(ctx, customerID, sizeName)
	if err != nil {
		return nil, err
	}
	response := ToMeasurementProfileResponse(profile)
	return &response, nil
}

// ListProfiles returns every profile a customer has saved
func (s *MeasurementService) ListProfiles(ctx context.Context, customerID string) ([]MeasurementProfileResponse, error) {
	profiles, err := s.profiles.FindAllByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToMeasurementProfileResponses(profiles), nil
}
