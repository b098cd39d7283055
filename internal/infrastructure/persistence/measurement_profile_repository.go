package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/shared"
	"github.com/tailorbase/backend/internal/infrastructure/persistence/models"
)

// GormMeasurementProfileRepository implements MeasurementProfileRepository using GORM
type GormMeasurementProfileRepository struct {
	db *gorm.DB
}

// NewGormMeasurementProfileRepository creates a new GormMeasurementProfileRepository
func NewGormMeasurementProfileRepository(db *gorm.DB) *GormMeasurementProfileRepository {
	return &GormMeasurementProfileRepository{db: db}
}

// FindByID finds a profile by its ID
func (r *GormMeasurementProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*fitting.MeasurementProfile, error) {
	var model models.MeasurementProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomerAndSize finds the unique profile for a (customer, size) pair
func (r *GormMeasurementProfileRepository) FindByCustomerAndSize(ctx context.Context, customerID, sizeName string) (*fitting.MeasurementProfile, error) {
	var model models.MeasurementProfileModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND size_name = ?", customerID, sizeName).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByCustomer finds all profiles for a customer, oldest first
func (r *GormMeasurementProfileRepository) FindAllByCustomer(ctx context.Context, customerID string) ([]fitting.MeasurementProfile, error) {
	var profileModels []models.MeasurementProfileModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]fitting.MeasurementProfile, len(profileModels))
	for i, model := range profileModels {
		profiles[i] = *model.ToDomain()
	}
	return profiles, nil
}

// Create inserts a new profile. A duplicate (customer, size) pair surfaces
// as ErrAlreadyExists via the unique index.
func (r *GormMeasurementProfileRepository) Create(ctx context.Context, profile *fitting.MeasurementProfile) error {
	model := models.MeasurementProfileModelFromDomain(profile)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates an existing profile in place
func (r *GormMeasurementProfileRepository) Save(ctx context.Context, profile *fitting.MeasurementProfile) error {
	model := models.MeasurementProfileModelFromDomain(profile)
	return r.db.WithContext(ctx).Save(model).Error
}

// isUniqueViolation reports whether err is a unique constraint violation,
// either GORM's translated error or the raw postgres error code.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
