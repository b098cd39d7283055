package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/shared"
	"github.com/tailorbase/backend/internal/infrastructure/persistence/models"
)

// GormMeasurementFeedbackRepository implements MeasurementFeedbackRepository using GORM
type GormMeasurementFeedbackRepository struct {
	db *gorm.DB
}

// NewGormMeasurementFeedbackRepository creates a new GormMeasurementFeedbackRepository
func NewGormMeasurementFeedbackRepository(db *gorm.DB) *GormMeasurementFeedbackRepository {
	return &GormMeasurementFeedbackRepository{db: db}
}

// FindByID finds a feedback row by its ID
func (r *GormMeasurementFeedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*fitting.MeasurementFeedback, error) {
	var model models.MeasurementFeedbackModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderID finds all feedback rows submitted for an order, oldest first
func (r *GormMeasurementFeedbackRepository) FindByOrderID(ctx context.Context, orderID string) ([]fitting.MeasurementFeedback, error) {
	var feedbackModels []models.MeasurementFeedbackModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&feedbackModels).Error; err != nil {
		return nil, err
	}

	records := make([]fitting.MeasurementFeedback, len(feedbackModels))
	for i, model := range feedbackModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Save creates or updates a feedback row
func (r *GormMeasurementFeedbackRepository) Save(ctx context.Context, feedback *fitting.MeasurementFeedback) error {
	model := models.MeasurementFeedbackModelFromDomain(feedback)
	return r.db.WithContext(ctx).Save(model).Error
}
