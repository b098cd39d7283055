package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/domain/shared"
	"github.com/tailorbase/backend/internal/infrastructure/persistence/models"
)

// GormOrderStatusLineRepository implements OrderStatusLineRepository using GORM
type GormOrderStatusLineRepository struct {
	db *gorm.DB
}

// NewGormOrderStatusLineRepository creates a new GormOrderStatusLineRepository
func NewGormOrderStatusLineRepository(db *gorm.DB) *GormOrderStatusLineRepository {
	return &GormOrderStatusLineRepository{db: db}
}

// FindByID finds a line by its ID
func (r *GormOrderStatusLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.OrderStatusLine, error) {
	var model models.OrderStatusLineModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderID finds all lines for an upstream order, oldest first
func (r *GormOrderStatusLineRepository) FindByOrderID(ctx context.Context, orderID string) ([]fulfillment.OrderStatusLine, error) {
	var lineModels []models.OrderStatusLineModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, err
	}

	lines := make([]fulfillment.OrderStatusLine, len(lineModels))
	for i, model := range lineModels {
		lines[i] = *model.ToDomain()
	}
	return lines, nil
}

// FindFirstByOrderID finds the oldest line for an upstream order
func (r *GormOrderStatusLineRepository) FindFirstByOrderID(ctx context.Context, orderID string) (*fulfillment.OrderStatusLine, error) {
	var model models.OrderStatusLineModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a line
func (r *GormOrderStatusLineRepository) Save(ctx context.Context, line *fulfillment.OrderStatusLine) error {
	model := models.OrderStatusLineModelFromDomain(line)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll persists a batch of lines in one transaction
func (r *GormOrderStatusLineRepository) SaveAll(ctx context.Context, lines []*fulfillment.OrderStatusLine) error {
	if len(lines) == 0 {
		return nil
	}
	lineModels := make([]*models.OrderStatusLineModel, len(lines))
	for i, line := range lines {
		lineModels[i] = models.OrderStatusLineModelFromDomain(line)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range lineModels {
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
