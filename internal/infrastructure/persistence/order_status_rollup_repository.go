package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/domain/shared"
	"github.com/tailorbase/backend/internal/infrastructure/persistence/models"
)

// GormOrderStatusRollupRepository implements OrderStatusRollupRepository using GORM
type GormOrderStatusRollupRepository struct {
	db *gorm.DB
}

// NewGormOrderStatusRollupRepository creates a new GormOrderStatusRollupRepository
func NewGormOrderStatusRollupRepository(db *gorm.DB) *GormOrderStatusRollupRepository {
	return &GormOrderStatusRollupRepository{db: db}
}

// FindByOrderID finds the unique rollup row for an order
func (r *GormOrderStatusRollupRepository) FindByOrderID(ctx context.Context, orderID string) (*fulfillment.OrderStatusRollup, error) {
	var model models.OrderStatusRollupModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the rollup row
func (r *GormOrderStatusRollupRepository) Save(ctx context.Context, rollup *fulfillment.OrderStatusRollup) error {
	model := models.OrderStatusRollupModelFromDomain(rollup)
	return r.db.WithContext(ctx).Save(model).Error
}
