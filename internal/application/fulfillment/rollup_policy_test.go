package fulfillment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/domain/shared"
)

type MockRollupRepository struct {
	mock.Mock
}

func (m *MockRollupRepository) FindByOrderID(ctx context.Context, orderID string) (*fulfillment.OrderStatusRollup, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.OrderStatusRollup), args.Error(1)
}

func (m *MockRollupRepository) Save(ctx context.Context, rollup *fulfillment.OrderStatusRollup) error {
	args := m.Called(ctx, rollup)
	return args.Error(0)
}

func TestLastWriterWinsRollup_CreatesOnFirstTransition(t *testing.T) {
	repo := new(MockRollupRepository)
	policy := NewLastWriterWinsRollup(repo)

	repo.On("FindByOrderID", mock.Anything, "5501").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(r *fulfillment.OrderStatusRollup) bool {
		return r.OrderID == "5501" && r.Status == "Fit Sample - Start Production"
	})).Return(nil)

	err := policy.Apply(context.Background(), "5501", "Fit Sample - Start Production")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLastWriterWinsRollup_OverwritesExistingRow(t *testing.T) {
	repo := new(MockRollupRepository)
	policy := NewLastWriterWinsRollup(repo)

	existing, err := fulfillment.NewOrderStatusRollup("5501", "Fit Sample - Dispatched")
	require.NoError(t, err)
	existingID := existing.ID

	repo.On("FindByOrderID", mock.Anything, "5501").Return(existing, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(r *fulfillment.OrderStatusRollup) bool {
		return r.ID == existingID && r.Status == "Fit Sample - Delivered"
	})).Return(nil)

	err = policy.Apply(context.Background(), "5501", "Fit Sample - Delivered")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLastWriterWinsRollup_LookupFailure(t *testing.T) {
	repo := new(MockRollupRepository)
	policy := NewLastWriterWinsRollup(repo)

	repo.On("FindByOrderID", mock.Anything, "5501").Return(nil, errors.New("db down"))

	err := policy.Apply(context.Background(), "5501", "Fit Sample - Delivered")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
