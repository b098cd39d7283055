package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	fittingapp "github.com/tailorbase/backend/internal/application/fitting"
	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/shared"
	"github.com/tailorbase/backend/internal/interfaces/http/middleware"
)

// MockMeasurementProfileRepository implements fitting.MeasurementProfileRepository for testing
type MockMeasurementProfileRepository struct {
	mock.Mock
}

func (m *MockMeasurementProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*fitting.MeasurementProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fitting.MeasurementProfile), args.Error(1)
}

func (m *MockMeasurementProfileRepository) FindByCustomerAndSize(ctx context.Context, customerID, sizeName string) (*fitting.MeasurementProfile, error) {
	args := m.Called(ctx, customerID, sizeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fitting.MeasurementProfile), args.Error(1)
}

func (m *MockMeasurementProfileRepository) FindAllByCustomer(ctx context.Context, customerID string) ([]fitting.MeasurementProfile, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fitting.MeasurementProfile), args.Error(1)
}

func (m *MockMeasurementProfileRepository) Create(ctx context.Context, profile *fitting.MeasurementProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockMeasurementProfileRepository) Save(ctx context.Context, profile *fitting.MeasurementProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func newMeasurementFixture(t *testing.T) (*MeasurementHandler, *MockMeasurementProfileRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	profiles := new(MockMeasurementProfileRepository)
	service := fittingapp.NewMeasurementService(profiles, nil)
	return NewMeasurementHandler(service), profiles
}

func TestMeasurementHandler_SaveProfile_Creates(t *testing.T) {
	h, profiles := newMeasurementFixture(t)

	profiles.On("FindByCustomerAndSize", mock.Anything, "CUST-1", "My Size").Return(nil, shared.ErrNotFound)
	profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *fitting.MeasurementProfile) bool {
		return p.CustomerID == "CUST-1" && p.SizeName == "My Size" && p.Measurements.Chest == "40"
	})).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "customerId", Value: "CUST-1"}}
	c.Request = jsonRequest(t, http.MethodPut, "/customers/CUST-1/measurements", gin.H{
		"size_name": "My Size",
		"new_size":  true,
		"measurements": gin.H{
			"chest": "40",
			"neck":  "15.5 in",
		},
	})

	h.SaveProfile(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "My Size", data["size_name"])
	assert.Equal(t, true, data["new_size"])

	profiles.AssertExpectations(t)
}

func TestMeasurementHandler_SaveProfile_Overwrites(t *testing.T) {
	h, profiles := newMeasurementFixture(t)

	existing, err := fitting.NewMeasurementProfile("CUST-1", "My Size", fitting.MeasurementSet{Chest: "38"}, "customer")
	require.NoError(t, err)

	profiles.On("FindByCustomerAndSize", mock.Anything, "CUST-1", "My Size").Return(existing, nil)
	profiles.On("Save", mock.Anything, existing).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "customerId", Value: "CUST-1"}}
	c.Request = jsonRequest(t, http.MethodPut, "/customers/CUST-1/measurements", gin.H{
		"size_name": "My Size",
		"measurements": gin.H{
			"chest": "41",
		},
	})
	c.Request.Header.Set(ActorHeader, "ravi")

	h.SaveProfile(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "41", existing.Measurements.Chest)
	assert.True(t, existing.AdminUpdated)
	assert.Equal(t, "ravi", existing.UpdatedBy)
}

func TestMeasurementHandler_SaveProfile_RejectsBadMeasurement(t *testing.T) {
	h, profiles := newMeasurementFixture(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "customerId", Value: "CUST-1"}}
	c.Request = jsonRequest(t, http.MethodPut, "/customers/CUST-1/measurements", gin.H{
		"size_name": "My Size",
		"measurements": gin.H{
			"chest": "very wide",
		},
	})

	h.SaveProfile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMeasurementHandler_GetProfileBySize(t *testing.T) {
	h, profiles := newMeasurementFixture(t)

	profile, err := fitting.NewMeasurementProfile("CUST-1", "Slim", fitting.MeasurementSet{Neck: "15"}, "customer")
	require.NoError(t, err)
	profiles.On("FindByCustomerAndSize", mock.Anything, "CUST-1", "Slim").Return(profile, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{
		{Key: "customerId", Value: "CUST-1"},
		{Key: "sizeName", Value: "Slim"},
	}
	c.Request, _ = http.NewRequest(http.MethodGet, "/customers/CUST-1/measurements/Slim", nil)

	h.GetProfileBySize(c)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Slim", data["size_name"])
}

func TestMeasurementHandler_GetProfileBySize_NotFound(t *testing.T) {
	h, profiles := newMeasurementFixture(t)
	profiles.On("FindByCustomerAndSize", mock.Anything, "CUST-1", "Slim").Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{
		{Key: "customerId", Value: "CUST-1"},
		{Key: "sizeName", Value: "Slim"},
	}
	c.Request, _ = http.NewRequest(http.MethodGet, "/customers/CUST-1/measurements/Slim", nil)

	h.GetProfileBySize(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeasurementHandler_ListProfiles(t *testing.T) {
	h, profiles := newMeasurementFixture(t)

	one, err := fitting.NewMeasurementProfile("CUST-1", "Slim", fitting.MeasurementSet{}, "customer")
	require.NoError(t, err)
	two, err := fitting.NewMeasurementProfile("CUST-1", "Relaxed", fitting.MeasurementSet{}, "customer")
	require.NoError(t, err)
	profiles.On("FindAllByCustomer", mock.Anything, "CUST-1").Return([]fitting.MeasurementProfile{*one, *two}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "customerId", Value: "CUST-1"}}
	c.Request, _ = http.NewRequest(http.MethodGet, "/customers/CUST-1/measurements", nil)

	h.ListProfiles(c)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	list := resp.Data.([]interface{})
	assert.Len(t, list, 2)
}
