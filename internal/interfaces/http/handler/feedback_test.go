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
	fulfillmentapp "github.com/tailorbase/backend/internal/application/fulfillment"
	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/domain/shared"
)

// MockMeasurementFeedbackRepository implements fitting.MeasurementFeedbackRepository for testing
type MockMeasurementFeedbackRepository struct {
	mock.Mock
}

func (m *MockMeasurementFeedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*fitting.MeasurementFeedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fitting.MeasurementFeedback), args.Error(1)
}

func (m *MockMeasurementFeedbackRepository) FindByOrderID(ctx context.Context, orderID string) ([]fitting.MeasurementFeedback, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fitting.MeasurementFeedback), args.Error(1)
}

func (m *MockMeasurementFeedbackRepository) Save(ctx context.Context, feedback *fitting.MeasurementFeedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

// stubTransitionApplier records the phases the feedback cascade drives
type stubTransitionApplier struct {
	phases []fulfillment.PhaseLabel
}

func (s *stubTransitionApplier) ApplyTransition(ctx context.Context, lineID uuid.UUID, phase fulfillment.PhaseLabel, trackingNumber *string, octx fulfillment.OrderContext, actor string) (*fulfillmentapp.OrderStatusLineResponse, error) {
	s.phases = append(s.phases, phase)
	return &fulfillmentapp.OrderStatusLineResponse{}, nil
}

type feedbackFixture struct {
	handler     *FeedbackHandler
	feedback    *MockMeasurementFeedbackRepository
	profiles    *MockMeasurementProfileRepository
	lines       *MockOrderStatusLineRepository
	transitions *stubTransitionApplier
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	feedback := new(MockMeasurementFeedbackRepository)
	profiles := new(MockMeasurementProfileRepository)
	lines := new(MockOrderStatusLineRepository)
	transitions := &stubTransitionApplier{}

	service := fittingapp.NewFeedbackService(feedback, profiles, lines, transitions, nil)
	return &feedbackFixture{
		handler:     NewFeedbackHandler(service),
		feedback:    feedback,
		profiles:    profiles,
		lines:       lines,
		transitions: transitions,
	}
}

const feedbackPayload = `{"customerId":"CUST-1","sizeName":"My Size","measurements":{"chest":"42","neck":"16"}}`

func TestFeedbackHandler_Submit(t *testing.T) {
	f := newFeedbackFixture(t)

	profile, err := fitting.NewMeasurementProfile("CUST-1", "My Size", fitting.MeasurementSet{Chest: "40"}, "customer")
	require.NoError(t, err)
	line := testLedgerLine(t, "ORD-1", true, fulfillment.TagDelivered)

	f.feedback.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.profiles.On("FindByCustomerAndSize", mock.Anything, "CUST-1", "My Size").Return(profile, nil)
	f.profiles.On("Save", mock.Anything, profile).Return(nil)
	f.lines.On("FindFirstByOrderID", mock.Anything, "ORD-1").Return(line, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/feedback", gin.H{
		"order_id": "ORD-1",
		"payload":  feedbackPayload,
		"approved": true,
	})

	f.handler.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "ORD-1", data["order_id"])
	assert.Equal(t, true, data["approved"])

	// The submission marks the profile and drives the fit sample into the
	// feedback-received phase, but never rewrites measurements.
	assert.True(t, profile.FeedbackFormSubmitted)
	assert.Equal(t, "40", profile.Measurements.Chest)
	assert.Equal(t, []fulfillment.PhaseLabel{fulfillment.PhaseFeedbackReceived}, f.transitions.phases)
}

func TestFeedbackHandler_Submit_MalformedPayload(t *testing.T) {
	f := newFeedbackFixture(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/feedback", gin.H{
		"order_id": "ORD-1",
		"payload":  `{"measurements":{}}`,
	})

	f.handler.Submit(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	f.feedback.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFeedbackHandler_Approve_CascadesCorrections(t *testing.T) {
	f := newFeedbackFixture(t)

	record, err := fitting.NewMeasurementFeedback("ORD-1", feedbackPayload, false, "customer")
	require.NoError(t, err)

	profile, err := fitting.NewMeasurementProfile("CUST-1", "My Size", fitting.MeasurementSet{Chest: "40", Neck: "15"}, "customer")
	require.NoError(t, err)
	profile.NewSize = true

	line := testLedgerLine(t, "ORD-1", true, fulfillment.TagFeedbackReceived)

	f.feedback.On("FindByID", mock.Anything, record.ID).Return(record, nil)
	f.feedback.On("Save", mock.Anything, record).Return(nil)
	f.profiles.On("FindByCustomerAndSize", mock.Anything, "CUST-1", "My Size").Return(profile, nil)
	f.profiles.On("Save", mock.Anything, profile).Return(nil)
	f.lines.On("FindFirstByOrderID", mock.Anything, "ORD-1").Return(line, nil)
	f.lines.On("Save", mock.Anything, line).Return(nil)

	editedPayload := `{"customerId":"CUST-1","sizeName":"My Size","measurements":{"chest":"43"}}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: record.ID.String()}}
	c.Request = jsonRequest(t, http.MethodPut, "/feedback/"+record.ID.String(), gin.H{
		"payload":  editedPayload,
		"approved": true,
	})
	c.Request.Header.Set(ActorHeader, "priya")

	f.handler.Approve(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The response is the record as it stood before the edit
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, feedbackPayload, data["payload"])
	assert.Equal(t, false, data["approved"])

	// Corrections cascade from the originally submitted payload, not the
	// admin's replacement
	assert.Equal(t, "42", profile.Measurements.Chest)
	assert.Equal(t, "16", profile.Measurements.Neck)
	assert.False(t, profile.NewSize)

	assert.Equal(t, "42", line.Measurements.Chest)
	octx, err := line.Context()
	require.NoError(t, err)
	assert.Equal(t, fulfillment.TagEditMeasurements, octx.UpstreamStatus)

	assert.Equal(t, []fulfillment.PhaseLabel{fulfillment.PhaseMeasurementUpdated}, f.transitions.phases)
	assert.Equal(t, editedPayload, record.Payload)
	assert.Equal(t, "priya", record.UpdatedBy)
}

func TestFeedbackHandler_Approve_NotFound(t *testing.T) {
	f := newFeedbackFixture(t)

	id := uuid.New()
	f.feedback.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	c.Request = jsonRequest(t, http.MethodPut, "/feedback/"+id.String(), gin.H{
		"payload":  feedbackPayload,
		"approved": true,
	})

	f.handler.Approve(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.feedback.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.profiles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFeedbackHandler_ListByOrder(t *testing.T) {
	f := newFeedbackFixture(t)

	record, err := fitting.NewMeasurementFeedback("ORD-1", feedbackPayload, true, "customer")
	require.NoError(t, err)
	f.feedback.On("FindByOrderID", mock.Anything, "ORD-1").Return([]fitting.MeasurementFeedback{*record}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "orderId", Value: "ORD-1"}}
	c.Request, _ = http.NewRequest(http.MethodGet, "/orders/ORD-1/feedback", nil)

	f.handler.ListByOrder(c)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	list := resp.Data.([]interface{})
	require.Len(t, list, 1)
}
