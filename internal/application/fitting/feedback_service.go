package fitting

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appfulfillment "github.com/tailorbase/backend/internal/application/fulfillment"
	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/infrastructure/telemetry"
)

// TransitionApplier is the slice of the fulfillment transition engine the
// feedback workflow drives. Satisfied by fulfillment's TransitionService.
type TransitionApplier interface {
	ApplyTransition(ctx context.Context, lineID uuid.UUID, phase fulfillment.PhaseLabel, trackingNumber *string, octx fulfillment.OrderContext, actor string) (*appfulfillment.OrderStatusLineResponse, error)
}

// FeedbackService runs the measurement feedback loop: a customer submits
// corrections after trying a fit sample, an admin approves or edits them,
// and the approved values cascade into the measurement profile and the
// order's ledger line. The cascade is a sequence of independent writes, not
// one transaction; a failure partway leaves the earlier writes in place.
type FeedbackService struct {
	feedback    fitting.MeasurementFeedbackRepository
	profiles    fitting.MeasurementProfileRepository
	lines       fulfillment.OrderStatusLineRepository
	transitions TransitionApplier
	logger      *zap.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(
	feedback fitting.MeasurementFeedbackRepository,
	profiles fitting.MeasurementProfileRepository,
	lines fulfillment.OrderStatusLineRepository,
	transitions TransitionApplier,
	logger *zap.Logger,
) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		feedback:    feedback,
		profiles:    profiles,
		lines:       lines,
		transitions: transitions,
		logger:      logger,
	}
}

// SubmitFeedback stores a customer's feedback submission, marks the
// originating measurement profile, and moves the order's fit sample into the
// "Feedback Received" phase. The transition writes a rollup phrase but sends
// no notification; no template is mapped for the combination.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, req SubmitFeedbackRequest) (*MeasurementFeedbackResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fitting", "submit_feedback",
		telemetry.WithAttribute("order_id", req.OrderID),
	)
	defer span.End()

	payload, err := fitting.ParseFeedbackPayload(req.Payload)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	record, err := fitting.NewMeasurementFeedback(req.OrderID, req.Payload, req.Approved, req.Actor)
	if err != nil {
		return nil, err
	}
	if err := s.feedback.Save(ctx, record); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	profile, err := s.profiles.FindByCustomerAndSize(ctx, payload.CustomerID, payload.SizeName)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	profile.MarkFeedbackSubmitted(req.Approved, req.Actor)
	if err := s.profiles.Save(ctx, profile); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	line, err := s.lines.FindFirstByOrderID(ctx, req.OrderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	octx, err := line.Context()
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	octx.UpstreamStatus = fulfillment.TagFeedbackReceived
	if _, err := s.transitions.ApplyTransition(ctx, line.ID, fulfillment.PhaseFeedbackReceived, nil, *octx, req.Actor); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := ToMeasurementFeedbackResponse(record)
	return &response, nil
}

// GetFeedback returns one feedback row by ID
func (s *FeedbackService) GetFeedback(ctx context.Context, id uuid.UUID) (*MeasurementFeedbackResponse, error) {
	record, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMeasurementFeedbackResponse(record)
	return &response, nil
}

// ListFeedbackByOrder returns all feedback rows submitted for an order
func (s *FeedbackService) ListFeedbackByOrder(ctx context.Context, orderID string) ([]MeasurementFeedbackResponse, error) {
	records, err := s.feedback.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]MeasurementFeedbackResponse, len(records))
	for i := range records {
		out[i] = ToMeasurementFeedbackResponse(&records[i])
	}
	return out, nil
}

// ApproveFeedback applies an admin's approval or edit of a stored feedback
// row and cascades the corrected measurements into the three stored copies:
// the feedback row itself, the measurement profile, and the order's ledger
// line. The corrections come from the payload as originally submitted by
// the customer, not from the admin's replacement payload. The returned
// record is the pre-edit state, matching what the admin reviewed.
func (s *FeedbackService) ApproveFeedback(ctx context.Context, id uuid.UUID, req ApproveFeedbackRequest, actor string) (*MeasurementFeedbackResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fitting", "approve_feedback",
		telemetry.WithAttribute("feedback_id", id.String()),
	)
	defer span.End()

	record, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	original, err := record.ParsePayload()
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	preEdit := ToMeasurementFeedbackResponse(record)

	if err := record.Overwrite(req.Payload, req.Approved, actor); err != nil {
		return nil, err
	}
	if err := s.feedback.Save(ctx, record); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	profile, err := s.profiles.FindByCustomerAndSize(ctx, original.CustomerID, original.SizeName)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	profile.ApplyFeedbackCorrections(original.Measurements, actor)
	if err := s.profiles.Save(ctx, profile); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	line, err := s.lines.FindFirstByOrderID(ctx, record.OrderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	line.CopyMeasurements(profile.Measurements, actor)
	if err := line.SetUpstreamTag(fulfillment.TagEditMeasurements, actor); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.lines.Save(ctx, line); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	octx, err := line.Context()
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if _, err := s.transitions.ApplyTransition(ctx, line.ID, fulfillment.PhaseMeasurementUpdated, nil, *octx, actor); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Feedback corrections cascaded",
		zap.String("order_id", record.OrderID),
		zap.String("customer_id", original.CustomerID),
		zap.String("size_name", original.SizeName),
	)
	return &preEdit, nil
}
