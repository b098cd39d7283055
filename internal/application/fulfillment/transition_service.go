package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/infrastructure/telemetry"
)

// NotificationExtra carries the transition-specific values a notification
// may embed beyond the order context snapshot.
type NotificationExtra struct {
	TrackingNumber *string
	CustomerID     string
	SizeName       string
	OrderID        string
}

// Notifier is the outbound notification port of the transition engine.
// Implementations decide whether a (track, tag) combination maps to a
// customer email at all; the engine never does.
type Notifier interface {
	// OrderPlaced sends the one-time order placement summary
	OrderPlaced(ctx context.Context, octx fulfillment.OrderContext) error

	// StatusChanged sends the notification for a lifecycle transition
	StatusChanged(ctx context.Context, track fulfillment.Track, tag fulfillment.UpstreamTag, octx fulfillment.OrderContext, extra NotificationExtra) error
}

// TransitionService is the central controller of the order fulfillment
// workflow: it validates a requested transition, updates the ledger, derives
// the composed rollup phrase and dispatches exactly one notification.
type TransitionService struct {
	lines    fulfillment.OrderStatusLineRepository
	rollup   fulfillment.RollupPolicy
	notifier Notifier
	logger   *zap.Logger
}

// NewTransitionService creates a new TransitionService
func NewTransitionService(lines fulfillment.OrderStatusLineRepository, rollup fulfillment.RollupPolicy, notifier Notifier, logger *zap.Logger) *TransitionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransitionService{
		lines:    lines,
		rollup:   rollup,
		notifier: notifier,
		logger:   logger,
	}
}

// ApplyTransition advances one ledger line to a new phase. The rollup phrase
// is derived from (fit-sample flag, upstream tag in the snapshot); an
// unmapped combination leaves the rollup untouched by design. A transition
// is complete once the ledger and rollup writes succeed; a notification
// failure is logged and absorbed.
func (s *TransitionService) ApplyTransition(ctx context.Context, lineID uuid.UUID, phase fulfillment.PhaseLabel, trackingNumber *string, octx fulfillment.OrderContext, actor string) (*OrderStatusLineResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fulfillment", "apply_transition",
		telemetry.WithAttribute("line_id", lineID.String()),
		telemetry.WithAttribute("phase", phase.String()),
	)
	defer span.End()

	line, err := s.lines.FindByID(ctx, lineID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := line.Advance(phase, trackingNumber, actor); err != nil {
		return nil, err
	}
	if err := s.lines.Save(ctx, line); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if phrase, ok := fulfillment.RollupPhrase(line.FitSample, octx.UpstreamStatus); ok {
		if err := s.rollup.Apply(ctx, line.OrderID, phrase); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	} else {
		s.logger.Debug("No rollup phrase for transition",
			zap.String("order_id", line.OrderID),
			zap.Bool("fit_sample", line.FitSample),
			zap.String("upstream_tag", octx.UpstreamStatus.String()),
		)
	}

	extra := NotificationExtra{
		TrackingNumber: line.TrackingNumber,
		CustomerID:     line.CustomerID,
		SizeName:       line.SizeName,
		OrderID:        line.OrderID,
	}
	if err := s.notifier.StatusChanged(ctx, line.Track(), octx.UpstreamStatus, octx, extra); err != nil {
		// The transition already committed; the notification outcome is
		// not part of the caller's contract.
		s.logger.Warn("Transition notification failed",
			zap.String("order_id", line.OrderID),
			zap.String("upstream_tag", octx.UpstreamStatus.String()),
			zap.Error(err),
		)
	}

	response := ToOrderStatusLineResponse(line)
	return &response, nil
}

// ApplyStatusUpdate is the entry point for dashboard-driven transitions: the
// caller names the new upstream tag, and the matching phase and order
// context come from the stored line itself. The tag is stamped into the
// snapshot before the transition runs so the rollup derivation sees it.
func (s *TransitionService) ApplyStatusUpdate(ctx context.Context, lineID uuid.UUID, tag fulfillment.UpstreamTag, trackingNumber *string, actor string) (*OrderStatusLineResponse, error) {
	line, err := s.lines.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}

	if err := line.SetUpstreamTag(tag, actor); err != nil {
		return nil, err
	}
	if err := s.lines.Save(ctx, line); err != nil {
		return nil, err
	}

	octx, err := line.Context()
	if err != nil {
		return nil, err
	}

	return s.ApplyTransition(ctx, lineID, fulfillment.PhaseLabel(tag.String()), trackingNumber, *octx, actor)
}

// PlaceOrderLines persists the first-time batch of ledger lines for an order
// and applies the creation-time rollup rule: every line starts at
// "Start Production" on its own track, and an existing rollup row for the
// order is updated rather than duplicated.
func (s *TransitionService) PlaceOrderLines(ctx context.Context, req PlaceOrderLinesRequest, octx fulfillment.OrderContext, actor string) ([]OrderStatusLineResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fulfillment", "place_order_lines",
		telemetry.WithAttribute("order_id", req.OrderID),
		telemetry.WithAttribute("line_count", len(req.Lines)),
	)
	defer span.End()

	lines := make([]*fulfillment.OrderStatusLine, 0, len(req.Lines))
	for _, input := range req.Lines {
		line, err := fulfillment.NewOrderStatusLine(req.OrderID, input.CustomerID, input.FitSample, fulfillment.PhaseStartProduction, actor)
		if err != nil {
			return nil, err
		}
		line.SizeName = input.SizeName
		line.Fit = input.Fit
		line.Measurements = input.Measurements.ToSet()
		if err := line.AttachContext(&octx); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err := s.lines.SaveAll(ctx, lines); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	for _, line := range lines {
		if err := s.rollup.Apply(ctx, line.OrderID, fulfillment.StartPhrase(line.FitSample)); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if err := s.notifier.OrderPlaced(ctx, octx); err != nil {
		s.logger.Warn("Order placed notification failed",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
	}

	responses := make([]OrderStatusLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToOrderStatusLineResponse(line)
	}
	return responses, nil
}
