package fulfillment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/domain/integration"
	"github.com/tailorbase/backend/internal/domain/shared"
	"github.com/tailorbase/backend/internal/infrastructure/telemetry"
)

// OrderSummary is the dashboard listing view: the upstream snapshot header
// joined with the workflow's rollup phrase when one exists.
type OrderSummary struct {
	OrderID      string          `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   string          `json:"customer_id"`
	Email        string          `json:"email"`
	OrderDate    string          `json:"order_date"`
	UpstreamTag  string          `json:"upstream_tag"`
	RollupStatus string          `json:"rollup_status,omitempty"`
	Total        decimal.Decimal `json:"total"`
}

// OrderDetail is the single-order dashboard view
type OrderDetail struct {
	Summary OrderSummary              `json:"summary"`
	Lines   []OrderStatusLineResponse `json:"lines"`
}

// OrderListResult is one page of summaries plus the cursor for the next page
type OrderListResult struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// LedgerQueryService serves the read side of the workflow: ledger lines,
// rollup rows and upstream order views. Unseen orders get their single
// synthesized line through the bootstrapper; nothing here writes.
type LedgerQueryService struct {
	lines        fulfillment.OrderStatusLineRepository
	rollups      fulfillment.OrderStatusRollupRepository
	bootstrapper *ContextBootstrapper
	reader       integration.OrderReader
	logger       *zap.Logger
}

// NewLedgerQueryService creates a new LedgerQueryService
func NewLedgerQueryService(
	lines fulfillment.OrderStatusLineRepository,
	rollups fulfillment.OrderStatusRollupRepository,
	bootstrapper *ContextBootstrapper,
	reader integration.OrderReader,
	logger *zap.Logger,
) *LedgerQueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerQueryService{
		lines:        lines,
		rollups:      rollups,
		bootstrapper: bootstrapper,
		reader:       reader,
		logger:       logger,
	}
}

// GetLedger returns the ledger lines for an order. An order with no
// persisted lines yields one line synthesized from the upstream snapshot.
func (s *LedgerQueryService) GetLedger(ctx context.Context, orderID string) ([]OrderStatusLineResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fulfillment", "get_ledger",
		telemetry.WithAttribute("order_id", orderID),
	)
	defer span.End()

	upstream, err := s.fetchUpstream(ctx, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	lines, err := s.bootstrapper.EnsureLines(ctx, orderID, upstream)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return ToOrderStatusLineResponses(lines), nil
}

// GetLine returns one ledger line by its ID
func (s *LedgerQueryService) GetLine(ctx context.Context, lineID uuid.UUID) (*OrderStatusLineResponse, error) {
	line, err := s.lines.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	response := ToOrderStatusLineResponse(line)
	return &response, nil
}

// GetRollup returns the single per-order rollup row
func (s *LedgerQueryService) GetRollup(ctx context.Context, orderID string) (*OrderStatusRollupResponse, error) {
	rollup, err := s.rollups.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderStatusRollupResponse(rollup)
	return &response, nil
}

// GetOrderDetail joins the upstream snapshot with the ledger view
func (s *LedgerQueryService) GetOrderDetail(ctx context.Context, orderID string) (*OrderDetail, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fulfillment", "get_order_detail",
		telemetry.WithAttribute("order_id", orderID),
	)
	defer span.End()

	upstream, err := s.reader.GetOrder(ctx, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, mapUpstreamError(err)
	}

	lines, err := s.bootstrapper.EnsureLines(ctx, orderID, upstream)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &OrderDetail{
		Summary: s.summarize(ctx, upstream),
		Lines:   ToOrderStatusLineResponses(lines),
	}, nil
}

// ListOrders pages through the upstream order listing, attaching the rollup
// phrase to each order the workflow has touched
func (s *LedgerQueryService) ListOrders(ctx context.Context, cursor string, pageSize int) (*OrderListResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fulfillment", "list_orders")
	defer span.End()

	page, err := s.reader.ListOrders(ctx, cursor, pageSize)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, mapUpstreamError(err)
	}

	result := &OrderListResult{
		Orders:     make([]OrderSummary, 0, len(page.Orders)),
		NextCursor: page.NextCursor,
	}
	for i := range page.Orders {
		result.Orders = append(result.Orders, s.summarize(ctx, &page.Orders[i]))
	}
	return result, nil
}

// fetchUpstream retrieves the upstream snapshot, tolerating an order the
// platform no longer serves when ledger lines already exist
func (s *LedgerQueryService) fetchUpstream(ctx context.Context, orderID string) (*integration.UpstreamOrder, error) {
	upstream, err := s.reader.GetOrder(ctx, orderID)
	if err == nil {
		return upstream, nil
	}
	if errors.Is(err, integration.ErrOrderNotFound) {
		// EnsureLines still serves persisted lines without a snapshot
		return nil, nil
	}
	return nil, mapUpstreamError(err)
}

func (s *LedgerQueryService) summarize(ctx context.Context, upstream *integration.UpstreamOrder) OrderSummary {
	summary := OrderSummary{
		OrderID:     upstream.ID,
		OrderNumber: upstream.Name,
		CustomerID:  upstream.CustomerID,
		Email:       upstream.Email,
		OrderDate:   upstream.CreatedAt.Format("2006-01-02"),
		UpstreamTag: upstream.StatusTag,
		Total:       OrderTotal(upstream),
	}

	rollup, err := s.rollups.FindByOrderID(ctx, upstream.ID)
	switch {
	case err == nil:
		summary.RollupStatus = rollup.Status
	case errors.Is(err, shared.ErrNotFound):
		// Order not yet in the workflow
	default:
		s.logger.Warn("rollup lookup failed for order listing",
			zap.String("order_id", upstream.ID),
			zap.Error(err),
		)
	}
	return summary
}

// mapUpstreamError folds platform errors into the shared domain vocabulary
// so the HTTP layer renders them consistently
func mapUpstreamError(err error) error {
	if errors.Is(err, integration.ErrOrderNotFound) {
		return shared.ErrNotFound
	}
	return err
}
