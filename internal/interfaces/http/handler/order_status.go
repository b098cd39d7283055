package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fulfillmentapp "github.com/tailorbase/backend/internal/application/fulfillment"
	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/domain/integration"
	"github.com/tailorbase/backend/internal/infrastructure/i18n"
	"github.com/tailorbase/backend/internal/interfaces/http/dto"
)

// defaultOrderPageSize bounds unpaginated order listing requests
const defaultOrderPageSize = 20

// OrderStatusHandler handles the order fulfillment API endpoints: the
// per-line status ledger, the per-order rollup row and the dashboard views
// joined from the upstream platform.
type OrderStatusHandler struct {
	BaseHandler
	transitionService *fulfillmentapp.TransitionService
	queryService      *fulfillmentapp.LedgerQueryService
	orderReader       integration.OrderReader
	translator        *i18n.Translator
}

// NewOrderStatusHandler creates a new OrderStatusHandler
func NewOrderStatusHandler(
	transitionService *fulfillmentapp.TransitionService,
	queryService *fulfillmentapp.LedgerQueryService,
	orderReader integration.OrderReader,
	translator *i18n.Translator,
) *OrderStatusHandler {
	return &OrderStatusHandler{
		transitionService: transitionService,
		queryService:      queryService,
		orderReader:       orderReader,
		translator:        translator,
	}
}

// PlaceOrderLinesRequest represents the initial ledger batch for an order.
// The order ID comes from the path; the body carries only the cart lines.
type PlaceOrderLinesRequest struct {
	Lines []fulfillmentapp.OrderLineInput `json:"lines" binding:"required,min=1,dive"`
}

// UpdateLineStatusRequest represents a dashboard-driven status transition.
// The status vocabulary is the production lifecycle only; measurement edits
// and feedback arrive through their own endpoints.
type UpdateLineStatusRequest struct {
	Status         string  `json:"status" binding:"required,oneof='Start Production' 'Finish Production' 'Mark As Packed' 'Dispatched' 'Delivered'"`
	TrackingNumber *string `json:"tracking_number"`
}

// PlaceLines creates the first-time ledger lines for an order. The order
// context snapshot is taken from the upstream platform at this moment and
// frozen onto every line.
func (h *OrderStatusHandler) PlaceLines(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		h.BadRequest(c, "Order ID is required")
		return
	}

	var req PlaceOrderLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	upstream, err := h.orderReader.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, integration.ErrOrderNotFound) {
			h.NotFound(c, "Order not found on the upstream platform")
			return
		}
		h.HandleError(c, err)
		return
	}

	octx := fulfillmentapp.OrderContextFromUpstream(upstream)
	appReq := fulfillmentapp.PlaceOrderLinesRequest{
		OrderID: orderID,
		Lines:   req.Lines,
	}

	lines, err := h.transitionService.PlaceOrderLines(c.Request.Context(), appReq, octx, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lines)
}

// UpdateLineStatus advances one ledger line to a new production phase
func (h *OrderStatusHandler) UpdateLineStatus(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req UpdateLineStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	line, err := h.transitionService.ApplyStatusUpdate(
		c.Request.Context(),
		lineID,
		fulfillment.UpstreamTag(req.Status),
		req.TrackingNumber,
		getActor(c),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, line)
}

// GetLedger returns the ledger lines for an order, synthesizing one from the
// upstream snapshot when the order has never been seen before
func (h *OrderStatusHandler) GetLedger(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		h.BadRequest(c, "Order ID is required")
		return
	}

	lines, err := h.queryService.GetLedger(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lines)
}

// GetLine returns one ledger line by its ID
func (h *OrderStatusHandler) GetLine(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	line, err := h.queryService.GetLine(c.Request.Context(), lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, line)
}

// GetRollup returns the single per-order rollup row, with the composed
// phrase localized per the Accept-Language header
func (h *OrderStatusHandler) GetRollup(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		h.BadRequest(c, "Order ID is required")
		return
	}

	rollup, err := h.queryService.GetRollup(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	rollup.Status = h.localize(c, rollup.Status)
	h.Success(c, rollup)
}

// GetOrderDetail returns the upstream order snapshot joined with its ledger
func (h *OrderStatusHandler) GetOrderDetail(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		h.BadRequest(c, "Order ID is required")
		return
	}

	detail, err := h.queryService.GetOrderDetail(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	detail.Summary.RollupStatus = h.localize(c, detail.Summary.RollupStatus)
	h.Success(c, detail)
}

// ListOrders pages through the upstream order listing with the rollup phrase
// attached to each order the workflow has touched
func (h *OrderStatusHandler) ListOrders(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.PageSize == 0 {
		req.PageSize = defaultOrderPageSize
	}

	result, err := h.queryService.ListOrders(c.Request.Context(), req.Cursor, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	for i := range result.Orders {
		result.Orders[i].RollupStatus = h.localize(c, result.Orders[i].RollupStatus)
	}

	h.SuccessWithCursor(c, result.Orders, req.PageSize, result.NextCursor)
}

// localize renders a rollup phrase in the caller's language. An empty phrase
// or an absent translator passes through unchanged.
func (h *OrderStatusHandler) localize(c *gin.Context, phrase string) string {
	if h.translator == nil || phrase == "" {
		return phrase
	}
	return h.translator.Phrase(c.GetHeader("Accept-Language"), phrase)
}
