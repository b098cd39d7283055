package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fittingapp "github.com/tailorbase/backend/internal/application/fitting"
)

// FeedbackHandler handles fit-sample measurement feedback API endpoints
type FeedbackHandler struct {
	BaseHandler
	feedbackService *fittingapp.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbackService *fittingapp.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// SubmitFeedbackRequest represents a customer's fit-sample feedback form
type SubmitFeedbackRequest struct {
	OrderID  string `json:"order_id" binding:"required"`
	Payload  string `json:"payload" binding:"required"`
	Approved bool   `json:"approved"`
}

// ApproveFeedbackRequest represents an admin's review of stored feedback
type ApproveFeedbackRequest struct {
	Payload  string `json:"payload" binding:"required"`
	Approved bool   `json:"approved"`
}

// Submit records a feedback form submission and runs the measurement
// reconciliation cascade when the feedback carries corrections
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := fittingapp.SubmitFeedbackRequest{
		OrderID:  req.OrderID,
		Payload:  req.Payload,
		Approved: req.Approved,
		Actor:    getActor(c),
	}

	feedback, err := h.feedbackService.SubmitFeedback(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, feedback)
}

// Approve reviews stored feedback, optionally editing the payload before the
// corrections cascade
func (h *FeedbackHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid feedback ID format")
		return
	}

	var req ApproveFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := fittingapp.ApproveFeedbackRequest{
		Payload:  req.Payload,
		Approved: req.Approved,
	}

	feedback, err := h.feedbackService.ApproveFeedback(c.Request.Context(), id, appReq, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, feedback)
}

// Get returns one feedback row by its ID
func (h *FeedbackHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid feedback ID format")
		return
	}

	feedback, err := h.feedbackService.GetFeedback(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, feedback)
}

// ListByOrder returns every feedback row recorded for an order
func (h *FeedbackHandler) ListByOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		h.BadRequest(c, "Order ID is required")
		return
	}

	feedback, err := h.feedbackService.ListFeedbackByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, feedback)
}
