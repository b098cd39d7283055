package fulfillment

import (
	"time"

	"github.com/google/uuid"

	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/fulfillment"
)

// MeasurementInput carries the ten measurement values plus initials
type MeasurementInput struct {
	Neck          string `json:"neck"`
	Chest         string `json:"chest"`
	Stomach       string `json:"stomach"`
	Seat          string `json:"seat"`
	Bicep         string `json:"bicep"`
	SleeveLength  string `json:"sleeve_length"`
	ShoulderWidth string `json:"shoulder_width"`
	TeeLength     string `json:"tee_length"`
	ArmHole       string `json:"arm_hole"`
	Wrist         string `json:"wrist"`
	Initials      string `json:"initials"`
}

// ToSet converts the input to a domain measurement set
func (m MeasurementInput) ToSet() fitting.MeasurementSet {
	return fitting.MeasurementSet{
		Neck:          m.Neck,
		Chest:         m.Chest,
		Stomach:       m.Stomach,
		Seat:          m.Seat,
		Bicep:         m.Bicep,
		SleeveLength:  m.SleeveLength,
		ShoulderWidth: m.ShoulderWidth,
		TeeLength:     m.TeeLength,
		ArmHole:       m.ArmHole,
		Wrist:         m.Wrist,
		Initials:      m.Initials,
	}
}

// MeasurementOutput mirrors MeasurementInput on responses
type MeasurementOutput = MeasurementInput

func measurementOutput(ms fitting.MeasurementSet) MeasurementOutput {
	return MeasurementOutput{
		Neck:          ms.Neck,
		Chest:         ms.Chest,
		Stomach:       ms.Stomach,
		Seat:          ms.Seat,
		Bicep:         ms.Bicep,
		SleeveLength:  ms.SleeveLength,
		ShoulderWidth: ms.ShoulderWidth,
		TeeLength:     ms.TeeLength,
		ArmHole:       ms.ArmHole,
		Wrist:         ms.Wrist,
		Initials:      ms.Initials,
	}
}

// OrderLineInput is one cart line in a place-order batch
type OrderLineInput struct {
	CustomerID   string           `json:"customer_id" binding:"required"`
	FitSample    bool             `json:"fit_sample"`
	SizeName     string           `json:"size_name"`
	Fit          string           `json:"fit"`
	Measurements MeasurementInput `json:"measurements"`
}

// PlaceOrderLinesRequest creates the initial ledger lines for an order
type PlaceOrderLinesRequest struct {
	OrderID string           `json:"order_id" binding:"required"`
	Lines   []OrderLineInput `json:"lines" binding:"required,min=1"`
}

// ApplyTransitionRequest advances one ledger line
type ApplyTransitionRequest struct {
	Phase          fulfillment.PhaseLabel `json:"phase" binding:"required"`
	TrackingNumber *string                `json:"tracking_number"`
}

// OrderStatusLineResponse is the API view of a ledger line
type OrderStatusLineResponse struct {
	ID             uuid.UUID         `json:"id"`
	OrderID        string            `json:"order_id"`
	CustomerID     string            `json:"customer_id"`
	Status         string            `json:"status"`
	FitSample      bool              `json:"fit_sample"`
	TrackingNumber *string           `json:"tracking_number,omitempty"`
	SizeName       string            `json:"size_name"`
	Fit            string            `json:"fit"`
	Measurements   MeasurementOutput `json:"measurements"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// OrderStatusRollupResponse is the API view of the per-order rollup
type OrderStatusRollupResponse struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToOrderStatusLineResponse maps a domain line to its API view
func ToOrderStatusLineResponse(line *fulfillment.OrderStatusLine) OrderStatusLineResponse {
	return OrderStatusLineResponse{
		ID:             line.ID,
		OrderID:        line.OrderID,
		CustomerID:     line.CustomerID,
		Status:         line.Status.String(),
		FitSample:      line.FitSample,
		TrackingNumber: line.TrackingNumber,
		SizeName:       line.SizeName,
		Fit:            line.Fit,
		Measurements:   measurementOutput(line.Measurements),
		CreatedAt:      line.CreatedAt,
		UpdatedAt:      line.UpdatedAt,
	}
}

// ToOrderStatusLineResponses maps a slice of domain lines
func ToOrderStatusLineResponses(lines []fulfillment.OrderStatusLine) []OrderStatusLineResponse {
	out := make([]OrderStatusLineResponse, len(lines))
	for i := range lines {
		out[i] = ToOrderStatusLineResponse(&lines[i])
	}
	return out
}

// ToOrderStatusRollupResponse maps a domain rollup to its API view
func ToOrderStatusRollupResponse(rollup *fulfillment.OrderStatusRollup) OrderStatusRollupResponse {
	return OrderStatusRollupResponse{
		OrderID:   rollup.OrderID,
		Status:    rollup.Status,
		UpdatedAt: rollup.UpdatedAt,
	}
}
