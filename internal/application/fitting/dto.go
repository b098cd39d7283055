package fitting

import (
	"time"

	"github.com/google/uuid"

	appfulfillment "github.com/tailorbase/backend/internal/application/fulfillment"
	"github.com/tailorbase/backend/internal/domain/fitting"
)

// SaveMeasurementProfileRequest creates or updates a measurement profile
type SaveMeasurementProfileRequest struct {
	SizeName     string                         `json:"size_name" binding:"required,min=1,max=100"`
	Measurements appfulfillment.MeasurementInput `json:"measurements"`
	NewSize      bool                           `json:"new_size"`
	Actor        string                         `json:"-"`
	ByAdmin      bool                           `json:"-"`
}

// SubmitFeedbackRequest is a customer's fit-sample feedback submission
type SubmitFeedbackRequest struct {
	OrderID  string `json:"order_id" binding:"required"`
	Payload  string `json:"payload" binding:"required"`
	Approved bool   `json:"approved"`
	Actor    string `json:"-"`
}

// ApproveFeedbackRequest is an admin's approval or edit of stored feedback
type ApproveFeedbackRequest struct {
	Payload  string `json:"payload" binding:"required"`
	Approved bool   `json:"approved"`
}

// MeasurementProfileResponse is the API view of a measurement profile
type MeasurementProfileResponse struct {
	ID                    uuid.UUID                        `json:"id"`
	CustomerID            string                           `json:"customer_id"`
	SizeName              string                           `json:"size_name"`
	Measurements          appfulfillment.MeasurementOutput `json:"measurements"`
	NewSize               bool                             `json:"new_size"`
	FeedbackFormSubmitted bool                             `json:"feedback_form_submitted"`
	AdminUpdated          bool                             `json:"admin_updated"`
	CreatedAt             time.Time                        `json:"created_at"`
	UpdatedAt             time.Time                        `json:"updated_at"`
}

// MeasurementFeedbackResponse is the API view of a feedback row
type MeasurementFeedbackResponse struct {
	ID        uuid.UUID `json:"id"`
	OrderID   string    `json:"order_id"`
	Payload   string    `json:"payload"`
	Approved  bool      `json:"approved"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToMeasurementProfileResponse maps a domain profile to its API view
func ToMeasurementProfileResponse(p *fitting.MeasurementProfile) MeasurementProfileResponse {
	return MeasurementProfileResponse{
		ID:                    p.ID,
		CustomerID:            p.CustomerID,
		SizeName:              p.SizeName,
		Measurements:          measurementOutput(p.Measurements),
		NewSize:               p.NewSize,
		FeedbackFormSubmitted: p.FeedbackFormSubmitted,
		AdminUpdated:          p.AdminUpdated,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// ToMeasurementProfileResponses maps a slice of domain profiles
func ToMeasurementProfileResponses(profiles []fitting.MeasurementProfile) []MeasurementProfileResponse {
	out := make([]MeasurementProfileResponse, len(profiles))
	for i := range profiles {
		out[i] = ToMeasurementProfileResponse(&profiles[i])
	}
	return out
}

// ToMeasurementFeedbackResponse maps a domain feedback row to its API view
func ToMeasurementFeedbackResponse(f *fitting.MeasurementFeedback) MeasurementFeedbackResponse {
	return MeasurementFeedbackResponse{
		ID:        f.ID,
		OrderID:   f.OrderID,
		Payload:   f.Payload,
		Approved:  f.Approved,
		CreatedBy: f.CreatedBy,
		UpdatedBy: f.UpdatedBy,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func measurementOutput(ms fitting.MeasurementSet) appfulfillment.MeasurementOutput {
	return appfulfillment.MeasurementOutput{
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
