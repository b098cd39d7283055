package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fittingapp "github.com/tailorbase/backend/internal/application/fitting"
	fulfillmentapp "github.com/tailorbase/backend/internal/application/fulfillment"
)

// MeasurementHandler handles measurement profile API endpoints
type MeasurementHandler struct {
	BaseHandler
	measurementService *fittingapp.MeasurementService
}

// NewMeasurementHandler creates a new MeasurementHandler
func NewMeasurementHandler(measurementService *fittingapp.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
	}
}

// SaveMeasurementProfileRequest represents a profile create-or-update for one
// of a customer's named sizes
type SaveMeasurementProfileRequest struct {
	SizeName     string `json:"size_name" binding:"required,min=1,max=100"`
	Measurements struct {
		Neck          string `json:"neck" binding:"omitempty,measurement"`
		Chest         string `json:"chest" binding:"omitempty,measurement"`
		Stomach       string `json:"stomach" binding:"omitempty,measurement"`
		Seat          string `json:"seat" binding:"omitempty,measurement"`
		Bicep         string `json:"bicep" binding:"omitempty,measurement"`
		SleeveLength  string `json:"sleeve_length" binding:"omitempty,measurement"`
		ShoulderWidth string `json:"shoulder_width" binding:"omitempty,measurement"`
		TeeLength     string `json:"tee_length" binding:"omitempty,measurement"`
		ArmHole       string `json:"arm_hole" binding:"omitempty,measurement"`
		Wrist         string `json:"wrist" binding:"omitempty,measurement"`
		Initials      string `json:"initials" binding:"max=10"`
	} `json:"measurements"`
	NewSize bool `json:"new_size"`
}

// SaveProfile creates or updates the measurement profile for one customer size
func (h *MeasurementHandler) SaveProfile(c *gin.Context) {
	customerID := c.Param("customerId")
	if customerID == "" {
		h.BadRequest(c, "Customer ID is required")
		return
	}

	var req SaveMeasurementProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := fittingapp.SaveMeasurementProfileRequest{
		SizeName: req.SizeName,
		Measurements: fulfillmentapp.MeasurementInput{
			Neck:          req.Measurements.Neck,
			Chest:         req.Measurements.Chest,
			Stomach:       req.Measurements.Stomach,
			Seat:          req.Measurements.Seat,
			Bicep:         req.Measurements.Bicep,
			SleeveLength:  req.Measurements.SleeveLength,
			ShoulderWidth: req.Measurements.ShoulderWidth,
			TeeLength:     req.Measurements.TeeLength,
			ArmHole:       req.Measurements.ArmHole,
			Wrist:         req.Measurements.Wrist,
			Initials:      req.Measurements.Initials,
		},
		NewSize: req.NewSize,
		Actor:   getActor(c),
		ByAdmin: c.GetHeader(ActorHeader) != "",
	}

	profile, err := h.measurementService.SaveProfile(c.Request.Context(), customerID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// GetProfile returns one measurement profile by its ID
func (h *MeasurementHandler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid profile ID format")
		return
	}

	profile, err := h.measurementService.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// GetProfileBySize returns the profile stored for one of a customer's sizes
func (h *MeasurementHandler) GetProfileBySize(c *gin.Context) {
	customerID := c.Param("customerId")
	sizeName := c.Param("sizeName")
	if customerID == "" || sizeName == "" {
		h.BadRequest(c, "Customer ID and size name are required")
		return
	}

	profile, err := h.measurementService.GetProfileBySize(c.Request.Context(), customerID, sizeName)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// ListProfiles returns every measurement profile stored for a customer
func (h *MeasurementHandler) ListProfiles(c *gin.Context) {
	customerID := c.Param("customerId")
	if customerID == "" {
		h.BadRequest(c, "Customer ID is required")
		return
	}

	profiles, err := h.measurementService.ListProfiles(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profiles)
}
