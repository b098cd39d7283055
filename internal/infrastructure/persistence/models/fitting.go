package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/shared"
)

// MeasurementProfileModel is the GORM model for the measurement_profiles table.
// The (customer_id, size_name) pair carries a unique index; a duplicate insert
// surfaces as ErrAlreadyExists in the repository.
type MeasurementProfileModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID string    `gorm:"column:customer_id;type:varchar(100);not null;uniqueIndex:idx_customer_size"`
	SizeName   string    `gorm:"column:size_name;type:varchar(100);not null;uniqueIndex:idx_customer_size"`

	Neck          string `gorm:"type:varchar(20)"`
	Chest         string `gorm:"type:varchar(20)"`
	Stomach       string `gorm:"type:varchar(20)"`
	Seat          string `gorm:"type:varchar(20)"`
	Bicep         string `gorm:"type:varchar(20)"`
	SleeveLength  string `gorm:"column:sleeve_length;type:varchar(20)"`
	ShoulderWidth string `gorm:"column:shoulder_width;type:varchar(20)"`
	TeeLength     string `gorm:"column:tee_length;type:varchar(20)"`
	ArmHole       string `gorm:"column:arm_hole;type:varchar(20)"`
	Wrist         string `gorm:"type:varchar(20)"`
	Initials      string `gorm:"type:varchar(10)"`

	NewSize               bool `gorm:"column:new_size;not null;default:false"`
	FeedbackFormSubmitted bool `gorm:"column:feedback_form_submitted;not null;default:false"`
	AdminUpdated          bool `gorm:"column:admin_updated;not null;default:false"`

	CreatedBy string    `gorm:"column:created_by;type:varchar(100)"`
	UpdatedBy string    `gorm:"column:updated_by;type:varchar(100)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for MeasurementProfileModel
func (MeasurementProfileModel) TableName() string {
	return "measurement_profiles"
}

// ToDomain converts MeasurementProfileModel to domain MeasurementProfile
func (m *MeasurementProfileModel) ToDomain() *fitting.MeasurementProfile {
	return &fitting.MeasurementProfile{
		AuditedEntity: shared.AuditedEntity{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			CreatedBy: m.CreatedBy,
			UpdatedBy: m.UpdatedBy,
		},
		CustomerID: m.CustomerID,
		SizeName:   m.SizeName,
		Measurements: fitting.MeasurementSet{
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
		},
		NewSize:               m.NewSize,
		FeedbackFormSubmitted: m.FeedbackFormSubmitted,
		AdminUpdated:          m.AdminUpdated,
	}
}

// MeasurementProfileModelFromDomain creates a MeasurementProfileModel from domain MeasurementProfile
func MeasurementProfileModelFromDomain(p *fitting.MeasurementProfile) *MeasurementProfileModel {
	return &MeasurementProfileModel{
		ID:                    p.ID,
		CustomerID:            p.CustomerID,
		SizeName:              p.SizeName,
		Neck:                  p.Measurements.Neck,
		Chest:                 p.Measurements.Chest,
		Stomach:               p.Measurements.Stomach,
		Seat:                  p.Measurements.Seat,
		Bicep:                 p.Measurements.Bicep,
		SleeveLength:          p.Measurements.SleeveLength,
		ShoulderWidth:         p.Measurements.ShoulderWidth,
		TeeLength:             p.Measurements.TeeLength,
		ArmHole:               p.Measurements.ArmHole,
		Wrist:                 p.Measurements.Wrist,
		Initials:              p.Measurements.Initials,
		NewSize:               p.NewSize,
		FeedbackFormSubmitted: p.FeedbackFormSubmitted,
		AdminUpdated:          p.AdminUpdated,
		CreatedBy:             p.CreatedBy,
		UpdatedBy:             p.UpdatedBy,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// MeasurementFeedbackModel is the GORM model for the measurement_feedback table
type MeasurementFeedbackModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID   string    `gorm:"column:order_id;type:varchar(100);not null;index"`
	Payload   string    `gorm:"type:text;not null"`
	Approved  bool      `gorm:"not null;default:false"`
	CreatedBy string    `gorm:"column:created_by;type:varchar(100)"`
	UpdatedBy string    `gorm:"column:updated_by;type:varchar(100)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for MeasurementFeedbackModel
func (MeasurementFeedbackModel) TableName() string {
	return "measurement_feedback"
}

// ToDomain converts MeasurementFeedbackModel to domain MeasurementFeedback
func (m *MeasurementFeedbackModel) ToDomain() *fitting.MeasurementFeedback {
	return &fitting.MeasurementFeedback{
		AuditedEntity: shared.AuditedEntity{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			CreatedBy: m.CreatedBy,
			UpdatedBy: m.UpdatedBy,
		},
		OrderID:  m.OrderID,
		Payload:  m.Payload,
		Approved: m.Approved,
	}
}

// MeasurementFeedbackModelFromDomain creates a MeasurementFeedbackModel from domain MeasurementFeedback
func MeasurementFeedbackModelFromDomain(f *fitting.MeasurementFeedback) *MeasurementFeedbackModel {
	return &MeasurementFeedbackModel{
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
