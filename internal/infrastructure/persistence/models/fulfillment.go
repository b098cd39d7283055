package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tailorbase/backend/internal/domain/fitting"
	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/domain/shared"
)

// OrderStatusLineModel is the GORM model for the order_status_lines table.
// address_information holds the serialized order context snapshot.
type OrderStatusLineModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID        string    `gorm:"column:order_id;type:varchar(100);not null;index"`
	CustomerID     string    `gorm:"column:customer_id;type:varchar(100);index"`
	Status         string    `gorm:"type:varchar(50);not null"`
	FitSample      bool      `gorm:"column:fit_sample;not null;default:false"`
	TrackingNumber *string   `gorm:"column:tracking_number;type:varchar(100)"`

	AddressInformation string `gorm:"column:address_information;type:text"`

	SizeName      string `gorm:"column:size_name;type:varchar(100)"`
	Fit           string `gorm:"type:varchar(100)"`
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

	CreatedBy string    `gorm:"column:created_by;type:varchar(100)"`
	UpdatedBy string    `gorm:"column:updated_by;type:varchar(100)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for OrderStatusLineModel
func (OrderStatusLineModel) TableName() string {
	return "order_status_lines"
}

// ToDomain converts OrderStatusLineModel to domain OrderStatusLine
func (m *OrderStatusLineModel) ToDomain() *fulfillment.OrderStatusLine {
	return &fulfillment.OrderStatusLine{
		AuditedEntity: shared.AuditedEntity{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			CreatedBy: m.CreatedBy,
			UpdatedBy: m.UpdatedBy,
		},
		OrderID:            m.OrderID,
		CustomerID:         m.CustomerID,
		Status:             fulfillment.PhaseLabel(m.Status),
		FitSample:          m.FitSample,
		TrackingNumber:     m.TrackingNumber,
		AddressInformation: m.AddressInformation,
		SizeName:           m.SizeName,
		Fit:                m.Fit,
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
	}
}

// OrderStatusLineModelFromDomain creates an OrderStatusLineModel from domain OrderStatusLine
func OrderStatusLineModelFromDomain(l *fulfillment.OrderStatusLine) *OrderStatusLineModel {
	return &OrderStatusLineModel{
		ID:                 l.ID,
		OrderID:            l.OrderID,
		CustomerID:         l.CustomerID,
		Status:             l.Status.String(),
		FitSample:          l.FitSample,
		TrackingNumber:     l.TrackingNumber,
		AddressInformation: l.AddressInformation,
		SizeName:           l.SizeName,
		Fit:                l.Fit,
		Neck:               l.Measurements.Neck,
		Chest:              l.Measurements.Chest,
		Stomach:            l.Measurements.Stomach,
		Seat:               l.Measurements.Seat,
		Bicep:              l.Measurements.Bicep,
		SleeveLength:       l.Measurements.SleeveLength,
		ShoulderWidth:      l.Measurements.ShoulderWidth,
		TeeLength:          l.Measurements.TeeLength,
		ArmHole:            l.Measurements.ArmHole,
		Wrist:              l.Measurements.Wrist,
		Initials:           l.Measurements.Initials,
		CreatedBy:          l.CreatedBy,
		UpdatedBy:          l.UpdatedBy,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

// OrderStatusRollupModel is the GORM model for the order_status_rollups table.
// One row per order; order_id is unique.
type OrderStatusRollupModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID   string    `gorm:"column:order_id;type:varchar(100);not null;uniqueIndex"`
	Status    string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for OrderStatusRollupModel
func (OrderStatusRollupModel) TableName() string {
	return "order_status_rollups"
}

// ToDomain converts OrderStatusRollupModel to domain OrderStatusRollup
func (m *OrderStatusRollupModel) ToDomain() *fulfillment.OrderStatusRollup {
	return &fulfillment.OrderStatusRollup{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		OrderID: m.OrderID,
		Status:  m.Status,
	}
}

// OrderStatusRollupModelFromDomain creates an OrderStatusRollupModel from domain OrderStatusRollup
func OrderStatusRollupModelFromDomain(r *fulfillment.OrderStatusRollup) *OrderStatusRollupModel {
	return &OrderStatusRollupModel{
		ID:        r.ID,
		OrderID:   r.OrderID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
