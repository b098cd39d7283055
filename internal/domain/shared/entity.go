package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch refreshes the update timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AuditedEntity extends BaseEntity with actor audit fields.
// CreatedBy/UpdatedBy hold opaque identifiers of the customer or admin
// who performed the write.
type AuditedEntity struct {
	BaseEntity
	CreatedBy string
	UpdatedBy string
}

// NewAuditedEntity creates a new audited entity recording the creating actor
func NewAuditedEntity(actor string) AuditedEntity {
	return AuditedEntity{
		BaseEntity: NewBaseEntity(),
		CreatedBy:  actor,
		UpdatedBy:  actor,
	}
}

// RecordUpdate stamps the updating actor and refreshes the update timestamp
func (e *AuditedEntity) RecordUpdate(actor string) {
	e.UpdatedBy = actor
	e.Touch()
}
