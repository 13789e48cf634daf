package audit

import (
	"time"

	"github.com/google/uuid"
)

// Common actions recorded against leave requests and balance ledgers.
const (
	ActionRequestCreated   = "REQUEST_CREATED"
	ActionRequestUpdated   = "REQUEST_UPDATED"
	ActionRequestCancelled = "REQUEST_CANCELLED"
	ActionStepApproved     = "STEP_APPROVED"
	ActionStepRejected     = "STEP_REJECTED"
	ActionStepEscalated    = "STEP_ESCALATED"
	ActionHROverride       = "HR_OVERRIDE"
	ActionBalanceDebited   = "BALANCE_DEBITED"
	ActionBalanceRefunded  = "BALANCE_REFUNDED"
	ActionBalanceAdjusted  = "BALANCE_ADJUSTED"
	ActionAccrualPosted    = "ACCRUAL_POSTED"
	ActionCarryoverPosted  = "CARRYOVER_POSTED"
)

// AuditEntry is an append-only record. There is no update or delete path
// anywhere in the repository.
type AuditEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	ActorID    string    `gorm:"type:varchar(64);not null;index" json:"actor_id"`
	ActorRole  string    `gorm:"type:varchar(50)" json:"actor_role"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_audit_entity" json:"entity_type"`
	EntityID   string    `gorm:"type:varchar(64);not null;index:idx_audit_entity" json:"entity_id"`
	Details    string    `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}
