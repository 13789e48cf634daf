package workflow

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// ApproverRoleManager resolves to the requesting employee's direct manager
	// at decision time.
	ApproverRoleManager = "manager"
	ApproverRoleHR      = "hr"
)

// WorkflowConfig describes the approval chain applied to new leave requests.
// A config with a nil LeaveTypeID is the company-wide default; a config bound
// to a leave type takes precedence over the default.
type WorkflowConfig struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	LeaveTypeID *uuid.UUID      `gorm:"type:uuid;index" json:"leave_type_id,omitempty"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	Levels      []WorkflowLevel `gorm:"foreignKey:ConfigID;constraint:OnDelete:CASCADE" json:"levels"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (WorkflowConfig) TableName() string {
	return "workflow_configs"
}

type WorkflowLevel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConfigID           uuid.UUID `gorm:"type:uuid;not null;index" json:"config_id"`
	Level              int       `gorm:"not null" json:"level"`
	ApproverRole       string    `gorm:"type:varchar(50);not null" json:"approver_role"`
	Required           bool      `gorm:"not null;default:true" json:"required"`
	EscalateAfterHours int       `gorm:"not null;default:0" json:"escalate_after_hours"`
}

func (WorkflowLevel) TableName() string {
	return "workflow_levels"
}

// Delegation routes pending approvals from the delegator to the delegate for
// the inclusive date window [StartDate, EndDate].
type Delegation struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	DelegatorID uuid.UUID      `gorm:"type:uuid;not null;index" json:"delegator_id"`
	DelegateID  uuid.UUID      `gorm:"type:uuid;not null" json:"delegate_id"`
	StartDate   time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time      `gorm:"type:date;not null" json:"end_date"`
	Reason      string         `gorm:"type:text" json:"reason"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Delegation) TableName() string {
	return "approval_delegations"
}

// Covers reports whether the delegation window contains the given instant.
func (d Delegation) Covers(at time.Time) bool {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(d.StartDate) && !day.After(d.EndDate)
}

// LevelSnapshot is the immutable copy of a workflow level stamped onto a leave
// request at submission time. Later config edits never touch in-flight requests.
type LevelSnapshot struct {
	Level              int
	ApproverRole       string
	Required           bool
	EscalateAfterHours int
}
