package request

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	// StepStatusWaiting means an earlier level has not approved yet.
	StepStatusWaiting  = "WAITING"
	StepStatusPending  = "PENDING"
	StepStatusApproved = "APPROVED"
	StepStatusRejected = "REJECTED"
	// StepStatusEscalated marks a step that sat beyond its escalation
	// window. The step stays decidable; only the notification fires.
	StepStatusEscalated = "ESCALATED"
	// StepStatusSkipped marks steps short-circuited by a reject, a
	// cancellation or an HR override.
	StepStatusSkipped = "SKIPPED"
)

// stepOpen reports whether a step could still be acted on or reached.
func stepOpen(status string) bool {
	return status == StepStatusWaiting || status == StepStatusPending || status == StepStatusEscalated
}

// LeaveRequest is the aggregate root of the approval lifecycle. Status and
// decision fields only change through version-guarded updates.
type LeaveRequest struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	RequestNo       string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_request_no,where:deleted_at IS NULL" json:"request_no"`
	EmployeeID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	LeaveTypeID     uuid.UUID      `gorm:"type:uuid;not null" json:"leave_type_id"`
	StartDate       time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time      `gorm:"type:date;not null" json:"end_date"`
	TotalDays       float64        `gorm:"not null" json:"total_days"`
	Reason          string         `gorm:"type:text" json:"reason"`
	AttachmentURL   string         `gorm:"type:varchar(500)" json:"attachment_url,omitempty"`
	Status          string         `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	CurrentLevel    int            `gorm:"not null;default:1" json:"current_level"`
	DecidedBy       *uuid.UUID     `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt       *time.Time     `json:"decided_at,omitempty"`
	DecisionComment string         `gorm:"type:text" json:"decision_comment,omitempty"`
	Override        bool           `gorm:"not null;default:false" json:"override"`
	Version         int64          `gorm:"not null;default:1" json:"version"`
	Steps           []ApprovalStep `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"steps"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// CurrentStep returns the step awaiting a decision, nil when the request is
// terminal. An escalated step is still the current one; escalation notifies,
// it does not decide.
func (r *LeaveRequest) CurrentStep() *ApprovalStep {
	for i := range r.Steps {
		if r.Steps[i].Status == StepStatusPending || r.Steps[i].Status == StepStatusEscalated {
			return &r.Steps[i]
		}
	}
	return nil
}

// ApprovalStep is one level of the chain stamped onto the request at
// submission. ApproverID is resolved up front for manager levels; role levels
// stay open to any holder of the role.
type ApprovalStep struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"request_id"`
	Level              int        `gorm:"not null" json:"level"`
	ApproverRole       string     `gorm:"type:varchar(50);not null" json:"approver_role"`
	ApproverID         *uuid.UUID `gorm:"type:uuid;index" json:"approver_id,omitempty"`
	ActedBy            *uuid.UUID `gorm:"type:uuid" json:"acted_by,omitempty"`
	OnBehalfOf         *uuid.UUID `gorm:"type:uuid" json:"on_behalf_of,omitempty"`
	Required           bool       `gorm:"not null;default:true" json:"required"`
	EscalateAfterHours int        `gorm:"not null;default:0" json:"escalate_after_hours"`
	Status             string     `gorm:"type:varchar(10);not null;default:'WAITING'" json:"status"`
	Comment            string     `gorm:"type:text" json:"comment,omitempty"`
	ActionableAt       *time.Time `json:"actionable_at,omitempty"`
	DecidedAt          *time.Time `json:"decided_at,omitempty"`
	EscalatedAt        *time.Time `json:"escalated_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (ApprovalStep) TableName() string {
	return "approval_steps"
}
