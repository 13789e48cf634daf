package request

import "time"

type CreateLeaveRequestRequest struct {
	LeaveTypeID   string `json:"leave_type_id" binding:"required,uuid"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Reason        string `json:"reason" binding:"max=1000"`
	AttachmentURL string `json:"attachment_url" binding:"omitempty,url"`
}

type UpdateLeaveRequestRequest struct {
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Reason        string `json:"reason" binding:"max=1000"`
	AttachmentURL string `json:"attachment_url" binding:"omitempty,url"`
}

const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

type DecideRequest struct {
	Action  string `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Comment string `json:"comment" binding:"max=1000"`
}

type OverrideRequest struct {
	Action  string `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Comment string `json:"comment" binding:"required,max=1000"`
}

// ListFilter narrows request listings. Zero values mean "no filter".
type ListFilter struct {
	Status     string
	EmployeeID string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

type StepResponse struct {
	Level              int    `json:"level"`
	ApproverRole       string `json:"approver_role"`
	ApproverID         string `json:"approver_id,omitempty"`
	ActedBy            string `json:"acted_by,omitempty"`
	OnBehalfOf         string `json:"on_behalf_of,omitempty"`
	Required           bool   `json:"required"`
	EscalateAfterHours int    `json:"escalate_after_hours,omitempty"`
	Status             string `json:"status"`
	Comment            string `json:"comment,omitempty"`
	ActionableAt       string `json:"actionable_at,omitempty"`
	DecidedAt          string `json:"decided_at,omitempty"`
	EscalatedAt        string `json:"escalated_at,omitempty"`
}

type LeaveRequestResponse struct {
	ID              string         `json:"id"`
	RequestNo       string         `json:"request_no"`
	EmployeeID      string         `json:"employee_id"`
	LeaveTypeID     string         `json:"leave_type_id"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	TotalDays       float64        `json:"total_days"`
	Reason          string         `json:"reason,omitempty"`
	AttachmentURL   string         `json:"attachment_url,omitempty"`
	Status          string         `json:"status"`
	CurrentLevel    int            `json:"current_level"`
	DecidedBy       string         `json:"decided_by,omitempty"`
	DecidedAt       string         `json:"decided_at,omitempty"`
	DecisionComment string         `json:"decision_comment,omitempty"`
	Override        bool           `json:"override,omitempty"`
	Version         int64          `json:"version"`
	Steps           []StepResponse `json:"steps,omitempty"`
	CreatedAt       string         `json:"created_at"`
}

// EscalationSummary reports one scheduler escalation pass.
type EscalationSummary struct {
	Escalated int `json:"escalated"`
	Failed    int `json:"failed"`
}
