package events

// Kafka topics for downstream notification consumers.
const (
	TopicLeaveDecided  = "leave.request.decided.v1"
	TopicStepEscalated = "leave.step.escalated.v1"
)

const (
	EventTypeLeaveDecided  = "leave.request.decided"
	EventTypeStepEscalated = "leave.step.escalated"
)

const AggregateLeaveRequest = "leave_request"

// LeaveDecidedEvent is emitted when a request reaches a terminal decision,
// whether through the normal chain, a short-circuit reject or an HR override.
type LeaveDecidedEvent struct {
	RequestID   string  `json:"request_id"`
	RequestNo   string  `json:"request_no"`
	CompanyID   string  `json:"company_id"`
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	Status      string  `json:"status"`
	DecidedBy   string  `json:"decided_by"`
	Comment     string  `json:"comment,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalDays   float64 `json:"total_days"`
	Override    bool    `json:"override,omitempty"`
}

// StepEscalatedEvent is emitted when a pending approval step sat beyond its
// escalation window and was flagged by the scheduler.
type StepEscalatedEvent struct {
	RequestID    string `json:"request_id"`
	RequestNo    string `json:"request_no"`
	CompanyID    string `json:"company_id"`
	EmployeeID   string `json:"employee_id"`
	Level        int    `json:"level"`
	ApproverRole string `json:"approver_role"`
	PendingSince string `json:"pending_since"`
}
