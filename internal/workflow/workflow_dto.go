package workflow

type LevelRequest struct {
	Level              int    `json:"level" binding:"required,min=1"`
	ApproverRole       string `json:"approver_role" binding:"required,max=50"`
	Required           *bool  `json:"required"`
	EscalateAfterHours int    `json:"escalate_after_hours" binding:"min=0"`
}

type CreateConfigRequest struct {
	Name        string         `json:"name" binding:"required,max=100"`
	LeaveTypeID string         `json:"leave_type_id"`
	Active      *bool          `json:"active"`
	Levels      []LevelRequest `json:"levels" binding:"required,dive"`
}

type UpdateConfigRequest struct {
	Name   string         `json:"name" binding:"required,max=100"`
	Active *bool          `json:"active"`
	Levels []LevelRequest `json:"levels" binding:"required,dive"`
}

type CreateDelegationRequest struct {
	DelegatorID string `json:"delegator_id" binding:"required,uuid"`
	DelegateID  string `json:"delegate_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"max=255"`
}

type LevelResponse struct {
	Level              int    `json:"level"`
	ApproverRole       string `json:"approver_role"`
	Required           bool   `json:"required"`
	EscalateAfterHours int    `json:"escalate_after_hours"`
}

type ConfigResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	LeaveTypeID string          `json:"leave_type_id,omitempty"`
	Active      bool            `json:"active"`
	Levels      []LevelResponse `json:"levels"`
}

type DelegationResponse struct {
	ID          string `json:"id"`
	DelegatorID string `json:"delegator_id"`
	DelegateID  string `json:"delegate_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason,omitempty"`
}
