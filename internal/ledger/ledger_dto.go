package ledger

type CreateAccrualConfigRequest struct {
	LeaveTypeID            string  `json:"leave_type_id" binding:"required,uuid"`
	Frequency              string  `json:"frequency" binding:"required,oneof=MONTHLY YEARLY"`
	DaysPerPeriod          float64 `json:"days_per_period" binding:"required,gt=0"`
	MaxBalance             float64 `json:"max_balance" binding:"min=0"`
	CarryoverLimit         float64 `json:"carryover_limit" binding:"min=0"`
	CarryoverExpiryMonths  int     `json:"carryover_expiry_months" binding:"min=0"`
	PauseDuringUnpaidLeave bool    `json:"pause_during_unpaid_leave"`
	PauseDuringSuspension  bool    `json:"pause_during_suspension"`
	Active                 *bool   `json:"active"`
}

type UpdateAccrualConfigRequest struct {
	Frequency              string  `json:"frequency" binding:"required,oneof=MONTHLY YEARLY"`
	DaysPerPeriod          float64 `json:"days_per_period" binding:"required,gt=0"`
	MaxBalance             float64 `json:"max_balance" binding:"min=0"`
	CarryoverLimit         float64 `json:"carryover_limit" binding:"min=0"`
	CarryoverExpiryMonths  int     `json:"carryover_expiry_months" binding:"min=0"`
	PauseDuringUnpaidLeave bool    `json:"pause_during_unpaid_leave"`
	PauseDuringSuspension  bool    `json:"pause_during_suspension"`
	Active                 *bool   `json:"active"`
}

type SetEntitlementRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string  `json:"leave_type_id" binding:"required,uuid"`
	Year        int     `json:"year" binding:"required,min=2000"`
	Days        float64 `json:"days" binding:"min=0"`
}

type AdjustmentRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string  `json:"leave_type_id" binding:"required,uuid"`
	Year        int     `json:"year" binding:"required,min=2000"`
	Days        float64 `json:"days" binding:"required"`
	Reason      string  `json:"reason" binding:"required,max=255"`
}

type AccrualConfigResponse struct {
	ID                     string  `json:"id"`
	LeaveTypeID            string  `json:"leave_type_id"`
	Frequency              string  `json:"frequency"`
	DaysPerPeriod          float64 `json:"days_per_period"`
	MaxBalance             float64 `json:"max_balance"`
	CarryoverLimit         float64 `json:"carryover_limit"`
	CarryoverExpiryMonths  int     `json:"carryover_expiry_months"`
	PauseDuringUnpaidLeave bool    `json:"pause_during_unpaid_leave"`
	PauseDuringSuspension  bool    `json:"pause_during_suspension"`
	Active                 bool    `json:"active"`
}

type BalanceResponse struct {
	EmployeeID      string  `json:"employee_id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	Year            int     `json:"year"`
	EntitledDays    float64 `json:"entitled_days"`
	AccruedDays     float64 `json:"accrued_days"`
	UsedDays        float64 `json:"used_days"`
	CarriedOverDays float64 `json:"carried_over_days"`
	AdjustmentDays  float64 `json:"adjustment_days"`
	CarryoverExpiry string  `json:"carryover_expiry,omitempty"`
	Remaining       float64 `json:"remaining"`
	Version         int64   `json:"version"`
}

// RunSummary reports what a scheduled accrual or carryover pass did. Skipped
// counts items already posted for the period.
type RunSummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
