package leavetype

type CreateLeaveTypeRequest struct {
	Code                     string `json:"code" binding:"required,max=30"`
	Name                     string `json:"name" binding:"required,max=100"`
	Category                 string `json:"category"`
	IsPaid                   *bool  `json:"is_paid"`
	DeductsFromBalance       *bool  `json:"deducts_from_balance"`
	RequiresAttachment       bool   `json:"requires_attachment"`
	AttachmentType           string `json:"attachment_type"`
	MinTenureMonths          int    `json:"min_tenure_months" binding:"min=0"`
	MaxDurationDays          int    `json:"max_duration_days" binding:"min=0"`
	AllowPostLeaveSubmission bool   `json:"allow_post_leave_submission"`
	GracePeriodDays          *int   `json:"grace_period_days" binding:"omitempty,min=0"`
	PauseAccrual             bool   `json:"pause_accrual"`
	PayrollPayCode           string `json:"payroll_pay_code"`
}

type UpdateLeaveTypeRequest struct {
	Name                     string `json:"name" binding:"required,max=100"`
	Category                 string `json:"category"`
	IsPaid                   *bool  `json:"is_paid"`
	DeductsFromBalance       *bool  `json:"deducts_from_balance"`
	RequiresAttachment       bool   `json:"requires_attachment"`
	AttachmentType           string `json:"attachment_type"`
	MinTenureMonths          int    `json:"min_tenure_months" binding:"min=0"`
	MaxDurationDays          int    `json:"max_duration_days" binding:"min=0"`
	AllowPostLeaveSubmission bool   `json:"allow_post_leave_submission"`
	GracePeriodDays          *int   `json:"grace_period_days" binding:"omitempty,min=0"`
	PauseAccrual             bool   `json:"pause_accrual"`
	PayrollPayCode           string `json:"payroll_pay_code"`
}

type LeaveTypeResponse struct {
	ID                       string `json:"id"`
	CompanyID                string `json:"company_id"`
	Code                     string `json:"code"`
	Name                     string `json:"name"`
	Category                 string `json:"category"`
	IsPaid                   bool   `json:"is_paid"`
	DeductsFromBalance       bool   `json:"deducts_from_balance"`
	RequiresAttachment       bool   `json:"requires_attachment"`
	AttachmentType           string `json:"attachment_type,omitempty"`
	MinTenureMonths          int    `json:"min_tenure_months"`
	MaxDurationDays          int    `json:"max_duration_days"`
	AllowPostLeaveSubmission bool   `json:"allow_post_leave_submission"`
	GracePeriodDays          int    `json:"grace_period_days"`
	PauseAccrual             bool   `json:"pause_accrual"`
	PayrollPayCode           string `json:"payroll_pay_code,omitempty"`
}
