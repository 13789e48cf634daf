package domain

// Resource and action vocabulary shared by route guards and permission
// records. Routes authorize against these constants so a renamed permission
// cannot silently drift from the strings the enforcer checks.
const (
	ResourceLeaveRequest  = "leave_request"
	ResourceLeaveType     = "leave_type"
	ResourceBalance       = "balance"
	ResourceAccrualConfig = "accrual_config"
	ResourceWorkflow      = "workflow"
	ResourceDelegation    = "delegation"
	ResourceCalendar      = "calendar"
	ResourceEmployee      = "employee"
	ResourceAudit         = "audit"
	ResourcePattern       = "pattern"
	ResourceJob           = "job"
	ResourceRole          = "role"
)

const (
	ActionCreate   = "create"
	ActionRead     = "read"
	ActionReadAll  = "read_all"
	ActionUpdate   = "update"
	ActionDecide   = "decide"
	ActionOverride = "override"
	ActionManage   = "manage"
	ActionRun      = "run"
)

type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	CompanyID  string `json:"company_id" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type PermissionResponse struct {
	ID       string `json:"id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Label    string `json:"label"`
	Category string `json:"category"`
}
