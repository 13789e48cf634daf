package scheduler

type RunAccrualRequest struct {
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
}

type RunCarryoverRequest struct {
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
	FromYear  int    `json:"from_year" binding:"required,min=2000,max=2200"`
}

type RunEscalationsRequest struct {
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
}

// CompanyResult reports one company's slice of a job run. Failed counts
// items that errored; the run itself still completes.
type CompanyResult struct {
	CompanyID string `json:"company_id"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	Error     string `json:"error,omitempty"`
}

type RunResponse struct {
	Job       string          `json:"job"`
	Companies []CompanyResult `json:"companies"`
}
