package request

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, r *LeaveRequest) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveRequest, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]LeaveRequest, int64, error)
	ListPendingForApprover(ctx context.Context, companyID, approverID string) ([]LeaveRequest, error)

	// HasOverlapping reports whether the employee already has a pending or
	// approved request touching [start, end]. excludeID ignores the request
	// being edited.
	HasOverlapping(ctx context.Context, companyID, employeeID string, start, end time.Time, excludeID string) (bool, error)

	// UpdateVersioned writes lifecycle fields guarded by the version the
	// caller read. It returns false when another writer got there first.
	UpdateVersioned(ctx context.Context, r *LeaveRequest) (bool, error)

	UpdateStep(ctx context.Context, step *ApprovalStep) error
	ReplaceSteps(ctx context.Context, requestID string, steps []ApprovalStep) error

	// FindEscalatable returns pending requests whose current step has sat
	// beyond its escalation window and has not been flagged yet.
	FindEscalatable(ctx context.Context, companyID string, now time.Time) ([]LeaveRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		Where("company_id = ?", companyID).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) List(ctx context.Context, companyID string, filter ListFilter) ([]LeaveRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&LeaveRequest{}).Where("company_id = ?", companyID)

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.From != nil {
		q = q.Where("end_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("start_date <= ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var reqs []LeaveRequest
	err := q.Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reqs).Error
	return reqs, total, err
}

func (r *repository) ListPendingForApprover(ctx context.Context, companyID, approverID string) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		Where("company_id = ? AND status = ?", companyID, StatusPending).
		Where(`EXISTS (
			SELECT 1 FROM approval_steps s
			WHERE s.request_id = leave_requests.id
			  AND s.status IN ?
			  AND s.approver_id = ?
		)`, []string{StepStatusPending, StepStatusEscalated}, approverID).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) HasOverlapping(ctx context.Context, companyID, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) UpdateVersioned(ctx context.Context, req *LeaveRequest) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND version = ?", req.ID, req.Version).
		Updates(map[string]interface{}{
			"start_date":       req.StartDate,
			"end_date":         req.EndDate,
			"total_days":       req.TotalDays,
			"reason":           req.Reason,
			"attachment_url":   req.AttachmentURL,
			"status":           req.Status,
			"current_level":    req.CurrentLevel,
			"decided_by":       req.DecidedBy,
			"decided_at":       req.DecidedAt,
			"decision_comment": req.DecisionComment,
			"override":         req.Override,
			"version":          req.Version + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	req.Version++
	return true, nil
}

func (r *repository) UpdateStep(ctx context.Context, step *ApprovalStep) error {
	return r.db.WithContext(ctx).
		Model(&ApprovalStep{}).
		Where("id = ?", step.ID).
		Updates(map[string]interface{}{
			"status":        step.Status,
			"approver_id":   step.ApproverID,
			"acted_by":      step.ActedBy,
			"on_behalf_of":  step.OnBehalfOf,
			"comment":       step.Comment,
			"actionable_at": step.ActionableAt,
			"decided_at":    step.DecidedAt,
			"escalated_at":  step.EscalatedAt,
		}).Error
}

func (r *repository) ReplaceSteps(ctx context.Context, requestID string, steps []ApprovalStep) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).Delete(&ApprovalStep{}).Error; err != nil {
			return err
		}
		if len(steps) == 0 {
			return nil
		}
		return tx.Create(&steps).Error
	})
}

func (r *repository) FindEscalatable(ctx context.Context, companyID string, now time.Time) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		Where("company_id = ? AND status = ?", companyID, StatusPending).
		Where(`EXISTS (
			SELECT 1 FROM approval_steps s
			WHERE s.request_id = leave_requests.id
			  AND s.status = ?
			  AND s.escalate_after_hours > 0
			  AND s.escalated_at IS NULL
			  AND s.actionable_at IS NOT NULL
			  AND s.actionable_at + (s.escalate_after_hours * INTERVAL '1 hour') <= ?
		)`, StepStatusPending, now).
		Find(&reqs).Error
	return reqs, err
}
