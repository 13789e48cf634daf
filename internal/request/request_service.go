package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-leave-engine/internal/audit"
	"go-leave-engine/internal/calendar"
	"go-leave-engine/internal/employee"
	"go-leave-engine/internal/events"
	"go-leave-engine/internal/leavetype"
	"go-leave-engine/internal/ledger"
	ledgererrors "go-leave-engine/internal/ledger/errors"
	"go-leave-engine/internal/messaging/kafka"
	requesterrors "go-leave-engine/internal/request/errors"
	"go-leave-engine/internal/shared/counter"
	"go-leave-engine/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	counterTypeLeaveRequest = "leave_request"
	entityTypeLeaveRequest  = "leave_request"
)

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, userID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveRequestResponse, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]LeaveRequestResponse, int64, error)
	ListMine(ctx context.Context, companyID, userID string, filter ListFilter) ([]LeaveRequestResponse, int64, error)
	ListPendingApprovals(ctx context.Context, companyID, userID string) ([]LeaveRequestResponse, error)

	// Update edits a pending request before any approver has acted and
	// restarts the approval chain with a fresh workflow snapshot.
	Update(ctx context.Context, companyID, userID, id string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)

	// Cancel withdraws a pending request. Nothing was debited yet, so there
	// is no ledger effect; decided requests cannot be cancelled.
	Cancel(ctx context.Context, companyID, userID, id string) (LeaveRequestResponse, error)

	// Decide records the current step's approve or reject. A required
	// step's reject is terminal and skips every remaining step; approving
	// the last required step debits the balance ledger.
	Decide(ctx context.Context, companyID, userID, id string, req DecideRequest) (LeaveRequestResponse, error)

	// Override lets HR force a terminal decision on a pending request,
	// bypassing the remaining chain. The comment is mandatory.
	Override(ctx context.Context, companyID, userID, id string, req OverrideRequest) (LeaveRequestResponse, error)

	// RunEscalations flags pending steps that sat beyond their escalation
	// window and queues a notification for each.
	RunEscalations(ctx context.Context, companyID string, now time.Time) (EscalationSummary, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	employees    employee.Service
	leaveTypes   leavetype.Service
	calendars    calendar.Service
	workflows    workflow.Service
	ledgers      ledger.Service
	auditService audit.Service
	counters     counter.Repository
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Service,
	leaveTypes leavetype.Service,
	calendars calendar.Service,
	workflows workflow.Service,
	ledgers ledger.Service,
	auditService audit.Service,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employees:    employees,
		leaveTypes:   leaveTypes,
		calendars:    calendars,
		workflows:    workflows,
		ledgers:      ledgers,
		auditService: auditService,
		counters:     counters,
		outbox:       outbox,
		logger:       l,
	}
}

type validatedPeriod struct {
	start     time.Time
	end       time.Time
	totalDays float64
}

// validatePeriod runs every date-related rule shared by Create and Update.
func (s *service) validatePeriod(
	ctx context.Context,
	companyID string,
	emp employee.Employee,
	lt leavetype.LeaveType,
	startStr, endStr, attachmentURL string,
	excludeRequestID string,
) (validatedPeriod, error) {
	var vp validatedPeriod

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return vp, requesterrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return vp, requesterrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return vp, requesterrors.ErrInvalidDateRange
	}

	today := truncateToDay(time.Now())
	if start.Before(today) {
		if !lt.AllowPostLeaveSubmission {
			return vp, requesterrors.ErrPastStartDate
		}
		if start.Before(today.AddDate(0, 0, -lt.GracePeriodDays)) {
			return vp, requesterrors.ErrPastStartDate
		}
	}

	if lt.MinTenureMonths > 0 && emp.TenureMonths(start) < lt.MinTenureMonths {
		return vp, requesterrors.ErrTenureNotMet
	}
	if lt.RequiresAttachment && attachmentURL == "" {
		return vp, requesterrors.ErrAttachmentRequired
	}

	blocked, err := s.calendars.FindBlockedPeriod(ctx, companyID, start, end)
	if err != nil {
		return vp, err
	}
	if blocked != nil {
		return vp, requesterrors.ErrBlockedPeriod
	}

	totalDays, err := s.calendars.WorkingDays(ctx, companyID, start, end)
	if err != nil {
		return vp, err
	}
	if totalDays <= 0 {
		return vp, requesterrors.ErrNoWorkingDays
	}
	if lt.MaxDurationDays > 0 && totalDays > float64(lt.MaxDurationDays) {
		return vp, requesterrors.ErrMaxDurationExceeded
	}

	overlap, err := s.repo.HasOverlapping(ctx, companyID, emp.ID.String(), start, end, excludeRequestID)
	if err != nil {
		return vp, err
	}
	if overlap {
		return vp, requesterrors.ErrOverlap
	}

	if lt.DeductsFromBalance {
		ok, err := s.ledgers.HasSufficient(ctx, companyID, emp.ID, lt.ID, start.Year(), totalDays, time.Now())
		if err != nil {
			return vp, err
		}
		if !ok {
			return vp, ledgererrors.ErrInsufficientBalance
		}
	}

	vp.start = start
	vp.end = end
	vp.totalDays = totalDays
	return vp, nil
}

func (s *service) buildSteps(ctx context.Context, companyID string, requestID uuid.UUID, emp employee.Employee, leaveTypeID string, now time.Time) ([]ApprovalStep, error) {
	snap, err := s.workflows.Snapshot(ctx, companyID, leaveTypeID)
	if err != nil {
		return nil, err
	}

	steps := make([]ApprovalStep, len(snap))
	for i, lv := range snap {
		step := ApprovalStep{
			ID:                 uuid.New(),
			RequestID:          requestID,
			Level:              lv.Level,
			ApproverRole:       lv.ApproverRole,
			Required:           lv.Required,
			EscalateAfterHours: lv.EscalateAfterHours,
			Status:             StepStatusWaiting,
		}
		// Manager levels pin the employee's manager. Role levels stay open
		// to any holder of the role.
		if lv.ApproverRole == workflow.ApproverRoleManager && emp.ManagerID != nil {
			managerID := *emp.ManagerID
			step.ApproverID = &managerID
		}
		if i == 0 {
			actionable := now
			step.Status = StepStatusPending
			step.ActionableAt = &actionable
		}
		steps[i] = step
	}
	return steps, nil
}

func (s *service) Create(ctx context.Context, companyID, userID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	emp, err := s.employees.GetByUserID(ctx, companyID, userID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	lt, err := s.leaveTypes.GetByID(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	vp, err := s.validatePeriod(ctx, companyID, emp, lt, req.StartDate, req.EndDate, req.AttachmentURL, "")
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	seq, err := s.counters.GetNextValue(ctx, companyID, counterTypeLeaveRequest)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	now := time.Now()
	lr := &LeaveRequest{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		RequestNo:     fmt.Sprintf("LR-%d-%05d", now.Year(), seq),
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     vp.start,
		EndDate:       vp.end,
		TotalDays:     vp.totalDays,
		Reason:        req.Reason,
		AttachmentURL: req.AttachmentURL,
		Status:        StatusPending,
		CurrentLevel:  1,
		Version:       1,
	}
	lr.Steps, err = s.buildSteps(ctx, companyID, lr.ID, emp, req.LeaveTypeID, now)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := s.repo.Create(ctx, lr); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.recordAudit(ctx, companyUUID, userID, emp.Role, audit.ActionRequestCreated, lr.ID.String(), map[string]any{
		"request_no": lr.RequestNo,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
		"total_days": vp.totalDays,
	})

	s.logger.Info("leave request created",
		zap.String("request_id", lr.ID.String()),
		zap.String("request_no", lr.RequestNo),
		zap.String("employee_id", emp.ID.String()),
	)
	return mapToResponse(*lr), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveRequestResponse, error) {
	lr, err := s.findRequest(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*lr), nil
}

func (s *service) List(ctx context.Context, companyID string, filter ListFilter) ([]LeaveRequestResponse, int64, error) {
	reqs, total, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToResponses(reqs), total, nil
}

func (s *service) ListMine(ctx context.Context, companyID, userID string, filter ListFilter) ([]LeaveRequestResponse, int64, error) {
	emp, err := s.employees.GetByUserID(ctx, companyID, userID)
	if err != nil {
		return nil, 0, err
	}
	filter.EmployeeID = emp.ID.String()
	reqs, total, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToResponses(reqs), total, nil
}

func (s *service) ListPendingApprovals(ctx context.Context, companyID, userID string) ([]LeaveRequestResponse, error) {
	emp, err := s.employees.GetByUserID(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.repo.ListPendingForApprover(ctx, companyID, emp.ID.String())
	if err != nil {
		return nil, err
	}
	return mapToResponses(reqs), nil
}

func (s *service) Update(ctx context.Context, companyID, userID, id string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error) {
	emp, err := s.employees.GetByUserID(ctx, companyID, userID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	lr, err := s.findRequest(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if lr.EmployeeID != emp.ID {
		return LeaveRequestResponse{}, requesterrors.ErrNotOwner
	}
	if lr.Status != StatusPending {
		return LeaveRequestResponse{}, requesterrors.ErrNotPending
	}
	for _, step := range lr.Steps {
		if step.Status == StepStatusApproved || step.Status == StepStatusRejected {
			return LeaveRequestResponse{}, requesterrors.ErrChainStarted
		}
	}

	lt, err := s.leaveTypes.GetByID(ctx, companyID, lr.LeaveTypeID.String())
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	vp, err := s.validatePeriod(ctx, companyID, emp, lt, req.StartDate, req.EndDate, req.AttachmentURL, lr.ID.String())
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	now := time.Now()
	steps, err := s.buildSteps(ctx, companyID, lr.ID, emp, lr.LeaveTypeID.String(), now)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	lr.StartDate = vp.start
	lr.EndDate = vp.end
	lr.TotalDays = vp.totalDays
	lr.Reason = req.Reason
	lr.AttachmentURL = req.AttachmentURL
	lr.CurrentLevel = 1

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		ok, err := qtx.UpdateVersioned(ctx, lr)
		if err != nil {
			return err
		}
		if !ok {
			return requesterrors.ErrConcurrentDecision
		}
		return qtx.ReplaceSteps(ctx, lr.ID.String(), steps)
	})
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	lr.Steps = steps

	s.recordAudit(ctx, lr.CompanyID, userID, emp.Role, audit.ActionRequestUpdated, lr.ID.String(), map[string]any{
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
		"total_days": vp.totalDays,
	})
	return mapToResponse(*lr), nil
}

func (s *service) Cancel(ctx context.Context, companyID, userID, id string) (LeaveRequestResponse, error) {
	emp, err := s.employees.GetByUserID(ctx, companyID, userID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	lr, err := s.findRequest(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if lr.EmployeeID != emp.ID {
		return LeaveRequestResponse{}, requesterrors.ErrNotOwner
	}

	if lr.Status != StatusPending {
		return LeaveRequestResponse{}, requesterrors.ErrNotPending
	}

	now := time.Now()
	lr.Status = StatusCancelled
	lr.DecidedAt = &now
	ok, err := s.repo.UpdateVersioned(ctx, lr)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !ok {
		return LeaveRequestResponse{}, requesterrors.ErrConcurrentDecision
	}

	for i := range lr.Steps {
		step := &lr.Steps[i]
		if stepOpen(step.Status) {
			step.Status = StepStatusSkipped
			if err := s.repo.UpdateStep(ctx, step); err != nil {
				s.logger.Warn("skip step failed", zap.String("step_id", step.ID.String()), zap.Error(err))
			}
		}
	}

	s.recordAudit(ctx, lr.CompanyID, userID, emp.Role, audit.ActionRequestCancelled, lr.ID.String(), map[string]any{
		"request_no": lr.RequestNo,
	})
	return mapToResponse(*lr), nil
}

func (s *service) Decide(ctx context.Context, companyID, userID, id string, req DecideRequest) (LeaveRequestResponse, error) {
	if req.Action != ActionApprove && req.Action != ActionReject {
		return LeaveRequestResponse{}, requesterrors.ErrInvalidAction
	}

	actor, err := s.employees.GetByUserID(ctx, companyID, userID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	lr, err := s.findRequest(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if lr.Status != StatusPending {
		return LeaveRequestResponse{}, requesterrors.ErrNotPending
	}

	step := lr.CurrentStep()
	if step == nil {
		return LeaveRequestResponse{}, requesterrors.ErrNotPending
	}

	now := time.Now()
	onBehalfOf, err := s.authorizeStep(ctx, companyID, actor, step, now)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	step.Status = StepStatusApproved
	if req.Action == ActionReject {
		step.Status = StepStatusRejected
	}
	actedBy := actor.ID
	step.ActedBy = &actedBy
	step.OnBehalfOf = onBehalfOf
	step.Comment = req.Comment
	step.DecidedAt = &now

	if req.Action == ActionReject {
		return s.finalizeReject(ctx, lr, step, actor, userID, req.Comment, now)
	}
	return s.finalizeApproveStep(ctx, companyID, lr, step, actor, userID, req.Comment, now)
}

// decideAuditDetails records who really acted on a step, including the
// delegator when the decision came through a delegation.
func decideAuditDetails(step *ApprovalStep, actor employee.Employee, extra map[string]any) map[string]any {
	details := map[string]any{
		"level":    step.Level,
		"acted_by": actor.ID.String(),
	}
	if step.OnBehalfOf != nil {
		details["on_behalf_of"] = step.OnBehalfOf.String()
	}
	for k, v := range extra {
		details[k] = v
	}
	return details
}

// authorizeStep decides whether the actor may act on the step, returning the
// delegator's employee ID when the actor acts through a delegation.
func (s *service) authorizeStep(ctx context.Context, companyID string, actor employee.Employee, step *ApprovalStep, now time.Time) (*uuid.UUID, error) {
	if step.ApproverID != nil {
		if actor.ID == *step.ApproverID {
			return nil, nil
		}
		delegate, err := s.workflows.ResolveDelegate(ctx, companyID, *step.ApproverID, now)
		if err != nil {
			return nil, err
		}
		if delegate != nil && *delegate == actor.ID {
			delegator := *step.ApproverID
			return &delegator, nil
		}
		return nil, requesterrors.ErrNotApprover
	}

	// Role-based step: any holder of the role may act. A manager level
	// without a pinned approver falls back to the role as well.
	if actor.Role == step.ApproverRole {
		return nil, nil
	}
	return nil, requesterrors.ErrNotApprover
}

func (s *service) finalizeReject(ctx context.Context, lr *LeaveRequest, step *ApprovalStep, actor employee.Employee, userID, comment string, now time.Time) (LeaveRequestResponse, error) {
	// A required step's rejection short-circuits the request. An optional
	// step's rejection only records the step and hands the chain to the next
	// level; the request rejects only when nothing decidable remains.
	var next *ApprovalStep
	if !step.Required {
		for i := range lr.Steps {
			cand := &lr.Steps[i]
			if cand.Level > step.Level && cand.Status == StepStatusWaiting {
				next = cand
				break
			}
		}
	}

	if next != nil {
		next.Status = StepStatusPending
		actionable := now
		next.ActionableAt = &actionable
		lr.CurrentLevel = next.Level
	} else {
		lr.Status = StatusRejected
		decidedBy := actor.ID
		lr.DecidedBy = &decidedBy
		lr.DecidedAt = &now
		lr.DecisionComment = comment
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.UpdateStep(ctx, step); err != nil {
			return err
		}
		if next != nil {
			if err := qtx.UpdateStep(ctx, next); err != nil {
				return err
			}
		} else {
			for i := range lr.Steps {
				rest := &lr.Steps[i]
				if rest.ID != step.ID && stepOpen(rest.Status) {
					rest.Status = StepStatusSkipped
					if err := qtx.UpdateStep(ctx, rest); err != nil {
						return err
					}
				}
			}
		}
		ok, err := qtx.UpdateVersioned(ctx, lr)
		if err != nil {
			return err
		}
		if !ok {
			return requesterrors.ErrConcurrentDecision
		}
		if next == nil {
			return s.queueDecidedEvent(ctx, tx, lr, actor.ID.String(), comment)
		}
		return nil
	})
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	s.recordAudit(ctx, lr.CompanyID, userID, actor.Role, audit.ActionStepRejected, lr.ID.String(), decideAuditDetails(step, actor, map[string]any{
		"required": step.Required,
		"comment":  comment,
	}))
	return mapToResponse(*lr), nil
}

func (s *service) finalizeApproveStep(ctx context.Context, companyID string, lr *LeaveRequest, step *ApprovalStep, actor employee.Employee, userID, comment string, now time.Time) (LeaveRequestResponse, error) {
	// Finality hangs on required levels only: approving the last required
	// step decides the request and trailing optional steps are skipped
	// rather than held open.
	var next *ApprovalStep
	requiredLeft := false
	for i := range lr.Steps {
		cand := &lr.Steps[i]
		if cand.Level > step.Level && cand.Status == StepStatusWaiting {
			if next == nil {
				next = cand
			}
			if cand.Required {
				requiredLeft = true
			}
		}
	}

	final := !requiredLeft
	if final {
		// Balance is re-checked and consumed at the moment of the final
		// approval, not at submission.
		lt, err := s.leaveTypes.GetByID(ctx, companyID, lr.LeaveTypeID.String())
		if err != nil {
			return LeaveRequestResponse{}, err
		}
		if lt.DeductsFromBalance {
			if err := s.ledgers.Debit(ctx, lr.CompanyID, lr.EmployeeID, lr.LeaveTypeID, lr.StartDate.Year(), lr.TotalDays, now, userID); err != nil {
				return LeaveRequestResponse{}, err
			}
		}

		lr.Status = StatusApproved
		decidedBy := actor.ID
		lr.DecidedBy = &decidedBy
		lr.DecidedAt = &now
		lr.DecisionComment = comment
	} else {
		next.Status = StepStatusPending
		actionable := now
		next.ActionableAt = &actionable
		lr.CurrentLevel = next.Level
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.UpdateStep(ctx, step); err != nil {
			return err
		}
		if final {
			for i := range lr.Steps {
				rest := &lr.Steps[i]
				if rest.ID != step.ID && stepOpen(rest.Status) {
					rest.Status = StepStatusSkipped
					if err := qtx.UpdateStep(ctx, rest); err != nil {
						return err
					}
				}
			}
		} else {
			if err := qtx.UpdateStep(ctx, next); err != nil {
				return err
			}
		}
		ok, err := qtx.UpdateVersioned(ctx, lr)
		if err != nil {
			return err
		}
		if !ok {
			return requesterrors.ErrConcurrentDecision
		}
		if final {
			return s.queueDecidedEvent(ctx, tx, lr, actor.ID.String(), comment)
		}
		return nil
	})
	if err != nil {
		if final {
			// The debit landed but the decision did not; give the days back.
			lt, ltErr := s.leaveTypes.GetByID(ctx, companyID, lr.LeaveTypeID.String())
			if ltErr == nil && lt.DeductsFromBalance {
				if refundErr := s.ledgers.Refund(ctx, lr.CompanyID, lr.EmployeeID, lr.LeaveTypeID, lr.StartDate.Year(), lr.TotalDays, userID); refundErr != nil {
					s.logger.Error("refund after failed approval commit",
						zap.String("request_id", lr.ID.String()),
						zap.Error(refundErr),
					)
				}
			}
		}
		return LeaveRequestResponse{}, err
	}

	s.recordAudit(ctx, lr.CompanyID, userID, actor.Role, audit.ActionStepApproved, lr.ID.String(), decideAuditDetails(step, actor, map[string]any{
		"final": final,
	}))
	return mapToResponse(*lr), nil
}

func (s *service) Override(ctx context.Context, companyID, userID, id string, req OverrideRequest) (LeaveRequestResponse, error) {
	if req.Comment == "" {
		return LeaveRequestResponse{}, requesterrors.ErrCommentRequired
	}

	actor, err := s.employees.GetByUserID(ctx, companyID, userID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if actor.Role != employee.RoleHR {
		return LeaveRequestResponse{}, requesterrors.ErrNotApprover
	}

	lr, err := s.findRequest(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if lr.Status != StatusPending {
		return LeaveRequestResponse{}, requesterrors.ErrNotPending
	}

	now := time.Now()
	if req.Action == ActionApprove {
		lt, err := s.leaveTypes.GetByID(ctx, companyID, lr.LeaveTypeID.String())
		if err != nil {
			return LeaveRequestResponse{}, err
		}
		if lt.DeductsFromBalance {
			if err := s.ledgers.Debit(ctx, lr.CompanyID, lr.EmployeeID, lr.LeaveTypeID, lr.StartDate.Year(), lr.TotalDays, now, userID); err != nil {
				return LeaveRequestResponse{}, err
			}
		}
		lr.Status = StatusApproved
	} else {
		lr.Status = StatusRejected
	}
	decidedBy := actor.ID
	lr.DecidedBy = &decidedBy
	lr.DecidedAt = &now
	lr.DecisionComment = req.Comment
	lr.Override = true

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		for i := range lr.Steps {
			step := &lr.Steps[i]
			if stepOpen(step.Status) {
				step.Status = StepStatusSkipped
				if err := qtx.UpdateStep(ctx, step); err != nil {
					return err
				}
			}
		}
		ok, err := qtx.UpdateVersioned(ctx, lr)
		if err != nil {
			return err
		}
		if !ok {
			return requesterrors.ErrConcurrentDecision
		}
		return s.queueDecidedEvent(ctx, tx, lr, actor.ID.String(), req.Comment)
	})
	if err != nil {
		if lr.Status == StatusApproved {
			lt, ltErr := s.leaveTypes.GetByID(ctx, companyID, lr.LeaveTypeID.String())
			if ltErr == nil && lt.DeductsFromBalance {
				_ = s.ledgers.Refund(ctx, lr.CompanyID, lr.EmployeeID, lr.LeaveTypeID, lr.StartDate.Year(), lr.TotalDays, userID)
			}
		}
		return LeaveRequestResponse{}, err
	}

	s.recordAudit(ctx, lr.CompanyID, userID, actor.Role, audit.ActionHROverride, lr.ID.String(), map[string]any{
		"action":  req.Action,
		"comment": req.Comment,
	})
	return mapToResponse(*lr), nil
}

func (s *service) RunEscalations(ctx context.Context, companyID string, now time.Time) (EscalationSummary, error) {
	var summary EscalationSummary

	reqs, err := s.repo.FindEscalatable(ctx, companyID, now)
	if err != nil {
		return summary, err
	}

	for i := range reqs {
		lr := &reqs[i]
		step := lr.CurrentStep()
		if step == nil || step.EscalateAfterHours <= 0 || step.EscalatedAt != nil || step.ActionableAt == nil {
			continue
		}
		deadline := step.ActionableAt.Add(time.Duration(step.EscalateAfterHours) * time.Hour)
		if now.Before(deadline) {
			continue
		}

		escalatedAt := now
		step.Status = StepStatusEscalated
		step.EscalatedAt = &escalatedAt

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.repo.WithTx(tx).UpdateStep(ctx, step); err != nil {
				return err
			}
			return s.queueEscalatedEvent(ctx, tx, lr, step)
		})
		if err != nil {
			// One stuck step never stops the sweep.
			s.logger.Warn("escalation item failed",
				zap.String("request_id", lr.ID.String()),
				zap.Int("level", step.Level),
				zap.Error(err),
			)
			summary.Failed++
			continue
		}

		s.recordAudit(ctx, lr.CompanyID, "scheduler", "", audit.ActionStepEscalated, lr.ID.String(), map[string]any{
			"level":         step.Level,
			"approver_role": step.ApproverRole,
		})
		summary.Escalated++
	}

	return summary, nil
}

func (s *service) queueDecidedEvent(ctx context.Context, tx *gorm.DB, lr *LeaveRequest, decidedBy, comment string) error {
	payload, err := json.Marshal(events.LeaveDecidedEvent{
		RequestID:   lr.ID.String(),
		RequestNo:   lr.RequestNo,
		CompanyID:   lr.CompanyID.String(),
		EmployeeID:  lr.EmployeeID.String(),
		LeaveTypeID: lr.LeaveTypeID.String(),
		Status:      lr.Status,
		DecidedBy:   decidedBy,
		Comment:     comment,
		StartDate:   lr.StartDate.Format("2006-01-02"),
		EndDate:     lr.EndDate.Format("2006-01-02"),
		TotalDays:   lr.TotalDays,
		Override:    lr.Override,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, &kafka.OutboxEvent{
		ID:            uuid.New(),
		CompanyID:     lr.CompanyID,
		AggregateType: events.AggregateLeaveRequest,
		AggregateID:   lr.ID.String(),
		EventType:     events.EventTypeLeaveDecided,
		Topic:         events.TopicLeaveDecided,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) queueEscalatedEvent(ctx context.Context, tx *gorm.DB, lr *LeaveRequest, step *ApprovalStep) error {
	pendingSince := ""
	if step.ActionableAt != nil {
		pendingSince = step.ActionableAt.UTC().Format(time.RFC3339)
	}
	payload, err := json.Marshal(events.StepEscalatedEvent{
		RequestID:    lr.ID.String(),
		RequestNo:    lr.RequestNo,
		CompanyID:    lr.CompanyID.String(),
		EmployeeID:   lr.EmployeeID.String(),
		Level:        step.Level,
		ApproverRole: step.ApproverRole,
		PendingSince: pendingSince,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, &kafka.OutboxEvent{
		ID:            uuid.New(),
		CompanyID:     lr.CompanyID,
		AggregateType: events.AggregateLeaveRequest,
		AggregateID:   lr.ID.String(),
		EventType:     events.EventTypeStepEscalated,
		Topic:         events.TopicStepEscalated,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) findRequest(ctx context.Context, companyID, id string) (*LeaveRequest, error) {
	lr, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requesterrors.ErrRequestNotFound
		}
		return nil, err
	}
	return lr, nil
}

func (s *service) recordAudit(ctx context.Context, companyID uuid.UUID, actorID, actorRole, action, entityID string, details any) {
	if s.auditService == nil {
		return
	}
	_ = s.auditService.Record(ctx, companyID, actorID, actorRole, action, entityTypeLeaveRequest, entityID, details)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:              lr.ID.String(),
		RequestNo:       lr.RequestNo,
		EmployeeID:      lr.EmployeeID.String(),
		LeaveTypeID:     lr.LeaveTypeID.String(),
		StartDate:       lr.StartDate.Format("2006-01-02"),
		EndDate:         lr.EndDate.Format("2006-01-02"),
		TotalDays:       lr.TotalDays,
		Reason:          lr.Reason,
		AttachmentURL:   lr.AttachmentURL,
		Status:          lr.Status,
		CurrentLevel:    lr.CurrentLevel,
		DecisionComment: lr.DecisionComment,
		Override:        lr.Override,
		Version:         lr.Version,
		CreatedAt:       lr.CreatedAt.UTC().Format(time.RFC3339),
	}
	if lr.DecidedBy != nil {
		resp.DecidedBy = lr.DecidedBy.String()
	}
	if lr.DecidedAt != nil {
		resp.DecidedAt = lr.DecidedAt.UTC().Format(time.RFC3339)
	}
	for _, step := range lr.Steps {
		sr := StepResponse{
			Level:              step.Level,
			ApproverRole:       step.ApproverRole,
			Required:           step.Required,
			EscalateAfterHours: step.EscalateAfterHours,
			Status:             step.Status,
			Comment:            step.Comment,
		}
		if step.ApproverID != nil {
			sr.ApproverID = step.ApproverID.String()
		}
		if step.ActedBy != nil {
			sr.ActedBy = step.ActedBy.String()
		}
		if step.OnBehalfOf != nil {
			sr.OnBehalfOf = step.OnBehalfOf.String()
		}
		if step.ActionableAt != nil {
			sr.ActionableAt = step.ActionableAt.UTC().Format(time.RFC3339)
		}
		if step.DecidedAt != nil {
			sr.DecidedAt = step.DecidedAt.UTC().Format(time.RFC3339)
		}
		if step.EscalatedAt != nil {
			sr.EscalatedAt = step.EscalatedAt.UTC().Format(time.RFC3339)
		}
		resp.Steps = append(resp.Steps, sr)
	}
	return resp
}

func mapToResponses(reqs []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(reqs))
	for i, lr := range reqs {
		resp[i] = mapToResponse(lr)
	}
	return resp
}
