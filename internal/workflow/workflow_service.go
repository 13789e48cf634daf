package workflow

import (
	"context"
	"errors"
	"sort"
	"time"

	workflowerrors "go-leave-engine/internal/workflow/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=workflow_service.go -destination=mock/workflow_service_mock.go -package=mock
type Service interface {
	CreateConfig(ctx context.Context, companyID string, req CreateConfigRequest) (ConfigResponse, error)
	GetConfigs(ctx context.Context, companyID string) ([]ConfigResponse, error)
	GetConfigByID(ctx context.Context, companyID, id string) (ConfigResponse, error)
	UpdateConfig(ctx context.Context, companyID, id string, req UpdateConfigRequest) (ConfigResponse, error)
	DeleteConfig(ctx context.Context, companyID, id string) error

	// Snapshot returns the approval chain to stamp onto a new request. It
	// prefers an active config bound to the leave type, then the active
	// company default, and finally a single required manager level so that a
	// request is never created without an approval chain.
	Snapshot(ctx context.Context, companyID, leaveTypeID string) ([]LevelSnapshot, error)

	CreateDelegation(ctx context.Context, companyID string, req CreateDelegationRequest) (DelegationResponse, error)
	GetDelegations(ctx context.Context, companyID string) ([]DelegationResponse, error)
	DeleteDelegation(ctx context.Context, companyID, id string) error

	// ResolveDelegate returns the employee a pending approval should be acted
	// on by when the delegator has an active delegation at the given instant.
	// When several windows overlap, the one with the earliest start date wins.
	ResolveDelegate(ctx context.Context, companyID string, delegatorID uuid.UUID, at time.Time) (*uuid.UUID, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("workflow.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workflow.service")
	}
	return &service{repo: repo, logger: l}
}

func validateLevels(levels []LevelRequest) error {
	if len(levels) == 0 {
		return workflowerrors.ErrNoLevels
	}
	sorted := make([]LevelRequest, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })
	for i, lv := range sorted {
		if lv.Level != i+1 {
			return workflowerrors.ErrLevelsNotSequential
		}
	}
	return nil
}

func buildLevels(configID uuid.UUID, reqs []LevelRequest) []WorkflowLevel {
	levels := make([]WorkflowLevel, len(reqs))
	for i, lr := range reqs {
		required := true
		if lr.Required != nil {
			required = *lr.Required
		}
		levels[i] = WorkflowLevel{
			ID:                 uuid.New(),
			ConfigID:           configID,
			Level:              lr.Level,
			ApproverRole:       lr.ApproverRole,
			Required:           required,
			EscalateAfterHours: lr.EscalateAfterHours,
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })
	return levels
}

func (s *service) CreateConfig(ctx context.Context, companyID string, req CreateConfigRequest) (ConfigResponse, error) {
	if err := validateLevels(req.Levels); err != nil {
		return ConfigResponse{}, err
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ConfigResponse{}, err
	}

	cfg := &WorkflowConfig{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      req.Name,
		Active:    req.Active == nil || *req.Active,
	}
	if req.LeaveTypeID != "" {
		ltID, err := uuid.Parse(req.LeaveTypeID)
		if err != nil {
			return ConfigResponse{}, err
		}
		cfg.LeaveTypeID = &ltID
	}
	cfg.Levels = buildLevels(cfg.ID, req.Levels)

	if err := s.repo.CreateConfig(ctx, cfg); err != nil {
		s.logger.Error("create workflow config failed", zap.Error(err))
		return ConfigResponse{}, err
	}

	return mapConfigToResponse(*cfg), nil
}

func (s *service) GetConfigs(ctx context.Context, companyID string) ([]ConfigResponse, error) {
	cfgs, err := s.repo.FindConfigs(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]ConfigResponse, len(cfgs))
	for i, cfg := range cfgs {
		resp[i] = mapConfigToResponse(cfg)
	}
	return resp, nil
}

func (s *service) GetConfigByID(ctx context.Context, companyID, id string) (ConfigResponse, error) {
	cfg, err := s.repo.FindConfigByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConfigResponse{}, workflowerrors.ErrConfigNotFound
		}
		return ConfigResponse{}, err
	}
	return mapConfigToResponse(*cfg), nil
}

func (s *service) UpdateConfig(ctx context.Context, companyID, id string, req UpdateConfigRequest) (ConfigResponse, error) {
	if err := validateLevels(req.Levels); err != nil {
		return ConfigResponse{}, err
	}

	cfg, err := s.repo.FindConfigByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConfigResponse{}, workflowerrors.ErrConfigNotFound
		}
		return ConfigResponse{}, err
	}

	cfg.Name = req.Name
	if req.Active != nil {
		cfg.Active = *req.Active
	}
	if err := s.repo.UpdateConfig(ctx, cfg); err != nil {
		return ConfigResponse{}, err
	}

	levels := buildLevels(cfg.ID, req.Levels)
	if err := s.repo.ReplaceLevels(ctx, cfg.ID.String(), levels); err != nil {
		return ConfigResponse{}, err
	}
	cfg.Levels = levels

	return mapConfigToResponse(*cfg), nil
}

func (s *service) DeleteConfig(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.FindConfigByID(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflowerrors.ErrConfigNotFound
		}
		return err
	}
	return s.repo.DeleteConfig(ctx, companyID, id)
}

func (s *service) Snapshot(ctx context.Context, companyID, leaveTypeID string) ([]LevelSnapshot, error) {
	cfg, err := s.repo.FindActiveConfigForLeaveType(ctx, companyID, leaveTypeID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		cfg, err = s.repo.FindActiveDefaultConfig(ctx, companyID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			cfg = nil
		}
	}

	if cfg == nil || len(cfg.Levels) == 0 {
		return []LevelSnapshot{{Level: 1, ApproverRole: ApproverRoleManager, Required: true}}, nil
	}

	snap := make([]LevelSnapshot, len(cfg.Levels))
	for i, lv := range cfg.Levels {
		snap[i] = LevelSnapshot{
			Level:              lv.Level,
			ApproverRole:       lv.ApproverRole,
			Required:           lv.Required,
			EscalateAfterHours: lv.EscalateAfterHours,
		}
	}
	return snap, nil
}

func (s *service) CreateDelegation(ctx context.Context, companyID string, req CreateDelegationRequest) (DelegationResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DelegationResponse{}, err
	}
	delegatorID, err := uuid.Parse(req.DelegatorID)
	if err != nil {
		return DelegationResponse{}, err
	}
	delegateID, err := uuid.Parse(req.DelegateID)
	if err != nil {
		return DelegationResponse{}, err
	}
	if delegatorID == delegateID {
		return DelegationResponse{}, workflowerrors.ErrSelfDelegation
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return DelegationResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return DelegationResponse{}, err
	}
	if start.After(end) {
		return DelegationResponse{}, workflowerrors.ErrInvalidDateRange
	}

	d := &Delegation{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		DelegatorID: delegatorID,
		DelegateID:  delegateID,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
	}
	if err := s.repo.CreateDelegation(ctx, d); err != nil {
		s.logger.Error("create delegation failed", zap.Error(err))
		return DelegationResponse{}, err
	}

	return mapDelegationToResponse(*d), nil
}

func (s *service) GetDelegations(ctx context.Context, companyID string) ([]DelegationResponse, error) {
	ds, err := s.repo.FindDelegations(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]DelegationResponse, len(ds))
	for i, d := range ds {
		resp[i] = mapDelegationToResponse(d)
	}
	return resp, nil
}

func (s *service) DeleteDelegation(ctx context.Context, companyID, id string) error {
	return s.repo.DeleteDelegation(ctx, companyID, id)
}

func (s *service) ResolveDelegate(ctx context.Context, companyID string, delegatorID uuid.UUID, at time.Time) (*uuid.UUID, error) {
	ds, err := s.repo.FindActiveDelegations(ctx, companyID, delegatorID.String(), at)
	if err != nil {
		return nil, err
	}
	if len(ds) == 0 {
		return nil, nil
	}

	// FindActiveDelegations orders by start_date, so the first row is the
	// winner for overlapping windows.
	winner := ds[0]
	for _, d := range ds[1:] {
		if d.StartDate.Before(winner.StartDate) {
			winner = d
		}
	}
	delegate := winner.DelegateID
	return &delegate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, workflowerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapConfigToResponse(cfg WorkflowConfig) ConfigResponse {
	resp := ConfigResponse{
		ID:     cfg.ID.String(),
		Name:   cfg.Name,
		Active: cfg.Active,
	}
	if cfg.LeaveTypeID != nil {
		resp.LeaveTypeID = cfg.LeaveTypeID.String()
	}
	for _, lv := range cfg.Levels {
		resp.Levels = append(resp.Levels, LevelResponse{
			Level:              lv.Level,
			ApproverRole:       lv.ApproverRole,
			Required:           lv.Required,
			EscalateAfterHours: lv.EscalateAfterHours,
		})
	}
	return resp
}

func mapDelegationToResponse(d Delegation) DelegationResponse {
	return DelegationResponse{
		ID:          d.ID.String(),
		DelegatorID: d.DelegatorID.String(),
		DelegateID:  d.DelegateID.String(),
		StartDate:   d.StartDate.Format("2006-01-02"),
		EndDate:     d.EndDate.Format("2006-01-02"),
		Reason:      d.Reason,
	}
}
