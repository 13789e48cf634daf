package ledger

import (
	"context"
	"errors"
	"time"

	"go-leave-engine/internal/audit"
	"go-leave-engine/internal/employee"
	"go-leave-engine/internal/leavetype"
	ledgererrors "go-leave-engine/internal/ledger/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxVersionRetries bounds how often a compare-and-swap update is retried
// before the caller gets a conflict back.
const maxVersionRetries = 3

const entityTypeLedger = "balance_ledger"

//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	CreateAccrualConfig(ctx context.Context, companyID string, req CreateAccrualConfigRequest) (AccrualConfigResponse, error)
	GetAccrualConfigs(ctx context.Context, companyID string) ([]AccrualConfigResponse, error)
	UpdateAccrualConfig(ctx context.Context, companyID, id string, req UpdateAccrualConfigRequest) (AccrualConfigResponse, error)
	DeleteAccrualConfig(ctx context.Context, companyID, id string) error

	GetBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (BalanceResponse, error)
	ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error)

	SetEntitlement(ctx context.Context, companyID, actorID, actorRole string, req SetEntitlementRequest) (BalanceResponse, error)
	Adjust(ctx context.Context, companyID, actorID, actorRole string, req AdjustmentRequest) (BalanceResponse, error)

	// HasSufficient reports whether the employee could cover the requested
	// days right now. It is a soft check; Debit re-validates under version
	// protection.
	HasSufficient(ctx context.Context, companyID string, employeeID, leaveTypeID uuid.UUID, year int, days float64, asOf time.Time) (bool, error)

	// Debit consumes days from the ledger. It fails with an insufficient
	// balance error when the remaining balance cannot cover the days, and
	// with a conflict error when concurrent writers exhaust the retry budget.
	Debit(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID, year int, days float64, asOf time.Time, actorID string) error

	// Refund returns previously debited days, typically when an approved
	// request is cancelled before it starts.
	Refund(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID, year int, days float64, actorID string) error

	RunAccrual(ctx context.Context, companyID string, now time.Time) (RunSummary, error)
	RunCarryover(ctx context.Context, companyID string, fromYear int) (RunSummary, error)
}

type service struct {
	repo         Repository
	employees    employee.Service
	leaveTypes   leavetype.Service
	auditService audit.Service
	logger       *zap.Logger
}

func NewService(
	repo Repository,
	employees employee.Service,
	leaveTypes leavetype.Service,
	auditService audit.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	return &service{
		repo:         repo,
		employees:    employees,
		leaveTypes:   leaveTypes,
		auditService: auditService,
		logger:       l,
	}
}

func (s *service) CreateAccrualConfig(ctx context.Context, companyID string, req CreateAccrualConfigRequest) (AccrualConfigResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AccrualConfigResponse{}, err
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return AccrualConfigResponse{}, err
	}
	if req.Frequency != FrequencyMonthly && req.Frequency != FrequencyYearly {
		return AccrualConfigResponse{}, ledgererrors.ErrInvalidFrequency
	}

	// The leave type must exist in this company before accrual is set up.
	if _, err := s.leaveTypes.GetByID(ctx, companyID, req.LeaveTypeID); err != nil {
		return AccrualConfigResponse{}, err
	}

	cfg := &AccrualConfig{
		ID:                     uuid.New(),
		CompanyID:              companyUUID,
		LeaveTypeID:            leaveTypeUUID,
		Frequency:              req.Frequency,
		DaysPerPeriod:          req.DaysPerPeriod,
		MaxBalance:             req.MaxBalance,
		CarryoverLimit:         req.CarryoverLimit,
		CarryoverExpiryMonths:  req.CarryoverExpiryMonths,
		PauseDuringUnpaidLeave: req.PauseDuringUnpaidLeave,
		PauseDuringSuspension:  req.PauseDuringSuspension,
		Active:                 req.Active == nil || *req.Active,
	}
	if err := s.repo.CreateConfig(ctx, cfg); err != nil {
		if isUniqueViolation(err) {
			return AccrualConfigResponse{}, ledgererrors.ErrDuplicateConfig
		}
		s.logger.Error("create accrual config failed", zap.Error(err))
		return AccrualConfigResponse{}, err
	}

	return mapConfigToResponse(*cfg), nil
}

func (s *service) GetAccrualConfigs(ctx context.Context, companyID string) ([]AccrualConfigResponse, error) {
	cfgs, err := s.repo.FindConfigs(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]AccrualConfigResponse, len(cfgs))
	for i, cfg := range cfgs {
		resp[i] = mapConfigToResponse(cfg)
	}
	return resp, nil
}

func (s *service) UpdateAccrualConfig(ctx context.Context, companyID, id string, req UpdateAccrualConfigRequest) (AccrualConfigResponse, error) {
	cfg, err := s.repo.FindConfigByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccrualConfigResponse{}, ledgererrors.ErrConfigNotFound
		}
		return AccrualConfigResponse{}, err
	}
	if req.Frequency != FrequencyMonthly && req.Frequency != FrequencyYearly {
		return AccrualConfigResponse{}, ledgererrors.ErrInvalidFrequency
	}

	cfg.Frequency = req.Frequency
	cfg.DaysPerPeriod = req.DaysPerPeriod
	cfg.MaxBalance = req.MaxBalance
	cfg.CarryoverLimit = req.CarryoverLimit
	cfg.CarryoverExpiryMonths = req.CarryoverExpiryMonths
	cfg.PauseDuringUnpaidLeave = req.PauseDuringUnpaidLeave
	cfg.PauseDuringSuspension = req.PauseDuringSuspension
	if req.Active != nil {
		cfg.Active = *req.Active
	}

	if err := s.repo.UpdateConfig(ctx, cfg); err != nil {
		return AccrualConfigResponse{}, err
	}
	return mapConfigToResponse(*cfg), nil
}

func (s *service) DeleteAccrualConfig(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.FindConfigByID(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ledgererrors.ErrConfigNotFound
		}
		return err
	}
	return s.repo.DeleteConfig(ctx, companyID, id)
}

func (s *service) GetBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (BalanceResponse, error) {
	l, err := s.repo.FindLedger(ctx, companyID, employeeID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, ledgererrors.ErrLedgerNotFound
		}
		return BalanceResponse{}, err
	}
	return mapLedgerToResponse(*l, time.Now()), nil
}

func (s *service) ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error) {
	ledgers, err := s.repo.ListLedgers(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	resp := make([]BalanceResponse, len(ledgers))
	for i, l := range ledgers {
		resp[i] = mapLedgerToResponse(l, now)
	}
	return resp, nil
}

func (s *service) SetEntitlement(ctx context.Context, companyID, actorID, actorRole string, req SetEntitlementRequest) (BalanceResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return BalanceResponse{}, err
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return BalanceResponse{}, err
	}

	var updated *BalanceLedger
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		l := &BalanceLedger{
			ID:          uuid.New(),
			CompanyID:   companyUUID,
			EmployeeID:  employeeUUID,
			LeaveTypeID: leaveTypeUUID,
			Year:        req.Year,
		}
		if err := s.repo.FindOrCreateLedger(ctx, l); err != nil {
			return BalanceResponse{}, err
		}

		l.EntitledDays = req.Days
		ok, err := s.repo.UpdateLedgerVersioned(ctx, l)
		if err != nil {
			return BalanceResponse{}, err
		}
		if ok {
			updated = l
			break
		}
	}
	if updated == nil {
		return BalanceResponse{}, ledgererrors.ErrVersionConflict
	}

	s.recordAudit(ctx, companyUUID, actorID, actorRole, audit.ActionBalanceAdjusted, updated.ID.String(), map[string]any{
		"entitled_days": req.Days,
		"year":          req.Year,
	})
	return mapLedgerToResponse(*updated, time.Now()), nil
}

func (s *service) Adjust(ctx context.Context, companyID, actorID, actorRole string, req AdjustmentRequest) (BalanceResponse, error) {
	if req.Reason == "" {
		return BalanceResponse{}, ledgererrors.ErrReasonRequired
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return BalanceResponse{}, err
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return BalanceResponse{}, err
	}

	now := time.Now()
	var updated *BalanceLedger
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		l := &BalanceLedger{
			ID:          uuid.New(),
			CompanyID:   companyUUID,
			EmployeeID:  employeeUUID,
			LeaveTypeID: leaveTypeUUID,
			Year:        req.Year,
		}
		if err := s.repo.FindOrCreateLedger(ctx, l); err != nil {
			return BalanceResponse{}, err
		}

		l.AdjustmentDays += req.Days
		if l.Remaining(now) < 0 {
			return BalanceResponse{}, ledgererrors.ErrInsufficientBalance
		}

		ok, err := s.repo.UpdateLedgerVersioned(ctx, l)
		if err != nil {
			return BalanceResponse{}, err
		}
		if ok {
			updated = l
			break
		}
	}
	if updated == nil {
		return BalanceResponse{}, ledgererrors.ErrVersionConflict
	}

	s.recordAudit(ctx, companyUUID, actorID, actorRole, audit.ActionBalanceAdjusted, updated.ID.String(), map[string]any{
		"delta":  req.Days,
		"reason": req.Reason,
		"year":   req.Year,
	})
	return mapLedgerToResponse(*updated, now), nil
}

func (s *service) HasSufficient(ctx context.Context, companyID string, employeeID, leaveTypeID uuid.UUID, year int, days float64, asOf time.Time) (bool, error) {
	l, err := s.repo.FindLedger(ctx, companyID, employeeID.String(), leaveTypeID.String(), year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return l.Remaining(asOf) >= days, nil
}

func (s *service) Debit(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID, year int, days float64, asOf time.Time, actorID string) error {
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		l, err := s.repo.FindLedger(ctx, companyID.String(), employeeID.String(), leaveTypeID.String(), year)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledgererrors.ErrInsufficientBalance
			}
			return err
		}

		if l.Remaining(asOf) < days {
			return ledgererrors.ErrInsufficientBalance
		}

		l.UsedDays += days
		ok, err := s.repo.UpdateLedgerVersioned(ctx, l)
		if err != nil {
			return err
		}
		if ok {
			s.recordAudit(ctx, companyID, actorID, "", audit.ActionBalanceDebited, l.ID.String(), map[string]any{
				"days": days,
				"year": year,
			})
			return nil
		}

		s.logger.Debug("debit version conflict, retrying",
			zap.String("ledger_id", l.ID.String()),
			zap.Int("attempt", attempt+1),
		)
	}
	return ledgererrors.ErrVersionConflict
}

func (s *service) Refund(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID, year int, days float64, actorID string) error {
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		l, err := s.repo.FindLedger(ctx, companyID.String(), employeeID.String(), leaveTypeID.String(), year)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledgererrors.ErrLedgerNotFound
			}
			return err
		}

		l.UsedDays -= days
		if l.UsedDays < 0 {
			l.UsedDays = 0
		}
		ok, err := s.repo.UpdateLedgerVersioned(ctx, l)
		if err != nil {
			return err
		}
		if ok {
			s.recordAudit(ctx, companyID, actorID, "", audit.ActionBalanceRefunded, l.ID.String(), map[string]any{
				"days": days,
				"year": year,
			})
			return nil
		}
	}
	return ledgererrors.ErrVersionConflict
}

// RunAccrual posts one accrual per active config and employee for the current
// period. Each config's pause flags exclude suspended employees and employees
// away on a pausing leave. The posting row is the idempotency gate; a rerun
// for the same period skips every employee that was already credited.
func (s *service) RunAccrual(ctx context.Context, companyID string, now time.Time) (RunSummary, error) {
	var summary RunSummary

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return summary, err
	}

	cfgs, err := s.repo.FindActiveConfigs(ctx, companyID)
	if err != nil {
		return summary, err
	}
	if len(cfgs) == 0 {
		return summary, nil
	}

	staff, err := s.employees.Directory(ctx, companyID)
	if err != nil {
		return summary, err
	}

	// Resolve who is away on a pausing leave once per run, only when some
	// config actually cares.
	onPausingLeave := make(map[uuid.UUID]bool)
	for _, cfg := range cfgs {
		if cfg.PauseDuringUnpaidLeave {
			ids, err := s.repo.FindEmployeesOnPausingLeave(ctx, companyID, now)
			if err != nil {
				return summary, err
			}
			for _, id := range ids {
				onPausingLeave[id] = true
			}
			break
		}
	}

	for _, cfg := range cfgs {
		if _, err := s.leaveTypes.GetByID(ctx, companyID, cfg.LeaveTypeID.String()); err != nil {
			s.logger.Warn("accrual skipped, leave type missing",
				zap.String("leave_type_id", cfg.LeaveTypeID.String()),
				zap.Error(err),
			)
			summary.Failed += len(staff)
			continue
		}

		period := periodKey(cfg.Frequency, now)
		for _, entry := range staff {
			if cfg.PauseDuringSuspension && entry.Status == employee.StatusSuspended {
				continue
			}
			empID, err := uuid.Parse(entry.ID)
			if err != nil {
				continue
			}
			if cfg.PauseDuringUnpaidLeave && onPausingLeave[empID] {
				continue
			}
			if err := s.accrueOne(ctx, companyUUID, empID, cfg, period, now); err != nil {
				if isUniqueViolation(err) {
					summary.Skipped++
					continue
				}
				// One bad item never stops the run.
				s.logger.Warn("accrual item failed",
					zap.String("employee_id", entry.ID),
					zap.String("period", period),
					zap.Error(err),
				)
				summary.Failed++
				continue
			}
			summary.Processed++
		}
	}

	s.logger.Info("accrual run finished",
		zap.String("company_id", companyID),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (s *service) accrueOne(ctx context.Context, companyID, employeeID uuid.UUID, cfg AccrualConfig, period string, now time.Time) error {
	l := &BalanceLedger{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		LeaveTypeID: cfg.LeaveTypeID,
		Year:        now.Year(),
	}
	if err := s.repo.FindOrCreateLedger(ctx, l); err != nil {
		return err
	}

	add := cfg.DaysPerPeriod
	if cfg.MaxBalance > 0 {
		headroom := cfg.MaxBalance - l.Remaining(now)
		if headroom <= 0 {
			add = 0
		} else if add > headroom {
			add = headroom
		}
	}

	// Posting first so a rerun is rejected by the unique key even when the
	// ledger update below has to retry.
	posting := &AccrualPosting{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		LeaveTypeID: cfg.LeaveTypeID,
		Period:      period,
		Days:        add,
	}
	if err := s.repo.CreateAccrualPosting(ctx, posting); err != nil {
		return err
	}

	if add > 0 {
		if err := s.creditAccrued(ctx, l, add); err != nil {
			// Take the posting back out so the next run can retry the credit.
			if delErr := s.repo.DeleteAccrualPosting(ctx, posting.ID); delErr != nil {
				s.logger.Error("accrual posting rollback failed",
					zap.String("posting_id", posting.ID.String()),
					zap.Error(delErr),
				)
			}
			return err
		}
	}

	s.recordAudit(ctx, companyID, "scheduler", "", audit.ActionAccrualPosted, posting.ID.String(), map[string]any{
		"employee_id": employeeID.String(),
		"period":      period,
		"days":        add,
	})
	return nil
}

func (s *service) creditAccrued(ctx context.Context, l *BalanceLedger, add float64) error {
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		l.AccruedDays += add
		ok, err := s.repo.UpdateLedgerVersioned(ctx, l)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		fresh, err := s.repo.FindLedger(ctx, l.CompanyID.String(), l.EmployeeID.String(), l.LeaveTypeID.String(), l.Year)
		if err != nil {
			return err
		}
		*l = *fresh
	}
	return ledgererrors.ErrVersionConflict
}

// RunCarryover closes fromYear and seeds fromYear+1 ledgers. Carried days are
// capped by the config's carryover limit and stamped with an expiry when the
// config sets one.
func (s *service) RunCarryover(ctx context.Context, companyID string, fromYear int) (RunSummary, error) {
	var summary RunSummary

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return summary, err
	}

	cfgs, err := s.repo.FindActiveConfigs(ctx, companyID)
	if err != nil {
		return summary, err
	}
	cfgByType := make(map[uuid.UUID]AccrualConfig, len(cfgs))
	for _, cfg := range cfgs {
		cfgByType[cfg.LeaveTypeID] = cfg
	}

	ledgers, err := s.repo.ListLedgersForYear(ctx, companyID, fromYear)
	if err != nil {
		return summary, err
	}

	endOfYear := time.Date(fromYear, 12, 31, 23, 59, 59, 0, time.UTC)
	for _, old := range ledgers {
		remaining := old.Remaining(endOfYear)
		if remaining < 0 {
			remaining = 0
		}

		carried := remaining
		var expiry *time.Time
		if cfg, ok := cfgByType[old.LeaveTypeID]; ok {
			if cfg.CarryoverLimit > 0 && carried > cfg.CarryoverLimit {
				carried = cfg.CarryoverLimit
			}
			if cfg.CarryoverExpiryMonths > 0 {
				e := time.Date(fromYear+1, 1, 1, 0, 0, 0, 0, time.UTC).
					AddDate(0, cfg.CarryoverExpiryMonths, -1)
				expiry = &e
			}
		}

		posting := &CarryoverPosting{
			ID:          uuid.New(),
			CompanyID:   companyUUID,
			EmployeeID:  old.EmployeeID,
			LeaveTypeID: old.LeaveTypeID,
			Year:        fromYear + 1,
			Days:        carried,
		}
		if err := s.repo.CreateCarryoverPosting(ctx, posting); err != nil {
			if isUniqueViolation(err) {
				summary.Skipped++
				continue
			}
			s.logger.Warn("carryover item failed",
				zap.String("employee_id", old.EmployeeID.String()),
				zap.Int("from_year", fromYear),
				zap.Error(err),
			)
			summary.Failed++
			continue
		}

		next := &BalanceLedger{
			ID:          uuid.New(),
			CompanyID:   companyUUID,
			EmployeeID:  old.EmployeeID,
			LeaveTypeID: old.LeaveTypeID,
			Year:        fromYear + 1,
		}
		if err := s.carryInto(ctx, next, carried, expiry); err != nil {
			s.logger.Warn("carryover ledger update failed",
				zap.String("employee_id", old.EmployeeID.String()),
				zap.Error(err),
			)
			// Take the posting back out so the next run can retry the credit.
			if delErr := s.repo.DeleteCarryoverPosting(ctx, posting.ID); delErr != nil {
				s.logger.Error("carryover posting rollback failed",
					zap.String("posting_id", posting.ID.String()),
					zap.Error(delErr),
				)
			}
			summary.Failed++
			continue
		}

		s.recordAudit(ctx, companyUUID, "scheduler", "", audit.ActionCarryoverPosted, posting.ID.String(), map[string]any{
			"employee_id": old.EmployeeID.String(),
			"from_year":   fromYear,
			"days":        carried,
		})
		summary.Processed++
	}

	s.logger.Info("carryover run finished",
		zap.String("company_id", companyID),
		zap.Int("from_year", fromYear),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (s *service) carryInto(ctx context.Context, next *BalanceLedger, carried float64, expiry *time.Time) error {
	if err := s.repo.FindOrCreateLedger(ctx, next); err != nil {
		return err
	}
	next.CarriedOverDays = carried
	next.CarryoverExpiry = expiry
	ok, err := s.repo.UpdateLedgerVersioned(ctx, next)
	if err != nil {
		return err
	}
	if !ok {
		return ledgererrors.ErrVersionConflict
	}
	return nil
}

func (s *service) recordAudit(ctx context.Context, companyID uuid.UUID, actorID, actorRole, action, entityID string, details any) {
	if s.auditService == nil {
		return
	}
	_ = s.auditService.Record(ctx, companyID, actorID, actorRole, action, entityTypeLedger, entityID, details)
}

func periodKey(frequency string, now time.Time) string {
	if frequency == FrequencyYearly {
		return now.Format("2006")
	}
	return now.Format("2006-01")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapConfigToResponse(cfg AccrualConfig) AccrualConfigResponse {
	return AccrualConfigResponse{
		ID:                     cfg.ID.String(),
		LeaveTypeID:            cfg.LeaveTypeID.String(),
		Frequency:              cfg.Frequency,
		DaysPerPeriod:          cfg.DaysPerPeriod,
		MaxBalance:             cfg.MaxBalance,
		CarryoverLimit:         cfg.CarryoverLimit,
		CarryoverExpiryMonths:  cfg.CarryoverExpiryMonths,
		PauseDuringUnpaidLeave: cfg.PauseDuringUnpaidLeave,
		PauseDuringSuspension:  cfg.PauseDuringSuspension,
		Active:                 cfg.Active,
	}
}

func mapLedgerToResponse(l BalanceLedger, asOf time.Time) BalanceResponse {
	resp := BalanceResponse{
		EmployeeID:      l.EmployeeID.String(),
		LeaveTypeID:     l.LeaveTypeID.String(),
		Year:            l.Year,
		EntitledDays:    l.EntitledDays,
		AccruedDays:     l.AccruedDays,
		UsedDays:        l.UsedDays,
		CarriedOverDays: l.CarriedOverDays,
		AdjustmentDays:  l.AdjustmentDays,
		Remaining:       l.Remaining(asOf),
		Version:         l.Version,
	}
	if l.CarryoverExpiry != nil {
		resp.CarryoverExpiry = l.CarryoverExpiry.Format("2006-01-02")
	}
	return resp
}
