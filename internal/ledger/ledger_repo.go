package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindOrCreateLedger(ctx context.Context, l *BalanceLedger) error
	FindLedger(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*BalanceLedger, error)
	ListLedgers(ctx context.Context, companyID, employeeID string, year int) ([]BalanceLedger, error)
	ListLedgersForYear(ctx context.Context, companyID string, year int) ([]BalanceLedger, error)

	// UpdateLedgerVersioned writes all balance columns guarded by the version
	// the caller read. It returns false when another writer got there first.
	UpdateLedgerVersioned(ctx context.Context, l *BalanceLedger) (bool, error)

	CreateAccrualPosting(ctx context.Context, p *AccrualPosting) error
	CreateCarryoverPosting(ctx context.Context, p *CarryoverPosting) error

	// The delete pair compensates a posting whose ledger credit failed, so
	// the next run is not blocked by the idempotency key.
	DeleteAccrualPosting(ctx context.Context, id uuid.UUID) error
	DeleteCarryoverPosting(ctx context.Context, id uuid.UUID) error

	// FindEmployeesOnPausingLeave returns employees with an approved leave
	// covering asOf whose leave type pauses accrual.
	FindEmployeesOnPausingLeave(ctx context.Context, companyID string, asOf time.Time) ([]uuid.UUID, error)

	CreateConfig(ctx context.Context, cfg *AccrualConfig) error
	FindConfigs(ctx context.Context, companyID string) ([]AccrualConfig, error)
	FindConfigByID(ctx context.Context, companyID, id string) (*AccrualConfig, error)
	FindActiveConfigs(ctx context.Context, companyID string) ([]AccrualConfig, error)
	UpdateConfig(ctx context.Context, cfg *AccrualConfig) error
	DeleteConfig(ctx context.Context, companyID, id string) error
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

func (r *repository) FindOrCreateLedger(ctx context.Context, l *BalanceLedger) error {
	return r.db.WithContext(ctx).
		Where(BalanceLedger{
			CompanyID:   l.CompanyID,
			EmployeeID:  l.EmployeeID,
			LeaveTypeID: l.LeaveTypeID,
			Year:        l.Year,
		}).
		Attrs(BalanceLedger{ID: l.ID, Version: 1}).
		FirstOrCreate(l).Error
}

func (r *repository) FindLedger(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*BalanceLedger, error) {
	var l BalanceLedger
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND leave_type_id = ? AND year = ?",
			companyID, employeeID, leaveTypeID, year).
		First(&l).Error
	return &l, err
}

func (r *repository) ListLedgers(ctx context.Context, companyID, employeeID string, year int) ([]BalanceLedger, error) {
	var ledgers []BalanceLedger
	q := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID)
	if year > 0 {
		q = q.Where("year = ?", year)
	}
	err := q.Order("year DESC, leave_type_id").Find(&ledgers).Error
	return ledgers, err
}

func (r *repository) ListLedgersForYear(ctx context.Context, companyID string, year int) ([]BalanceLedger, error) {
	var ledgers []BalanceLedger
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND year = ?", companyID, year).
		Find(&ledgers).Error
	return ledgers, err
}

func (r *repository) UpdateLedgerVersioned(ctx context.Context, l *BalanceLedger) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&BalanceLedger{}).
		Where("id = ? AND version = ?", l.ID, l.Version).
		Updates(map[string]interface{}{
			"entitled_days":     l.EntitledDays,
			"accrued_days":      l.AccruedDays,
			"used_days":         l.UsedDays,
			"carried_over_days": l.CarriedOverDays,
			"adjustment_days":   l.AdjustmentDays,
			"carryover_expiry":  l.CarryoverExpiry,
			"version":           l.Version + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	l.Version++
	return true, nil
}

func (r *repository) CreateAccrualPosting(ctx context.Context, p *AccrualPosting) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) CreateCarryoverPosting(ctx context.Context, p *CarryoverPosting) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) DeleteAccrualPosting(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&AccrualPosting{}, "id = ?", id).Error
}

func (r *repository) DeleteCarryoverPosting(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&CarryoverPosting{}, "id = ?", id).Error
}

func (r *repository) FindEmployeesOnPausingLeave(ctx context.Context, companyID string, asOf time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT lr.employee_id
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.company_id = ?
		  AND lr.status = 'APPROVED'
		  AND lr.deleted_at IS NULL
		  AND lr.start_date <= ?
		  AND lr.end_date >= ?
		  AND lt.pause_accrual = TRUE
	`, companyID, asOf, asOf).Scan(&ids).Error
	return ids, err
}

func (r *repository) CreateConfig(ctx context.Context, cfg *AccrualConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) FindConfigs(ctx context.Context, companyID string) ([]AccrualConfig, error) {
	var cfgs []AccrualConfig
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&cfgs).Error
	return cfgs, err
}

func (r *repository) FindConfigByID(ctx context.Context, companyID, id string) (*AccrualConfig, error) {
	var cfg AccrualConfig
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&cfg, "id = ?", id).Error
	return &cfg, err
}

func (r *repository) FindActiveConfigs(ctx context.Context, companyID string) ([]AccrualConfig, error) {
	var cfgs []AccrualConfig
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Find(&cfgs).Error
	return cfgs, err
}

func (r *repository) UpdateConfig(ctx context.Context, cfg *AccrualConfig) error {
	return r.db.WithContext(ctx).
		Model(&AccrualConfig{}).
		Where("id = ? AND company_id = ?", cfg.ID, cfg.CompanyID).
		Updates(map[string]interface{}{
			"frequency":               cfg.Frequency,
			"days_per_period":         cfg.DaysPerPeriod,
			"max_balance":             cfg.MaxBalance,
			"carryover_limit":         cfg.CarryoverLimit,
			"carryover_expiry_months":   cfg.CarryoverExpiryMonths,
			"pause_during_unpaid_leave": cfg.PauseDuringUnpaidLeave,
			"pause_during_suspension":   cfg.PauseDuringSuspension,
			"active":                    cfg.Active,
		}).Error
}

func (r *repository) DeleteConfig(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&AccrualConfig{}, "id = ?", id).Error
}
