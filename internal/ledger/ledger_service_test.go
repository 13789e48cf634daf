package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-leave-engine/internal/audit"
	"go-leave-engine/internal/employee"
	"go-leave-engine/internal/leavetype"
	"go-leave-engine/internal/ledger"
	ledgererrors "go-leave-engine/internal/ledger/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLedgerRepository struct {
	findOrCreateLedgerFn     func(ctx context.Context, l *ledger.BalanceLedger) error
	findLedgerFn             func(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*ledger.BalanceLedger, error)
	listLedgersFn            func(ctx context.Context, companyID, employeeID string, year int) ([]ledger.BalanceLedger, error)
	listLedgersForYearFn     func(ctx context.Context, companyID string, year int) ([]ledger.BalanceLedger, error)
	updateLedgerVersionedFn  func(ctx context.Context, l *ledger.BalanceLedger) (bool, error)
	createAccrualPostingFn   func(ctx context.Context, p *ledger.AccrualPosting) error
	createCarryoverPostingFn func(ctx context.Context, p *ledger.CarryoverPosting) error
	deleteAccrualPostingFn   func(ctx context.Context, id uuid.UUID) error
	deleteCarryoverPostingFn func(ctx context.Context, id uuid.UUID) error
	onPausingLeaveFn         func(ctx context.Context, companyID string, asOf time.Time) ([]uuid.UUID, error)
	createConfigFn           func(ctx context.Context, cfg *ledger.AccrualConfig) error
	findConfigsFn            func(ctx context.Context, companyID string) ([]ledger.AccrualConfig, error)
	findConfigByIDFn         func(ctx context.Context, companyID, id string) (*ledger.AccrualConfig, error)
	findActiveConfigsFn      func(ctx context.Context, companyID string) ([]ledger.AccrualConfig, error)
	updateConfigFn           func(ctx context.Context, cfg *ledger.AccrualConfig) error
	deleteConfigFn           func(ctx context.Context, companyID, id string) error
}

func (f *fakeLedgerRepository) WithTx(tx *gorm.DB) ledger.Repository { return f }

func (f *fakeLedgerRepository) FindOrCreateLedger(ctx context.Context, l *ledger.BalanceLedger) error {
	if f.findOrCreateLedgerFn != nil {
		return f.findOrCreateLedgerFn(ctx, l)
	}
	return nil
}

func (f *fakeLedgerRepository) FindLedger(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*ledger.BalanceLedger, error) {
	if f.findLedgerFn != nil {
		return f.findLedgerFn(ctx, companyID, employeeID, leaveTypeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLedgerRepository) ListLedgers(ctx context.Context, companyID, employeeID string, year int) ([]ledger.BalanceLedger, error) {
	if f.listLedgersFn != nil {
		return f.listLedgersFn(ctx, companyID, employeeID, year)
	}
	return nil, nil
}

func (f *fakeLedgerRepository) ListLedgersForYear(ctx context.Context, companyID string, year int) ([]ledger.BalanceLedger, error) {
	if f.listLedgersForYearFn != nil {
		return f.listLedgersForYearFn(ctx, companyID, year)
	}
	return nil, nil
}

func (f *fakeLedgerRepository) UpdateLedgerVersioned(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
	if f.updateLedgerVersionedFn != nil {
		return f.updateLedgerVersionedFn(ctx, l)
	}
	return true, nil
}

func (f *fakeLedgerRepository) CreateAccrualPosting(ctx context.Context, p *ledger.AccrualPosting) error {
	if f.createAccrualPostingFn != nil {
		return f.createAccrualPostingFn(ctx, p)
	}
	return nil
}

func (f *fakeLedgerRepository) CreateCarryoverPosting(ctx context.Context, p *ledger.CarryoverPosting) error {
	if f.createCarryoverPostingFn != nil {
		return f.createCarryoverPostingFn(ctx, p)
	}
	return nil
}

func (f *fakeLedgerRepository) DeleteAccrualPosting(ctx context.Context, id uuid.UUID) error {
	if f.deleteAccrualPostingFn != nil {
		return f.deleteAccrualPostingFn(ctx, id)
	}
	return nil
}

func (f *fakeLedgerRepository) DeleteCarryoverPosting(ctx context.Context, id uuid.UUID) error {
	if f.deleteCarryoverPostingFn != nil {
		return f.deleteCarryoverPostingFn(ctx, id)
	}
	return nil
}

func (f *fakeLedgerRepository) FindEmployeesOnPausingLeave(ctx context.Context, companyID string, asOf time.Time) ([]uuid.UUID, error) {
	if f.onPausingLeaveFn != nil {
		return f.onPausingLeaveFn(ctx, companyID, asOf)
	}
	return nil, nil
}

func (f *fakeLedgerRepository) CreateConfig(ctx context.Context, cfg *ledger.AccrualConfig) error {
	if f.createConfigFn != nil {
		return f.createConfigFn(ctx, cfg)
	}
	return nil
}

func (f *fakeLedgerRepository) FindConfigs(ctx context.Context, companyID string) ([]ledger.AccrualConfig, error) {
	if f.findConfigsFn != nil {
		return f.findConfigsFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeLedgerRepository) FindConfigByID(ctx context.Context, companyID, id string) (*ledger.AccrualConfig, error) {
	if f.findConfigByIDFn != nil {
		return f.findConfigByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLedgerRepository) FindActiveConfigs(ctx context.Context, companyID string) ([]ledger.AccrualConfig, error) {
	if f.findActiveConfigsFn != nil {
		return f.findActiveConfigsFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeLedgerRepository) UpdateConfig(ctx context.Context, cfg *ledger.AccrualConfig) error {
	if f.updateConfigFn != nil {
		return f.updateConfigFn(ctx, cfg)
	}
	return nil
}

func (f *fakeLedgerRepository) DeleteConfig(ctx context.Context, companyID, id string) error {
	if f.deleteConfigFn != nil {
		return f.deleteConfigFn(ctx, companyID, id)
	}
	return nil
}

type fakeEmployeeService struct {
	directoryFn func(ctx context.Context, companyID string) ([]employee.DirectoryEntry, error)
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, companyID, id string) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployeeService) GetByUserID(ctx context.Context, companyID, userID string) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployeeService) Directory(ctx context.Context, companyID string) ([]employee.DirectoryEntry, error) {
	if f.directoryFn != nil {
		return f.directoryFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeService) Team(ctx context.Context, companyID, managerID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeService) RoleHolders(ctx context.Context, companyID, role string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeService) IsManagerOf(ctx context.Context, companyID, managerUserID, employeeID string) (bool, error) {
	return false, nil
}

type fakeLeaveTypeService struct {
	getByIDFn func(ctx context.Context, companyID, id string) (leavetype.LeaveType, error)
}

func (f *fakeLeaveTypeService) Create(ctx context.Context, companyID string, req leavetype.CreateLeaveTypeRequest) (leavetype.LeaveTypeResponse, error) {
	return leavetype.LeaveTypeResponse{}, nil
}

func (f *fakeLeaveTypeService) GetAll(ctx context.Context, companyID string) ([]leavetype.LeaveTypeResponse, error) {
	return nil, nil
}

func (f *fakeLeaveTypeService) GetByID(ctx context.Context, companyID, id string) (leavetype.LeaveType, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, companyID, id)
	}
	return leavetype.LeaveType{}, nil
}

func (f *fakeLeaveTypeService) Update(ctx context.Context, companyID, id string, req leavetype.UpdateLeaveTypeRequest) (leavetype.LeaveTypeResponse, error) {
	return leavetype.LeaveTypeResponse{}, nil
}

func (f *fakeLeaveTypeService) Delete(ctx context.Context, companyID, id string) error {
	return nil
}

type fakeAuditService struct {
	recordFn func(ctx context.Context, companyID uuid.UUID, actorID, actorRole, action, entityType, entityID string, details any) error
}

func (f *fakeAuditService) Record(ctx context.Context, companyID uuid.UUID, actorID, actorRole, action, entityType, entityID string, details any) error {
	if f.recordFn != nil {
		return f.recordFn(ctx, companyID, actorID, actorRole, action, entityType, entityID, details)
	}
	return nil
}

func (f *fakeAuditService) Query(ctx context.Context, companyID string, filter audit.QueryFilter) ([]audit.EntryResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeAuditService) Timeline(ctx context.Context, companyID, entityType, entityID string) ([]audit.EntryResponse, error) {
	return nil, nil
}

type ledgerServiceDeps struct {
	service    ledger.Service
	repo       *fakeLedgerRepository
	employees  *fakeEmployeeService
	leaveTypes *fakeLeaveTypeService
	audits     *fakeAuditService
}

func setupLedgerServiceTest(t *testing.T) *ledgerServiceDeps {
	t.Helper()

	repo := &fakeLedgerRepository{}
	employees := &fakeEmployeeService{}
	leaveTypes := &fakeLeaveTypeService{}
	audits := &fakeAuditService{}
	svc := ledger.NewService(repo, employees, leaveTypes, audits)

	return &ledgerServiceDeps{
		service:    svc,
		repo:       repo,
		employees:  employees,
		leaveTypes: leaveTypes,
		audits:     audits,
	}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

func TestLedgerService_Debit(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.findLedgerFn = func(ctx context.Context, cid, eid, ltid string, year int) (*ledger.BalanceLedger, error) {
			assert.Equal(t, 2026, year)
			return &ledger.BalanceLedger{
				ID:           uuid.New(),
				CompanyID:    companyID,
				EmployeeID:   employeeID,
				LeaveTypeID:  leaveTypeID,
				Year:         2026,
				EntitledDays: 12,
				UsedDays:     2,
				Version:      3,
			}, nil
		}
		deps.repo.updateLedgerVersionedFn = func(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
			assert.Equal(t, 5.0, l.UsedDays)
			return true, nil
		}

		err := deps.service.Debit(ctx, companyID, employeeID, leaveTypeID, 2026, 3, now, "actor")

		assert.NoError(t, err)
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.findLedgerFn = func(ctx context.Context, cid, eid, ltid string, year int) (*ledger.BalanceLedger, error) {
			return &ledger.BalanceLedger{EntitledDays: 2, UsedDays: 0, Version: 1}, nil
		}

		err := deps.service.Debit(ctx, companyID, employeeID, leaveTypeID, 2026, 3, now, "actor")

		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
	})

	t.Run("negative missing ledger is insufficient", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.findLedgerFn = func(ctx context.Context, cid, eid, ltid string, year int) (*ledger.BalanceLedger, error) {
			return nil, gorm.ErrRecordNotFound
		}

		err := deps.service.Debit(ctx, companyID, employeeID, leaveTypeID, 2026, 1, now, "actor")

		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
	})

	t.Run("negative expired carryover does not cover debit", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		expiry := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
		deps.repo.findLedgerFn = func(ctx context.Context, cid, eid, ltid string, year int) (*ledger.BalanceLedger, error) {
			return &ledger.BalanceLedger{
				CarriedOverDays: 5,
				CarryoverExpiry: &expiry,
				Version:         1,
			}, nil
		}

		err := deps.service.Debit(ctx, companyID, employeeID, leaveTypeID, 2026, 2, now, "actor")

		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
	})

	t.Run("negative version conflict after retries", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		attempts := 0
		deps.repo.findLedgerFn = func(ctx context.Context, cid, eid, ltid string, year int) (*ledger.BalanceLedger, error) {
			return &ledger.BalanceLedger{EntitledDays: 12, Version: int64(attempts + 1)}, nil
		}
		deps.repo.updateLedgerVersionedFn = func(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
			attempts++
			return false, nil
		}

		err := deps.service.Debit(ctx, companyID, employeeID, leaveTypeID, 2026, 1, now, "actor")

		assert.ErrorIs(t, err, ledgererrors.ErrVersionConflict)
		assert.Equal(t, 3, attempts)
	})

	t.Run("success after one conflicted attempt", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		attempts := 0
		deps.repo.findLedgerFn = func(ctx context.Context, cid, eid, ltid string, year int) (*ledger.BalanceLedger, error) {
			return &ledger.BalanceLedger{EntitledDays: 12, Version: int64(attempts + 1)}, nil
		}
		deps.repo.updateLedgerVersionedFn = func(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
			attempts++
			return attempts > 1, nil
		}

		err := deps.service.Debit(ctx, companyID, employeeID, leaveTypeID, 2026, 1, now, "actor")

		assert.NoError(t, err)
		assert.Equal(t, 2, attempts)
	})
}

func TestLedgerService_Refund(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	t.Run("success never goes below zero", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.findLedgerFn = func(ctx context.Context, cid, eid, ltid string, year int) (*ledger.BalanceLedger, error) {
			return &ledger.BalanceLedger{UsedDays: 2, Version: 1}, nil
		}
		deps.repo.updateLedgerVersionedFn = func(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
			assert.Equal(t, 0.0, l.UsedDays)
			return true, nil
		}

		err := deps.service.Refund(ctx, companyID, employeeID, leaveTypeID, 2026, 5, "actor")

		assert.NoError(t, err)
	})

	t.Run("negative missing ledger", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		err := deps.service.Refund(ctx, companyID, employeeID, leaveTypeID, 2026, 1, "actor")

		assert.ErrorIs(t, err, ledgererrors.ErrLedgerNotFound)
	})
}

func TestLedgerService_HasSufficient(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("missing ledger reports false without error", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		ok, err := deps.service.HasSufficient(ctx, companyID.String(), employeeID, leaveTypeID, 2026, 1, now)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("counts unexpired carryover", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		expiry := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		deps.repo.findLedgerFn = func(ctx context.Context, cid, eid, ltid string, year int) (*ledger.BalanceLedger, error) {
			return &ledger.BalanceLedger{CarriedOverDays: 3, CarryoverExpiry: &expiry}, nil
		}

		ok, err := deps.service.HasSufficient(ctx, companyID.String(), employeeID, leaveTypeID, 2026, 3, now)

		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = deps.service.HasSufficient(ctx, companyID.String(), employeeID, leaveTypeID, 2026, 3, now.AddDate(0, 2, 0))

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLedgerService_Adjust(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	t.Run("success records delta and reason", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		var audited bool
		deps.repo.findOrCreateLedgerFn = func(ctx context.Context, l *ledger.BalanceLedger) error {
			l.EntitledDays = 10
			l.Version = 1
			return nil
		}
		deps.audits.recordFn = func(ctx context.Context, cid uuid.UUID, actorID, actorRole, action, entityType, entityID string, details any) error {
			audited = true
			assert.Equal(t, "hr-user", actorID)
			return nil
		}

		resp, err := deps.service.Adjust(ctx, companyID, "hr-user", "hr", ledger.AdjustmentRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			Year:        2026,
			Days:        -2,
			Reason:      "correction after migration",
		})

		assert.NoError(t, err)
		assert.Equal(t, -2.0, resp.AdjustmentDays)
		assert.Equal(t, 8.0, resp.Remaining)
		assert.True(t, audited)
	})

	t.Run("negative reason required", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		_, err := deps.service.Adjust(ctx, companyID, "hr-user", "hr", ledger.AdjustmentRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			Year:        2026,
			Days:        -2,
		})

		assert.ErrorIs(t, err, ledgererrors.ErrReasonRequired)
	})

	t.Run("negative adjustment below zero", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.findOrCreateLedgerFn = func(ctx context.Context, l *ledger.BalanceLedger) error {
			l.EntitledDays = 3
			l.Version = 1
			return nil
		}

		_, err := deps.service.Adjust(ctx, companyID, "hr-user", "hr", ledger.AdjustmentRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			Year:        2026,
			Days:        -5,
			Reason:      "too much",
		})

		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
	})
}

func TestLedgerService_RunAccrual(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	leaveTypeID := uuid.New()
	now := time.Date(2026, 7, 1, 2, 0, 0, 0, time.UTC)

	activeConfig := ledger.AccrualConfig{
		ID:            uuid.New(),
		CompanyID:     companyID,
		LeaveTypeID:   leaveTypeID,
		Frequency:     ledger.FrequencyMonthly,
		DaysPerPeriod: 1.5,
	}

	t.Run("success credits every employee and audits each posting", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		activeID := uuid.New()
		suspendedID := uuid.New()
		deps.repo.findActiveConfigsFn = func(ctx context.Context, cid string) ([]ledger.AccrualConfig, error) {
			return []ledger.AccrualConfig{activeConfig}, nil
		}
		// Without pause flags a suspended employee keeps accruing.
		deps.employees.directoryFn = func(ctx context.Context, cid string) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{
				{ID: activeID.String(), Status: employee.StatusActive},
				{ID: suspendedID.String(), Status: employee.StatusSuspended},
			}, nil
		}

		var posted []ledger.AccrualPosting
		deps.repo.createAccrualPostingFn = func(ctx context.Context, p *ledger.AccrualPosting) error {
			posted = append(posted, *p)
			return nil
		}
		deps.repo.updateLedgerVersionedFn = func(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
			assert.Equal(t, 1.5, l.AccruedDays)
			return true, nil
		}
		var auditedActions []string
		deps.audits.recordFn = func(ctx context.Context, cid uuid.UUID, actorID, actorRole, action, entityType, entityID string, details any) error {
			auditedActions = append(auditedActions, action)
			assert.Equal(t, "scheduler", actorID)
			return nil
		}

		summary, err := deps.service.RunAccrual(ctx, companyID.String(), now)

		assert.NoError(t, err)
		assert.Equal(t, 2, summary.Processed)
		assert.Equal(t, 0, summary.Skipped)
		assert.Len(t, posted, 2)
		assert.Equal(t, "2026-07", posted[0].Period)
		assert.Equal(t, activeID, posted[0].EmployeeID)
		assert.Equal(t, []string{audit.ActionAccrualPosted, audit.ActionAccrualPosted}, auditedActions)
	})

	t.Run("suspension pause flag skips suspended employees", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		activeID := uuid.New()
		paused := activeConfig
		paused.PauseDuringSuspension = true

		deps.repo.findActiveConfigsFn = func(ctx context.Context, cid string) ([]ledger.AccrualConfig, error) {
			return []ledger.AccrualConfig{paused}, nil
		}
		deps.employees.directoryFn = func(ctx context.Context, cid string) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{
				{ID: activeID.String(), Status: employee.StatusActive},
				{ID: uuid.New().String(), Status: employee.StatusSuspended},
			}, nil
		}

		var posted []ledger.AccrualPosting
		deps.repo.createAccrualPostingFn = func(ctx context.Context, p *ledger.AccrualPosting) error {
			posted = append(posted, *p)
			return nil
		}

		summary, err := deps.service.RunAccrual(ctx, companyID.String(), now)

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Processed)
		assert.Len(t, posted, 1)
		assert.Equal(t, activeID, posted[0].EmployeeID)
	})

	t.Run("unpaid leave pause flag skips employees away on pausing leave", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		workingID := uuid.New()
		awayID := uuid.New()
		paused := activeConfig
		paused.PauseDuringUnpaidLeave = true

		deps.repo.findActiveConfigsFn = func(ctx context.Context, cid string) ([]ledger.AccrualConfig, error) {
			return []ledger.AccrualConfig{paused}, nil
		}
		deps.employees.directoryFn = func(ctx context.Context, cid string) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{
				{ID: workingID.String(), Status: employee.StatusActive},
				{ID: awayID.String(), Status: employee.StatusActive},
			}, nil
		}
		deps.repo.onPausingLeaveFn = func(ctx context.Context, cid string, asOf time.Time) ([]uuid.UUID, error) {
			assert.Equal(t, now, asOf)
			return []uuid.UUID{awayID}, nil
		}

		var posted []ledger.AccrualPosting
		deps.repo.createAccrualPostingFn = func(ctx context.Context, p *ledger.AccrualPosting) error {
			posted = append(posted, *p)
			return nil
		}

		summary, err := deps.service.RunAccrual(ctx, companyID.String(), now)

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Processed)
		assert.Len(t, posted, 1)
		assert.Equal(t, workingID, posted[0].EmployeeID)
	})

	t.Run("rerun skips already posted period", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.findActiveConfigsFn = func(ctx context.Context, cid string) ([]ledger.AccrualConfig, error) {
			return []ledger.AccrualConfig{activeConfig}, nil
		}
		deps.employees.directoryFn = func(ctx context.Context, cid string) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{{ID: uuid.New().String(), Status: employee.StatusActive}}, nil
		}
		deps.repo.createAccrualPostingFn = func(ctx context.Context, p *ledger.AccrualPosting) error {
			return uniqueViolation()
		}
		deps.repo.updateLedgerVersionedFn = func(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
			t.Fatal("ledger must not be credited when the posting already exists")
			return false, nil
		}

		summary, err := deps.service.RunAccrual(ctx, companyID.String(), now)

		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Processed)
		assert.Equal(t, 1, summary.Skipped)
	})

	t.Run("missing leave type fails the config batch", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.findActiveConfigsFn = func(ctx context.Context, cid string) ([]ledger.AccrualConfig, error) {
			return []ledger.AccrualConfig{activeConfig}, nil
		}
		deps.leaveTypes.getByIDFn = func(ctx context.Context, cid, id string) (leavetype.LeaveType, error) {
			return leavetype.LeaveType{}, gorm.ErrRecordNotFound
		}
		deps.employees.directoryFn = func(ctx context.Context, cid string) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{{ID: uuid.New().String(), Status: employee.StatusActive}}, nil
		}

		summary, err := deps.service.RunAccrual(ctx, companyID.String(), now)

		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Processed)
		assert.Equal(t, 1, summary.Failed)
	})

	t.Run("failed credit takes the posting back out", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.findActiveConfigsFn = func(ctx context.Context, cid string) ([]ledger.AccrualConfig, error) {
			return []ledger.AccrualConfig{activeConfig}, nil
		}
		deps.employees.directoryFn = func(ctx context.Context, cid string) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{{ID: uuid.New().String(), Status: employee.StatusActive}}, nil
		}

		var postingID uuid.UUID
		deps.repo.createAccrualPostingFn = func(ctx context.Context, p *ledger.AccrualPosting) error {
			postingID = p.ID
			return nil
		}
		deps.repo.updateLedgerVersionedFn = func(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
			return false, errors.New("db down")
		}
		var deleted []uuid.UUID
		deps.repo.deleteAccrualPostingFn = func(ctx context.Context, id uuid.UUID) error {
			deleted = append(deleted, id)
			return nil
		}

		summary, err := deps.service.RunAccrual(ctx, companyID.String(), now)

		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Processed)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, []uuid.UUID{postingID}, deleted)
	})

	t.Run("max balance caps the credit", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		capped := activeConfig
		capped.MaxBalance = 10

		deps.repo.findActiveConfigsFn = func(ctx context.Context, cid string) ([]ledger.AccrualConfig, error) {
			return []ledger.AccrualConfig{capped}, nil
		}
		deps.employees.directoryFn = func(ctx context.Context, cid string) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{{ID: uuid.New().String(), Status: employee.StatusActive}}, nil
		}
		deps.repo.findOrCreateLedgerFn = func(ctx context.Context, l *ledger.BalanceLedger) error {
			l.AccruedDays = 9.5
			l.Version = 1
			return nil
		}
		deps.repo.updateLedgerVersionedFn = func(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
			assert.Equal(t, 10.0, l.AccruedDays)
			return true, nil
		}

		summary, err := deps.service.RunAccrual(ctx, companyID.String(), now)

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Processed)
	})

	t.Run("one failing item does not stop the run", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		first := uuid.New()
		deps.repo.findActiveConfigsFn = func(ctx context.Context, cid string) ([]ledger.AccrualConfig, error) {
			return []ledger.AccrualConfig{activeConfig}, nil
		}
		deps.employees.directoryFn = func(ctx context.Context, cid string) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{
				{ID: first.String(), Status: employee.StatusActive},
				{ID: uuid.New().String(), Status: employee.StatusActive},
			}, nil
		}
		deps.repo.createAccrualPostingFn = func(ctx context.Context, p *ledger.AccrualPosting) error {
			if p.EmployeeID == first {
				return errors.New("db down")
			}
			return nil
		}

		summary, err := deps.service.RunAccrual(ctx, companyID.String(), now)

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Processed)
		assert.Equal(t, 1, summary.Failed)
	})
}

func TestLedgerService_RunCarryover(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	leaveTypeID := uuid.New()
	employeeID := uuid.New()

	t.Run("success caps carryover and stamps expiry", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.findActiveConfigsFn = func(ctx context.Context, cid string) ([]ledger.AccrualConfig, error) {
			return []ledger.AccrualConfig{{
				LeaveTypeID:           leaveTypeID,
				CarryoverLimit:        5,
				CarryoverExpiryMonths: 3,
			}}, nil
		}
		deps.repo.listLedgersForYearFn = func(ctx context.Context, cid string, year int) ([]ledger.BalanceLedger, error) {
			assert.Equal(t, 2026, year)
			return []ledger.BalanceLedger{{
				CompanyID:    companyID,
				EmployeeID:   employeeID,
				LeaveTypeID:  leaveTypeID,
				Year:         2026,
				EntitledDays: 12,
				UsedDays:     4,
			}}, nil
		}

		var seeded *ledger.BalanceLedger
		deps.repo.updateLedgerVersionedFn = func(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
			seeded = l
			return true, nil
		}
		var auditedActions []string
		deps.audits.recordFn = func(ctx context.Context, cid uuid.UUID, actorID, actorRole, action, entityType, entityID string, details any) error {
			auditedActions = append(auditedActions, action)
			assert.Equal(t, "scheduler", actorID)
			return nil
		}

		summary, err := deps.service.RunCarryover(ctx, companyID.String(), 2026)

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Processed)
		assert.NotNil(t, seeded)
		assert.Equal(t, 5.0, seeded.CarriedOverDays)
		assert.NotNil(t, seeded.CarryoverExpiry)
		assert.Equal(t, "2027-03-31", seeded.CarryoverExpiry.Format("2006-01-02"))
		assert.Equal(t, []string{audit.ActionCarryoverPosted}, auditedActions)
	})

	t.Run("rerun skips already carried employees", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.listLedgersForYearFn = func(ctx context.Context, cid string, year int) ([]ledger.BalanceLedger, error) {
			return []ledger.BalanceLedger{{
				CompanyID:   companyID,
				EmployeeID:  employeeID,
				LeaveTypeID: leaveTypeID,
				Year:        2026,
			}}, nil
		}
		deps.repo.createCarryoverPostingFn = func(ctx context.Context, p *ledger.CarryoverPosting) error {
			return uniqueViolation()
		}

		summary, err := deps.service.RunCarryover(ctx, companyID.String(), 2026)

		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Processed)
		assert.Equal(t, 1, summary.Skipped)
	})

	t.Run("failed seed takes the posting back out", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)

		deps.repo.listLedgersForYearFn = func(ctx context.Context, cid string, year int) ([]ledger.BalanceLedger, error) {
			return []ledger.BalanceLedger{{
				CompanyID:    companyID,
				EmployeeID:   employeeID,
				LeaveTypeID:  leaveTypeID,
				Year:         2026,
				EntitledDays: 6,
			}}, nil
		}

		var postingID uuid.UUID
		deps.repo.createCarryoverPostingFn = func(ctx context.Context, p *ledger.CarryoverPosting) error {
			postingID = p.ID
			return nil
		}
		deps.repo.updateLedgerVersionedFn = func(ctx context.Context, l *ledger.BalanceLedger) (bool, error) {
			return false, errors.New("db down")
		}
		var deleted []uuid.UUID
		deps.repo.deleteCarryoverPostingFn = func(ctx context.Context, id uuid.UUID) error {
			deleted = append(deleted, id)
			return nil
		}

		summary, err := deps.service.RunCarryover(ctx, companyID.String(), 2026)

		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Processed)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, []uuid.UUID{postingID}, deleted)
	})
}
