package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-leave-engine/internal/ledger"
	"go-leave-engine/internal/request"
	"go-leave-engine/internal/scheduler"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeSchedulerRepository struct {
	distinctCompanyIDsFn func(ctx context.Context) ([]string, error)
}

func (f *fakeSchedulerRepository) DistinctCompanyIDs(ctx context.Context) ([]string, error) {
	if f.distinctCompanyIDsFn != nil {
		return f.distinctCompanyIDsFn(ctx)
	}
	return nil, nil
}

type fakeLedgerService struct {
	runAccrualFn   func(ctx context.Context, companyID string, now time.Time) (ledger.RunSummary, error)
	runCarryoverFn func(ctx context.Context, companyID string, fromYear int) (ledger.RunSummary, error)
}

func (f *fakeLedgerService) CreateAccrualConfig(ctx context.Context, companyID string, req ledger.CreateAccrualConfigRequest) (ledger.AccrualConfigResponse, error) {
	return ledger.AccrualConfigResponse{}, nil
}

func (f *fakeLedgerService) GetAccrualConfigs(ctx context.Context, companyID string) ([]ledger.AccrualConfigResponse, error) {
	return nil, nil
}

func (f *fakeLedgerService) UpdateAccrualConfig(ctx context.Context, companyID, id string, req ledger.UpdateAccrualConfigRequest) (ledger.AccrualConfigResponse, error) {
	return ledger.AccrualConfigResponse{}, nil
}

func (f *fakeLedgerService) DeleteAccrualConfig(ctx context.Context, companyID, id string) error {
	return nil
}

func (f *fakeLedgerService) GetBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (ledger.BalanceResponse, error) {
	return ledger.BalanceResponse{}, nil
}

func (f *fakeLedgerService) ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]ledger.BalanceResponse, error) {
	return nil, nil
}

func (f *fakeLedgerService) SetEntitlement(ctx context.Context, companyID, actorID, actorRole string, req ledger.SetEntitlementRequest) (ledger.BalanceResponse, error) {
	return ledger.BalanceResponse{}, nil
}

func (f *fakeLedgerService) Adjust(ctx context.Context, companyID, actorID, actorRole string, req ledger.AdjustmentRequest) (ledger.BalanceResponse, error) {
	return ledger.BalanceResponse{}, nil
}

func (f *fakeLedgerService) HasSufficient(ctx context.Context, companyID string, employeeID, leaveTypeID uuid.UUID, year int, days float64, asOf time.Time) (bool, error) {
	return true, nil
}

func (f *fakeLedgerService) Debit(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID, year int, days float64, asOf time.Time, actorID string) error {
	return nil
}

func (f *fakeLedgerService) Refund(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID, year int, days float64, actorID string) error {
	return nil
}

func (f *fakeLedgerService) RunAccrual(ctx context.Context, companyID string, now time.Time) (ledger.RunSummary, error) {
	if f.runAccrualFn != nil {
		return f.runAccrualFn(ctx, companyID, now)
	}
	return ledger.RunSummary{}, nil
}

func (f *fakeLedgerService) RunCarryover(ctx context.Context, companyID string, fromYear int) (ledger.RunSummary, error) {
	if f.runCarryoverFn != nil {
		return f.runCarryoverFn(ctx, companyID, fromYear)
	}
	return ledger.RunSummary{}, nil
}

type fakeRequestService struct {
	runEscalationsFn func(ctx context.Context, companyID string, now time.Time) (request.EscalationSummary, error)
}

func (f *fakeRequestService) Create(ctx context.Context, companyID, userID string, req request.CreateLeaveRequestRequest) (request.LeaveRequestResponse, error) {
	return request.LeaveRequestResponse{}, nil
}

func (f *fakeRequestService) GetByID(ctx context.Context, companyID, id string) (request.LeaveRequestResponse, error) {
	return request.LeaveRequestResponse{}, nil
}

func (f *fakeRequestService) List(ctx context.Context, companyID string, filter request.ListFilter) ([]request.LeaveRequestResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeRequestService) ListMine(ctx context.Context, companyID, userID string, filter request.ListFilter) ([]request.LeaveRequestResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeRequestService) ListPendingApprovals(ctx context.Context, companyID, userID string) ([]request.LeaveRequestResponse, error) {
	return nil, nil
}

func (f *fakeRequestService) Update(ctx context.Context, companyID, userID, id string, req request.UpdateLeaveRequestRequest) (request.LeaveRequestResponse, error) {
	return request.LeaveRequestResponse{}, nil
}

func (f *fakeRequestService) Cancel(ctx context.Context, companyID, userID, id string) (request.LeaveRequestResponse, error) {
	return request.LeaveRequestResponse{}, nil
}

func (f *fakeRequestService) Decide(ctx context.Context, companyID, userID, id string, req request.DecideRequest) (request.LeaveRequestResponse, error) {
	return request.LeaveRequestResponse{}, nil
}

func (f *fakeRequestService) Override(ctx context.Context, companyID, userID, id string, req request.OverrideRequest) (request.LeaveRequestResponse, error) {
	return request.LeaveRequestResponse{}, nil
}

func (f *fakeRequestService) RunEscalations(ctx context.Context, companyID string, now time.Time) (request.EscalationSummary, error) {
	if f.runEscalationsFn != nil {
		return f.runEscalationsFn(ctx, companyID, now)
	}
	return request.EscalationSummary{}, nil
}

type schedulerServiceDeps struct {
	service  scheduler.Service
	repo     *fakeSchedulerRepository
	ledgers  *fakeLedgerService
	requests *fakeRequestService
}

func setupSchedulerServiceTest(t *testing.T) schedulerServiceDeps {
	t.Helper()
	repo := &fakeSchedulerRepository{}
	ledgers := &fakeLedgerService{}
	requests := &fakeRequestService{}
	return schedulerServiceDeps{
		service:  scheduler.NewService(repo, ledgers, requests),
		repo:     repo,
		ledgers:  ledgers,
		requests: requests,
	}
}

func TestSchedulerService_RunAccrual(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC)

	t.Run("success fans out over every company", func(t *testing.T) {
		deps := setupSchedulerServiceTest(t)

		companyA := uuid.New().String()
		companyB := uuid.New().String()
		deps.repo.distinctCompanyIDsFn = func(ctx context.Context) ([]string, error) {
			return []string{companyA, companyB}, nil
		}

		var ran []string
		deps.ledgers.runAccrualFn = func(ctx context.Context, cid string, at time.Time) (ledger.RunSummary, error) {
			ran = append(ran, cid)
			return ledger.RunSummary{Processed: 2, Skipped: 1}, nil
		}

		resp, err := deps.service.RunAccrual(ctx, "", now)

		assert.NoError(t, err)
		assert.Equal(t, scheduler.JobAccrual, resp.Job)
		assert.Equal(t, []string{companyA, companyB}, ran)
		assert.Len(t, resp.Companies, 2)
		assert.Equal(t, 2, resp.Companies[0].Processed)
		assert.Equal(t, 1, resp.Companies[0].Skipped)
	})

	t.Run("success one company failing does not stop the run", func(t *testing.T) {
		deps := setupSchedulerServiceTest(t)

		companyA := uuid.New().String()
		companyB := uuid.New().String()
		deps.repo.distinctCompanyIDsFn = func(ctx context.Context) ([]string, error) {
			return []string{companyA, companyB}, nil
		}
		deps.ledgers.runAccrualFn = func(ctx context.Context, cid string, at time.Time) (ledger.RunSummary, error) {
			if cid == companyA {
				return ledger.RunSummary{}, errors.New("deadlock detected")
			}
			return ledger.RunSummary{Processed: 3}, nil
		}

		resp, err := deps.service.RunAccrual(ctx, "", now)

		assert.NoError(t, err)
		assert.Len(t, resp.Companies, 2)
		assert.Equal(t, "deadlock detected", resp.Companies[0].Error)
		assert.Equal(t, 3, resp.Companies[1].Processed)
		assert.Empty(t, resp.Companies[1].Error)
	})

	t.Run("success explicit company skips discovery", func(t *testing.T) {
		deps := setupSchedulerServiceTest(t)

		deps.repo.distinctCompanyIDsFn = func(ctx context.Context) ([]string, error) {
			t.Fatal("company discovery must not run when a company id is given")
			return nil, nil
		}

		companyID := uuid.New().String()
		resp, err := deps.service.RunAccrual(ctx, companyID, now)

		assert.NoError(t, err)
		assert.Len(t, resp.Companies, 1)
		assert.Equal(t, companyID, resp.Companies[0].CompanyID)
	})

	t.Run("negative discovery failure aborts", func(t *testing.T) {
		deps := setupSchedulerServiceTest(t)

		deps.repo.distinctCompanyIDsFn = func(ctx context.Context) ([]string, error) {
			return nil, errors.New("connection refused")
		}

		_, err := deps.service.RunAccrual(ctx, "", now)

		assert.Error(t, err)
	})
}

func TestSchedulerService_RunCarryover(t *testing.T) {
	ctx := context.Background()

	t.Run("success passes the source year through", func(t *testing.T) {
		deps := setupSchedulerServiceTest(t)

		companyID := uuid.New().String()
		deps.ledgers.runCarryoverFn = func(ctx context.Context, cid string, fromYear int) (ledger.RunSummary, error) {
			assert.Equal(t, 2025, fromYear)
			return ledger.RunSummary{Processed: 5, Skipped: 2}, nil
		}

		resp, err := deps.service.RunCarryover(ctx, companyID, 2025)

		assert.NoError(t, err)
		assert.Equal(t, scheduler.JobCarryover, resp.Job)
		assert.Equal(t, 5, resp.Companies[0].Processed)
		assert.Equal(t, 2, resp.Companies[0].Skipped)
	})
}

func TestSchedulerService_RunEscalations(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	t.Run("success maps escalated count", func(t *testing.T) {
		deps := setupSchedulerServiceTest(t)

		companyID := uuid.New().String()
		deps.requests.runEscalationsFn = func(ctx context.Context, cid string, at time.Time) (request.EscalationSummary, error) {
			assert.Equal(t, now, at)
			return request.EscalationSummary{Escalated: 4, Failed: 1}, nil
		}

		resp, err := deps.service.RunEscalations(ctx, companyID, now)

		assert.NoError(t, err)
		assert.Equal(t, scheduler.JobEscalations, resp.Job)
		assert.Equal(t, 4, resp.Companies[0].Processed)
		assert.Equal(t, 1, resp.Companies[0].Failed)
	})
}
