package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-leave-engine/internal/audit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAuditRepository struct {
	createFn   func(ctx context.Context, entry *audit.AuditEntry) error
	queryFn    func(ctx context.Context, companyID string, filter audit.QueryFilter) ([]audit.AuditEntry, int64, error)
	timelineFn func(ctx context.Context, companyID, entityType, entityID string) ([]audit.AuditEntry, error)
}

func (f *fakeAuditRepository) WithTx(tx *gorm.DB) audit.Repository { return f }

func (f *fakeAuditRepository) Create(ctx context.Context, entry *audit.AuditEntry) error {
	if f.createFn != nil {
		return f.createFn(ctx, entry)
	}
	return nil
}

func (f *fakeAuditRepository) Query(ctx context.Context, companyID string, filter audit.QueryFilter) ([]audit.AuditEntry, int64, error) {
	if f.queryFn != nil {
		return f.queryFn(ctx, companyID, filter)
	}
	return nil, 0, nil
}

func (f *fakeAuditRepository) Timeline(ctx context.Context, companyID, entityType, entityID string) ([]audit.AuditEntry, error) {
	if f.timelineFn != nil {
		return f.timelineFn(ctx, companyID, entityType, entityID)
	}
	return nil, nil
}

func setupAuditServiceTest(t *testing.T) (audit.Service, *fakeAuditRepository) {
	t.Helper()
	repo := &fakeAuditRepository{}
	return audit.NewService(repo), repo
}

func TestAuditService_Record(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("success marshals details", func(t *testing.T) {
		svc, repo := setupAuditServiceTest(t)

		var written *audit.AuditEntry
		repo.createFn = func(ctx context.Context, entry *audit.AuditEntry) error {
			written = entry
			return nil
		}

		err := svc.Record(ctx, companyID, "actor-1", "HR", "LEAVE_REQUEST_APPROVED", "leave_request", "req-1", map[string]any{
			"total_days": 3.0,
		})

		assert.NoError(t, err)
		assert.NotNil(t, written)
		assert.Equal(t, companyID, written.CompanyID)
		assert.Equal(t, "LEAVE_REQUEST_APPROVED", written.Action)

		var details map[string]any
		assert.NoError(t, json.Unmarshal([]byte(written.Details), &details))
		assert.Equal(t, 3.0, details["total_days"])
	})

	t.Run("success unmarshalable details still writes the entry", func(t *testing.T) {
		svc, repo := setupAuditServiceTest(t)

		var written *audit.AuditEntry
		repo.createFn = func(ctx context.Context, entry *audit.AuditEntry) error {
			written = entry
			return nil
		}

		err := svc.Record(ctx, companyID, "actor-1", "HR", "LEAVE_REQUEST_APPROVED", "leave_request", "req-1", make(chan int))

		assert.NoError(t, err)
		assert.NotNil(t, written)
		assert.Empty(t, written.Details)
	})

	t.Run("negative repository failure surfaces", func(t *testing.T) {
		svc, repo := setupAuditServiceTest(t)

		repo.createFn = func(ctx context.Context, entry *audit.AuditEntry) error {
			return errors.New("connection reset")
		}

		err := svc.Record(ctx, companyID, "actor-1", "HR", "BALANCE_ADJUSTED", "balance_ledger", "led-1", nil)

		assert.Error(t, err)
	})
}

func TestAuditService_Timeline(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success maps entries in order", func(t *testing.T) {
		svc, repo := setupAuditServiceTest(t)

		first := audit.AuditEntry{
			ID:         uuid.New(),
			ActorID:    "actor-1",
			Action:     "LEAVE_REQUEST_CREATED",
			EntityType: "leave_request",
			EntityID:   "req-1",
			CreatedAt:  time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		}
		second := audit.AuditEntry{
			ID:         uuid.New(),
			ActorID:    "actor-2",
			Action:     "LEAVE_REQUEST_APPROVED",
			EntityType: "leave_request",
			EntityID:   "req-1",
			CreatedAt:  time.Date(2026, 8, 2, 10, 30, 0, 0, time.UTC),
		}
		repo.timelineFn = func(ctx context.Context, cid, entityType, entityID string) ([]audit.AuditEntry, error) {
			assert.Equal(t, "leave_request", entityType)
			assert.Equal(t, "req-1", entityID)
			return []audit.AuditEntry{first, second}, nil
		}

		entries, err := svc.Timeline(ctx, companyID, "leave_request", "req-1")

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, "LEAVE_REQUEST_CREATED", entries[0].Action)
		assert.Equal(t, "2026-08-02T10:30:00Z", entries[1].CreatedAt)
	})
}

func TestAuditService_Query(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success passes filter through and returns total", func(t *testing.T) {
		svc, repo := setupAuditServiceTest(t)

		repo.queryFn = func(ctx context.Context, cid string, filter audit.QueryFilter) ([]audit.AuditEntry, int64, error) {
			assert.Equal(t, "actor-9", filter.ActorID)
			assert.Equal(t, "BALANCE_ADJUSTED", filter.Action)
			return []audit.AuditEntry{{ID: uuid.New(), Action: filter.Action}}, 42, nil
		}

		entries, total, err := svc.Query(ctx, companyID, audit.QueryFilter{
			ActorID: "actor-9",
			Action:  "BALANCE_ADJUSTED",
		})

		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, int64(42), total)
	})
}
