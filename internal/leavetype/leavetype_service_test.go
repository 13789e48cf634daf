package leavetype_test

import (
	"context"
	"testing"

	"go-leave-engine/internal/leavetype"
	leavetypeerrors "go-leave-engine/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepository struct {
	createFn             func(ctx context.Context, lt *leavetype.LeaveType) error
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]leavetype.LeaveType, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*leavetype.LeaveType, error)
	updateFn             func(ctx context.Context, lt *leavetype.LeaveType) error
	deleteFn             func(ctx context.Context, companyID, id string) error
}

func (f *fakeLeaveTypeRepository) WithTx(tx *gorm.DB) leavetype.Repository { return f }

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]leavetype.LeaveType, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leavetype.LeaveType, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func setupLeaveTypeServiceTest(t *testing.T) (leavetype.Service, *fakeLeaveTypeRepository) {
	t.Helper()
	repo := &fakeLeaveTypeRepository{}
	return leavetype.NewService(repo), repo
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success applies paid defaults", func(t *testing.T) {
		svc, repo := setupLeaveTypeServiceTest(t)

		var created *leavetype.LeaveType
		repo.createFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			created = lt
			return nil
		}

		resp, err := svc.Create(ctx, companyID, leavetype.CreateLeaveTypeRequest{
			Code: "ANNUAL",
			Name: "Annual Leave",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.True(t, resp.IsPaid)
		assert.True(t, resp.DeductsFromBalance)
		assert.Equal(t, "GENERAL", resp.Category)
		assert.Equal(t, 30, resp.GracePeriodDays)
	})

	t.Run("success explicit grace window overrides the default", func(t *testing.T) {
		svc, _ := setupLeaveTypeServiceTest(t)

		grace := 7
		resp, err := svc.Create(ctx, companyID, leavetype.CreateLeaveTypeRequest{
			Code:            "SICK",
			Name:            "Sick Leave",
			GracePeriodDays: &grace,
		})

		assert.NoError(t, err)
		assert.Equal(t, 7, resp.GracePeriodDays)
	})

	t.Run("success unpaid type keeps explicit flags", func(t *testing.T) {
		svc, _ := setupLeaveTypeServiceTest(t)

		unpaid := false
		resp, err := svc.Create(ctx, companyID, leavetype.CreateLeaveTypeRequest{
			Code:               "UNPAID",
			Name:               "Unpaid Leave",
			IsPaid:             &unpaid,
			DeductsFromBalance: &unpaid,
		})

		assert.NoError(t, err)
		assert.False(t, resp.IsPaid)
		assert.False(t, resp.DeductsFromBalance)
	})

	t.Run("negative duplicate code", func(t *testing.T) {
		svc, repo := setupLeaveTypeServiceTest(t)

		repo.createFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			return &pgconn.PgError{Code: "23505"}
		}

		_, err := svc.Create(ctx, companyID, leavetype.CreateLeaveTypeRequest{
			Code: "ANNUAL",
			Name: "Annual Leave",
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrDuplicateCode)
	})

	t.Run("negative malformed company id", func(t *testing.T) {
		svc, _ := setupLeaveTypeServiceTest(t)

		_, err := svc.Create(ctx, "not-a-uuid", leavetype.CreateLeaveTypeRequest{
			Code: "ANNUAL",
			Name: "Annual Leave",
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidCompanyID)
	})
}

func TestLeaveTypeService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success keeps flags when omitted", func(t *testing.T) {
		svc, repo := setupLeaveTypeServiceTest(t)

		existing := leavetype.LeaveType{
			ID:        uuid.New(),
			CompanyID: uuid.MustParse(companyID),
			Code:      "SICK",
			Name:      "Sick Leave",
			Category:  "MEDICAL",
			IsPaid:    true,
		}
		repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leavetype.LeaveType, error) {
			return &existing, nil
		}

		resp, err := svc.Update(ctx, companyID, existing.ID.String(), leavetype.UpdateLeaveTypeRequest{
			Name:               "Sick Leave",
			RequiresAttachment: true,
			AttachmentType:     "medical_certificate",
		})

		assert.NoError(t, err)
		assert.True(t, resp.IsPaid)
		assert.Equal(t, "MEDICAL", resp.Category)
		assert.True(t, resp.RequiresAttachment)
		assert.Equal(t, "medical_certificate", resp.AttachmentType)
	})

	t.Run("negative unknown type", func(t *testing.T) {
		svc, _ := setupLeaveTypeServiceTest(t)

		_, err := svc.Update(ctx, companyID, uuid.New().String(), leavetype.UpdateLeaveTypeRequest{Name: "x"})

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})
}

func TestLeaveTypeService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("negative not found", func(t *testing.T) {
		svc, _ := setupLeaveTypeServiceTest(t)

		_, err := svc.GetByID(ctx, companyID, uuid.New().String())

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})
}
