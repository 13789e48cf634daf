package leavetype

import (
	"context"
	"errors"

	leavetypeerrors "go-leave-engine/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveType, error)
	Update(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidCompanyID
	}

	lt := &LeaveType{
		ID:                       uuid.New(),
		CompanyID:                companyUUID,
		Code:                     req.Code,
		Name:                     req.Name,
		Category:                 req.Category,
		IsPaid:                   boolOrDefault(req.IsPaid, true),
		DeductsFromBalance:       boolOrDefault(req.DeductsFromBalance, true),
		RequiresAttachment:       req.RequiresAttachment,
		AttachmentType:           req.AttachmentType,
		MinTenureMonths:          req.MinTenureMonths,
		MaxDurationDays:          req.MaxDurationDays,
		AllowPostLeaveSubmission: req.AllowPostLeaveSubmission,
		GracePeriodDays:          intOrDefault(req.GracePeriodDays, 30),
		PauseAccrual:             req.PauseAccrual,
		PayrollPayCode:           req.PayrollPayCode,
	}
	if lt.Category == "" {
		lt.Category = "GENERAL"
	}

	if err := s.repo.Create(ctx, lt); err != nil {
		if isUniqueViolation(err) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrDuplicateCode
		}
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("leave type created",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("code", lt.Code),
	)
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveType, error) {
	lt, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveType{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveType{}, err
	}
	return *lt, nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	lt.Name = req.Name
	if req.Category != "" {
		lt.Category = req.Category
	}
	lt.IsPaid = boolOrDefault(req.IsPaid, lt.IsPaid)
	lt.DeductsFromBalance = boolOrDefault(req.DeductsFromBalance, lt.DeductsFromBalance)
	lt.RequiresAttachment = req.RequiresAttachment
	lt.AttachmentType = req.AttachmentType
	lt.MinTenureMonths = req.MinTenureMonths
	lt.MaxDurationDays = req.MaxDurationDays
	lt.AllowPostLeaveSubmission = req.AllowPostLeaveSubmission
	lt.GracePeriodDays = intOrDefault(req.GracePeriodDays, lt.GracePeriodDays)
	lt.PauseAccrual = req.PauseAccrual
	lt.PayrollPayCode = req.PayrollPayCode

	if err := s.repo.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed", zap.String("leave_type_id", id), zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	return mapToResponse(*lt), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	// Soft delete; approved requests may still reference the type.
	return s.repo.Delete(ctx, companyID, id)
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                       lt.ID.String(),
		CompanyID:                lt.CompanyID.String(),
		Code:                     lt.Code,
		Name:                     lt.Name,
		Category:                 lt.Category,
		IsPaid:                   lt.IsPaid,
		DeductsFromBalance:       lt.DeductsFromBalance,
		RequiresAttachment:       lt.RequiresAttachment,
		AttachmentType:           lt.AttachmentType,
		MinTenureMonths:          lt.MinTenureMonths,
		MaxDurationDays:          lt.MaxDurationDays,
		AllowPostLeaveSubmission: lt.AllowPostLeaveSubmission,
		GracePeriodDays:          lt.GracePeriodDays,
		PauseAccrual:             lt.PauseAccrual,
		PayrollPayCode:           lt.PayrollPayCode,
	}
}
