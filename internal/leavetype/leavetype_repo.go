package leavetype

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindAllByCompany(ctx context.Context, companyID string) ([]LeaveType, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveType, error)
	Update(ctx context.Context, lt *LeaveType) error
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("code").
		Find(&types).Error
	return types, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&lt, "id = ?", id).Error
	return &lt, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&LeaveType{}, "id = ?", id).Error
}
