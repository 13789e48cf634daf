package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error)
	FindByUserIDAndCompany(ctx context.Context, companyID, userID string) (*Employee, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByRole(ctx context.Context, companyID, role string) ([]Employee, error)
	FindTeam(ctx context.Context, companyID, managerID string) ([]Employee, error)
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

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByUserIDAndCompany(ctx context.Context, companyID, userID string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&e, "user_id = ?", userID).Error
	return &e, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("full_name").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByRole(ctx context.Context, companyID, role string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("role = ?", role).
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindTeam(ctx context.Context, companyID, managerID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("manager_id = ?", managerID).
		Find(&employees).Error
	return employees, err
}
