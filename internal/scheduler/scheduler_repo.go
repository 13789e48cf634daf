package scheduler

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=scheduler_repo.go -destination=mock/scheduler_repo_mock.go -package=mock
type Repository interface {
	// DistinctCompanyIDs returns every company that has scheduler relevant
	// data, so jobs can iterate tenants without a company registry.
	DistinctCompanyIDs(ctx context.Context) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) DistinctCompanyIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT company_id::text FROM accrual_configs WHERE active = TRUE
		UNION
		SELECT company_id::text FROM leave_requests WHERE deleted_at IS NULL
	`).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
