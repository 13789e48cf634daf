package audit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *AuditEntry) error
	Query(ctx context.Context, companyID string, filter QueryFilter) ([]AuditEntry, int64, error)
	Timeline(ctx context.Context, companyID, entityType, entityID string) ([]AuditEntry, error)
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

func (r *repository) Create(ctx context.Context, entry *AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) Query(ctx context.Context, companyID string, filter QueryFilter) ([]AuditEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&AuditEntry{}).Where("company_id = ?", companyID)

	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var entries []AuditEntry
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *repository) Timeline(ctx context.Context, companyID, entityType, entityID string) ([]AuditEntry, error) {
	var entries []AuditEntry
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND entity_type = ? AND entity_id = ?", companyID, entityType, entityID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
