package workflow

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=workflow_repo.go -destination=mock/workflow_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateConfig(ctx context.Context, cfg *WorkflowConfig) error
	FindConfigs(ctx context.Context, companyID string) ([]WorkflowConfig, error)
	FindConfigByID(ctx context.Context, companyID, id string) (*WorkflowConfig, error)
	FindActiveConfigForLeaveType(ctx context.Context, companyID, leaveTypeID string) (*WorkflowConfig, error)
	FindActiveDefaultConfig(ctx context.Context, companyID string) (*WorkflowConfig, error)
	UpdateConfig(ctx context.Context, cfg *WorkflowConfig) error
	ReplaceLevels(ctx context.Context, configID string, levels []WorkflowLevel) error
	DeleteConfig(ctx context.Context, companyID, id string) error

	CreateDelegation(ctx context.Context, d *Delegation) error
	FindDelegations(ctx context.Context, companyID string) ([]Delegation, error)
	FindActiveDelegations(ctx context.Context, companyID, delegatorID string, at time.Time) ([]Delegation, error)
	DeleteDelegation(ctx context.Context, companyID, id string) error
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

func (r *repository) CreateConfig(ctx context.Context, cfg *WorkflowConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) FindConfigs(ctx context.Context, companyID string) ([]WorkflowConfig, error) {
	var cfgs []WorkflowConfig
	err := r.db.WithContext(ctx).
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&cfgs).Error
	return cfgs, err
}

func (r *repository) FindConfigByID(ctx context.Context, companyID, id string) (*WorkflowConfig, error) {
	var cfg WorkflowConfig
	err := r.db.WithContext(ctx).
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		Where("company_id = ?", companyID).
		First(&cfg, "id = ?", id).Error
	return &cfg, err
}

func (r *repository) FindActiveConfigForLeaveType(ctx context.Context, companyID, leaveTypeID string) (*WorkflowConfig, error) {
	var cfg WorkflowConfig
	err := r.db.WithContext(ctx).
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		Where("company_id = ? AND leave_type_id = ? AND active = true", companyID, leaveTypeID).
		Order("created_at DESC").
		First(&cfg).Error
	return &cfg, err
}

func (r *repository) FindActiveDefaultConfig(ctx context.Context, companyID string) (*WorkflowConfig, error) {
	var cfg WorkflowConfig
	err := r.db.WithContext(ctx).
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		Where("company_id = ? AND leave_type_id IS NULL AND active = true", companyID).
		Order("created_at DESC").
		First(&cfg).Error
	return &cfg, err
}

func (r *repository) UpdateConfig(ctx context.Context, cfg *WorkflowConfig) error {
	return r.db.WithContext(ctx).
		Model(&WorkflowConfig{}).
		Where("id = ? AND company_id = ?", cfg.ID, cfg.CompanyID).
		Updates(map[string]interface{}{
			"name":   cfg.Name,
			"active": cfg.Active,
		}).Error
}

func (r *repository) ReplaceLevels(ctx context.Context, configID string, levels []WorkflowLevel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("config_id = ?", configID).Delete(&WorkflowLevel{}).Error; err != nil {
			return err
		}
		if len(levels) == 0 {
			return nil
		}
		return tx.Create(&levels).Error
	})
}

func (r *repository) DeleteConfig(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&WorkflowConfig{}, "id = ?", id).Error
}

func (r *repository) CreateDelegation(ctx context.Context, d *Delegation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindDelegations(ctx context.Context, companyID string) ([]Delegation, error) {
	var ds []Delegation
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("start_date ASC").
		Find(&ds).Error
	return ds, err
}

func (r *repository) FindActiveDelegations(ctx context.Context, companyID, delegatorID string, at time.Time) ([]Delegation, error) {
	var ds []Delegation
	day := at.Format("2006-01-02")
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND delegator_id = ? AND start_date <= ? AND end_date >= ?",
			companyID, delegatorID, day, day).
		Order("start_date ASC").
		Find(&ds).Error
	return ds, err
}

func (r *repository) DeleteDelegation(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&Delegation{}, "id = ?", id).Error
}
