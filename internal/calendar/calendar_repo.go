package calendar

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=calendar_repo.go -destination=mock/calendar_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cal *HolidayCalendar) error
	FindAllByCompany(ctx context.Context, companyID string) ([]HolidayCalendar, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*HolidayCalendar, error)
	Delete(ctx context.Context, companyID, id string) error
	AddHoliday(ctx context.Context, h *Holiday) error
	RemoveHoliday(ctx context.Context, calendarID, holidayID string) error
	AddBlockedPeriod(ctx context.Context, b *BlockedPeriod) error
	RemoveBlockedPeriod(ctx context.Context, calendarID, blockedPeriodID string) error
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

func (r *repository) Create(ctx context.Context, cal *HolidayCalendar) error {
	return r.db.WithContext(ctx).Create(cal).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]HolidayCalendar, error) {
	var cals []HolidayCalendar
	err := r.db.WithContext(ctx).
		Preload("Holidays").
		Preload("BlockedPeriods").
		Where("company_id = ?", companyID).
		Order("country").
		Find(&cals).Error
	return cals, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*HolidayCalendar, error) {
	var cal HolidayCalendar
	err := r.db.WithContext(ctx).
		Preload("Holidays").
		Preload("BlockedPeriods").
		Where("company_id = ?", companyID).
		First(&cal, "id = ?", id).Error
	return &cal, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&HolidayCalendar{}, "id = ?", id).Error
}

func (r *repository) AddHoliday(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) RemoveHoliday(ctx context.Context, calendarID, holidayID string) error {
	return r.db.WithContext(ctx).
		Where("calendar_id = ?", calendarID).
		Delete(&Holiday{}, "id = ?", holidayID).Error
}

func (r *repository) AddBlockedPeriod(ctx context.Context, b *BlockedPeriod) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) RemoveBlockedPeriod(ctx context.Context, calendarID, blockedPeriodID string) error {
	return r.db.WithContext(ctx).
		Where("calendar_id = ?", calendarID).
		Delete(&BlockedPeriod{}, "id = ?", blockedPeriodID).Error
}
