package calendar_test

import (
	"context"
	"testing"
	"time"

	"go-leave-engine/internal/calendar"
	calendarerrors "go-leave-engine/internal/calendar/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCalendarRepository struct {
	createFn              func(ctx context.Context, cal *calendar.HolidayCalendar) error
	findAllByCompanyFn    func(ctx context.Context, companyID string) ([]calendar.HolidayCalendar, error)
	findByIDAndCompanyFn  func(ctx context.Context, companyID, id string) (*calendar.HolidayCalendar, error)
	deleteFn              func(ctx context.Context, companyID, id string) error
	addHolidayFn          func(ctx context.Context, h *calendar.Holiday) error
	removeHolidayFn       func(ctx context.Context, calendarID, holidayID string) error
	addBlockedPeriodFn    func(ctx context.Context, b *calendar.BlockedPeriod) error
	removeBlockedPeriodFn func(ctx context.Context, calendarID, blockedPeriodID string) error
}

func (f *fakeCalendarRepository) WithTx(tx *gorm.DB) calendar.Repository { return f }

func (f *fakeCalendarRepository) Create(ctx context.Context, cal *calendar.HolidayCalendar) error {
	if f.createFn != nil {
		return f.createFn(ctx, cal)
	}
	return nil
}

func (f *fakeCalendarRepository) FindAllByCompany(ctx context.Context, companyID string) ([]calendar.HolidayCalendar, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeCalendarRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*calendar.HolidayCalendar, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCalendarRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeCalendarRepository) AddHoliday(ctx context.Context, h *calendar.Holiday) error {
	if f.addHolidayFn != nil {
		return f.addHolidayFn(ctx, h)
	}
	return nil
}

func (f *fakeCalendarRepository) RemoveHoliday(ctx context.Context, calendarID, holidayID string) error {
	if f.removeHolidayFn != nil {
		return f.removeHolidayFn(ctx, calendarID, holidayID)
	}
	return nil
}

func (f *fakeCalendarRepository) AddBlockedPeriod(ctx context.Context, b *calendar.BlockedPeriod) error {
	if f.addBlockedPeriodFn != nil {
		return f.addBlockedPeriodFn(ctx, b)
	}
	return nil
}

func (f *fakeCalendarRepository) RemoveBlockedPeriod(ctx context.Context, calendarID, blockedPeriodID string) error {
	if f.removeBlockedPeriodFn != nil {
		return f.removeBlockedPeriodFn(ctx, calendarID, blockedPeriodID)
	}
	return nil
}

func setupCalendarServiceTest(t *testing.T) (calendar.Service, *fakeCalendarRepository) {
	t.Helper()
	repo := &fakeCalendarRepository{}
	return calendar.NewService(repo), repo
}

func companyCalendar(companyID string) calendar.HolidayCalendar {
	return calendar.HolidayCalendar{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		Country:   "ID",
	}
}

func TestCalendarService_WorkingDays(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success excludes weekends", func(t *testing.T) {
		svc, _ := setupCalendarServiceTest(t)

		// Mon 2026-08-03 through Sun 2026-08-09.
		start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC)

		days, err := svc.WorkingDays(ctx, companyID, start, end)

		assert.NoError(t, err)
		assert.Equal(t, 5.0, days)
	})

	t.Run("success excludes fixed holidays", func(t *testing.T) {
		svc, repo := setupCalendarServiceTest(t)

		cal := companyCalendar(companyID)
		cal.Holidays = []calendar.Holiday{
			{Name: "independence day", Date: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)},
		}
		repo.findAllByCompanyFn = func(ctx context.Context, cid string) ([]calendar.HolidayCalendar, error) {
			return []calendar.HolidayCalendar{cal}, nil
		}

		start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC)

		days, err := svc.WorkingDays(ctx, companyID, start, end)

		assert.NoError(t, err)
		assert.Equal(t, 4.0, days)
	})

	t.Run("success recurring holiday matches across years", func(t *testing.T) {
		svc, repo := setupCalendarServiceTest(t)

		cal := companyCalendar(companyID)
		cal.Holidays = []calendar.Holiday{
			{Name: "new year", Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Recurring: true},
		}
		repo.findAllByCompanyFn = func(ctx context.Context, cid string) ([]calendar.HolidayCalendar, error) {
			return []calendar.HolidayCalendar{cal}, nil
		}

		// Thu 2026-01-01 through Fri 2026-01-02.
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

		days, err := svc.WorkingDays(ctx, companyID, start, end)

		assert.NoError(t, err)
		assert.Equal(t, 1.0, days)
	})

	t.Run("success holiday on a weekend is not double counted", func(t *testing.T) {
		svc, repo := setupCalendarServiceTest(t)

		cal := companyCalendar(companyID)
		cal.Holidays = []calendar.Holiday{
			// Sat 2026-08-08.
			{Name: "weekend holiday", Date: time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)},
		}
		repo.findAllByCompanyFn = func(ctx context.Context, cid string) ([]calendar.HolidayCalendar, error) {
			return []calendar.HolidayCalendar{cal}, nil
		}

		start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC)

		days, err := svc.WorkingDays(ctx, companyID, start, end)

		assert.NoError(t, err)
		assert.Equal(t, 5.0, days)
	})
}

func TestCalendarService_IsHoliday(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success matches exact date", func(t *testing.T) {
		svc, repo := setupCalendarServiceTest(t)

		cal := companyCalendar(companyID)
		cal.Holidays = []calendar.Holiday{
			{Name: "labour day", Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		}
		repo.findAllByCompanyFn = func(ctx context.Context, cid string) ([]calendar.HolidayCalendar, error) {
			return []calendar.HolidayCalendar{cal}, nil
		}

		got, err := svc.IsHoliday(ctx, companyID, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

		assert.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("negative different year for fixed holiday", func(t *testing.T) {
		svc, repo := setupCalendarServiceTest(t)

		cal := companyCalendar(companyID)
		cal.Holidays = []calendar.Holiday{
			{Name: "one off", Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		}
		repo.findAllByCompanyFn = func(ctx context.Context, cid string) ([]calendar.HolidayCalendar, error) {
			return []calendar.HolidayCalendar{cal}, nil
		}

		got, err := svc.IsHoliday(ctx, companyID, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

		assert.NoError(t, err)
		assert.False(t, got)
	})
}

func TestCalendarService_FindBlockedPeriod(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	blocked := calendar.BlockedPeriod{
		ID:        uuid.New(),
		StartDate: time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Reason:    "year-end close",
	}

	setup := func(t *testing.T) calendar.Service {
		svc, repo := setupCalendarServiceTest(t)
		cal := companyCalendar(companyID)
		cal.BlockedPeriods = []calendar.BlockedPeriod{blocked}
		repo.findAllByCompanyFn = func(ctx context.Context, cid string) ([]calendar.HolidayCalendar, error) {
			return []calendar.HolidayCalendar{cal}, nil
		}
		return svc
	}

	t.Run("success overlap on the edge", func(t *testing.T) {
		svc := setup(t)

		got, err := svc.FindBlockedPeriod(ctx, companyID,
			time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC))

		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Equal(t, blocked.ID, got.ID)
	})

	t.Run("negative range entirely before", func(t *testing.T) {
		svc := setup(t)

		got, err := svc.FindBlockedPeriod(ctx, companyID,
			time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 12, 19, 0, 0, 0, 0, time.UTC))

		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCalendarService_AddHoliday(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupCalendarServiceTest(t)

		cal := companyCalendar(companyID)
		repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*calendar.HolidayCalendar, error) {
			return &cal, nil
		}

		var added *calendar.Holiday
		repo.addHolidayFn = func(ctx context.Context, h *calendar.Holiday) error {
			added = h
			return nil
		}

		resp, err := svc.AddHoliday(ctx, companyID, cal.ID.String(), calendar.AddHolidayRequest{
			Name:      "eid",
			Date:      "2026-03-20",
			Recurring: false,
		})

		assert.NoError(t, err)
		assert.NotNil(t, added)
		assert.Equal(t, cal.ID, added.CalendarID)
		assert.Len(t, resp.Holidays, 1)
		assert.Equal(t, "2026-03-20", resp.Holidays[0].Date)
	})

	t.Run("negative calendar not found", func(t *testing.T) {
		svc, _ := setupCalendarServiceTest(t)

		_, err := svc.AddHoliday(ctx, companyID, uuid.New().String(), calendar.AddHolidayRequest{
			Name: "eid",
			Date: "2026-03-20",
		})

		assert.ErrorIs(t, err, calendarerrors.ErrCalendarNotFound)
	})

	t.Run("negative malformed date", func(t *testing.T) {
		svc, repo := setupCalendarServiceTest(t)

		cal := companyCalendar(companyID)
		repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*calendar.HolidayCalendar, error) {
			return &cal, nil
		}

		_, err := svc.AddHoliday(ctx, companyID, cal.ID.String(), calendar.AddHolidayRequest{
			Name: "eid",
			Date: "20-03-2026",
		})

		assert.ErrorIs(t, err, calendarerrors.ErrInvalidDateFormat)
	})
}

func TestCalendarService_AddBlockedPeriod(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("negative inverted range", func(t *testing.T) {
		svc, repo := setupCalendarServiceTest(t)

		cal := companyCalendar(companyID)
		repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*calendar.HolidayCalendar, error) {
			return &cal, nil
		}

		_, err := svc.AddBlockedPeriod(ctx, companyID, cal.ID.String(), calendar.AddBlockedPeriodRequest{
			StartDate: "2026-12-31",
			EndDate:   "2026-12-20",
			Reason:    "year-end close",
		})

		assert.ErrorIs(t, err, calendarerrors.ErrInvalidDateRange)
	})
}
