package calendar

import (
	"context"
	"errors"
	"time"

	calendarerrors "go-leave-engine/internal/calendar/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateCalendarRequest) (CalendarResponse, error)
	GetAll(ctx context.Context, companyID string) ([]CalendarResponse, error)
	GetByID(ctx context.Context, companyID, id string) (CalendarResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	AddHoliday(ctx context.Context, companyID, calendarID string, req AddHolidayRequest) (CalendarResponse, error)
	RemoveHoliday(ctx context.Context, companyID, calendarID, holidayID string) error
	AddBlockedPeriod(ctx context.Context, companyID, calendarID string, req AddBlockedPeriodRequest) (CalendarResponse, error)
	RemoveBlockedPeriod(ctx context.Context, companyID, calendarID, blockedPeriodID string) error

	IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error)
	FindBlockedPeriod(ctx context.Context, companyID string, start, end time.Time) (*BlockedPeriod, error)
	WorkingDays(ctx context.Context, companyID string, start, end time.Time) (float64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateCalendarRequest) (CalendarResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CalendarResponse{}, calendarerrors.ErrInvalidCompanyID
	}

	cal := &HolidayCalendar{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Country:   req.Country,
	}
	if err := s.repo.Create(ctx, cal); err != nil {
		s.logger.Error("create calendar persist failed", zap.Error(err))
		return CalendarResponse{}, err
	}

	return mapToResponse(*cal), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]CalendarResponse, error) {
	cals, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]CalendarResponse, len(cals))
	for i, cal := range cals {
		resp[i] = mapToResponse(cal)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (CalendarResponse, error) {
	cal, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalendarResponse{}, calendarerrors.ErrCalendarNotFound
		}
		return CalendarResponse{}, err
	}
	return mapToResponse(*cal), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}

func (s *service) AddHoliday(ctx context.Context, companyID, calendarID string, req AddHolidayRequest) (CalendarResponse, error) {
	cal, err := s.repo.FindByIDAndCompany(ctx, companyID, calendarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalendarResponse{}, calendarerrors.ErrCalendarNotFound
		}
		return CalendarResponse{}, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return CalendarResponse{}, err
	}

	h := &Holiday{
		ID:         uuid.New(),
		CalendarID: cal.ID,
		Name:       req.Name,
		Date:       date,
		Recurring:  req.Recurring,
	}
	if err := s.repo.AddHoliday(ctx, h); err != nil {
		return CalendarResponse{}, err
	}

	cal.Holidays = append(cal.Holidays, *h)
	return mapToResponse(*cal), nil
}

func (s *service) RemoveHoliday(ctx context.Context, companyID, calendarID, holidayID string) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, calendarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return calendarerrors.ErrCalendarNotFound
		}
		return err
	}
	return s.repo.RemoveHoliday(ctx, calendarID, holidayID)
}

func (s *service) AddBlockedPeriod(ctx context.Context, companyID, calendarID string, req AddBlockedPeriodRequest) (CalendarResponse, error) {
	cal, err := s.repo.FindByIDAndCompany(ctx, companyID, calendarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalendarResponse{}, calendarerrors.ErrCalendarNotFound
		}
		return CalendarResponse{}, err
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return CalendarResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return CalendarResponse{}, err
	}
	if start.After(end) {
		return CalendarResponse{}, calendarerrors.ErrInvalidDateRange
	}

	b := &BlockedPeriod{
		ID:         uuid.New(),
		CalendarID: cal.ID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	}
	if err := s.repo.AddBlockedPeriod(ctx, b); err != nil {
		return CalendarResponse{}, err
	}

	cal.BlockedPeriods = append(cal.BlockedPeriods, *b)
	return mapToResponse(*cal), nil
}

func (s *service) RemoveBlockedPeriod(ctx context.Context, companyID, calendarID, blockedPeriodID string) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, calendarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return calendarerrors.ErrCalendarNotFound
		}
		return err
	}
	return s.repo.RemoveBlockedPeriod(ctx, calendarID, blockedPeriodID)
}

func (s *service) IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	cals, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return false, err
	}
	for _, cal := range cals {
		for _, h := range cal.Holidays {
			if h.Matches(date) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *service) FindBlockedPeriod(ctx context.Context, companyID string, start, end time.Time) (*BlockedPeriod, error) {
	cals, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, cal := range cals {
		for _, b := range cal.BlockedPeriods {
			if !b.EndDate.Before(start) && !b.StartDate.After(end) {
				blocked := b
				return &blocked, nil
			}
		}
	}
	return nil, nil
}

// WorkingDays counts the days in [start, end] that are neither weekends nor
// company holidays. Balance is only consumed for working days.
func (s *service) WorkingDays(ctx context.Context, companyID string, start, end time.Time) (float64, error) {
	cals, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}

	var days float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		holiday := false
		for _, cal := range cals {
			for _, h := range cal.Holidays {
				if h.Matches(d) {
					holiday = true
					break
				}
			}
			if holiday {
				break
			}
		}
		if holiday {
			continue
		}
		days++
	}
	return days, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, calendarerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(cal HolidayCalendar) CalendarResponse {
	resp := CalendarResponse{
		ID:        cal.ID.String(),
		CompanyID: cal.CompanyID.String(),
		Country:   cal.Country,
	}
	for _, h := range cal.Holidays {
		resp.Holidays = append(resp.Holidays, HolidayResponse{
			ID:        h.ID.String(),
			Name:      h.Name,
			Date:      h.Date.Format("2006-01-02"),
			Recurring: h.Recurring,
		})
	}
	for _, b := range cal.BlockedPeriods {
		resp.BlockedPeriods = append(resp.BlockedPeriods, BlockedPeriodResponse{
			ID:        b.ID.String(),
			StartDate: b.StartDate.Format("2006-01-02"),
			EndDate:   b.EndDate.Format("2006-01-02"),
			Reason:    b.Reason,
		})
	}
	return resp
}
