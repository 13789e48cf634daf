package calendar

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HolidayCalendar struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_calendars_company_country"`
	Country   string    `gorm:"type:varchar(2);not null;uniqueIndex:idx_calendars_company_country"`

	Holidays       []Holiday       `gorm:"foreignKey:CalendarID"`
	BlockedPeriods []BlockedPeriod `gorm:"foreignKey:CalendarID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_calendars_deleted_at"`
}

type Holiday struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CalendarID uuid.UUID `gorm:"type:uuid;not null;index:idx_holidays_calendar"`

	Name      string    `gorm:"type:varchar(100);not null"`
	Date      time.Time `gorm:"type:date;not null"`
	Recurring bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
}

type BlockedPeriod struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CalendarID uuid.UUID `gorm:"type:uuid;not null;index:idx_blocked_periods_calendar"`

	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text;not null"`

	CreatedAt time.Time
}

// Matches reports whether the holiday falls on the given date. Recurring
// holidays match on month and day in any year.
func (h Holiday) Matches(date time.Time) bool {
	if h.Recurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	hy, hm, hd := h.Date.Date()
	dy, dm, dd := date.Date()
	return hy == dy && hm == dm && hd == dd
}

// Covers reports whether the date falls inside the blocked period, inclusive.
func (b BlockedPeriod) Covers(date time.Time) bool {
	return !date.Before(b.StartDate) && !date.After(b.EndDate)
}
