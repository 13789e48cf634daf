package calendar

type CreateCalendarRequest struct {
	Country string `json:"country" binding:"required,len=2"`
}

type AddHolidayRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Date      string `json:"date" binding:"required"`
	Recurring bool   `json:"recurring"`
}

type AddBlockedPeriodRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type HolidayResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Recurring bool   `json:"recurring"`
}

type BlockedPeriodResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type CalendarResponse struct {
	ID             string                  `json:"id"`
	CompanyID      string                  `json:"company_id"`
	Country        string                  `json:"country"`
	Holidays       []HolidayResponse       `json:"holidays,omitempty"`
	BlockedPeriods []BlockedPeriodResponse `json:"blocked_periods,omitempty"`
}
