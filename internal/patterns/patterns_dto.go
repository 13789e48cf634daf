package patterns

// Flags raised by the detector. The detector is read only; findings inform an
// HR review and never block or change a request.
const (
	FlagWeekendAdjacency     = "WEEKEND_ADJACENCY"
	FlagShortNotice          = "SHORT_NOTICE"
	FlagWeekdayConcentration = "WEEKDAY_CONCENTRATION"
)

// Finding names one irregular habit for one employee. Frequency counts how
// often the habit showed up within the analyzed year.
type Finding struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Flag         string `json:"flag"`
	Description  string `json:"description"`
	Frequency    int    `json:"frequency"`
}

type Report struct {
	Year     int       `json:"year"`
	Findings []Finding `json:"findings"`
}
