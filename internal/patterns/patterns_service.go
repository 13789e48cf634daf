package patterns

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-leave-engine/internal/calendar"
	"go-leave-engine/internal/employee"
	employeeerrors "go-leave-engine/internal/employee/errors"
	"go-leave-engine/internal/request"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	reportCacheTTL = 30 * time.Minute

	// A single-day leave is weekend adjacent when the day before or after is
	// a Saturday, Sunday or holiday.
	minSamplesForFlag        = 4
	weekendAdjacencyRatio    = 0.5
	shortNoticeDays          = 2
	shortNoticeRatio         = 0.5
	minShortNoticeSamples    = 3
	weekdayConcentrationRate = 0.6
)

func reportCacheKey(companyID, employeeID string, year int) string {
	scope := employeeID
	if scope == "" {
		scope = "all"
	}
	return fmt.Sprintf("patterns:%s:%s:%d", companyID, scope, year)
}

//go:generate mockgen -source=patterns_service.go -destination=mock/patterns_service_mock.go -package=mock
type Service interface {
	// Analyze inspects approved leave for the year and reports irregular
	// habits per employee. An empty employeeID scans the whole company.
	Analyze(ctx context.Context, companyID, employeeID string, year int) (Report, error)
}

type service struct {
	requests  request.Service
	calendars calendar.Service
	employees employee.Service
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	requests request.Service,
	calendars calendar.Service,
	employees employee.Service,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("patterns.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("patterns.service")
	}
	return &service{
		requests:  requests,
		calendars: calendars,
		employees: employees,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Analyze(ctx context.Context, companyID, employeeID string, year int) (Report, error) {
	cacheKey := reportCacheKey(companyID, employeeID, year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var report Report
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				return report, nil
			}
		}
	}

	// Singleflight collapses concurrent analyses of the same scope.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		report, err := s.analyze(ctx, companyID, employeeID, year)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(report); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, reportCacheTTL)
			}
		}

		return report, nil
	})
	if err != nil {
		return Report{}, err
	}

	return v.(Report), nil
}

func (s *service) analyze(ctx context.Context, companyID, employeeID string, year int) (Report, error) {
	staff, err := s.employees.Directory(ctx, companyID)
	if err != nil {
		return Report{}, err
	}

	if employeeID != "" {
		var match *employee.DirectoryEntry
		for i := range staff {
			if staff[i].ID == employeeID {
				match = &staff[i]
				break
			}
		}
		if match == nil {
			return Report{}, employeeerrors.ErrEmployeeNotFound
		}
		staff = []employee.DirectoryEntry{*match}
	}

	report := Report{Year: year, Findings: []Finding{}}
	for _, entry := range staff {
		findings, err := s.analyzeEmployee(ctx, companyID, entry, year)
		if err != nil {
			return Report{}, err
		}
		report.Findings = append(report.Findings, findings...)
	}
	return report, nil
}

func (s *service) analyzeEmployee(ctx context.Context, companyID string, entry employee.DirectoryEntry, year int) ([]Finding, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	reqs, _, err := s.requests.List(ctx, companyID, request.ListFilter{
		Status:     request.StatusApproved,
		EmployeeID: entry.ID,
		From:       &from,
		To:         &to,
		Limit:      100,
	})
	if err != nil {
		return nil, err
	}

	var (
		totalApproved   = len(reqs)
		singleDay       int
		weekendAdjacent int
		shortNotice     int
		weekdayCounts   = map[string]int{}
	)

	for _, lr := range reqs {
		start, err := time.Parse("2006-01-02", lr.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse("2006-01-02", lr.EndDate)
		if err != nil {
			continue
		}
		created, createdErr := time.Parse(time.RFC3339, lr.CreatedAt)

		if createdErr == nil && start.Sub(created) < shortNoticeDays*24*time.Hour {
			shortNotice++
		}

		if !start.Equal(end) {
			continue
		}
		singleDay++
		weekdayCounts[start.Weekday().String()]++

		adjacent, err := s.isWeekendAdjacent(ctx, companyID, start)
		if err != nil {
			return nil, err
		}
		if adjacent {
			weekendAdjacent++
		}
	}

	var findings []Finding
	if singleDay >= minSamplesForFlag &&
		float64(weekendAdjacent) >= weekendAdjacencyRatio*float64(singleDay) {
		findings = append(findings, Finding{
			EmployeeID:   entry.ID,
			EmployeeName: entry.FullName,
			Flag:         FlagWeekendAdjacency,
			Description:  "single-day leave bordering a weekend or holiday",
			Frequency:    weekendAdjacent,
		})
	}
	if shortNotice >= minShortNoticeSamples &&
		float64(shortNotice) >= shortNoticeRatio*float64(totalApproved) {
		findings = append(findings, Finding{
			EmployeeID:   entry.ID,
			EmployeeName: entry.FullName,
			Flag:         FlagShortNotice,
			Description:  fmt.Sprintf("leave requested less than %d days before it starts", shortNoticeDays),
			Frequency:    shortNotice,
		})
	}
	if singleDay >= minSamplesForFlag {
		for day, count := range weekdayCounts {
			if float64(count) >= weekdayConcentrationRate*float64(singleDay) {
				findings = append(findings, Finding{
					EmployeeID:   entry.ID,
					EmployeeName: entry.FullName,
					Flag:         FlagWeekdayConcentration,
					Description:  fmt.Sprintf("single-day leave concentrated on %ss", day),
					Frequency:    count,
				})
				break
			}
		}
	}
	return findings, nil
}

func (s *service) isWeekendAdjacent(ctx context.Context, companyID string, day time.Time) (bool, error) {
	for _, neighbor := range []time.Time{day.AddDate(0, 0, -1), day.AddDate(0, 0, 1)} {
		if neighbor.Weekday() == time.Saturday || neighbor.Weekday() == time.Sunday {
			return true, nil
		}
		holiday, err := s.calendars.IsHoliday(ctx, companyID, neighbor)
		if err != nil {
			return false, err
		}
		if holiday {
			return true, nil
		}
	}
	return false, nil
}
