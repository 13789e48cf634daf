package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "go-leave-engine/internal/employee/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const directoryCacheTTL = 30 * time.Minute

func directoryCacheKey(companyID string) string {
	return fmt.Sprintf("directory:all:%s", companyID)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, companyID, id string) (Employee, error)
	GetByUserID(ctx context.Context, companyID, userID string) (Employee, error)
	Directory(ctx context.Context, companyID string) ([]DirectoryEntry, error)
	Team(ctx context.Context, companyID, managerID string) ([]Employee, error)
	RoleHolders(ctx context.Context, companyID, role string) ([]Employee, error)
	IsManagerOf(ctx context.Context, companyID, managerUserID, employeeID string) (bool, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (Employee, error) {
	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Employee{}, employeeerrors.ErrEmployeeNotFound
		}
		return Employee{}, err
	}
	return *e, nil
}

func (s *service) GetByUserID(ctx context.Context, companyID, userID string) (Employee, error) {
	e, err := s.repo.FindByUserIDAndCompany(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Employee{}, employeeerrors.ErrEmployeeNotFound
		}
		return Employee{}, err
	}
	return *e, nil
}

func (s *service) Directory(ctx context.Context, companyID string) ([]DirectoryEntry, error) {
	cacheKey := directoryCacheKey(companyID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []DirectoryEntry
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses concurrent directory rebuilds into one query.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		employees, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		resp := mapToDirectory(employees)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, directoryCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]DirectoryEntry), nil
}

func (s *service) Team(ctx context.Context, companyID, managerID string) ([]Employee, error) {
	return s.repo.FindTeam(ctx, companyID, managerID)
}

func (s *service) RoleHolders(ctx context.Context, companyID, role string) ([]Employee, error) {
	return s.repo.FindByRole(ctx, companyID, role)
}

func (s *service) IsManagerOf(ctx context.Context, companyID, managerUserID, employeeID string) (bool, error) {
	target, err := s.repo.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, employeeerrors.ErrEmployeeNotFound
		}
		return false, err
	}
	if target.ManagerID == nil {
		return false, nil
	}

	manager, err := s.repo.FindByUserIDAndCompany(ctx, companyID, managerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return manager.ID == *target.ManagerID, nil
}

func mapToDirectory(employees []Employee) []DirectoryEntry {
	resp := make([]DirectoryEntry, len(employees))
	for i, e := range employees {
		entry := DirectoryEntry{
			ID:       e.ID.String(),
			UserID:   e.UserID.String(),
			FullName: e.FullName,
			Role:     e.Role,
			HireDate: e.HireDate.Format("2006-01-02"),
			Status:   e.Status,
		}
		if e.ManagerID != nil {
			v := e.ManagerID.String()
			entry.ManagerID = &v
		}
		resp[i] = entry
	}
	return resp
}
