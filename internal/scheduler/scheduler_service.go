package scheduler

import (
	"context"
	"os"
	"time"

	"go-leave-engine/internal/ledger"
	"go-leave-engine/internal/request"

	"go.uber.org/zap"
)

const (
	JobAccrual     = "accrual"
	JobCarryover   = "carryover"
	JobEscalations = "escalations"

	defaultEscalationInterval = 15 * time.Minute
	defaultAccrualInterval    = 24 * time.Hour
)

//go:generate mockgen -source=scheduler_service.go -destination=mock/scheduler_service_mock.go -package=mock
type Service interface {
	// RunAccrual posts accruals for one company, or for every company when
	// companyID is empty. Reruns are no-ops for already posted periods.
	RunAccrual(ctx context.Context, companyID string, now time.Time) (RunResponse, error)
	RunCarryover(ctx context.Context, companyID string, fromYear int) (RunResponse, error)
	RunEscalations(ctx context.Context, companyID string, now time.Time) (RunResponse, error)
	// Start blocks, running the periodic jobs until ctx is cancelled.
	Start(ctx context.Context)
}

type service struct {
	repo     Repository
	ledgers  ledger.Service
	requests request.Service
	logger   *zap.Logger
}

func NewService(repo Repository, ledgers ledger.Service, requests request.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("scheduler.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.service")
	}
	return &service{
		repo:     repo,
		ledgers:  ledgers,
		requests: requests,
		logger:   l,
	}
}

func (s *service) companies(ctx context.Context, companyID string) ([]string, error) {
	if companyID != "" {
		return []string{companyID}, nil
	}
	return s.repo.DistinctCompanyIDs(ctx)
}

func (s *service) RunAccrual(ctx context.Context, companyID string, now time.Time) (RunResponse, error) {
	ids, err := s.companies(ctx, companyID)
	if err != nil {
		return RunResponse{}, err
	}

	resp := RunResponse{Job: JobAccrual, Companies: []CompanyResult{}}
	for _, id := range ids {
		result := CompanyResult{CompanyID: id}
		summary, err := s.ledgers.RunAccrual(ctx, id, now)
		if err != nil {
			// One company failing must not stop the run for the rest.
			result.Error = err.Error()
			s.logger.Error("accrual run failed", zap.String("company_id", id), zap.Error(err))
		} else {
			result.Processed = summary.Processed
			result.Skipped = summary.Skipped
			result.Failed = summary.Failed
		}
		resp.Companies = append(resp.Companies, result)
	}
	return resp, nil
}

func (s *service) RunCarryover(ctx context.Context, companyID string, fromYear int) (RunResponse, error) {
	ids, err := s.companies(ctx, companyID)
	if err != nil {
		return RunResponse{}, err
	}

	resp := RunResponse{Job: JobCarryover, Companies: []CompanyResult{}}
	for _, id := range ids {
		result := CompanyResult{CompanyID: id}
		summary, err := s.ledgers.RunCarryover(ctx, id, fromYear)
		if err != nil {
			result.Error = err.Error()
			s.logger.Error("carryover run failed", zap.String("company_id", id), zap.Error(err))
		} else {
			result.Processed = summary.Processed
			result.Skipped = summary.Skipped
			result.Failed = summary.Failed
		}
		resp.Companies = append(resp.Companies, result)
	}
	return resp, nil
}

func (s *service) RunEscalations(ctx context.Context, companyID string, now time.Time) (RunResponse, error) {
	ids, err := s.companies(ctx, companyID)
	if err != nil {
		return RunResponse{}, err
	}

	resp := RunResponse{Job: JobEscalations, Companies: []CompanyResult{}}
	for _, id := range ids {
		result := CompanyResult{CompanyID: id}
		summary, err := s.requests.RunEscalations(ctx, id, now)
		if err != nil {
			result.Error = err.Error()
			s.logger.Error("escalation run failed", zap.String("company_id", id), zap.Error(err))
		} else {
			result.Processed = summary.Escalated
			result.Failed = summary.Failed
		}
		resp.Companies = append(resp.Companies, result)
	}
	return resp, nil
}

func (s *service) Start(ctx context.Context) {
	escalationTicker := time.NewTicker(intervalFromEnv("SCHEDULER_ESCALATION_INTERVAL", defaultEscalationInterval))
	accrualTicker := time.NewTicker(intervalFromEnv("SCHEDULER_ACCRUAL_INTERVAL", defaultAccrualInterval))
	defer escalationTicker.Stop()
	defer accrualTicker.Stop()

	s.logger.Info("scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-escalationTicker.C:
			now := time.Now().UTC()
			if _, err := s.RunEscalations(ctx, "", now); err != nil {
				s.logger.Error("escalation sweep failed", zap.Error(err))
			}
		case <-accrualTicker.C:
			now := time.Now().UTC()
			if _, err := s.RunAccrual(ctx, "", now); err != nil {
				s.logger.Error("accrual sweep failed", zap.Error(err))
			}
			// Carryover for the closed year runs during January. Postings
			// keep repeated sweeps idempotent.
			if now.Month() == time.January {
				if _, err := s.RunCarryover(ctx, "", now.Year()-1); err != nil {
					s.logger.Error("carryover sweep failed", zap.Error(err))
				}
			}
		}
	}
}

func intervalFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
