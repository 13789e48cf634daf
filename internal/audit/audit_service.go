package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	// Record appends one entry. Details is marshalled to JSON; a marshal
	// failure is logged and the entry is written without details rather than
	// losing the event.
	Record(ctx context.Context, companyID uuid.UUID, actorID, actorRole, action, entityType, entityID string, details any) error
	Query(ctx context.Context, companyID string, filter QueryFilter) ([]EntryResponse, int64, error)
	Timeline(ctx context.Context, companyID, entityType, entityID string) ([]EntryResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, companyID uuid.UUID, actorID, actorRole, action, entityType, entityID string, details any) error {
	entry := &AuditEntry{
		ID:         uuid.New(),
		CompanyID:  companyID,
		ActorID:    actorID,
		ActorRole:  actorRole,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("audit details marshal failed",
				zap.String("action", action),
				zap.Error(err),
			)
		} else {
			entry.Details = string(raw)
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) Query(ctx context.Context, companyID string, filter QueryFilter) ([]EntryResponse, int64, error) {
	entries, total, err := s.repo.Query(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToResponses(entries), total, nil
}

func (s *service) Timeline(ctx context.Context, companyID, entityType, entityID string) ([]EntryResponse, error) {
	entries, err := s.repo.Timeline(ctx, companyID, entityType, entityID)
	if err != nil {
		return nil, err
	}
	return mapToResponses(entries), nil
}

func mapToResponses(entries []AuditEntry) []EntryResponse {
	resp := make([]EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = EntryResponse{
			ID:         e.ID.String(),
			ActorID:    e.ActorID,
			ActorRole:  e.ActorRole,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return resp
}
