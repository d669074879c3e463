package service

import (
	"context"

	"go.uber.org/zap"

	"capacityhub/backend/internal/dto"
	"capacityhub/backend/internal/repository"
)

// ActivityLogService exposes the audit trail.
type ActivityLogService interface {
	List(ctx context.Context, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, error)
}

type activityLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityLogService creates an ActivityLogService.
func NewActivityLogService(repo *repository.Repository, logger *zap.Logger) ActivityLogService {
	return &activityLogService{repo: repo, logger: logger}
}

func (s *activityLogService) List(ctx context.Context, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, error) {
	entries, total, err := s.repo.ActivityLog.List(ctx, req.EntityID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list activity logs failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		r := dto.ActivityLogResponse{
			ID:         e.ActivityLogID,
			Action:     e.Action,
			EntityType: e.EntityType,
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if e.ActorID != nil {
			r.ActorID = *e.ActorID
		}
		if e.EntityID != nil {
			r.EntityID = *e.EntityID
		}
		result = append(result, r)
	}
	return result, total, nil
}
