package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"capacityhub/backend/internal/dto"
	"capacityhub/backend/internal/repository"
)

// RequestService exposes read access to work items so callers can observe
// status transitions triggered by scheduling.
type RequestService interface {
	Get(ctx context.Context, id string) (*dto.RequestSummary, error)
}

type requestService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRequestService creates a RequestService.
func NewRequestService(repo *repository.Repository, logger *zap.Logger) RequestService {
	return &requestService{repo: repo, logger: logger}
}

func (s *requestService) Get(ctx context.Context, id string) (*dto.RequestSummary, error) {
	request, err := s.repo.Request.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("fetch request failed", zap.Error(err))
		return nil, err
	}

	return &dto.RequestSummary{
		ID:       request.RequestID,
		Title:    request.Title,
		Type:     request.Type,
		Priority: request.Priority,
		Status:   string(request.Status),
	}, nil
}
