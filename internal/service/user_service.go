package service

import (
	"context"

	"go.uber.org/zap"

	"capacityhub/backend/internal/dto"
	"capacityhub/backend/internal/repository"
)

// UserService exposes the read-only user directory. Users are owned by the
// admin subsystem.
type UserService interface {
	ListActive(ctx context.Context) ([]dto.UserSummary, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) ListActive(ctx context.Context) ([]dto.UserSummary, error) {
	users, err := s.repo.User.ListActive(ctx)
	if err != nil {
		s.logger.Error("list active users failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		result = append(result, dto.UserSummary{
			ID:             users[i].UserID,
			Name:           users[i].Name,
			Email:          users[i].Email,
			WeeklyCapacity: users[i].WeeklyCapacity,
		})
	}
	return result, nil
}
