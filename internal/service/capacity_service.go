package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"capacityhub/backend/internal/dto"
	"capacityhub/backend/internal/model"
	"capacityhub/backend/internal/repository"
)

// CapacityService computes read-only utilization rollups from stored
// assignments and user capacity figures. No side effects.
type CapacityService interface {
	// DailySummary returns, for every active user, that day's allocation
	// against daily capacity. Users without assignments are included with
	// zero allocation.
	DailySummary(ctx context.Context, date time.Time) (*dto.DailySummaryResponse, error)
	// WeeklySummary returns the Monday-through-Friday rollup. A zero
	// weekStart defaults to the Monday of the current week.
	WeeklySummary(ctx context.Context, weekStart time.Time) (*dto.WeeklySummaryResponse, error)
}

type capacityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCapacityService creates a CapacityService.
func NewCapacityService(repo *repository.Repository, logger *zap.Logger) CapacityService {
	return &capacityService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// DailySummary
// ════════════════════════════════════════════════════════════

func (s *capacityService) DailySummary(ctx context.Context, date time.Time) (*dto.DailySummaryResponse, error) {
	date = truncateToDay(date)

	users, err := s.repo.User.ListActive(ctx)
	if err != nil {
		s.logger.Error("list active users failed", zap.Error(err))
		return nil, err
	}

	assignments, err := s.repo.Assignment.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list assignments by date failed", zap.Error(err))
		return nil, err
	}

	byUser := make(map[string][]model.Assignment)
	for _, a := range assignments {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}

	result := &dto.DailySummaryResponse{
		Date:  date.Format(dateLayout),
		Users: make([]dto.UserDailyCapacity, 0, len(users)),
	}

	for i := range users {
		user := &users[i]
		capacity := user.DailyCapacity()

		var allocated float64
		userAssignments := byUser[user.UserID]
		rows := make([]dto.AssignmentResponse, 0, len(userAssignments))
		for j := range userAssignments {
			a := &userAssignments[j]
			allocated += a.AllocatedHours
			rows = append(rows, toAssignmentResponse(a, a.User, a.Request))
		}

		result.Users = append(result.Users, dto.UserDailyCapacity{
			User: dto.UserSummary{
				ID:             user.UserID,
				Name:           user.Name,
				Email:          user.Email,
				WeeklyCapacity: user.WeeklyCapacity,
			},
			AllocatedHours: round2(allocated),
			DailyCapacity:  round2(capacity),
			AvailableHours: round2(availableHours(capacity, allocated)),
			Utilization:    utilizationPercent(allocated, capacity),
			Assignments:    rows,
		})
	}

	return result, nil
}

// ════════════════════════════════════════════════════════════
// WeeklySummary: Monday through Friday
// ════════════════════════════════════════════════════════════

func (s *capacityService) WeeklySummary(ctx context.Context, weekStart time.Time) (*dto.WeeklySummaryResponse, error) {
	if weekStart.IsZero() {
		weekStart = time.Now()
	}
	weekStart = startOfWeek(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 4) // Friday, 5-day week

	users, err := s.repo.User.ListActive(ctx)
	if err != nil {
		s.logger.Error("list active users failed", zap.Error(err))
		return nil, err
	}

	assignments, err := s.repo.Assignment.ListByWeek(ctx, weekStart)
	if err != nil {
		s.logger.Error("list assignments by week failed", zap.Error(err))
		return nil, err
	}

	type totals struct {
		allocated float64
		completed float64
	}
	byUser := make(map[string]*totals)
	for _, a := range assignments {
		t, ok := byUser[a.UserID]
		if !ok {
			t = &totals{}
			byUser[a.UserID] = t
		}
		t.allocated += a.AllocatedHours
		t.completed += a.ActualHours
	}

	result := &dto.WeeklySummaryResponse{
		WeekStart: weekStart.Format(dateLayout),
		WeekEnd:   weekEnd.Format(dateLayout),
		Users:     make([]dto.CapacitySummary, 0, len(users)),
	}

	for i := range users {
		user := &users[i]
		var allocated, completed float64
		if t, ok := byUser[user.UserID]; ok {
			allocated = t.allocated
			completed = t.completed
		}

		result.Users = append(result.Users, dto.CapacitySummary{
			User: dto.UserSummary{
				ID:             user.UserID,
				Name:           user.Name,
				Email:          user.Email,
				WeeklyCapacity: user.WeeklyCapacity,
			},
			AllocatedHours: round2(allocated),
			CompletedHours: round2(completed),
			WeeklyCapacity: round2(user.WeeklyCapacity),
			AvailableHours: round2(availableHours(user.WeeklyCapacity, allocated)),
			Utilization:    utilizationPercent(allocated, user.WeeklyCapacity),
		})
	}

	return result, nil
}
