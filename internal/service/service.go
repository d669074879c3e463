package service

import (
	"context"

	"go.uber.org/zap"

	"capacityhub/backend/internal/repository"
)

// EventNotifier broadcasts engine events to the rest of the system.
// Delivery is fire-and-forget; implementations may fail without affecting
// the calling operation.
type EventNotifier interface {
	Publish(ctx context.Context, event string, payload any) error
}

// Service aggregates all service interfaces.
type Service struct {
	Assignment  AssignmentService
	Capacity    CapacityService
	User        UserService
	Request     RequestService
	ActivityLog ActivityLogService
	Export      ExportService
}

// NewService wires the service aggregate. notifier may be nil when the
// event channel is unavailable.
func NewService(repo *repository.Repository, notifier EventNotifier, logger *zap.Logger) *Service {
	capacity := NewCapacityService(repo, logger)
	return &Service{
		Assignment:  NewAssignmentService(repo, notifier, logger),
		Capacity:    capacity,
		User:        NewUserService(repo, logger),
		Request:     NewRequestService(repo, logger),
		ActivityLog: NewActivityLogService(repo, logger),
		Export:      NewExportService(capacity, logger),
	}
}
