package handler

import "capacityhub/backend/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Assignment  *AssignmentHandler
	Capacity    *CapacityHandler
	User        *UserHandler
	Request     *RequestHandler
	ActivityLog *ActivityLogHandler
	Export      *ExportHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Assignment:  NewAssignmentHandler(svc.Assignment),
		Capacity:    NewCapacityHandler(svc.Capacity),
		User:        NewUserHandler(svc.User),
		Request:     NewRequestHandler(svc.Request),
		ActivityLog: NewActivityLogHandler(svc.ActivityLog),
		Export:      NewExportHandler(svc.Export),
	}
}
