package repository

import "gorm.io/gorm"

// Repository aggregates all repository interfaces.
type Repository struct {
	User        UserRepository
	Request     RequestRepository
	Assignment  AssignmentRepository
	ActivityLog ActivityLogRepository
}

// NewRepository wires the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Request:     NewRequestRepo(db),
		Assignment:  NewAssignmentRepo(db),
		ActivityLog: NewActivityLogRepo(db),
	}
}
