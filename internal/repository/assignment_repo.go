package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"capacityhub/backend/internal/model"
	pkgerrors "capacityhub/backend/pkg/errors"
)

// AssignmentRepository accesses allocation records. Soft-deleted rows are
// excluded from every query, so capacity sums only see live allocations.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	// BatchCreate persists the whole batch in one transaction; on error
	// no row is persisted.
	BatchCreate(ctx context.Context, assignments []model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]model.Assignment, error)
	// ListByBuckets fetches all assignments touching any of the given
	// (user, date) combinations in one query for batch validation.
	ListByBuckets(ctx context.Context, userIDs []string, dates []time.Time) ([]model.Assignment, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.Assignment, error)
	ListByWeek(ctx context.Context, weekStart time.Time) ([]model.Assignment, error)
	ListByUser(ctx context.Context, userID string) ([]model.Assignment, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]model.Assignment, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type assignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) BatchCreate(ctx context.Context, assignments []model.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&assignments).Error
	})
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Request").
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND assigned_date = ?", userID, date).
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByBuckets(ctx context.Context, userIDs []string, dates []time.Time) ([]model.Assignment, error) {
	if len(userIDs) == 0 || len(dates) == 0 {
		return nil, nil
	}
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND assigned_date IN ?", userIDs, dates).
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByDate(ctx context.Context, date time.Time) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Request").
		Where("assigned_date = ?", date).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByWeek(ctx context.Context, weekStart time.Time) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Request").
		Where("week_start = ?", weekStart).
		Order("assigned_date ASC, created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByUser(ctx context.Context, userID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Request").
		Where("user_id = ?", userID).
		Order("assigned_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Request").
		Where("assigned_date >= ? AND assigned_date <= ?", start, end).
		Order("assigned_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	result := r.db.WithContext(ctx).
		Model(assignment).
		Where("assignment_id = ?", assignment.AssignmentID).
		Updates(map[string]interface{}{
			"allocated_hours": assignment.AllocatedHours,
			"actual_hours":    assignment.ActualHours,
			"status":          assignment.Status,
			"notes":           assignment.Notes,
			"updated_by":      assignment.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	// the row vanished between read and write (concurrent delete)
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Assignment{}).
			Where("assignment_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.
			Where("assignment_id = ?", id).
			Delete(&model.Assignment{}).Error
	})
}
