package repository

import (
	"context"

	"gorm.io/gorm"

	"capacityhub/backend/internal/model"
)

// ActivityLogRepository accesses the append-only audit trail.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, entityID string, offset, limit int) ([]model.ActivityLog, int64, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepo) List(ctx context.Context, entityID string, offset, limit int) ([]model.ActivityLog, int64, error) {
	var entries []model.ActivityLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ActivityLog{})
	if entityID != "" {
		db = db.Where("entity_id = ?", entityID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, total, err
}
