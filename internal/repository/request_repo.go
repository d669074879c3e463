package repository

import (
	"context"

	"gorm.io/gorm"

	"capacityhub/backend/internal/model"
)

// RequestRepository accesses client work items.
type RequestRepository interface {
	GetByID(ctx context.Context, id string) (*model.Request, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Request, error)
	UpdateStatus(ctx context.Context, id string, status model.RequestStatus) error
}

type requestRepo struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*model.Request, error) {
	var request model.Request
	err := r.db.WithContext(ctx).
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Request, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var requests []model.Request
	err := r.db.WithContext(ctx).
		Where("request_id IN ?", ids).
		Find(&requests).Error
	return requests, err
}

func (r *requestRepo) UpdateStatus(ctx context.Context, id string, status model.RequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("request_id = ?", id).
		Update("status", status).Error
}
