package repository

import (
	"context"

	"gorm.io/gorm"

	"asset-verify/internal/model"
)

// EventRepository 核验事件数据访问接口
// 事件只追加，不提供更新与删除
type EventRepository interface {
	Create(ctx context.Context, event *model.VerificationEvent) error
	// ListRecent 按 created_at 倒序返回最近 limit 条事件
	ListRecent(ctx context.Context, limit int) ([]model.VerificationEvent, error)
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.VerificationEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) ListRecent(ctx context.Context, limit int) ([]model.VerificationEvent, error) {
	var events []model.VerificationEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
