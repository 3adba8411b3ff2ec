package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"asset-verify/internal/model"
)

// LabelRepository 标签绑定数据访问接口
type LabelRepository interface {
	// Upsert 以 label_id 为键写入绑定，已存在时覆盖 bound_serial_norm 与 active
	Upsert(ctx context.Context, label *model.Label) error
	// GetActive 查询启用中的绑定（含设备信息）
	GetActive(ctx context.Context, labelID string) (*model.Label, error)
	ListActive(ctx context.Context) ([]model.Label, error)
	// ListByLabelIDs 批量查询绑定，包含已停用的行
	ListByLabelIDs(ctx context.Context, labelIDs []string) ([]model.Label, error)
	// Deactivate 停用绑定；行不存在时返回 gorm.ErrRecordNotFound
	Deactivate(ctx context.Context, labelID string) error
	// Delete 物理删除绑定；行不存在时返回 gorm.ErrRecordNotFound
	Delete(ctx context.Context, labelID string) error
}

type labelRepo struct {
	db *gorm.DB
}

// NewLabelRepo 创建 LabelRepository 实例
func NewLabelRepo(db *gorm.DB) LabelRepository {
	return &labelRepo{db: db}
}

func (r *labelRepo) Upsert(ctx context.Context, label *model.Label) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "label_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"bound_serial_norm", "active"}),
		}).
		Create(label).Error
}

func (r *labelRepo) GetActive(ctx context.Context, labelID string) (*model.Label, error) {
	var label model.Label
	err := r.db.WithContext(ctx).
		Preload("Device").
		Where("label_id = ? AND active = ?", labelID, true).
		First(&label).Error
	if err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *labelRepo) ListActive(ctx context.Context) ([]model.Label, error) {
	var labels []model.Label
	err := r.db.WithContext(ctx).
		Preload("Device").
		Where("active = ?", true).
		Order("label_id ASC").
		Find(&labels).Error
	return labels, err
}

func (r *labelRepo) ListByLabelIDs(ctx context.Context, labelIDs []string) ([]model.Label, error) {
	if len(labelIDs) == 0 {
		return nil, nil
	}
	var labels []model.Label
	err := r.db.WithContext(ctx).
		Where("label_id IN ?", labelIDs).
		Find(&labels).Error
	return labels, err
}

func (r *labelRepo) Deactivate(ctx context.Context, labelID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Label{}).
		Where("label_id = ?", labelID).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *labelRepo) Delete(ctx context.Context, labelID string) error {
	result := r.db.WithContext(ctx).
		Where("label_id = ?", labelID).
		Delete(&model.Label{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
