package repository

import (
	"context"

	"gorm.io/gorm"

	"asset-verify/internal/model"
)

// DeviceRepository 设备数据访问接口
type DeviceRepository interface {
	Create(ctx context.Context, device *model.Device) error
	GetBySerialNorm(ctx context.Context, serialNorm string) (*model.Device, error)
	// ListBySerialNorms 按归一化序列号批量查询，不存在的序列号直接缺席
	ListBySerialNorms(ctx context.Context, serialNorms []string) ([]model.Device, error)
}

type deviceRepo struct {
	db *gorm.DB
}

// NewDeviceRepo 创建 DeviceRepository 实例
func NewDeviceRepo(db *gorm.DB) DeviceRepository {
	return &deviceRepo{db: db}
}

func (r *deviceRepo) Create(ctx context.Context, device *model.Device) error {
	return r.db.WithContext(ctx).Create(device).Error
}

func (r *deviceRepo) GetBySerialNorm(ctx context.Context, serialNorm string) (*model.Device, error) {
	var device model.Device
	err := r.db.WithContext(ctx).
		Where("serial_norm = ?", serialNorm).
		First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepo) ListBySerialNorms(ctx context.Context, serialNorms []string) ([]model.Device, error) {
	if len(serialNorms) == 0 {
		return nil, nil
	}
	var devices []model.Device
	err := r.db.WithContext(ctx).
		Where("serial_norm IN ?", serialNorms).
		Find(&devices).Error
	return devices, err
}
