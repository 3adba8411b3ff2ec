package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Device   DeviceRepository
	Label    LabelRepository
	Employee EmployeeRepository
	Event    EventRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Device:   NewDeviceRepo(db),
		Label:    NewLabelRepo(db),
		Employee: NewEmployeeRepo(db),
		Event:    NewEventRepo(db),
	}
}
