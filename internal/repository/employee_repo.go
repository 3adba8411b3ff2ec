package repository

import (
	"context"

	"gorm.io/gorm"

	"asset-verify/internal/model"
)

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Employee, error)
	// UpdatePassword 更新凭据并清除首次登录标记
	UpdatePassword(ctx context.Context, code, password string) error
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) GetByCode(ctx context.Context, code string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Where("employee_code = ?", code).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) UpdatePassword(ctx context.Context, code, password string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_code = ?", code).
		Updates(map[string]interface{}{
			"password_text":  password,
			"is_first_login": false,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
