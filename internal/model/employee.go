package model

// Employee 员工 — 对应 employees
type Employee struct {
	EmployeeCode string `gorm:"type:varchar(64);primaryKey"  json:"employee_code"`
	FullName     string `gorm:"type:varchar(255);not null"   json:"full_name"`
	// PasswordText 按原样比对的凭据，上线加固前需替换为加盐哈希
	PasswordText string `gorm:"type:varchar(255);not null"   json:"-"`
	IsFirstLogin bool   `gorm:"not null"                     json:"is_first_login"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }
