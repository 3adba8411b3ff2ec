package model

import "time"

// 核验方式
const (
	MethodScan        = "SCAN"
	MethodManual      = "MANUAL"
	MethodURLRedirect = "URL_REDIRECT"
)

// 核验结果
const (
	ResultPass = "PASS"
	ResultFail = "FAIL"
	ResultWarn = "WARN"
)

// UnknownEmployeeName 员工编号查不到时写入事件的姓名
const UnknownEmployeeName = "Unknown"

// ValidMethod 判断核验方式是否合法
func ValidMethod(method string) bool {
	switch method {
	case MethodScan, MethodManual, MethodURLRedirect:
		return true
	}
	return false
}

// VerificationEvent 核验事件 — 对应 verification_events（只追加）
// EmployeeName 与 ExpectedSerialNorm 均为写入时的快照，之后不随员工或绑定变化
type VerificationEvent struct {
	ID                 string    `gorm:"type:uuid;primaryKey"          json:"id"`
	EmployeeCode       string    `gorm:"type:varchar(64);not null"     json:"employee_code"`
	EmployeeName       string    `gorm:"type:varchar(255);not null"    json:"employee_name"`
	LabelID            *string   `gorm:"type:varchar(255)"             json:"label_id"`
	ExpectedSerialNorm *string   `gorm:"type:varchar(255)"             json:"expected_serial_norm"`
	ObservedSerialRaw  *string   `gorm:"type:text"                     json:"observed_serial_raw"`
	ObservedSerialNorm *string   `gorm:"type:text"                     json:"observed_serial_norm"`
	Method             string    `gorm:"type:varchar(32);not null"     json:"method"`
	Result             string    `gorm:"type:varchar(8);not null"      json:"result"`
	Notes              *string   `gorm:"type:text"                     json:"notes"`
	IsOfflineEvent     bool      `gorm:"not null"                      json:"is_offline_event"`
	CreatedAt          time.Time `gorm:"not null"                      json:"created_at"`
}

// TableName 指定表名
func (VerificationEvent) TableName() string { return "verification_events" }
