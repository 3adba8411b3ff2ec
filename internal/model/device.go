package model

import "time"

// 设备状态
const (
	DeviceStatusActive  = "ACTIVE"
	DeviceStatusRetired = "RETIRED"
)

// Device 医疗设备 — 对应 devices
// SerialNorm 由 SerialRaw 归一化得到，是设备与标签之间的连接键，创建后不可变
type Device struct {
	SerialNorm string     `gorm:"type:varchar(255);primaryKey"            json:"serial_norm"`
	SerialRaw  string     `gorm:"type:varchar(255);not null"              json:"serial_raw"`
	Model      *string    `gorm:"type:varchar(255)"                       json:"model,omitempty"`
	MfgDate    *time.Time `gorm:"type:date"                               json:"mfg_date,omitempty"`
	Status     string     `gorm:"type:varchar(32);not null"               json:"status"`
	CreatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"      json:"created_at"`
}

// TableName 指定表名
func (Device) TableName() string { return "devices" }
