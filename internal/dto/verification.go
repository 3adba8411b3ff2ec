package dto

import "time"

// ── 核验模块 DTO ──

// VerifyRequest 核验请求
// Method 为空时按 MANUAL 处理；CreatedAt 为离线事件的客户端时间戳
type VerifyRequest struct {
	LabelID           string     `json:"label_id"            binding:"required,max=255"`
	EmployeeCode      string     `json:"employee_code"       binding:"required,max=64"`
	ObservedSerialRaw *string    `json:"observed_serial_raw" binding:"omitempty,max=255"`
	Method            string     `json:"method"`
	Notes             *string    `json:"notes"`
	IsOfflineEvent    bool       `json:"is_offline_event"`
	CreatedAt         *time.Time `json:"created_at"`
}

// VerifyResponse 核验结果
type VerifyResponse struct {
	Result             string  `json:"result"`
	Message            string  `json:"message"`
	ExpectedSerial     *string `json:"expected_serial"`
	ObservedSerialNorm *string `json:"observed_serial_norm"`
}

// EventListRequest 事件查询参数
type EventListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// EventResponse 原始核验事件
type EventResponse struct {
	ID                 string  `json:"id"`
	EmployeeCode       string  `json:"employee_code"`
	EmployeeName       string  `json:"employee_name"`
	LabelID            *string `json:"label_id"`
	ExpectedSerialNorm *string `json:"expected_serial_norm"`
	ObservedSerialRaw  *string `json:"observed_serial_raw"`
	ObservedSerialNorm *string `json:"observed_serial_norm"`
	Method             string  `json:"method"`
	Result             string  `json:"result"`
	Notes              *string `json:"notes"`
	IsOfflineEvent     bool    `json:"is_offline_event"`
	CreatedAt          string  `json:"created_at"`
}
