package dto

// ── 分组历史 DTO ──

// DeviceHistory 单台设备（或未知分组）的访问记录
type DeviceHistory struct {
	DeviceSerialNorm string      `json:"device_serial_norm"`
	DeviceModel      string      `json:"device_model"`
	DeviceSerialRaw  string      `json:"device_serial_raw"`
	AccessLogs       []AccessLog `json:"access_logs"`
}

// AccessLog 分组内的一条访问记录
type AccessLog struct {
	EventID            string  `json:"event_id"`
	EmployeeCode       string  `json:"employee_code"`
	EmployeeName       string  `json:"employee_name"`
	LabelID            *string `json:"label_id"`
	ObservedSerialNorm *string `json:"observed_serial_norm"`
	Method             string  `json:"method"`
	Result             string  `json:"result"`
	Notes              *string `json:"notes"`
	IsOfflineEvent     bool    `json:"is_offline_event"`
	CreatedAt          string  `json:"created_at"`
	// Recovered 为 true 表示事件没有快照序列号，按标签当前绑定归组
	Recovered bool `json:"recovered"`
}
