package dto

// ── 设备与标签目录 DTO ──

// CreateDeviceRequest 创建设备请求
type CreateDeviceRequest struct {
	SerialRaw string  `json:"serial_raw" binding:"required,max=255"`
	Model     *string `json:"model"      binding:"omitempty,max=255"`
	MfgDate   *string `json:"mfg_date"`  // YYYY-MM-DD
}

// BindLabelRequest 绑定标签请求
type BindLabelRequest struct {
	LabelID   string `json:"label_id"   binding:"required,max=255"`
	SerialRaw string `json:"serial_raw" binding:"required,max=255"`
}

// LabelQuery 管理端按标签操作的查询参数
type LabelQuery struct {
	LabelID string `form:"label_id" binding:"required"`
}

// DeviceResponse 设备信息响应
type DeviceResponse struct {
	SerialNorm string  `json:"serial_norm"`
	SerialRaw  string  `json:"serial_raw"`
	Model      *string `json:"model,omitempty"`
	MfgDate    *string `json:"mfg_date,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

// LabelResponse 绑定写入结果
type LabelResponse struct {
	LabelID         string `json:"label_id"`
	BoundSerialNorm string `json:"bound_serial_norm"`
	Active          bool   `json:"active"`
}

// BindingResponse 启用中的绑定及其设备
type BindingResponse struct {
	LabelID         string          `json:"label_id"`
	BoundSerialNorm string          `json:"bound_serial_norm"`
	Device          *DeviceResponse `json:"device,omitempty"`
}

// MappingResponse 管理端绑定列表项
type MappingResponse struct {
	LabelID      string  `json:"label_id"`
	SerialNorm   string  `json:"serial_norm"`
	SerialRaw    string  `json:"serial_raw,omitempty"`
	Model        *string `json:"model,omitempty"`
	DeviceStatus string  `json:"device_status,omitempty"`
}
