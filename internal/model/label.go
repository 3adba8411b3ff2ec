package model

// Label 物理标签与设备的绑定 — 对应 labels
// 以 label_id 为键 upsert，同一标签最多一条绑定；删除为物理删除
type Label struct {
	LabelID         string `gorm:"type:varchar(255);primaryKey" json:"label_id"`
	BoundSerialNorm string `gorm:"type:varchar(255);not null"   json:"bound_serial_norm"`
	Active          bool   `gorm:"not null"                     json:"active"`

	// 关联
	Device *Device `gorm:"foreignKey:BoundSerialNorm;references:SerialNorm" json:"device,omitempty"`
}

// TableName 指定表名
func (Label) TableName() string { return "labels" }
