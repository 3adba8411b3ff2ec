package service

import (
	"fmt"
	"time"

	"asset-verify/internal/dto"
	"asset-verify/internal/model"
)

// UnknownGroupKey 既无快照序列号又无法通过标签找回设备的事件所在分组
const UnknownGroupKey = "unknown"

// 未知分组的展示信息
const unknownGroupModel = "Unknown device"

// KeySource 分组键的来源
type KeySource int

const (
	// KeyFromSnapshot 来自事件写入时的 expected_serial_norm
	KeyFromSnapshot KeySource = iota
	// KeyFromLabel 由 label_id 按当前目录（含停用行）反查得到
	KeyFromLabel
	// KeyUnknown 无法确定设备
	KeyUnknown
)

// GroupingKey 单个事件的分组键，按值传递，不回写事件本身
type GroupingKey struct {
	SerialNorm string
	Source     KeySource
}

// LabelsNeedingRecovery 返回缺少快照序列号但带有 label_id 的事件的标签（去重，保持首次出现顺序）
func LabelsNeedingRecovery(events []model.VerificationEvent) []string {
	seen := make(map[string]struct{})
	var ids []string
	for i := range events {
		e := &events[i]
		if nonEmpty(e.ExpectedSerialNorm) || !nonEmpty(e.LabelID) {
			continue
		}
		if _, ok := seen[*e.LabelID]; ok {
			continue
		}
		seen[*e.LabelID] = struct{}{}
		ids = append(ids, *e.LabelID)
	}
	return ids
}

// ResolveGroupingKeys 为每个事件计算分组键，结果与 events 一一对应
// recovered: label_id → 当前绑定的 bound_serial_norm
func ResolveGroupingKeys(events []model.VerificationEvent, recovered map[string]string) []GroupingKey {
	keys := make([]GroupingKey, len(events))
	for i := range events {
		e := &events[i]
		switch {
		case nonEmpty(e.ExpectedSerialNorm):
			keys[i] = GroupingKey{SerialNorm: *e.ExpectedSerialNorm, Source: KeyFromSnapshot}
		case nonEmpty(e.LabelID) && recovered[*e.LabelID] != "":
			keys[i] = GroupingKey{SerialNorm: recovered[*e.LabelID], Source: KeyFromLabel}
		default:
			keys[i] = GroupingKey{SerialNorm: UnknownGroupKey, Source: KeyUnknown}
		}
	}
	return keys
}

// DistinctSerials 返回已解析出的设备序列号（去重，不含未知分组）
func DistinctSerials(keys []GroupingKey) []string {
	seen := make(map[string]struct{})
	var serials []string
	for _, k := range keys {
		if k.Source == KeyUnknown {
			continue
		}
		if _, ok := seen[k.SerialNorm]; ok {
			continue
		}
		seen[k.SerialNorm] = struct{}{}
		serials = append(serials, k.SerialNorm)
	}
	return serials
}

// GroupEvents 按分组键聚合事件
// 分组顺序为在倒序事件流中的首次出现顺序；组内记录保持原有顺序
func GroupEvents(events []model.VerificationEvent, keys []GroupingKey, devices map[string]*model.Device) []dto.DeviceHistory {
	index := make(map[string]int)
	var groups []dto.DeviceHistory

	for i := range events {
		key := keys[i]
		gi, ok := index[key.SerialNorm]
		if !ok {
			gi = len(groups)
			index[key.SerialNorm] = gi
			groups = append(groups, newDeviceHistory(key, devices[key.SerialNorm]))
		}
		groups[gi].AccessLogs = append(groups[gi].AccessLogs, toAccessLog(&events[i], key))
	}
	return groups
}

func newDeviceHistory(key GroupingKey, device *model.Device) dto.DeviceHistory {
	h := dto.DeviceHistory{
		DeviceSerialNorm: key.SerialNorm,
		AccessLogs:       []dto.AccessLog{},
	}
	switch {
	case key.Source == KeyUnknown:
		h.DeviceModel = unknownGroupModel
	case device == nil:
		// 设备已被删除
		h.DeviceModel = fmt.Sprintf("Device %s", key.SerialNorm)
		h.DeviceSerialRaw = key.SerialNorm
	default:
		h.DeviceModel = fmt.Sprintf("Device %s", key.SerialNorm)
		if device.Model != nil && *device.Model != "" {
			h.DeviceModel = *device.Model
		}
		h.DeviceSerialRaw = device.SerialRaw
	}
	return h
}

func toAccessLog(e *model.VerificationEvent, key GroupingKey) dto.AccessLog {
	return dto.AccessLog{
		EventID:            e.ID,
		EmployeeCode:       e.EmployeeCode,
		EmployeeName:       e.EmployeeName,
		LabelID:            e.LabelID,
		ObservedSerialNorm: e.ObservedSerialNorm,
		Method:             e.Method,
		Result:             e.Result,
		Notes:              e.Notes,
		IsOfflineEvent:     e.IsOfflineEvent,
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
		Recovered:          key.Source == KeyFromLabel,
	}
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
