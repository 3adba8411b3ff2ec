package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"asset-verify/internal/dto"
	"asset-verify/internal/model"
	"asset-verify/internal/serial"
	pkgerrors "asset-verify/pkg/errors"
)

func createDevice(t *testing.T, svc DirectoryService, serialRaw string) *dto.DeviceResponse {
	t.Helper()
	d, err := svc.CreateDevice(context.Background(), &dto.CreateDeviceRequest{SerialRaw: serialRaw, Model: strPtr("Infusion Pump")})
	if err != nil {
		t.Fatalf("CreateDevice(%q) 应成功: %v", serialRaw, err)
	}
	return d
}

func bindLabel(t *testing.T, svc DirectoryService, labelID, serialRaw string) {
	t.Helper()
	if _, err := svc.BindLabel(context.Background(), &dto.BindLabelRequest{LabelID: labelID, SerialRaw: serialRaw}); err != nil {
		t.Fatalf("BindLabel(%q, %q) 应成功: %v", labelID, serialRaw, err)
	}
}

// ── CreateDevice 测试 ──

func TestDirectoryService_CreateDevice_Normalizes(t *testing.T) {
	svc, _, _, mocks := setupTestServices()

	d, err := svc.CreateDevice(context.Background(), &dto.CreateDeviceRequest{
		SerialRaw: "sn-001 ",
		MfgDate:   strPtr("2023-05-17"),
	})
	if err != nil {
		t.Fatalf("CreateDevice 应成功: %v", err)
	}
	if d.SerialNorm != "SN-001" {
		t.Errorf("期望 serial_norm=SN-001，实际=%s", d.SerialNorm)
	}
	if d.SerialRaw != "sn-001 " {
		t.Errorf("serial_raw 应保持原样，实际=%q", d.SerialRaw)
	}
	if d.Status != model.DeviceStatusActive {
		t.Errorf("期望 status=ACTIVE，实际=%s", d.Status)
	}
	if d.MfgDate == nil || *d.MfgDate != "2023-05-17" {
		t.Errorf("期望 mfg_date=2023-05-17，实际=%v", d.MfgDate)
	}
	if d.CreatedAt == "" {
		t.Error("created_at 应由服务端填充")
	}
	if _, ok := mocks.device.devices["SN-001"]; !ok {
		t.Error("设备应以归一化序列号持久化")
	}
}

func TestDirectoryService_CreateDevice_Duplicate(t *testing.T) {
	svc, _, _, _ := setupTestServices()
	createDevice(t, svc, "SN-001")

	_, err := svc.CreateDevice(context.Background(), &dto.CreateDeviceRequest{SerialRaw: "  sn-001"})
	if !errors.Is(err, ErrDeviceExists) {
		t.Fatalf("期望 ErrDeviceExists，实际: %v", err)
	}
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Error("重复设备应归类为 CONFLICT")
	}
}

func TestDirectoryService_CreateDevice_Validation(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	_, err := svc.CreateDevice(context.Background(), &dto.CreateDeviceRequest{SerialRaw: "   "})
	if !errors.Is(err, ErrEmptySerial) {
		t.Errorf("期望 ErrEmptySerial，实际: %v", err)
	}

	_, err = svc.CreateDevice(context.Background(), &dto.CreateDeviceRequest{SerialRaw: "SN-9", MfgDate: strPtr("17/05/2023")})
	if !errors.Is(err, ErrInvalidMfgDate) {
		t.Errorf("期望 ErrInvalidMfgDate，实际: %v", err)
	}
}

func TestDirectoryService_SerialTooLongAfterNormalize(t *testing.T) {
	svc, _, _, mocks := setupTestServices()
	// U+FDFA 经 NFKC 展开为 18 个字符：原始 20 个字符，规范形式 360 个
	raw := strings.Repeat("\uFDFA", 20)

	_, err := svc.CreateDevice(context.Background(), &dto.CreateDeviceRequest{SerialRaw: raw})
	if !errors.Is(err, ErrSerialTooLong) {
		t.Fatalf("期望 ErrSerialTooLong，实际: %v", err)
	}
	if !errors.Is(err, pkgerrors.ErrValidation) {
		t.Error("应归类为 VALIDATION")
	}
	if len(mocks.device.devices) != 0 {
		t.Error("超长序列号不应写入设备")
	}

	_, err = svc.BindLabel(context.Background(), &dto.BindLabelRequest{LabelID: "LBL-A", SerialRaw: raw})
	if !errors.Is(err, ErrSerialTooLong) {
		t.Errorf("绑定时期望 ErrSerialTooLong，实际: %v", err)
	}
}

func TestDirectoryService_SerialAtMaxLength(t *testing.T) {
	svc, _, _, _ := setupTestServices()
	d := createDevice(t, svc, strings.Repeat("a", serial.MaxLength))
	if len(d.SerialNorm) != serial.MaxLength {
		t.Errorf("期望长度 %d，实际 %d", serial.MaxLength, len(d.SerialNorm))
	}
}

// ── BindLabel 测试 ──

func TestDirectoryService_BindLabel_DeviceNotFound(t *testing.T) {
	svc, _, _, mocks := setupTestServices()

	_, err := svc.BindLabel(context.Background(), &dto.BindLabelRequest{LabelID: "LBL-A", SerialRaw: "SN-404"})
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Fatalf("期望 ErrDeviceNotFound，实际: %v", err)
	}
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Error("应归类为 NOT_FOUND")
	}
	if len(mocks.label.labels) != 0 {
		t.Error("失败的绑定不应写入任何行")
	}
}

func TestDirectoryService_BindLabel_RebindOverwrites(t *testing.T) {
	svc, _, _, _ := setupTestServices()
	createDevice(t, svc, "SN-001")
	createDevice(t, svc, "SN-002")

	bindLabel(t, svc, "LBL-A", "SN-001")
	bindLabel(t, svc, "LBL-A", " sn-002 ")

	b, err := svc.GetActiveBinding(context.Background(), "LBL-A")
	if err != nil {
		t.Fatalf("GetActiveBinding 应成功: %v", err)
	}
	if b.BoundSerialNorm != "SN-002" {
		t.Errorf("期望最新绑定 SN-002，实际=%s", b.BoundSerialNorm)
	}
	if b.Device == nil || b.Device.SerialNorm != "SN-002" {
		t.Errorf("绑定应附带设备信息，实际=%+v", b.Device)
	}
}

func TestDirectoryService_BindLabel_ReactivatesDeactivated(t *testing.T) {
	svc, _, _, _ := setupTestServices()
	createDevice(t, svc, "SN-001")
	bindLabel(t, svc, "LBL-A", "SN-001")

	if err := svc.DeactivateBinding(context.Background(), "LBL-A"); err != nil {
		t.Fatalf("DeactivateBinding 应成功: %v", err)
	}
	bindLabel(t, svc, "LBL-A", "SN-001")

	if _, err := svc.GetActiveBinding(context.Background(), "LBL-A"); err != nil {
		t.Errorf("重新绑定后应可查询，实际: %v", err)
	}
}

// ── GetActiveBinding 测试 ──

func TestDirectoryService_GetActiveBinding_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestServices()
	createDevice(t, svc, "SN-001")
	bindLabel(t, svc, "LBL-A", "SN-001")

	if _, err := svc.GetActiveBinding(context.Background(), "LBL-NEVER"); !errors.Is(err, ErrBindingNotFound) {
		t.Errorf("从未绑定: 期望 ErrBindingNotFound，实际: %v", err)
	}

	if err := svc.DeactivateBinding(context.Background(), "LBL-A"); err != nil {
		t.Fatalf("DeactivateBinding 应成功: %v", err)
	}
	if _, err := svc.GetActiveBinding(context.Background(), "LBL-A"); !errors.Is(err, ErrBindingNotFound) {
		t.Errorf("已停用: 期望 ErrBindingNotFound，实际: %v", err)
	}
}

func TestDirectoryService_GetActiveBinding_StoreError(t *testing.T) {
	svc, _, _, mocks := setupTestServices()
	mocks.label.err = errors.New("connection refused")

	_, err := svc.GetActiveBinding(context.Background(), "LBL-A")
	if err == nil || errors.Is(err, ErrBindingNotFound) {
		t.Errorf("存储错误应原样返回，实际: %v", err)
	}
}

// ── DeleteBinding / DeactivateBinding 测试 ──

func TestDirectoryService_DeleteBinding(t *testing.T) {
	svc, _, _, mocks := setupTestServices()
	createDevice(t, svc, "SN-001")
	bindLabel(t, svc, "LBL-A", "SN-001")

	if err := svc.DeleteBinding(context.Background(), "LBL-A"); err != nil {
		t.Fatalf("DeleteBinding 应成功: %v", err)
	}
	if _, ok := mocks.label.labels["LBL-A"]; ok {
		t.Error("删除应移除整行而不是置为停用")
	}
	if err := svc.DeleteBinding(context.Background(), "LBL-A"); !errors.Is(err, ErrBindingNotFound) {
		t.Errorf("重复删除: 期望 ErrBindingNotFound，实际: %v", err)
	}
}

func TestDirectoryService_DeactivateBinding_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	if err := svc.DeactivateBinding(context.Background(), "LBL-X"); !errors.Is(err, ErrBindingNotFound) {
		t.Errorf("期望 ErrBindingNotFound，实际: %v", err)
	}
}

// ── ListActiveMappings 测试 ──

func TestDirectoryService_ListActiveMappings(t *testing.T) {
	svc, _, _, _ := setupTestServices()
	createDevice(t, svc, "SN-001")
	createDevice(t, svc, "SN-002")
	bindLabel(t, svc, "LBL-A", "SN-001")
	bindLabel(t, svc, "LBL-B", "SN-002")
	if err := svc.DeactivateBinding(context.Background(), "LBL-B"); err != nil {
		t.Fatalf("DeactivateBinding 应成功: %v", err)
	}

	mappings, err := svc.ListActiveMappings(context.Background())
	if err != nil {
		t.Fatalf("ListActiveMappings 应成功: %v", err)
	}
	if len(mappings) != 1 {
		t.Fatalf("期望 1 条启用绑定，实际 %d", len(mappings))
	}
	m := mappings[0]
	if m.LabelID != "LBL-A" || m.SerialNorm != "SN-001" || m.SerialRaw != "SN-001" {
		t.Errorf("绑定内容错误: %+v", m)
	}
	if m.Model == nil || *m.Model != "Infusion Pump" || m.DeviceStatus != model.DeviceStatusActive {
		t.Errorf("应附带设备摘要: %+v", m)
	}
}
