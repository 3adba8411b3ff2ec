package service

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"asset-verify/config"
	"asset-verify/internal/model"
	"asset-verify/internal/repository"
)

// ── Mock DeviceRepository ──

type mockDeviceRepo struct {
	devices map[string]*model.Device
	err     error
}

func newMockDeviceRepo() *mockDeviceRepo {
	return &mockDeviceRepo{devices: make(map[string]*model.Device)}
}

func (m *mockDeviceRepo) Create(_ context.Context, device *model.Device) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.devices[device.SerialNorm]; ok {
		return gorm.ErrDuplicatedKey
	}
	d := *device
	m.devices[device.SerialNorm] = &d
	return nil
}

func (m *mockDeviceRepo) GetBySerialNorm(_ context.Context, serialNorm string) (*model.Device, error) {
	if m.err != nil {
		return nil, m.err
	}
	if d, ok := m.devices[serialNorm]; ok {
		c := *d
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeviceRepo) ListBySerialNorms(_ context.Context, serialNorms []string) ([]model.Device, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Device
	for _, sn := range serialNorms {
		if d, ok := m.devices[sn]; ok {
			result = append(result, *d)
		}
	}
	return result, nil
}

// ── Mock LabelRepository ──

type mockLabelRepo struct {
	labels  map[string]*model.Label
	devices *mockDeviceRepo
	err     error
}

func newMockLabelRepo(devices *mockDeviceRepo) *mockLabelRepo {
	return &mockLabelRepo{labels: make(map[string]*model.Label), devices: devices}
}

func (m *mockLabelRepo) Upsert(_ context.Context, label *model.Label) error {
	if m.err != nil {
		return m.err
	}
	l := *label
	l.Device = nil
	m.labels[label.LabelID] = &l
	return nil
}

func (m *mockLabelRepo) GetActive(_ context.Context, labelID string) (*model.Label, error) {
	if m.err != nil {
		return nil, m.err
	}
	l, ok := m.labels[labelID]
	if !ok || !l.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withDevice(l), nil
}

func (m *mockLabelRepo) ListActive(_ context.Context) ([]model.Label, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Label
	for _, l := range m.labels {
		if l.Active {
			result = append(result, *m.withDevice(l))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LabelID < result[j].LabelID })
	return result, nil
}

func (m *mockLabelRepo) ListByLabelIDs(_ context.Context, labelIDs []string) ([]model.Label, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Label
	for _, id := range labelIDs {
		if l, ok := m.labels[id]; ok {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLabelRepo) Deactivate(_ context.Context, labelID string) error {
	if m.err != nil {
		return m.err
	}
	l, ok := m.labels[labelID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.Active = false
	return nil
}

func (m *mockLabelRepo) Delete(_ context.Context, labelID string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.labels[labelID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.labels, labelID)
	return nil
}

// withDevice 模拟 Preload("Device")
func (m *mockLabelRepo) withDevice(l *model.Label) *model.Label {
	c := *l
	if d, ok := m.devices.devices[l.BoundSerialNorm]; ok {
		dc := *d
		c.Device = &dc
	}
	return &c
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
	err       error
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) GetByCode(_ context.Context, code string) (*model.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	if e, ok := m.employees[code]; ok {
		c := *e
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) UpdatePassword(_ context.Context, code, password string) error {
	if m.err != nil {
		return m.err
	}
	e, ok := m.employees[code]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.PasswordText = password
	e.IsFirstLogin = false
	return nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events    []model.VerificationEvent
	createErr error
	listErr   error
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.VerificationEvent) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *mockEventRepo) ListRecent(_ context.Context, limit int) ([]model.VerificationEvent, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]model.VerificationEvent, len(m.events))
	copy(result, m.events)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── 测试辅助 ──

type mockRepos struct {
	device   *mockDeviceRepo
	label    *mockLabelRepo
	employee *mockEmployeeRepo
	event    *mockEventRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	device := newMockDeviceRepo()
	m := &mockRepos{
		device:   device,
		label:    newMockLabelRepo(device),
		employee: newMockEmployeeRepo(),
		event:    newMockEventRepo(),
	}
	repo := &repository.Repository{
		Device:   m.device,
		Label:    m.label,
		Employee: m.employee,
		Event:    m.event,
	}
	return repo, m
}

func testHistoryConfig() *config.HistoryConfig {
	return &config.HistoryConfig{DefaultLimit: 100, MaxLimit: 1000}
}

// setupTestServices 基于同一组 mock 仓储创建目录、核验与历史服务
func setupTestServices() (DirectoryService, VerificationService, HistoryService, *mockRepos) {
	repo, mocks := newMockRepository()
	logger := zap.NewNop()
	directory := NewDirectoryService(repo, logger)
	verification := NewVerificationService(repo, directory, logger)
	history := NewHistoryService(testHistoryConfig(), repo, logger)
	return directory, verification, history, mocks
}

func strPtr(s string) *string { return &s }
