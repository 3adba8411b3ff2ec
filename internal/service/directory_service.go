package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"asset-verify/internal/dto"
	"asset-verify/internal/model"
	"asset-verify/internal/repository"
	"asset-verify/internal/serial"
	pkgerrors "asset-verify/pkg/errors"
)

// ── 目录模块业务错误 ──

var (
	ErrEmptySerial     = fmt.Errorf("%w: 序列号不能为空", pkgerrors.ErrValidation)
	ErrSerialTooLong   = fmt.Errorf("%w: 序列号规范化后超过 %d 个字符", pkgerrors.ErrValidation, serial.MaxLength)
	ErrInvalidMfgDate  = fmt.Errorf("%w: 生产日期格式应为 YYYY-MM-DD", pkgerrors.ErrValidation)
	ErrDeviceExists    = fmt.Errorf("%w: 该序列号的设备已存在", pkgerrors.ErrConflict)
	ErrDeviceNotFound  = fmt.Errorf("%w: 设备不存在，请先创建设备", pkgerrors.ErrNotFound)
	ErrBindingNotFound = fmt.Errorf("%w: 标签不存在或已停用", pkgerrors.ErrNotFound)
)

const dateLayout = "2006-01-02"

// DirectoryService 标签-设备目录业务接口
type DirectoryService interface {
	CreateDevice(ctx context.Context, req *dto.CreateDeviceRequest) (*dto.DeviceResponse, error)
	// BindLabel 以 label_id 为键 upsert 绑定，覆盖之前的绑定
	BindLabel(ctx context.Context, req *dto.BindLabelRequest) (*dto.LabelResponse, error)
	// GetActiveBinding 仅返回 active=true 的绑定；从未绑定与已停用都返回 ErrBindingNotFound
	GetActiveBinding(ctx context.Context, labelID string) (*dto.BindingResponse, error)
	DeactivateBinding(ctx context.Context, labelID string) error
	// DeleteBinding 物理删除绑定，之后该标签对所有调用方都视为未知
	DeleteBinding(ctx context.Context, labelID string) error
	ListActiveMappings(ctx context.Context) ([]dto.MappingResponse, error)
}

type directoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewDirectoryService 创建 DirectoryService 实例
func NewDirectoryService(repo *repository.Repository, logger *zap.Logger) DirectoryService {
	return &directoryService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── CreateDevice ──────────────────────

func (s *directoryService) CreateDevice(ctx context.Context, req *dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	serialNorm, err := normalizeDeviceSerial(req.SerialRaw)
	if err != nil {
		return nil, err
	}

	var mfgDate *time.Time
	if req.MfgDate != nil && *req.MfgDate != "" {
		d, err := time.Parse(dateLayout, *req.MfgDate)
		if err != nil {
			return nil, ErrInvalidMfgDate
		}
		mfgDate = &d
	}

	_, err = s.repo.Device.GetBySerialNorm(ctx, serialNorm)
	if err == nil {
		return nil, ErrDeviceExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询设备失败", zap.String("serial_norm", serialNorm), zap.Error(err))
		return nil, err
	}

	device := &model.Device{
		SerialNorm: serialNorm,
		SerialRaw:  req.SerialRaw,
		Model:      req.Model,
		MfgDate:    mfgDate,
		Status:     model.DeviceStatusActive,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Device.Create(ctx, device); err != nil {
		// 并发创建时由唯一约束兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDeviceExists
		}
		s.logger.Error("创建设备失败", zap.String("serial_norm", serialNorm), zap.Error(err))
		return nil, err
	}

	s.logger.Info("设备已创建", zap.String("serial_norm", serialNorm))
	return toDeviceResponse(device), nil
}

// ────────────────────── BindLabel ──────────────────────

func (s *directoryService) BindLabel(ctx context.Context, req *dto.BindLabelRequest) (*dto.LabelResponse, error) {
	serialNorm, err := normalizeDeviceSerial(req.SerialRaw)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Device.GetBySerialNorm(ctx, serialNorm); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		s.logger.Error("查询设备失败", zap.String("serial_norm", serialNorm), zap.Error(err))
		return nil, err
	}

	label := &model.Label{
		LabelID:         req.LabelID,
		BoundSerialNorm: serialNorm,
		Active:          true,
	}
	if err := s.repo.Label.Upsert(ctx, label); err != nil {
		s.logger.Error("绑定标签失败", zap.String("label_id", req.LabelID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("标签已绑定",
		zap.String("label_id", label.LabelID),
		zap.String("serial_norm", serialNorm),
	)
	return &dto.LabelResponse{
		LabelID:         label.LabelID,
		BoundSerialNorm: label.BoundSerialNorm,
		Active:          label.Active,
	}, nil
}

// ────────────────────── GetActiveBinding ──────────────────────

func (s *directoryService) GetActiveBinding(ctx context.Context, labelID string) (*dto.BindingResponse, error) {
	label, err := s.repo.Label.GetActive(ctx, labelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBindingNotFound
		}
		s.logger.Error("查询标签绑定失败", zap.String("label_id", labelID), zap.Error(err))
		return nil, err
	}

	resp := &dto.BindingResponse{
		LabelID:         label.LabelID,
		BoundSerialNorm: label.BoundSerialNorm,
	}
	if label.Device != nil {
		resp.Device = toDeviceResponse(label.Device)
	}
	return resp, nil
}

// ────────────────────── DeactivateBinding ──────────────────────

func (s *directoryService) DeactivateBinding(ctx context.Context, labelID string) error {
	if err := s.repo.Label.Deactivate(ctx, labelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBindingNotFound
		}
		s.logger.Error("停用标签绑定失败", zap.String("label_id", labelID), zap.Error(err))
		return err
	}

	s.logger.Info("标签绑定已停用", zap.String("label_id", labelID))
	return nil
}

// ────────────────────── DeleteBinding ──────────────────────

func (s *directoryService) DeleteBinding(ctx context.Context, labelID string) error {
	if err := s.repo.Label.Delete(ctx, labelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBindingNotFound
		}
		s.logger.Error("删除标签绑定失败", zap.String("label_id", labelID), zap.Error(err))
		return err
	}

	s.logger.Info("标签绑定已删除", zap.String("label_id", labelID))
	return nil
}

// ────────────────────── ListActiveMappings ──────────────────────

func (s *directoryService) ListActiveMappings(ctx context.Context) ([]dto.MappingResponse, error) {
	labels, err := s.repo.Label.ListActive(ctx)
	if err != nil {
		s.logger.Error("列出标签绑定失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MappingResponse, 0, len(labels))
	for _, l := range labels {
		m := dto.MappingResponse{
			LabelID:    l.LabelID,
			SerialNorm: l.BoundSerialNorm,
		}
		if l.Device != nil {
			m.SerialRaw = l.Device.SerialRaw
			m.Model = l.Device.Model
			m.DeviceStatus = l.Device.Status
		}
		result = append(result, m)
	}
	return result, nil
}

// ── 内部辅助方法 ──

// normalizeDeviceSerial 归一化并校验设备序列号
func normalizeDeviceSerial(raw string) (string, error) {
	serialNorm := serial.Normalize(raw)
	if serialNorm == "" {
		return "", ErrEmptySerial
	}
	if utf8.RuneCountInString(serialNorm) > serial.MaxLength {
		return "", ErrSerialTooLong
	}
	return serialNorm, nil
}

func toDeviceResponse(d *model.Device) *dto.DeviceResponse {
	resp := &dto.DeviceResponse{
		SerialNorm: d.SerialNorm,
		SerialRaw:  d.SerialRaw,
		Model:      d.Model,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt.Format(time.RFC3339),
	}
	if d.MfgDate != nil {
		s := d.MfgDate.Format(dateLayout)
		resp.MfgDate = &s
	}
	return resp
}
