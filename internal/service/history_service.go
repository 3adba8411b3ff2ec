package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"asset-verify/config"
	"asset-verify/internal/dto"
	"asset-verify/internal/model"
	"asset-verify/internal/repository"
	"asset-verify/pkg/metrics"
)

// HistoryService 事件查询与分组历史业务接口
//
// 设计说明：
//   - 只读，尽力而为：事件与目录分别读取，不保证处于同一时间点
//   - 没有分页游标，条数受 history.max_limit 约束
//   - 通过标签反查设备只用于分组，不改写已存储的事件
type HistoryService interface {
	ListEvents(ctx context.Context, limit int) ([]dto.EventResponse, error)
	GroupedHistory(ctx context.Context, limit int) ([]dto.DeviceHistory, error)
}

type historyService struct {
	cfg    *config.HistoryConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHistoryService 创建 HistoryService 实例
func NewHistoryService(cfg *config.HistoryConfig, repo *repository.Repository, logger *zap.Logger) HistoryService {
	return &historyService{cfg: cfg, repo: repo, logger: logger}
}

// clampLimit 未指定时取默认值，超过上限时截断
func (s *historyService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}

// ────────────────────── ListEvents ──────────────────────

func (s *historyService) ListEvents(ctx context.Context, limit int) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.ListRecent(ctx, s.clampLimit(limit))
	if err != nil {
		s.logger.Error("查询核验事件失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, toEventResponse(&events[i]))
	}
	return result, nil
}

// ────────────────────── GroupedHistory ──────────────────────

func (s *historyService) GroupedHistory(ctx context.Context, limit int) ([]dto.DeviceHistory, error) {
	// 1. 最近的事件（倒序）
	events, err := s.repo.Event.ListRecent(ctx, s.clampLimit(limit))
	if err != nil {
		s.logger.Error("查询核验事件失败", zap.Error(err))
		return nil, err
	}
	if len(events) == 0 {
		return []dto.DeviceHistory{}, nil
	}

	// 2. 无快照的事件按标签批量反查当前绑定（含停用行）
	recovered := make(map[string]string)
	if labelIDs := LabelsNeedingRecovery(events); len(labelIDs) > 0 {
		labels, err := s.repo.Label.ListByLabelIDs(ctx, labelIDs)
		if err != nil {
			s.logger.Error("批量查询标签绑定失败", zap.Int("count", len(labelIDs)), zap.Error(err))
			return nil, err
		}
		for _, l := range labels {
			recovered[l.LabelID] = l.BoundSerialNorm
		}
	}

	// 3. 计算分组键
	keys := ResolveGroupingKeys(events, recovered)
	for _, k := range keys {
		if k.Source == KeyFromLabel {
			metrics.HistoryRecoveredTotal.Inc()
		}
	}

	// 4. 批量查询设备
	devices := make(map[string]*model.Device)
	if serials := DistinctSerials(keys); len(serials) > 0 {
		list, err := s.repo.Device.ListBySerialNorms(ctx, serials)
		if err != nil {
			s.logger.Error("批量查询设备失败", zap.Int("count", len(serials)), zap.Error(err))
			return nil, err
		}
		for i := range list {
			devices[list[i].SerialNorm] = &list[i]
		}
	}

	// 5. 分组
	return GroupEvents(events, keys, devices), nil
}

// ── 内部辅助方法 ──

func toEventResponse(e *model.VerificationEvent) dto.EventResponse {
	return dto.EventResponse{
		ID:                 e.ID,
		EmployeeCode:       e.EmployeeCode,
		EmployeeName:       e.EmployeeName,
		LabelID:            e.LabelID,
		ExpectedSerialNorm: e.ExpectedSerialNorm,
		ObservedSerialRaw:  e.ObservedSerialRaw,
		ObservedSerialNorm: e.ObservedSerialNorm,
		Method:             e.Method,
		Result:             e.Result,
		Notes:              e.Notes,
		IsOfflineEvent:     e.IsOfflineEvent,
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
	}
}
