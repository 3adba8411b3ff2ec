package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"asset-verify/internal/dto"
	"asset-verify/internal/model"
	"asset-verify/internal/repository"
	"asset-verify/internal/serial"
	pkgerrors "asset-verify/pkg/errors"
	"asset-verify/pkg/metrics"
)

// ── 核验模块业务错误 ──

var (
	ErrInvalidMethod = fmt.Errorf("%w: 核验方式必须为 SCAN、MANUAL 或 URL_REDIRECT", pkgerrors.ErrValidation)
)

// 核验结果提示
const (
	MessageVerified       = "Verification Successful"
	MessageRedirectLogged = "URL redirect logged"
	MessageLabelNotFound  = "Label not found"
)

// VerificationService 核验业务接口
type VerificationService interface {
	// Verify 判定标签核验结果并追加事件
	// 事件写入失败只记录日志，不影响返回的结果
	Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.VerifyResponse, error)
}

type verificationService struct {
	repo      *repository.Repository
	directory DirectoryService
	logger    *zap.Logger
	now       func() time.Time
}

// NewVerificationService 创建 VerificationService 实例
func NewVerificationService(repo *repository.Repository, directory DirectoryService, logger *zap.Logger) VerificationService {
	return &verificationService{
		repo:      repo,
		directory: directory,
		logger:    logger,
		now:       time.Now,
	}
}

// decision 核验判定结果
type decision struct {
	result   string
	message  string
	expected *string
}

// decide 按顺序应用核验策略：
// URL_REDIRECT 只记录审计，恒为 PASS；存在启用绑定即 PASS（观测序列号仅留档）；否则 FAIL。
// WARN 当前策略不会产生。
func decide(method string, binding *dto.BindingResponse) decision {
	if method == model.MethodURLRedirect {
		return decision{result: model.ResultPass, message: MessageRedirectLogged}
	}
	if binding != nil {
		expected := binding.BoundSerialNorm
		return decision{result: model.ResultPass, message: MessageVerified, expected: &expected}
	}
	return decision{result: model.ResultFail, message: MessageLabelNotFound}
}

func (s *verificationService) Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.VerifyResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = model.MethodManual
	}
	if !model.ValidMethod(method) {
		return nil, ErrInvalidMethod
	}

	// 1. 员工姓名快照
	employeeName := s.resolveEmployeeName(ctx, req.EmployeeCode)

	// 2. 当前绑定；URL_REDIRECT 的结果与绑定无关，不查目录
	var binding *dto.BindingResponse
	if method != model.MethodURLRedirect {
		b, err := s.directory.GetActiveBinding(ctx, req.LabelID)
		if err != nil && !errors.Is(err, ErrBindingNotFound) {
			return nil, err
		}
		binding = b
	}

	// 3. 判定
	d := decide(method, binding)
	observedNorm := serial.NormalizePtr(req.ObservedSerialRaw)

	// 4. 追加事件快照
	createdAt := s.now()
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}
	labelID := req.LabelID
	event := &model.VerificationEvent{
		ID:                 uuid.NewString(),
		EmployeeCode:       req.EmployeeCode,
		EmployeeName:       employeeName,
		LabelID:            &labelID,
		ExpectedSerialNorm: d.expected,
		ObservedSerialRaw:  req.ObservedSerialRaw,
		ObservedSerialNorm: observedNorm,
		Method:             method,
		Result:             d.result,
		Notes:              req.Notes,
		IsOfflineEvent:     req.IsOfflineEvent,
		CreatedAt:          createdAt,
	}
	s.appendEvent(ctx, event)

	metrics.VerificationsTotal.WithLabelValues(method, d.result).Inc()

	return &dto.VerifyResponse{
		Result:             d.result,
		Message:            d.message,
		ExpectedSerial:     d.expected,
		ObservedSerialNorm: observedNorm,
	}, nil
}

// resolveEmployeeName 查询员工姓名，任何失败都回退为 Unknown
func (s *verificationService) resolveEmployeeName(ctx context.Context, code string) string {
	employee, err := s.repo.Employee.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询员工失败，使用默认姓名", zap.String("employee_code", code), zap.Error(err))
		}
		return model.UnknownEmployeeName
	}
	return employee.FullName
}

// appendEvent 单次尝试写入事件；请求被取消也继续写入
func (s *verificationService) appendEvent(ctx context.Context, event *model.VerificationEvent) {
	if err := s.repo.Event.Create(context.WithoutCancel(ctx), event); err != nil {
		metrics.EventWriteFailuresTotal.Inc()
		s.logger.Error("核验事件写入失败",
			zap.String("event_id", event.ID),
			zap.String("label_id", *event.LabelID),
			zap.String("result", event.Result),
			zap.Error(fmt.Errorf("%w: %v", pkgerrors.ErrPersistence, err)),
		)
	}
}
