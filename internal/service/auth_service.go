package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"asset-verify/internal/dto"
	"asset-verify/internal/repository"
	pkgerrors "asset-verify/pkg/errors"
	"asset-verify/pkg/jwt"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: 员工编号或密码错误", pkgerrors.ErrUnauthorized)
	ErrSamePassword       = fmt.Errorf("%w: 新密码不能与旧密码相同", pkgerrors.ErrValidation)
)

// AuthService 认证业务接口
//
// 凭据按原文精确比对（见 model.Employee.PasswordText），
// 上线加固前需要替换为加盐哈希。
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// ChangePassword 复核旧密码后轮换凭据，并清除首次登录标记
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. 查询员工
	employee, err := s.repo.Employee.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	// 2. 比对凭据
	if !passwordMatches(employee.PasswordText, req.Password) {
		return nil, ErrInvalidCredentials
	}

	// 3. 签发 Access Token
	token, err := s.jwtMgr.GenerateAccessToken(employee.EmployeeCode, employee.IsFirstLogin)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		EmployeeCode: employee.EmployeeCode,
		FullName:     employee.FullName,
		IsFirstLogin: employee.IsFirstLogin,
		AccessToken:  token,
		ExpiresIn:    int(s.jwtMgr.TTL().Seconds()),
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	employee, err := s.repo.Employee.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredentials
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return err
	}

	if !passwordMatches(employee.PasswordText, req.OldPassword) {
		return ErrInvalidCredentials
	}
	if req.NewPassword == req.OldPassword {
		return ErrSamePassword
	}

	if err := s.repo.Employee.UpdatePassword(ctx, employee.EmployeeCode, req.NewPassword); err != nil {
		s.logger.Error("更新密码失败", zap.String("employee_code", employee.EmployeeCode), zap.Error(err))
		return err
	}

	s.logger.Info("员工已修改密码", zap.String("employee_code", employee.EmployeeCode))
	return nil
}

func passwordMatches(stored, given string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
