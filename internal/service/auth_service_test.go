package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"asset-verify/config"
	"asset-verify/internal/dto"
	"asset-verify/internal/model"
	pkgerrors "asset-verify/pkg/errors"
	"asset-verify/pkg/jwt"
)

func setupTestAuthService() (AuthService, *mockRepos, *jwt.Manager) {
	repo, mocks := newMockRepository()
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-tests",
		AccessTokenTTL: time.Hour,
	})
	mocks.employee.employees["E1"] = &model.Employee{
		EmployeeCode: "E1",
		FullName:     "张三",
		PasswordText: "init-pass",
		IsFirstLogin: true,
	}
	return NewAuthService(repo, jwtMgr, zap.NewNop()), mocks, jwtMgr
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, jwtMgr := setupTestAuthService()

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{EmployeeCode: "E1", Password: "init-pass"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.FullName != "张三" || !resp.IsFirstLogin {
		t.Errorf("登录结果错误: %+v", resp)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("期望 expires_in=3600，实际 %d", resp.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("签发的 token 应可解析: %v", err)
	}
	if claims.EmployeeCode != "E1" || !claims.FirstLogin {
		t.Errorf("token 声明错误: %+v", claims)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"密码错误", dto.LoginRequest{EmployeeCode: "E1", Password: "wrong"}},
		{"大小写不同", dto.LoginRequest{EmployeeCode: "E1", Password: "INIT-PASS"}},
		{"员工不存在", dto.LoginRequest{EmployeeCode: "E404", Password: "init-pass"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
			}
			if !errors.Is(err, pkgerrors.ErrUnauthorized) {
				t.Error("应归类为 UNAUTHORIZED")
			}
		})
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	svc, mocks, _ := setupTestAuthService()
	mocks.employee.err = errors.New("connection refused")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{EmployeeCode: "E1", Password: "init-pass"})
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("存储错误不应伪装成凭据错误，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword(t *testing.T) {
	svc, mocks, _ := setupTestAuthService()

	err := svc.ChangePassword(context.Background(), &dto.ChangePasswordRequest{
		EmployeeCode: "E1",
		OldPassword:  "init-pass",
		NewPassword:  "new-pass",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}
	e := mocks.employee.employees["E1"]
	if e.PasswordText != "new-pass" || e.IsFirstLogin {
		t.Errorf("应更新密码并清除首次登录标记: %+v", e)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{EmployeeCode: "E1", Password: "init-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("旧密码应失效")
	}
	resp, err := svc.Login(context.Background(), &dto.LoginRequest{EmployeeCode: "E1", Password: "new-pass"})
	if err != nil {
		t.Fatalf("新密码应可登录: %v", err)
	}
	if resp.IsFirstLogin {
		t.Error("修改密码后不应再是首次登录")
	}
}

func TestAuthService_ChangePassword_Rejected(t *testing.T) {
	svc, mocks, _ := setupTestAuthService()

	err := svc.ChangePassword(context.Background(), &dto.ChangePasswordRequest{EmployeeCode: "E1", OldPassword: "wrong", NewPassword: "new-pass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码错误: 期望 ErrInvalidCredentials，实际: %v", err)
	}

	err = svc.ChangePassword(context.Background(), &dto.ChangePasswordRequest{EmployeeCode: "E1", OldPassword: "init-pass", NewPassword: "init-pass"})
	if !errors.Is(err, ErrSamePassword) {
		t.Errorf("新旧相同: 期望 ErrSamePassword，实际: %v", err)
	}

	if mocks.employee.employees["E1"].PasswordText != "init-pass" {
		t.Error("被拒绝的修改不应生效")
	}
}
