package service

import (
	"go.uber.org/zap"

	"asset-verify/config"
	"asset-verify/internal/repository"
	"asset-verify/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Directory    DirectoryService
	Verification VerificationService
	History      HistoryService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	directory := NewDirectoryService(repo, logger)
	history := NewHistoryService(&cfg.History, repo, logger)

	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, logger),
		Directory:    directory,
		Verification: NewVerificationService(repo, directory, logger),
		History:      history,
		Export:       NewExportService(history, logger),
	}
}
