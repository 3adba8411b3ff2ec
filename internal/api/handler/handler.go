package handler

import "asset-verify/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Directory    *DirectoryHandler
	Verification *VerificationHandler
	History      *HistoryHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Directory:    NewDirectoryHandler(svc.Directory),
		Verification: NewVerificationHandler(svc.Verification),
		History:      NewHistoryHandler(svc.History, svc.Export),
	}
}
