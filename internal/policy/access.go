// Package policy 提供注入到各 Handler 的访问控制对象。
// 管理口令与历史查看名单都来自配置，不存在包级全局状态。
package policy

import (
	"crypto/subtle"

	"asset-verify/config"
)

// AccessPolicy 管理口令与历史查看名单
type AccessPolicy struct {
	adminSecret    string
	historyViewers map[string]struct{}
}

// New 创建 AccessPolicy
// adminSecret 为空时所有管理请求都会被拒绝
func New(adminSecret string, historyViewers []string) *AccessPolicy {
	viewers := make(map[string]struct{}, len(historyViewers))
	for _, code := range historyViewers {
		if code != "" {
			viewers[code] = struct{}{}
		}
	}
	return &AccessPolicy{adminSecret: adminSecret, historyViewers: viewers}
}

// FromConfig 从认证配置创建 AccessPolicy
func FromConfig(cfg *config.AuthConfig) *AccessPolicy {
	return New(cfg.AdminSecret, cfg.HistoryViewers)
}

// AllowAdmin 校验管理口令
func (p *AccessPolicy) AllowAdmin(secret string) bool {
	if p == nil || p.adminSecret == "" || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(p.adminSecret)) == 1
}

// AllowHistory 判断员工是否可以查看事件与分组历史
func (p *AccessPolicy) AllowHistory(employeeCode string) bool {
	if p == nil || employeeCode == "" {
		return false
	}
	_, ok := p.historyViewers[employeeCode]
	return ok
}
