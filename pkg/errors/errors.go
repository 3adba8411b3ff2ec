// Package errors 定义业务错误分类。
// 各模块的业务错误通过 %w 包装以下分类哨兵，Handler 层据此映射 HTTP 状态码。
package errors

import "errors"

var (
	// ErrValidation 输入格式不合法
	ErrValidation = errors.New("参数校验失败")
	// ErrNotFound 设备、标签或绑定不存在
	ErrNotFound = errors.New("资源不存在")
	// ErrUnauthorized 管理口令或员工凭据无效
	ErrUnauthorized = errors.New("认证失败")
	// ErrConflict 设备序列号重复
	ErrConflict = errors.New("资源已存在")
	// ErrPersistence 审计写入失败，仅记录日志，不向调用方暴露
	ErrPersistence = errors.New("持久化失败")
)

// Kind 返回 err 所属的分类哨兵；无法归类时返回 nil
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrNotFound, ErrUnauthorized, ErrConflict, ErrPersistence} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
