package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required,max=64"`
	Password     string `json:"password"      binding:"required"`
}

// LoginResponse 登录结果；IsFirstLogin 为 true 时客户端须引导修改密码
type LoginResponse struct {
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	IsFirstLogin bool   `json:"is_first_login"`
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required,max=64"`
	OldPassword  string `json:"old_password"  binding:"required"`
	NewPassword  string `json:"new_password"  binding:"required,min=4,max=128"`
}
