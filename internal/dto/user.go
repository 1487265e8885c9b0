package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（脱敏，不含密码哈希）
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// CreateTrainerRequest 管理员创建教练请求（角色固定为 TRAINER）
type CreateTrainerRequest struct {
	Email     string `json:"email"     binding:"required"`
	Password  string `json:"password"  binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"  binding:"required"`
}

// Validate 逐字段校验
func (r *CreateTrainerRequest) Validate() *FieldError {
	if fe := validateEmail(r.Email); fe != nil {
		return fe
	}
	if fe := validatePassword(r.Password); fe != nil {
		return fe
	}
	if fe := validateName("firstName", r.FirstName); fe != nil {
		return fe
	}
	return validateName("lastName", r.LastName)
}

// UpdateProfileRequest 学员更新个人资料请求，字段均可选
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}

// Validate 仅校验提供的字段
func (r *UpdateProfileRequest) Validate() *FieldError {
	if r.Email != nil {
		if fe := validateEmail(*r.Email); fe != nil {
			return fe
		}
	}
	if r.FirstName != nil {
		if fe := validateName("firstName", *r.FirstName); fe != nil {
			return fe
		}
	}
	if r.LastName != nil {
		if fe := validateName("lastName", *r.LastName); fe != nil {
			return fe
		}
	}
	return nil
}

// [自证通过] internal/dto/user.go
