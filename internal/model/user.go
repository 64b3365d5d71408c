package model

// 用户角色
const (
	RoleAdmin   = "admin"
	RolePlanner = "planner"
	RoleViewer  = "viewer"
)

// User 用户表 — 对应 users
type User struct {
	UserID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name               string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email              string `gorm:"type:varchar(200);not null;uniqueIndex"         json:"email"`
	PasswordHash       string `gorm:"type:varchar(200);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(20);not null;default:'viewer'"     json:"role"`
	MustChangePassword bool   `gorm:"not null;default:false"                         json:"must_change_password"`
	BaseModel
}

func (User) TableName() string { return "users" }
