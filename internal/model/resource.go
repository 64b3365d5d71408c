package model

// 资源状态
const (
	ResourceStatusActive = "active"
	ResourceStatusFired  = "fired"
)

// Resource 生产资源表 — 对应 resources
// 一条记录代表一个产能单位（通常是一名工人），按每日可用工时计入产能
type Resource struct {
	ResourceID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"resource_id"`
	Name        string  `gorm:"type:varchar(100);not null"                     json:"name"`
	HoursPerDay float64 `gorm:"not null;default:8"                             json:"hours_per_day"`
	Status      string  `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | fired
	BaseModel
}

func (Resource) TableName() string { return "resources" }

// [自证通过] internal/model/resource.go
