package model

// 订单状态
const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
)

// Order 订单表 — 对应 orders
// Deadline 保存为日期字符串（YYYY-MM-DD）：历史数据存在空值与脏值，
// 解析失败的截止日期按"无截止日期"处理而不是报错
type Order struct {
	OrderID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"order_id"`
	OrderNumber string `gorm:"type:varchar(50);not null"                      json:"order_number"`
	ClientName  string `gorm:"type:varchar(200);not null"                     json:"client_name"`
	Deadline    string `gorm:"type:varchar(20)"                               json:"deadline,omitempty"`
	Status      string `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | completed
	InShipping  bool   `gorm:"not null;default:false"                         json:"in_shipping"`
	BaseModel

	// 关联
	Products []Product `gorm:"foreignKey:OrderID" json:"products,omitempty"`
}

func (Order) TableName() string { return "orders" }
