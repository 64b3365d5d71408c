package dto

// ── 订单模块 DTO ──

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	OrderNumber string `json:"order_number" binding:"required,min=1,max=50"`
	ClientName  string `json:"client_name"  binding:"required,min=1,max=200"`
	Deadline    string `json:"deadline"     binding:"omitempty,datetime=2006-01-02"`
}

// UpdateOrderRequest 更新订单请求
type UpdateOrderRequest struct {
	OrderNumber *string `json:"order_number" binding:"omitempty,min=1,max=50"`
	ClientName  *string `json:"client_name"  binding:"omitempty,min=1,max=200"`
	Deadline    *string `json:"deadline"     binding:"omitempty"` // 空字符串表示清除截止日期
	Status      *string `json:"status"       binding:"omitempty,oneof=active completed"`
	InShipping  *bool   `json:"in_shipping"`
}

// OrderListRequest 订单列表查询参数
type OrderListRequest struct {
	PaginationRequest
	Status     string `form:"status"      binding:"omitempty,oneof=active completed"`
	InShipping *bool  `form:"in_shipping"`
}

// OrderResponse 订单信息响应
type OrderResponse struct {
	ID          string            `json:"id"`
	OrderNumber string            `json:"order_number"`
	ClientName  string            `json:"client_name"`
	Deadline    string            `json:"deadline,omitempty"`
	Status      string            `json:"status"`
	InShipping  bool              `json:"in_shipping"`
	Products    []ProductResponse `json:"products,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}
