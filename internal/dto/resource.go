package dto

// ── 生产资源模块 DTO ──

// CreateResourceRequest 创建资源请求
type CreateResourceRequest struct {
	Name        string   `json:"name"          binding:"required,min=1,max=100"`
	HoursPerDay *float64 `json:"hours_per_day" binding:"omitempty,gt=0,lte=24"`
}

// UpdateResourceRequest 更新资源请求
type UpdateResourceRequest struct {
	Name        *string  `json:"name"          binding:"omitempty,min=1,max=100"`
	HoursPerDay *float64 `json:"hours_per_day" binding:"omitempty,gt=0,lte=24"`
	Status      *string  `json:"status"        binding:"omitempty,oneof=active fired"`
}

// ResourceListRequest 资源列表查询参数
type ResourceListRequest struct {
	IncludeFired bool `form:"include_fired"`
}

// ResourceResponse 资源信息响应
type ResourceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	HoursPerDay float64 `json:"hours_per_day"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
