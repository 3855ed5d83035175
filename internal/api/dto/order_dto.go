package dto

import "mercora_dev_v1_202608/internal/model"

// ==================== 请求 DTO ====================

// CreateOrderReq 创建订单请求
type CreateOrderReq struct {
	CustomerID    string  `json:"customer_id"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerEmail string  `json:"customer_email" binding:"omitempty,email"`
	Total         float64 `json:"total" binding:"gte=0"`
	ItemCount     int     `json:"item_count" binding:"gte=0"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
}

// ToModel 转换为订单模型
func (r *CreateOrderReq) ToModel() *model.Order {
	return &model.Order{
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Total:         r.Total,
		ItemCount:     r.ItemCount,
		PaymentMethod: r.PaymentMethod,
		Status:        r.Status,
	}
}

// UpdateOrderReq 更新订单请求（状态流转、支付方式）
type UpdateOrderReq struct {
	Status        *string `json:"status,omitempty" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentMethod *string `json:"payment_method,omitempty"`
}

// ToPatch 转换为订单补丁
func (r *UpdateOrderReq) ToPatch() *model.OrderPatch {
	return &model.OrderPatch{
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
	}
}

// OrderListReq 订单列表查询参数
type OrderListReq struct {
	Status   string `form:"status"`
	Customer string `form:"customer"` // 按客户名/邮箱搜索
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
