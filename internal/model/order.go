package model

import "time"

// ==================== 订单状态 ====================

// OrderStatus 订单生命周期状态
type OrderStatus = string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus 判断订单状态是否合法
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ==================== 订单模型 ====================

// Order 订单记录
type Order struct {
	ID string `json:"id"`

	// --- 客户信息 ---
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`

	// --- 金额与数量 ---
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`

	// --- 状态与支付 ---
	Status        OrderStatus `json:"status"`
	PaymentMethod string      `json:"payment_method,omitempty"`

	// --- 来源标记 ---
	Origin string `json:"origin,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// OrderPatch 订单部分更新
type OrderPatch struct {
	Status        *string `json:"status,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
}

// Apply 将补丁合并到订单记录上
func (p *OrderPatch) Apply(order *Order) {
	if p.Status != nil {
		order.Status = *p.Status
	}
	if p.PaymentMethod != nil {
		order.PaymentMethod = *p.PaymentMethod
	}
}
