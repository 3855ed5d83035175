package model

import "time"

// ==================== 商品状态 ====================

// ProductStatus 商品生命周期状态
type ProductStatus = string

const (
	ProductStatusActive   ProductStatus = "active"   // 上架
	ProductStatusInactive ProductStatus = "inactive" // 下架
	ProductStatusDraft    ProductStatus = "draft"    // 草稿
)

// ValidProductStatus 判断商品状态是否合法
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDraft:
		return true
	}
	return false
}

// ==================== 商品模型 ====================

// Product 商品记录
// 本地文件存储是唯一权威数据源，ID 由本地存储生成，调用方不可指定
type Product struct {
	ID string `json:"id"`

	// --- 基本信息 ---
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`

	// --- 价格与库存 ---
	Price float64 `json:"price"`
	Stock int     `json:"stock"`

	// --- 分类引用 ---
	Category    string `json:"category"`              // 必须引用已存在的分类 ID
	Subcategory string `json:"subcategory,omitempty"` // 可选的二级分类 ID

	// --- 状态 ---
	Status ProductStatus `json:"status"`

	// --- 图片 ---
	Image  string   `json:"image,omitempty"`
	Images []string `json:"images,omitempty"`

	// --- 来源标记 (仅用于展示/诊断，不参与合并优先级判断) ---
	Origin string `json:"origin,omitempty"` // local | cloud

	// --- 时间戳 ---
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductPatch 商品部分更新
// nil 字段表示不修改
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Slug        *string  `json:"slug,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// Apply 将补丁合并到商品记录上
func (p *ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Slug != nil {
		product.Slug = *p.Slug
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Subcategory != nil {
		product.Subcategory = *p.Subcategory
	}
	if p.Status != nil {
		product.Status = *p.Status
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
	if p.Images != nil {
		product.Images = p.Images
	}
}
