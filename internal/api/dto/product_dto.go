package dto

import "mercora_dev_v1_202608/internal/model"

// ==================== 请求 DTO ====================

// CreateProductReq 创建商品请求
type CreateProductReq struct {
	Name        string `json:"name" binding:"required,max=140"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	// 指针区分"缺省"与"0 元"：免费商品合法，缺价格不合法
	Price *float64 `json:"price" binding:"required,gte=0"`
	Stock int      `json:"stock" binding:"gte=0"`
	Category    string  `json:"category" binding:"required"`
	Subcategory string  `json:"subcategory"`
	Status      string  `json:"status" binding:"omitempty,oneof=active inactive draft"`

	Image  string   `json:"image"`
	Images []string `json:"images"`
}

// ToModel 转换为商品模型，ID 与时间戳由存储层生成
func (r *CreateProductReq) ToModel() *model.Product {
	return &model.Product{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       *r.Price,
		Stock:       r.Stock,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Status:      r.Status,
		Image:       r.Image,
		Images:      r.Images,
	}
}

// UpdateProductReq 更新商品请求，nil 字段不修改
type UpdateProductReq struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=140"`
	Slug        *string  `json:"slug,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Status      *string  `json:"status,omitempty" binding:"omitempty,oneof=active inactive draft"`
	Image       *string  `json:"image,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// ToPatch 转换为商品补丁
func (r *UpdateProductReq) ToPatch() *model.ProductPatch {
	return &model.ProductPatch{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Status:      r.Status,
		Image:       r.Image,
		Images:      r.Images,
	}
}

// ProductListReq 商品列表查询参数
type ProductListReq struct {
	Category string `form:"category"` // 按分类 ID 过滤 (含二级分类)
	Status   string `form:"status"`
	Keyword  string `form:"keyword"` // 商品名搜索
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ==================== 响应 DTO ====================

// ProductListResp 商品列表响应
type ProductListResp struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Data     []model.Product `json:"data"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}
