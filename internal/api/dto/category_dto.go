package dto

import "mercora_dev_v1_202608/internal/model"

// ==================== 请求 DTO ====================

// CreateCategoryReq 创建分类请求
// level 由 parent_id 推导：无父即一级，有父即二级
type CreateCategoryReq struct {
	Name        string  `json:"name" binding:"required,max=60"`
	Description string  `json:"description"`
	Emoji       string  `json:"emoji"`
	Color       string  `json:"color"`
	ParentID    *string `json:"parent_id"`
}

// ToModel 转换为分类模型
func (r *CreateCategoryReq) ToModel() *model.Category {
	return &model.Category{
		Name:        r.Name,
		Description: r.Description,
		Emoji:       r.Emoji,
		Color:       r.Color,
		ParentID:    r.ParentID,
	}
}

// UpdateCategoryReq 更新分类请求
// 层级关系创建后不可变更，因此不接受 parent_id
type UpdateCategoryReq struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=60"`
	Description *string `json:"description,omitempty"`
	Emoji       *string `json:"emoji,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// ToPatch 转换为分类补丁
func (r *UpdateCategoryReq) ToPatch() *model.CategoryPatch {
	return &model.CategoryPatch{
		Name:        r.Name,
		Description: r.Description,
		Emoji:       r.Emoji,
		Color:       r.Color,
	}
}

// CategoryListReq 分类列表查询参数
type CategoryListReq struct {
	Level    int    `form:"level"`     // 0 表示不过滤
	ParentID string `form:"parent_id"` // 按父分类过滤
}
