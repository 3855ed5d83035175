package model

import "time"

// ==================== 分类层级 ====================

const (
	CategoryLevelRoot  = 1 // 一级分类
	CategoryLevelChild = 2 // 二级分类，必须挂在一级分类下
)

// ==================== 分类模型 ====================

// Category 商品分类
// 层级最多两层：level=2 的分类必须引用一个 level=1 的父分类。
// 有子分类或被商品引用的分类不可删除。
type Category struct {
	ID string `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
	Color       string `json:"color,omitempty"`

	// --- 层级 ---
	ParentID *string `json:"parent_id"` // 一级分类为 null
	Level    int     `json:"level"`     // 1 | 2

	// --- 来源标记 ---
	Origin string `json:"origin,omitempty"`

	// --- 时间戳 ---
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryPatch 分类部分更新
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Emoji       *string `json:"emoji,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// Apply 将补丁合并到分类记录上
// 层级关系 (parent_id/level) 创建后不可变更
func (p *CategoryPatch) Apply(category *Category) {
	if p.Name != nil {
		category.Name = *p.Name
	}
	if p.Description != nil {
		category.Description = *p.Description
	}
	if p.Emoji != nil {
		category.Emoji = *p.Emoji
	}
	if p.Color != nil {
		category.Color = *p.Color
	}
}
