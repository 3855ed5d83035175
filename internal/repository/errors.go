package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// ==================== 存储错误 ====================

// StoreError 本地存储读写失败
// 属于致命错误，必须原样上抛给调用方，绝不返回残缺数据
type StoreError struct {
	Op         string // read | write
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("本地存储%s失败 [%s]: %v", opLabel(e.Op), e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func opLabel(op string) string {
	switch op {
	case "read":
		return "读取"
	case "write":
		return "写入"
	}
	return op
}

// ==================== 引用完整性错误 ====================

// RefIntegrityError 引用完整性冲突
// 删除分类时若仍有子分类或商品引用，必须指明被哪种关系阻止
type RefIntegrityError struct {
	CategoryID string
	Relation   string // subcategory | product
	BlockedBy  string // 阻止删除的记录 ID
}

func (e *RefIntegrityError) Error() string {
	switch e.Relation {
	case "subcategory":
		return fmt.Sprintf("分类 %s 无法删除: 仍有子分类 %s", e.CategoryID, e.BlockedBy)
	case "product":
		return fmt.Sprintf("分类 %s 无法删除: 仍被商品 %s 引用", e.CategoryID, e.BlockedBy)
	}
	return fmt.Sprintf("分类 %s 无法删除: 存在引用关系", e.CategoryID)
}

// ==================== 校验错误 ====================

// ValidationError 入参校验失败，发生在任何存储访问之前
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("参数校验失败 [%s]: %s", e.Field, e.Message)
}
