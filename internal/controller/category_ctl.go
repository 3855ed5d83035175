package controller

import (
	"github.com/gin-gonic/gin"

	"mercora_dev_v1_202608/internal/api/dto"
	"mercora_dev_v1_202608/internal/model"
	"mercora_dev_v1_202608/internal/service"
)

// CategoryController 分类控制器
type CategoryController struct {
	hybrid *service.HybridService
}

// NewCategoryController 创建分类控制器
func NewCategoryController(hybrid *service.HybridService) *CategoryController {
	return &CategoryController{hybrid: hybrid}
}

// GetCategories 获取分类列表
// @Summary 获取合并后的分类列表 (本地优先，云端补充)
// @Tags Category
// @Param level query int false "层级过滤 (1 一级 2 二级)"
// @Param parent_id query string false "按父分类过滤"
// @Success 200 {object} map[string]interface{}
// @Router /api/categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	var req dto.CategoryListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	categories, err := ctrl.hybrid.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	filtered := make([]model.Category, 0, len(categories))
	for _, cat := range categories {
		if req.Level != 0 && cat.Level != req.Level {
			continue
		}
		if req.ParentID != "" && (cat.ParentID == nil || *cat.ParentID != req.ParentID) {
			continue
		}
		filtered = append(filtered, cat)
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": filtered, "total": len(filtered)})
}

// CreateCategory 创建分类
// @Summary 创建分类，带 parent_id 即二级分类
// @Tags Category
// @Accept json
// @Produce json
// @Param body body dto.CreateCategoryReq true "分类信息"
// @Success 201 {object} map[string]interface{}
// @Router /api/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	category, err := ctrl.hybrid.AddCategory(ctx, req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	respondMutation(c, 201, category, ctrl.hybrid.GetSyncStatus(ctx))
}

// UpdateCategory 更新分类
// @Summary 更新分类展示字段，层级关系不可变更
// @Tags Category
// @Accept json
// @Produce json
// @Param id path string true "分类 ID"
// @Param body body dto.UpdateCategoryReq true "更新内容"
// @Success 200 {object} map[string]interface{}
// @Router /api/categories/{id} [patch]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	category, err := ctrl.hybrid.UpdateCategory(ctx, c.Param("id"), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	respondMutation(c, 200, category, ctrl.hybrid.GetSyncStatus(ctx))
}

// DeleteCategory 删除分类
// @Summary 删除分类，尚有子分类或商品引用时返回 409
// @Tags Category
// @Param id path string true "分类 ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	ctx := c.Request.Context()
	deleted, err := ctrl.hybrid.DeleteCategory(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(404, gin.H{"code": 404, "message": "记录不存在"})
		return
	}

	respondMutation(c, 200, gin.H{"deleted": true}, ctrl.hybrid.GetSyncStatus(ctx))
}
