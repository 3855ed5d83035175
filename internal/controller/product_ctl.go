package controller

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"mercora_dev_v1_202608/internal/api/dto"
	"mercora_dev_v1_202608/internal/model"
	"mercora_dev_v1_202608/internal/service"
)

// 单张商品图片大小上限
const maxImageSize = 8 << 20 // 8MB

// ProductController 商品控制器
type ProductController struct {
	hybrid  *service.HybridService
	storage service.StorageProvider
}

// NewProductController 创建商品控制器
// storage 为 nil 时图片上传接口不可用
func NewProductController(hybrid *service.HybridService, storage service.StorageProvider) *ProductController {
	return &ProductController{hybrid: hybrid, storage: storage}
}

// ==================== 查询接口 ====================

// GetProducts 获取商品列表
// @Summary 获取合并后的商品列表 (本地优先，云端补充)
// @Tags Product
// @Param category query string false "分类 ID 过滤"
// @Param status query string false "状态过滤"
// @Param keyword query string false "商品名搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ProductListResp
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	var req dto.ProductListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	products, err := ctrl.hybrid.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if req.Category != "" && p.Category != req.Category && p.Subcategory != req.Category {
			continue
		}
		if req.Status != "" && p.Status != req.Status {
			continue
		}
		if req.Keyword != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(req.Keyword)) {
			continue
		}
		filtered = append(filtered, p)
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	c.JSON(200, dto.ProductListResp{
		Code:     0,
		Message:  "success",
		Data:     paginate(filtered, page, pageSize),
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
	})
}

// GetProduct 获取商品详情
// @Summary 获取单个商品详情
// @Tags Product
// @Param id path string true "商品 ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	product, err := ctrl.hybrid.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": product})
}

// ==================== CRUD 接口 ====================

// CreateProduct 创建商品
// @Summary 创建商品 (本地落盘后异步复制云端)
// @Tags Product
// @Accept json
// @Produce json
// @Param body body dto.CreateProductReq true "商品信息"
// @Success 201 {object} map[string]interface{}
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	product, err := ctrl.hybrid.AddProduct(ctx, req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	respondMutation(c, 201, product, ctrl.hybrid.GetSyncStatus(ctx))
}

// UpdateProduct 更新商品
// @Summary 部分更新商品字段
// @Tags Product
// @Accept json
// @Produce json
// @Param id path string true "商品 ID"
// @Param body body dto.UpdateProductReq true "更新内容"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	product, err := ctrl.hybrid.UpdateProduct(ctx, c.Param("id"), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	respondMutation(c, 200, product, ctrl.hybrid.GetSyncStatus(ctx))
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags Product
// @Param id path string true "商品 ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	ctx := c.Request.Context()
	deleted, err := ctrl.hybrid.DeleteProduct(ctx, c.Param("id"))
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

// ==================== 图片接口 ====================

// UploadImage 上传商品图片
// @Summary 上传商品图片并挂到商品上
// @Tags Product
// @Accept multipart/form-data
// @Param id path string true "商品 ID"
// @Param image formData file true "图片文件"
// @Success 201 {object} map[string]interface{}
// @Router /api/products/{id}/image [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	if ctrl.storage == nil {
		c.JSON(503, gin.H{"code": 503, "message": "图片存储未配置"})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	product, err := ctrl.hybrid.GetProduct(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请上传图片文件"})
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		c.JSON(400, gin.H{"code": 400, "message": "图片不能超过 8MB"})
		return
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "读取文件失败"})
		return
	}

	url, err := ctrl.storage.Upload(ctx, imageData, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "上传失败: " + err.Error()})
		return
	}

	// 挂到商品上要走协调器，让这次变更照常快照并复制云端
	images := append(append([]string{}, product.Images...), url)
	patch := &model.ProductPatch{Image: &url, Images: images}
	updated, err := ctrl.hybrid.UpdateProduct(ctx, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMutation(c, 201, updated, ctrl.hybrid.GetSyncStatus(ctx))
}

// ==================== 工具函数 ====================

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}

func paginate[T any](records []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []T{}
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}
