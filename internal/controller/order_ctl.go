package controller

import (
	"strings"

	"github.com/gin-gonic/gin"

	"mercora_dev_v1_202608/internal/api/dto"
	"mercora_dev_v1_202608/internal/model"
	"mercora_dev_v1_202608/internal/service"
)

// OrderController 订单控制器
type OrderController struct {
	hybrid *service.HybridService
}

// NewOrderController 创建订单控制器
func NewOrderController(hybrid *service.HybridService) *OrderController {
	return &OrderController{hybrid: hybrid}
}

// GetOrders 获取订单列表
// @Summary 获取合并后的订单列表 (本地优先，云端补充)
// @Tags Order
// @Param status query string false "状态过滤"
// @Param customer query string false "客户名/邮箱搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /api/orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	var req dto.OrderListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	orders, err := ctrl.hybrid.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	filtered := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if req.Status != "" && o.Status != req.Status {
			continue
		}
		if req.Customer != "" {
			kw := strings.ToLower(req.Customer)
			if !strings.Contains(strings.ToLower(o.CustomerName), kw) &&
				!strings.Contains(strings.ToLower(o.CustomerEmail), kw) {
				continue
			}
		}
		filtered = append(filtered, o)
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	c.JSON(200, gin.H{
		"code":      0,
		"message":   "success",
		"data":      paginate(filtered, page, pageSize),
		"total":     len(filtered),
		"page":      page,
		"page_size": pageSize,
	})
}

// CreateOrder 创建订单
// @Summary 创建订单 (本地落盘后异步复制云端)
// @Tags Order
// @Accept json
// @Produce json
// @Param body body dto.CreateOrderReq true "订单信息"
// @Success 201 {object} map[string]interface{}
// @Router /api/orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	order, err := ctrl.hybrid.AddOrder(ctx, req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	respondMutation(c, 201, order, ctrl.hybrid.GetSyncStatus(ctx))
}

// UpdateOrder 更新订单
// @Summary 更新订单状态或支付方式
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "订单 ID"
// @Param body body dto.UpdateOrderReq true "更新内容"
// @Success 200 {object} map[string]interface{}
// @Router /api/orders/{id} [patch]
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	var req dto.UpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	order, err := ctrl.hybrid.UpdateOrder(ctx, c.Param("id"), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	respondMutation(c, 200, order, ctrl.hybrid.GetSyncStatus(ctx))
}

// DeleteOrder 删除订单
// @Summary 删除订单
// @Tags Order
// @Param id path string true "订单 ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/orders/{id} [delete]
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	ctx := c.Request.Context()
	deleted, err := ctrl.hybrid.DeleteOrder(ctx, c.Param("id"))
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
