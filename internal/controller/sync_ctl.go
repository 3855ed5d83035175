package controller

import (
	"github.com/gin-gonic/gin"

	"mercora_dev_v1_202608/internal/service"
)

// SyncController 同步控制器
type SyncController struct {
	hybrid *service.HybridService
}

// NewSyncController 创建同步控制器
func NewSyncController(hybrid *service.HybridService) *SyncController {
	return &SyncController{hybrid: hybrid}
}

// GetSyncStatus 获取同步状态
// @Summary 获取本地/云端记录数、待同步数与近期错误
// @Tags Sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/sync/status [get]
func (ctrl *SyncController) GetSyncStatus(c *gin.Context) {
	status := ctrl.hybrid.GetSyncStatus(c.Request.Context())
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": status})
}

// ForceSync 全量重新同步
// @Summary 把三个集合的本地数据整体推到云端
// @Tags Sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/sync/force [post]
func (ctrl *SyncController) ForceSync(c *gin.Context) {
	ctx := c.Request.Context()
	if err := ctrl.hybrid.ForceSync(ctx); err != nil {
		c.JSON(502, gin.H{"code": 502, "message": "全量同步失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "全量同步完成",
		"data":    ctrl.hybrid.GetSyncStatus(ctx),
	})
}
