package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mercora_dev_v1_202608/internal/model"
	"mercora_dev_v1_202608/internal/repository"
)

// ==================== 统一响应 ====================

// respondError 按错误类型映射 HTTP 状态码
// 校验错误 400，记录不存在 404，引用完整性冲突 409，其余按本地存储故障 500
func respondError(c *gin.Context, err error) {
	var ve *repository.ValidationError
	if errors.As(err, &ve) {
		c.JSON(400, gin.H{"code": 400, "message": ve.Error()})
		return
	}

	var re *repository.RefIntegrityError
	if errors.As(err, &re) {
		c.JSON(409, gin.H{"code": 409, "message": re.Error()})
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(404, gin.H{"code": 404, "message": "记录不存在"})
		return
	}

	c.JSON(500, gin.H{"code": 500, "message": err.Error()})
}

// respondMutation 变更成功响应
// 每个变更响应都带上 sync_status，调用方无需额外请求即可观察复制健康状况
func respondMutation(c *gin.Context, httpStatus int, data interface{}, status model.SyncStatus) {
	c.JSON(httpStatus, gin.H{
		"code":        0,
		"message":     "success",
		"data":        data,
		"sync_status": status,
	})
}
