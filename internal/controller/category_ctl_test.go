package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryAPI_TwoLevelHierarchy(t *testing.T) {
	f := setupAPI(t)

	rootID := f.mustCreateCategory(t, "手工艺", "")
	childID := f.mustCreateCategory(t, "编织", rootID)

	// 三层被拒绝
	w := f.do(t, http.MethodPost, "/api/categories", gin.H{"name": "毛线编织", "parent_id": childID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 按层级过滤
	w = f.do(t, http.MethodGet, "/api/categories?level=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, float64(1), resp["total"])

	// 按父分类过滤
	w = f.do(t, http.MethodGet, "/api/categories?parent_id="+rootID, nil)
	resp = decodeBody(t, w)
	data := resp["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, childID, data[0].(map[string]interface{})["id"])
}

func TestCategoryAPI_DeleteConflicts(t *testing.T) {
	f := setupAPI(t)

	rootID := f.mustCreateCategory(t, "皮具", "")
	childID := f.mustCreateCategory(t, "钱包", rootID)

	// 有子分类：409
	w := f.do(t, http.MethodDelete, "/api/categories/"+rootID, nil)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// 有商品引用：409
	w = f.do(t, http.MethodPost, "/api/products", gin.H{
		"name": "手缝短夹", "price": 88.0, "category": rootID, "subcategory": childID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = f.do(t, http.MethodDelete, "/api/categories/"+childID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 被拒绝的删除不改数据
	w = f.do(t, http.MethodGet, "/api/categories", nil)
	assert.Equal(t, float64(2), decodeBody(t, w)["total"])
}

func TestCategoryAPI_DuplicateName(t *testing.T) {
	f := setupAPI(t)

	f.mustCreateCategory(t, "Vintage", "")
	w := f.do(t, http.MethodPost, "/api/categories", gin.H{"name": "vintage"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "分类重名不区分大小写")
}

func TestOrderAPI_CreateAndFilter(t *testing.T) {
	f := setupAPI(t)

	w := f.do(t, http.MethodPost, "/api/orders", gin.H{
		"customer_name":  "陈晨",
		"customer_email": "chen@example.com",
		"total":          156.0,
		"item_count":     2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"], "订单默认状态为 pending")

	// 无效邮箱被 binding 拒绝
	w = f.do(t, http.MethodPost, "/api/orders", gin.H{
		"customer_name": "张三", "customer_email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 按客户搜索
	w = f.do(t, http.MethodGet, "/api/orders?customer=chen@", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["total"])
}
