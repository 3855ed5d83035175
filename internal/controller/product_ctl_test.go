package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercora_dev_v1_202608/internal/model"
	"mercora_dev_v1_202608/internal/repository"
	"mercora_dev_v1_202608/internal/service"
)

// ==================== 测试辅助 ====================

type apiFixture struct {
	router     *gin.Engine
	hybrid     *service.HybridService
	uploadsDir string
}

// setupAPI 搭一套纯本地（云端未配置）的完整 HTTP 栈，图片走本地存储
func setupAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	backup, err := repository.NewBackupManager(filepath.Join(dataDir, "backups"))
	require.NoError(t, err)
	store, err := repository.NewFileStore(dataDir, backup)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hybrid := service.NewHybridService(ctx,
		repository.NewProductRepository(store),
		repository.NewCategoryRepository(store),
		repository.NewOrderRepository(store),
		service.NewCloudService(nil),
	)

	uploadsDir := filepath.Join(dataDir, "uploads")
	storage, err := service.NewStorageProvider(&service.StorageConfig{
		Provider: "local",
		BasePath: uploadsDir,
		BaseURL:  "http://localhost:8080/uploads",
	})
	require.NoError(t, err)

	productCtrl := NewProductController(hybrid, storage)
	categoryCtrl := NewCategoryController(hybrid)
	orderCtrl := NewOrderController(hybrid)
	syncCtrl := NewSyncController(hybrid)

	r := gin.New()
	api := r.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", productCtrl.GetProducts)
			products.GET("/:id", productCtrl.GetProduct)
			products.POST("", productCtrl.CreateProduct)
			products.PATCH("/:id", productCtrl.UpdateProduct)
			products.DELETE("/:id", productCtrl.DeleteProduct)
			products.POST("/:id/image", productCtrl.UploadImage)
		}
		categories := api.Group("/categories")
		{
			categories.GET("", categoryCtrl.GetCategories)
			categories.POST("", categoryCtrl.CreateCategory)
			categories.PATCH("/:id", categoryCtrl.UpdateCategory)
			categories.DELETE("/:id", categoryCtrl.DeleteCategory)
		}
		orders := api.Group("/orders")
		{
			orders.GET("", orderCtrl.GetOrders)
			orders.POST("", orderCtrl.CreateOrder)
		}
		sync := api.Group("/sync")
		{
			sync.GET("/status", syncCtrl.GetSyncStatus)
		}
	}
	return &apiFixture{router: r, hybrid: hybrid, uploadsDir: uploadsDir}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// mustCreateCategory 通过 HTTP 建分类，返回 ID
func (f *apiFixture) mustCreateCategory(t *testing.T, name string, parentID string) string {
	t.Helper()
	body := gin.H{"name": name}
	if parentID != "" {
		body["parent_id"] = parentID
	}
	w := f.do(t, http.MethodPost, "/api/categories", body)
	require.Equal(t, http.StatusCreated, w.Code, "创建分类失败: %s", w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]interface{})
	return data["id"].(string)
}

// ==================== 单元测试 ====================

func TestProductAPI_CreateAndGet(t *testing.T) {
	f := setupAPI(t)
	catID := f.mustCreateCategory(t, "家居", "")

	w := f.do(t, http.MethodPost, "/api/products", gin.H{
		"name":     "亚麻桌布",
		"price":    35.0,
		"stock":    12,
		"category": catID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "亚麻桌布", data["name"])
	assert.Equal(t, model.ProductStatusActive, data["status"])

	// 变更响应必须带 sync_status
	st, ok := resp["sync_status"].(map[string]interface{})
	require.True(t, ok, "变更响应缺少 sync_status")
	assert.Equal(t, false, st["cloud_enabled"])
	assert.Equal(t, float64(2), st["local_records"], "分类 + 商品共 2 条本地记录")

	// 详情
	w = f.do(t, http.MethodGet, "/api/products/"+data["id"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProductAPI_ValidationErrors(t *testing.T) {
	f := setupAPI(t)

	// binding 层拒绝：缺 name/price/category
	w := f.do(t, http.MethodPost, "/api/products", gin.H{"price": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 业务层拒绝：分类不存在
	w = f.do(t, http.MethodPost, "/api/products", gin.H{
		"name":     "无主商品",
		"price":    10.0,
		"category": "no-such-category",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductAPI_ZeroPriceAccepted(t *testing.T) {
	f := setupAPI(t)
	catID := f.mustCreateCategory(t, "赠品", "")

	// 0 元是合法价格
	w := f.do(t, http.MethodPost, "/api/products", gin.H{
		"name": "免费贴纸", "price": 0.0, "category": catID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["price"])

	// 缺价格仍被拒绝
	w = f.do(t, http.MethodPost, "/api/products", gin.H{
		"name": "无价商品", "category": catID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 负价格被拒绝
	w = f.do(t, http.MethodPost, "/api/products", gin.H{
		"name": "负价商品", "price": -1.0, "category": catID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductAPI_GetMissingReturns404(t *testing.T) {
	f := setupAPI(t)

	w := f.do(t, http.MethodGet, "/api/products/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/api/products/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductAPI_ListFilterAndPagination(t *testing.T) {
	f := setupAPI(t)
	catID := f.mustCreateCategory(t, "饰品", "")
	otherID := f.mustCreateCategory(t, "杂货", "")

	for i := 0; i < 3; i++ {
		w := f.do(t, http.MethodPost, "/api/products", gin.H{
			"name":     fmt.Sprintf("银耳环 %d", i),
			"price":    20.0,
			"category": catID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := f.do(t, http.MethodPost, "/api/products", gin.H{
		"name":     "搪瓷杯",
		"price":    15.0,
		"category": otherID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 按分类过滤
	w = f.do(t, http.MethodGet, "/api/products?category="+catID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, float64(3), resp["total"])

	// 关键字 + 分页
	w = f.do(t, http.MethodGet, "/api/products?keyword=耳环&page=1&page_size=2", nil)
	resp = decodeBody(t, w)
	assert.Equal(t, float64(3), resp["total"])
	assert.Len(t, resp["data"].([]interface{}), 2)
}

func TestProductAPI_UpdatePatch(t *testing.T) {
	f := setupAPI(t)
	catID := f.mustCreateCategory(t, "厨房", "")

	w := f.do(t, http.MethodPost, "/api/products", gin.H{
		"name": "橄榄木勺", "price": 12.0, "category": catID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = f.do(t, http.MethodPatch, "/api/products/"+id, gin.H{"price": 14.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 14.5, data["price"])
	assert.Equal(t, "橄榄木勺", data["name"], "补丁外的字段不应被改动")

	// 无效状态被 binding 拒绝
	w = f.do(t, http.MethodPatch, "/api/products/"+id, gin.H{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductAPI_UploadImage(t *testing.T) {
	f := setupAPI(t)
	catID := f.mustCreateCategory(t, "摄影", "")

	w := f.do(t, http.MethodPost, "/api/products", gin.H{
		"name": "拍立得相纸", "price": 25.0, "category": catID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	// multipart 上传
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/"+id+"/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 图片通过协调器挂到商品上
	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	imageURL, _ := data["image"].(string)
	require.NotEmpty(t, imageURL)
	assert.Contains(t, imageURL, "/uploads/")
	assert.True(t, strings.HasSuffix(imageURL, ".png"), "应保留原扩展名: %s", imageURL)
	images := data["images"].([]interface{})
	require.Len(t, images, 1)
	assert.Equal(t, imageURL, images[0])
	require.Contains(t, resp, "sync_status", "图片上传与其他变更一样带 sync_status")

	// 文件确实写到了上传目录
	key := strings.TrimPrefix(imageURL, "http://localhost:8080/uploads/")
	content, err := os.ReadFile(filepath.Join(f.uploadsDir, key))
	require.NoError(t, err)
	assert.Equal(t, "fake-png-bytes", string(content))

	// 变更已持久化，重新读取仍可见
	w = f.do(t, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, imageURL, data["image"])

	// 缺文件字段：400
	req = httptest.NewRequest(http.MethodPost, "/api/products/"+id+"/image", nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 商品不存在：404
	req = httptest.NewRequest(http.MethodPost, "/api/products/no-such-id/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSyncAPI_StatusShape(t *testing.T) {
	f := setupAPI(t)

	w := f.do(t, http.MethodGet, "/api/sync/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["cloud_enabled"])
	assert.Equal(t, float64(0), data["pending_sync"])
	assert.Contains(t, data, "local_records")
	assert.Contains(t, data, "cloud_records")
	assert.Contains(t, data, "errors")
}
