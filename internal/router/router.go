package router

import (
	controller2 "mercora_dev_v1_202608/internal/controller"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "mercora_dev_v1_202608/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	productCtrl *controller2.ProductController,
	categoryCtrl *controller2.CategoryController,
	orderCtrl *controller2.OrderController,
	syncCtrl *controller2.SyncController,
	uploadsDir string) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 本地图片存储时直接静态托管上传目录
	if uploadsDir != "" {
		r.Static("/uploads", uploadsDir)
	}

	// 3. API 路由组
	api := r.Group("/api")
	{
		// product 商品组
		products := api.Group("/products")
		{
			// GET /api/products
			products.GET("", productCtrl.GetProducts)
			products.GET("/:id", productCtrl.GetProduct)
			products.POST("", productCtrl.CreateProduct)
			products.PATCH("/:id", productCtrl.UpdateProduct)
			products.DELETE("/:id", productCtrl.DeleteProduct)
			// POST /api/products/:id/image
			products.POST("/:id/image", productCtrl.UploadImage)
		}
		// category 两级分类组
		categories := api.Group("/categories")
		{
			categories.GET("", categoryCtrl.GetCategories)
			categories.POST("", categoryCtrl.CreateCategory)
			categories.PATCH("/:id", categoryCtrl.UpdateCategory)
			// 有子分类或商品引用时返回 409
			categories.DELETE("/:id", categoryCtrl.DeleteCategory)
		}
		// order 订单组
		orders := api.Group("/orders")
		{
			orders.GET("", orderCtrl.GetOrders)
			orders.POST("", orderCtrl.CreateOrder)
			orders.PATCH("/:id", orderCtrl.UpdateOrder)
			orders.DELETE("/:id", orderCtrl.DeleteOrder)
		}
		// sync 同步状态
		sync := api.Group("/sync")
		{
			// GET /api/sync/status
			sync.GET("/status", syncCtrl.GetSyncStatus)
			sync.POST("/force", syncCtrl.ForceSync)
		}
	}
}
