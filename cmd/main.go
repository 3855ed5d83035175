package main

import (
	"context"
	"errors"
	"log"
	"mercora_dev_v1_202608/internal/controller"
	"mercora_dev_v1_202608/internal/repository"
	"mercora_dev_v1_202608/internal/router"
	"mercora_dev_v1_202608/internal/service"
	"mercora_dev_v1_202608/internal/task"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// worker 生命周期跟随进程，收到退出信号时统一取消
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. 初始化依赖
	deps := initDependencies(ctx)

	// 2. 启动定时任务
	initTasks(deps)

	// 3. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Product,
		deps.Controllers.Category,
		deps.Controllers.Order,
		deps.Controllers.Sync,
		deps.UploadsDir,
	)

	// 4. 启动服务
	startServer(r, cancel, deps)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Store       *repository.FileStore
	Backup      *repository.BackupManager
	Hybrid      *service.HybridService
	Storage     service.StorageProvider
	Controllers *Controllers
	Tasks       []*task.BackupCleanupTask

	// local 存储模式下静态托管的上传目录，s3 模式为空
	UploadsDir string
}

// Controllers 控制器集合
type Controllers struct {
	Product  *controller.ProductController
	Category *controller.CategoryController
	Order    *controller.OrderController
	Sync     *controller.SyncController
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(ctx context.Context) *Dependencies {
	// -------- 本地存储层 --------
	backup, err := repository.NewBackupManager(getEnv("BACKUP_DIR", "./data/backups"))
	if err != nil {
		log.Fatalf("备份目录初始化失败: %v", err)
	}

	store, err := repository.NewFileStore(getEnv("DATA_DIR", "./data"), backup)
	if err != nil {
		log.Fatalf("数据目录初始化失败: %v", err)
	}

	productRepo := repository.NewProductRepository(store)
	categoryRepo := repository.NewCategoryRepository(store)
	orderRepo := repository.NewOrderRepository(store)

	// -------- 云端复制 --------
	// 未配置 SUPABASE_URL 时纯本地运行
	cloudSvc := service.NewCloudService(&service.CloudConfig{
		BaseURL: getEnv("SUPABASE_URL", ""),
		APIKey:  getEnv("SUPABASE_SERVICE_KEY", ""),
	})
	if cloudSvc.Enabled() {
		log.Println("云端复制已启用")
	} else {
		log.Println("云端未配置，纯本地模式运行")
	}

	hybrid := service.NewHybridService(ctx, productRepo, categoryRepo, orderRepo, cloudSvc)

	// -------- 图片存储 --------
	storageSvc, uploadsDir := initStorage()

	// -------- Controller 层 --------
	controllers := &Controllers{
		Product:  controller.NewProductController(hybrid, storageSvc),
		Category: controller.NewCategoryController(hybrid),
		Order:    controller.NewOrderController(hybrid),
		Sync:     controller.NewSyncController(hybrid),
	}

	return &Dependencies{
		Store:       store,
		Backup:      backup,
		Hybrid:      hybrid,
		Storage:     storageSvc,
		Controllers: controllers,
		UploadsDir:  uploadsDir,
	}
}

// initStorage 初始化图片存储
// 返回的 uploadsDir 仅 local 模式非空，用于静态托管
func initStorage() (service.StorageProvider, string) {
	provider := getEnv("STORAGE_PROVIDER", "local")

	cfg := &service.StorageConfig{
		Provider:  provider,
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "./data/uploads"),
		BaseURL:   getEnv("STORAGE_BASE_URL", ""),
	}
	if provider == "s3" {
		cfg.BasePath = getEnv("STORAGE_BASE_PATH", "mercora")
	}

	storageSvc, err := service.NewStorageProvider(cfg)
	if err != nil {
		log.Printf("警告: 图片存储初始化失败: %v", err)
		return nil, ""
	}

	if provider == "local" {
		return storageSvc, cfg.BasePath
	}
	return storageSvc, ""
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 快照保留清理
	cleanupTask := task.NewBackupCleanupTask(deps.Backup)
	cleanupTask.Start()
	deps.Tasks = append(deps.Tasks, cleanupTask)

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, cancel context.CancelFunc, deps *Dependencies) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 停复制 worker 和定时任务
	cancel()
	for _, t := range deps.Tasks {
		t.Stop()
	}

	// 优雅关闭，最多等待 30 秒
	ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
