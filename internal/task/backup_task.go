package task

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"mercora_dev_v1_202608/internal/model"
	"mercora_dev_v1_202608/internal/repository"
)

// ==================== BackupCleanupTask 快照清理任务 ====================

// BackupCleanupTask 备份快照保留清理定时任务
// 每个集合按保留份数裁剪，旧快照直接删除
type BackupCleanupTask struct {
	backup *repository.BackupManager
	cron   *cron.Cron

	// 每集合保留份数
	keepCount int
}

// NewBackupCleanupTask 创建快照清理任务
func NewBackupCleanupTask(backup *repository.BackupManager) *BackupCleanupTask {
	return &BackupCleanupTask{
		backup:    backup,
		cron:      cron.New(cron.WithSeconds()),
		keepCount: 30,
	}
}

// SetKeepCount 设置每集合保留份数
func (t *BackupCleanupTask) SetKeepCount(n int) {
	if n > 0 {
		t.keepCount = n
	}
}

// Start 启动定时任务
func (t *BackupCleanupTask) Start() {
	// 首次执行（延迟 60 秒）
	go func() {
		time.Sleep(60 * time.Second)
		log.Println("[BackupCleanupTask] 执行首次快照清理...")
		t.cleanup()
	}()

	// 每天凌晨 3 点执行
	_, err := t.cron.AddFunc("0 0 3 * * *", func() {
		t.cleanup()
	})
	if err != nil {
		log.Printf("[BackupCleanupTask] 定时任务启动失败: %v", err)
		return
	}

	t.cron.Start()
	log.Println("[BackupCleanupTask] 已启动 (每天凌晨3点)")
}

// Stop 停止任务
func (t *BackupCleanupTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[BackupCleanupTask] 已停止")
}

// cleanup 按集合裁剪快照
func (t *BackupCleanupTask) cleanup() {
	collections := []string{
		model.CollectionProducts,
		model.CollectionCategories,
		model.CollectionOrders,
	}

	total := 0
	for _, collection := range collections {
		removed, err := t.backup.Prune(collection, t.keepCount)
		if err != nil {
			log.Printf("[BackupCleanupTask] 集合 %s 清理失败: %v", collection, err)
			continue
		}
		total += removed
	}

	log.Printf("[BackupCleanupTask] 清理完成: 删除 %d 个过期快照", total)
}
