package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercora_dev_v1_202608/internal/model"
)

// ==================== 测试辅助 ====================

func setupTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dataDir := t.TempDir()

	backup, err := NewBackupManager(filepath.Join(dataDir, "backups"))
	if err != nil {
		t.Fatalf("创建备份管理器失败: %v", err)
	}

	store, err := NewFileStore(dataDir, backup)
	if err != nil {
		t.Fatalf("创建文件存储失败: %v", err)
	}
	return store, dataDir
}

// ==================== 单元测试 ====================

func TestFileStore_DurabilityAcrossReopen(t *testing.T) {
	store, dataDir := setupTestStore(t)
	repo := NewProductRepository(store)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Product{Name: "手工陶瓷杯", Price: 28.5, Stock: 10})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	// 模拟进程重启：在同一数据目录上重新打开存储
	reopened, err := NewFileStore(dataDir, nil)
	if err != nil {
		t.Fatalf("重新打开存储失败: %v", err)
	}

	products, err := NewProductRepository(reopened).List(ctx)
	if err != nil {
		t.Fatalf("读取商品失败: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("商品数量 = %d, want 1", len(products))
	}
	if products[0].ID != created.ID {
		t.Errorf("商品 ID = %s, want %s", products[0].ID, created.ID)
	}
	if products[0].Name != "手工陶瓷杯" {
		t.Errorf("商品名 = %s, want 手工陶瓷杯", products[0].Name)
	}
}

func TestFileStore_MissingFileIsEmptyCollection(t *testing.T) {
	store, _ := setupTestStore(t)

	products, err := loadCollection[model.Product](store, model.CollectionProducts)
	if err != nil {
		t.Fatalf("读取不存在的集合失败: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("集合 = %v, want 空切片", products)
	}
}

func TestFileStore_CorruptFileTreatedAsUninitialized(t *testing.T) {
	store, dataDir := setupTestStore(t)

	// 写入无法解析的内容，读取应按未初始化处理而不是报错
	path := filepath.Join(dataDir, "products.json")
	if err := os.WriteFile(path, []byte("{not-json"), 0o644); err != nil {
		t.Fatalf("写入损坏文件失败: %v", err)
	}

	products, err := loadCollection[model.Product](store, model.CollectionProducts)
	if err != nil {
		t.Fatalf("损坏文件读取不应报错: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("商品数量 = %d, want 0", len(products))
	}
}

func TestFileStore_SaveWritesSnapshot(t *testing.T) {
	store, _ := setupTestStore(t)

	err := saveCollection(store, model.CollectionProducts, []model.Product{{ID: "p1", Name: "测试"}})
	if err != nil {
		t.Fatalf("保存集合失败: %v", err)
	}

	names, err := store.backup.List()
	if err != nil {
		t.Fatalf("读取快照列表失败: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("快照数量 = %d, want 1", len(names))
	}
	if !strings.HasPrefix(names[0], "products_") || !strings.HasSuffix(names[0], ".json") {
		t.Errorf("快照文件名 %s 不符合 <collection>_<timestamp>.json", names[0])
	}
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	store, dataDir := setupTestStore(t)

	if err := saveCollection(store, model.CollectionOrders, []model.Order{{ID: "o1"}}); err != nil {
		t.Fatalf("保存集合失败: %v", err)
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		t.Fatalf("读取数据目录失败: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("数据目录残留临时文件: %s", e.Name())
		}
	}
}

func TestBackupManager_PruneKeepsNewest(t *testing.T) {
	backupDir := t.TempDir()
	backup, err := NewBackupManager(backupDir)
	if err != nil {
		t.Fatalf("创建备份管理器失败: %v", err)
	}

	// 时间戳固定宽度，字典序即时间序
	snapshots := []string{
		"products_2026-01-01T00-00-00-000Z.json",
		"products_2026-01-02T00-00-00-000Z.json",
		"products_2026-01-03T00-00-00-000Z.json",
		"orders_2026-01-01T00-00-00-000Z.json",
	}
	for _, name := range snapshots {
		if err := os.WriteFile(filepath.Join(backupDir, name), []byte("[]"), 0o644); err != nil {
			t.Fatalf("写入快照失败: %v", err)
		}
	}

	removed, err := backup.Prune(model.CollectionProducts, 2)
	if err != nil {
		t.Fatalf("裁剪快照失败: %v", err)
	}
	if removed != 1 {
		t.Errorf("删除数量 = %d, want 1", removed)
	}

	names, _ := backup.List()
	if len(names) != 3 {
		t.Fatalf("剩余快照数量 = %d, want 3", len(names))
	}
	for _, name := range names {
		if name == "products_2026-01-01T00-00-00-000Z.json" {
			t.Errorf("最旧的商品快照应被删除")
		}
	}
}
