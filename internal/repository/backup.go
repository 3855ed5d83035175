package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ==================== 备份管理 ====================

// BackupManager 集合快照管理
// 每次变更后把整个集合写成一份带时间戳的只读副本，
// 仅用于运维恢复，热路径永远不读它。
type BackupManager struct {
	backupDir string
}

// NewBackupManager 创建备份管理器
func NewBackupManager(backupDir string) (*BackupManager, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建备份目录失败: %w", err)
	}
	return &BackupManager{backupDir: backupDir}, nil
}

// Snapshot 写入一份集合快照
// 文件名形如 products_2026-08-28T10-30-45-123Z.json，
// 时间戳里的冒号和点替换为连字符以保证文件系统安全。
// 永不覆盖已存在的快照；亚毫秒级的撞名直接忽略。
func (m *BackupManager) Snapshot(collection string, data []byte) error {
	name := fmt.Sprintf("%s_%s.json", collection, snapshotTimestamp(time.Now()))
	path := filepath.Join(m.backupDir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("创建快照文件失败: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("写入快照失败: %w", err)
	}
	return nil
}

// List 列出所有集合的全部快照文件名，不保证顺序
// 需要按时间排序的调用方应解析文件名里的时间戳自行排序
func (m *BackupManager) List() ([]string, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("读取备份目录失败: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Prune 按集合清理旧快照，保留最近 keep 份
// 返回删除数量；删除失败只计入错误，不中断
func (m *BackupManager) Prune(collection string, keep int) (int, error) {
	names, err := m.List()
	if err != nil {
		return 0, err
	}

	prefix := collection + "_"
	var matched []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			matched = append(matched, name)
		}
	}
	if len(matched) <= keep {
		return 0, nil
	}

	// 文件名里的时间戳是固定宽度的，字典序即时间序
	sort.Sort(sort.Reverse(sort.StringSlice(matched)))

	removed := 0
	for _, name := range matched[keep:] {
		if err := os.Remove(filepath.Join(m.backupDir, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}

// snapshotTimestamp 生成文件系统安全的时间戳片段
func snapshotTimestamp(t time.Time) string {
	ts := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(ts)
}
