package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// ==================== 本地文件存储 ====================

// FileStore 本地持久化存储
// 每个集合对应数据目录下的一个 JSON 数组文件，是系统唯一权威数据副本。
// 所有读写都是整集合的读-改-写；写入先落临时文件再原子替换，
// 保证崩溃时文件不会处于半写状态。
//
// 同一集合的变更通过行级锁串行化，
// 重名检查等 check-then-act 逻辑必须在持锁区间内完成。
type FileStore struct {
	dataDir string
	backup  *BackupManager

	mu    sync.Mutex
	locks map[string]*sync.Mutex // 按集合名的行级锁
}

// NewFileStore 创建文件存储
func NewFileStore(dataDir string, backup *BackupManager) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	return &FileStore{
		dataDir: dataDir,
		backup:  backup,
		locks:   make(map[string]*sync.Mutex),
	}, nil
}

// Lock 获取集合锁，返回解锁函数
func (s *FileStore) Lock(collection string) func() {
	s.mu.Lock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dataDir, collection+".json")
}

// ==================== 集合读写 ====================

// loadCollection 读取整个集合
// 文件不存在视为空集合；解析失败视为"从未初始化"，
// 记一条与 I/O 故障不同的日志后返回空集合；
// 真正的 I/O 读失败作为致命错误上抛，绝不返回残缺数据。
func loadCollection[T any](s *FileStore, collection string) ([]T, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, &StoreError{Op: "read", Collection: collection, Err: err}
	}

	if len(data) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[FileStore] 集合 %s 数据文件解析失败，按未初始化处理: %v", collection, err)
		return []T{}, nil
	}
	return records, nil
}

// saveCollection 持久化整个集合
// 写临时文件 + fsync + 原子 rename；成功后触发一次快照。
// 快照失败只记日志，永远不会让触发它的变更失败。
func saveCollection[T any](s *FileStore, collection string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &StoreError{Op: "write", Collection: collection, Err: err}
	}

	tmp, err := os.CreateTemp(s.dataDir, collection+"-*.tmp")
	if err != nil {
		return &StoreError{Op: "write", Collection: collection, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StoreError{Op: "write", Collection: collection, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StoreError{Op: "write", Collection: collection, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StoreError{Op: "write", Collection: collection, Err: err}
	}
	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		os.Remove(tmpName)
		return &StoreError{Op: "write", Collection: collection, Err: err}
	}

	if s.backup != nil {
		if err := s.backup.Snapshot(collection, data); err != nil {
			log.Printf("[FileStore] 集合 %s 快照失败: %v", collection, err)
		}
	}
	return nil
}
