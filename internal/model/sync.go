package model

import "time"

// ==================== 集合与来源 ====================

// 集合名，同时也是本地数据文件与云端表的名字
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionOrders     = "orders"
)

// 记录来源标记，仅用于展示与诊断，不参与合并优先级
const (
	OriginLocal = "local"
	OriginCloud = "cloud"
	OriginBoth  = "both"
)

// 同步操作类型
const (
	SyncOpAdd    = "add"
	SyncOpUpdate = "update"
	SyncOpDelete = "delete"
)

// ==================== 同步状态 ====================

// SyncError 单次复制失败的结构化记录
type SyncError struct {
	Collection string    `json:"collection"`
	Operation  string    `json:"operation"` // add | update | delete
	RecordID   string    `json:"record_id"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// SyncStatus 复制健康状况
// 由 HybridService 独占维护，对外只读；
// 复制失败只会出现在这里，永远不会变成调用方可见的错误。
type SyncStatus struct {
	CloudEnabled bool        `json:"cloud_enabled"`
	LastSync     time.Time   `json:"last_sync"`
	LocalRecords int         `json:"local_records"`
	CloudRecords int         `json:"cloud_records"` // 尽力而为，最后一次已知值
	PendingSync  int         `json:"pending_sync"`
	Errors       []SyncError `json:"errors"`
}
