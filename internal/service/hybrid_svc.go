package service

import (
	"context"
	"log"
	"sync"
	"time"

	"mercora_dev_v1_202608/internal/model"
	"mercora_dev_v1_202608/internal/repository"
)

const (
	// 复制队列容量：写入突发不会压出无界的并发出站请求
	pushQueueSize = 64
	// 同步错误列表上限，超出后丢弃最旧的
	maxSyncErrors = 50
)

// pushJob 一次待复制的变更
type pushJob struct {
	collection string
	op         string
	recordID   string
	record     interface{}
}

// ==================== 混合协调器 ====================

// HybridService 双后端读写协调器，调用方唯一的入口。
//
// 写路径：本地优先。本地仓储同步落盘决定调用方看到的成败；
// 成功后变更进入有界队列，由后台 worker 尽力推送云端，
// 复制结果只会出现在 SyncStatus 里，永远不会影响调用方。
//
// 读路径：本地 + 云端按 ID 合并，ID 冲突时本地整条胜出；
// 云端拉取失败时静默降级为仅本地。
//
// 进程启动时构造一次，按引用传给各 controller，不做包级单例。
type HybridService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	orders     repository.OrderRepository
	cloud      *CloudService

	queue chan pushJob

	mu          sync.Mutex
	status      model.SyncStatus
	cloudCounts map[string]int // 各集合最后一次已知的云端记录数
}

// NewHybridService 创建协调器并启动复制 worker
// ctx 取消时 worker 退出，队列里未发出的变更留给下一次 forceSync
func NewHybridService(
	ctx context.Context,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	orders repository.OrderRepository,
	cloud *CloudService,
) *HybridService {
	h := &HybridService{
		products:    products,
		categories:  categories,
		orders:      orders,
		cloud:       cloud,
		queue:       make(chan pushJob, pushQueueSize),
		cloudCounts: make(map[string]int),
	}
	h.status.CloudEnabled = cloud.Enabled()

	go h.pushWorker(ctx)
	return h
}

// ==================== 商品 ====================

// ListProducts 合并读取商品集合
func (h *HybridService) ListProducts(ctx context.Context) ([]model.Product, error) {
	local, err := h.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if !h.cloud.Enabled() {
		return local, nil
	}

	remote, err := h.cloud.PullProducts(ctx)
	if err != nil {
		// 云端不可用：降级为仅本地，不算错误
		return local, nil
	}
	h.setCloudCount(model.CollectionProducts, len(remote))

	return mergeByID(local, remote,
		func(p *model.Product) string { return p.ID },
		func(p *model.Product, origin string) { p.Origin = origin }), nil
}

// GetProduct 查询单个商品（仅本地，本地是权威副本）
func (h *HybridService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return h.products.GetByID(ctx, id)
}

// AddProduct 新增商品：本地同步落盘，云端异步复制
func (h *HybridService) AddProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	created, err := h.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	h.enqueuePush(model.CollectionProducts, model.SyncOpAdd, created.ID, created)
	return created, nil
}

// UpdateProduct 部分更新商品
func (h *HybridService) UpdateProduct(ctx context.Context, id string, patch *model.ProductPatch) (*model.Product, error) {
	if patch.Status != nil && !model.ValidProductStatus(*patch.Status) {
		return nil, &repository.ValidationError{Field: "status", Message: "无效的商品状态: " + *patch.Status}
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, &repository.ValidationError{Field: "price", Message: "价格不能为负数"}
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, &repository.ValidationError{Field: "stock", Message: "库存不能为负数"}
	}

	updated, err := h.products.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	h.enqueuePush(model.CollectionProducts, model.SyncOpUpdate, id, updated)
	return updated, nil
}

// DeleteProduct 删除商品
func (h *HybridService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	deleted, err := h.products.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	h.enqueuePush(model.CollectionProducts, model.SyncOpDelete, id, nil)
	return true, nil
}

// ==================== 分类 ====================

// ListCategories 合并读取分类集合
func (h *HybridService) ListCategories(ctx context.Context) ([]model.Category, error) {
	local, err := h.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if !h.cloud.Enabled() {
		return local, nil
	}

	remote, err := h.cloud.PullCategories(ctx)
	if err != nil {
		return local, nil
	}
	h.setCloudCount(model.CollectionCategories, len(remote))

	return mergeByID(local, remote,
		func(c *model.Category) string { return c.ID },
		func(c *model.Category, origin string) { c.Origin = origin }), nil
}

// AddCategory 新增分类
// 重名与父分类约束由仓储层在集合锁内裁决
func (h *HybridService) AddCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.Name == "" {
		return nil, &repository.ValidationError{Field: "name", Message: "分类名不能为空"}
	}

	created, err := h.categories.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	h.enqueuePush(model.CollectionCategories, model.SyncOpAdd, created.ID, created)
	return created, nil
}

// UpdateCategory 部分更新分类
func (h *HybridService) UpdateCategory(ctx context.Context, id string, patch *model.CategoryPatch) (*model.Category, error) {
	updated, err := h.categories.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	h.enqueuePush(model.CollectionCategories, model.SyncOpUpdate, id, updated)
	return updated, nil
}

// DeleteCategory 删除分类，受引用完整性约束保护
func (h *HybridService) DeleteCategory(ctx context.Context, id string) (bool, error) {
	deleted, err := h.categories.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	h.enqueuePush(model.CollectionCategories, model.SyncOpDelete, id, nil)
	return true, nil
}

// ==================== 订单 ====================

// ListOrders 合并读取订单集合
func (h *HybridService) ListOrders(ctx context.Context) ([]model.Order, error) {
	local, err := h.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	if !h.cloud.Enabled() {
		return local, nil
	}

	remote, err := h.cloud.PullOrders(ctx)
	if err != nil {
		return local, nil
	}
	h.setCloudCount(model.CollectionOrders, len(remote))

	return mergeByID(local, remote,
		func(o *model.Order) string { return o.ID },
		func(o *model.Order, origin string) { o.Origin = origin }), nil
}

// AddOrder 新增订单
func (h *HybridService) AddOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	created, err := h.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	h.enqueuePush(model.CollectionOrders, model.SyncOpAdd, created.ID, created)
	return created, nil
}

// UpdateOrder 部分更新订单（状态流转、支付方式）
func (h *HybridService) UpdateOrder(ctx context.Context, id string, patch *model.OrderPatch) (*model.Order, error) {
	if patch.Status != nil && !model.ValidOrderStatus(*patch.Status) {
		return nil, &repository.ValidationError{Field: "status", Message: "无效的订单状态: " + *patch.Status}
	}

	updated, err := h.orders.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	h.enqueuePush(model.CollectionOrders, model.SyncOpUpdate, id, updated)
	return updated, nil
}

// DeleteOrder 删除订单
func (h *HybridService) DeleteOrder(ctx context.Context, id string) (bool, error) {
	deleted, err := h.orders.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	h.enqueuePush(model.CollectionOrders, model.SyncOpDelete, id, nil)
	return true, nil
}

// ==================== 同步状态 ====================

// GetSyncStatus 读取复制健康状况
// 本地记录数现场统计，云端记录数取最后一次拉取的已知值
func (h *HybridService) GetSyncStatus(ctx context.Context) model.SyncStatus {
	localCount := 0
	if products, err := h.products.List(ctx); err == nil {
		localCount += len(products)
	}
	if categories, err := h.categories.List(ctx); err == nil {
		localCount += len(categories)
	}
	if orders, err := h.orders.List(ctx); err == nil {
		localCount += len(orders)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	st := h.status
	st.LocalRecords = localCount
	st.CloudRecords = 0
	for _, n := range h.cloudCounts {
		st.CloudRecords += n
	}
	st.Errors = append([]model.SyncError(nil), h.status.Errors...)
	return st
}

// ForceSync 手动全量重同步
// 把三个集合的本地记录全量 upsert 到云端；成功后清空错误列表
func (h *HybridService) ForceSync(ctx context.Context) error {
	if !h.cloud.Enabled() {
		return ErrCloudUnavailable
	}

	products, err := h.products.List(ctx)
	if err != nil {
		return err
	}
	categories, err := h.categories.List(ctx)
	if err != nil {
		return err
	}
	orders, err := h.orders.List(ctx)
	if err != nil {
		return err
	}

	if err := h.cloud.ForceResync(ctx, products, categories, orders); err != nil {
		return err
	}

	h.mu.Lock()
	h.status.Errors = nil
	h.status.LastSync = time.Now().UTC()
	h.cloudCounts[model.CollectionProducts] = len(products)
	h.cloudCounts[model.CollectionCategories] = len(categories)
	h.cloudCounts[model.CollectionOrders] = len(orders)
	h.mu.Unlock()

	log.Printf("[HybridService] 全量同步完成: products=%d categories=%d orders=%d",
		len(products), len(categories), len(orders))
	return nil
}

// ==================== 复制队列 ====================

// enqueuePush 把变更交给后台复制 worker
// 队列满时丢弃并记一条同步错误，绝不阻塞调用方的写路径
func (h *HybridService) enqueuePush(collection, op, recordID string, record interface{}) {
	if !h.cloud.Enabled() {
		return
	}

	h.mu.Lock()
	h.status.PendingSync++
	h.mu.Unlock()

	select {
	case h.queue <- pushJob{collection: collection, op: op, recordID: recordID, record: record}:
	default:
		h.mu.Lock()
		h.status.PendingSync--
		h.appendErrorLocked(model.SyncError{
			Collection: collection,
			Operation:  op,
			RecordID:   recordID,
			Message:    "复制队列已满，变更未同步",
			Timestamp:  time.Now().UTC(),
		})
		h.mu.Unlock()
	}
}

// pushWorker 后台复制 worker
// 逐条消费队列并推送云端，结果只记入 SyncStatus
func (h *HybridService) pushWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-h.queue:
			syncErr := h.cloud.Push(ctx, job.collection, job.recordID, job.op, job.record)

			h.mu.Lock()
			h.status.PendingSync--
			if syncErr != nil {
				h.appendErrorLocked(*syncErr)
				log.Printf("[HybridService] 云端复制失败 [%s/%s] %s: %s",
					job.collection, job.op, job.recordID, syncErr.Message)
			} else {
				h.status.LastSync = time.Now().UTC()
			}
			h.mu.Unlock()
		}
	}
}

// appendErrorLocked 追加同步错误并裁剪到上限，调用方必须持有 h.mu
func (h *HybridService) appendErrorLocked(e model.SyncError) {
	h.status.Errors = append(h.status.Errors, e)
	if n := len(h.status.Errors); n > maxSyncErrors {
		h.status.Errors = h.status.Errors[n-maxSyncErrors:]
	}
}

func (h *HybridService) setCloudCount(collection string, n int) {
	h.mu.Lock()
	h.cloudCounts[collection] = n
	h.mu.Unlock()
}

// ==================== 合并与校验 ====================

// mergeByID 按 ID 合并本地与云端集合
// 本地整条胜出，不做字段级合并；两边都有的记录标记 origin=both，
// 仅云端存在的记录标记 origin=cloud 后追加
func mergeByID[T any](local, remote []T, id func(*T) string, setOrigin func(*T, string)) []T {
	merged := make([]T, 0, len(local)+len(remote))
	index := make(map[string]int, len(local))
	for i := range local {
		index[id(&local[i])] = len(merged)
		merged = append(merged, local[i])
	}
	for i := range remote {
		if at, ok := index[id(&remote[i])]; ok {
			setOrigin(&merged[at], model.OriginBoth)
			continue
		}
		setOrigin(&remote[i], model.OriginCloud)
		merged = append(merged, remote[i])
	}
	return merged
}

// validateProduct 商品创建前校验，发生在任何存储访问之前
func validateProduct(p *model.Product) error {
	if p.Name == "" {
		return &repository.ValidationError{Field: "name", Message: "商品名不能为空"}
	}
	if p.Price < 0 {
		return &repository.ValidationError{Field: "price", Message: "价格不能为负数"}
	}
	if p.Stock < 0 {
		return &repository.ValidationError{Field: "stock", Message: "库存不能为负数"}
	}
	if p.Category == "" {
		return &repository.ValidationError{Field: "category", Message: "必须指定分类"}
	}
	if p.Status != "" && !model.ValidProductStatus(p.Status) {
		return &repository.ValidationError{Field: "status", Message: "无效的商品状态: " + p.Status}
	}
	return nil
}

// validateOrder 订单创建前校验
func validateOrder(o *model.Order) error {
	if o.CustomerName == "" {
		return &repository.ValidationError{Field: "customer_name", Message: "客户名不能为空"}
	}
	if o.Total < 0 {
		return &repository.ValidationError{Field: "total", Message: "订单金额不能为负数"}
	}
	if o.ItemCount < 0 {
		return &repository.ValidationError{Field: "item_count", Message: "商品数量不能为负数"}
	}
	if o.Status != "" && !model.ValidOrderStatus(o.Status) {
		return &repository.ValidationError{Field: "status", Message: "无效的订单状态: " + o.Status}
	}
	return nil
}
