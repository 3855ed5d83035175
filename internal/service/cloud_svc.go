package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"mercora_dev_v1_202608/internal/model"
)

// ErrCloudUnavailable 云端不可达或未配置
var ErrCloudUnavailable = errors.New("云端存储不可用")

// ==================== 配置 ====================

// CloudConfig 云端存储配置
// BaseURL 或 APIKey 缺失时云端复制整体停用，本地写路径行为不变
type CloudConfig struct {
	BaseURL string // Supabase 项目地址
	APIKey  string // service role key
	Timeout time.Duration
}

// ==================== 服务实现 ====================

// CloudService 云端复制客户端
// 把本地的每次变更尽力镜像到 Supabase REST (PostgREST) 端，
// 并在合并读取时拉取云端集合。
// 所有失败都被捕获转成结构化同步错误，永远不会上抛异常。
type CloudService struct {
	config *CloudConfig
	client *resty.Client
}

// NewCloudService 创建云端复制客户端
func NewCloudService(cfg *CloudConfig) *CloudService {
	s := &CloudService{config: cfg}
	if cfg == nil || cfg.BaseURL == "" || cfg.APIKey == "" {
		return s
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	// 超时必须有界：云端不可达时不能无限拖住复制队列
	s.client = resty.New().
		SetBaseURL(cfg.BaseURL+"/rest/v1").
		SetTimeout(timeout).
		SetRetryCount(1).
		SetHeader("apikey", cfg.APIKey).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	return s
}

// Enabled 云端是否已配置
func (s *CloudService) Enabled() bool {
	return s.client != nil
}

// ==================== 单条推送 ====================

// Push 把单条本地变更镜像到云端
// 返回 nil 表示成功；任何失败都转成 SyncError 返回，由调用方记账。
// 本方法绝不 panic、绝不返回 Go error。
func (s *CloudService) Push(ctx context.Context, collection, recordID, op string, record interface{}) *model.SyncError {
	if !s.Enabled() {
		return s.syncError(collection, recordID, op, "云端未配置")
	}

	var resp *resty.Response
	var err error

	switch op {
	case model.SyncOpAdd:
		resp, err = s.client.R().
			SetContext(ctx).
			SetHeader("Prefer", "return=minimal").
			SetBody(record).
			Post("/" + collection)
	case model.SyncOpUpdate:
		resp, err = s.client.R().
			SetContext(ctx).
			SetHeader("Prefer", "return=minimal").
			SetQueryParam("id", "eq."+recordID).
			SetBody(record).
			Patch("/" + collection)
	case model.SyncOpDelete:
		resp, err = s.client.R().
			SetContext(ctx).
			SetQueryParam("id", "eq."+recordID).
			Delete("/" + collection)
	default:
		return s.syncError(collection, recordID, op, "未知的同步操作")
	}

	if err != nil {
		return s.syncError(collection, recordID, op, err.Error())
	}
	if resp.IsError() {
		return s.syncError(collection, recordID, op,
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), resp.String()))
	}
	return nil
}

func (s *CloudService) syncError(collection, recordID, op, message string) *model.SyncError {
	return &model.SyncError{
		Collection: collection,
		Operation:  op,
		RecordID:   recordID,
		Message:    message,
		Timestamp:  time.Now().UTC(),
	}
}

// ==================== 集合拉取 ====================

// pullCollection 拉取云端整个集合
// 任何失败都折叠成 ErrCloudUnavailable，合并读取据此降级为仅本地
func pullCollection[T any](ctx context.Context, s *CloudService, collection string) ([]T, error) {
	if !s.Enabled() {
		return nil, ErrCloudUnavailable
	}

	var records []T
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetResult(&records).
		Get("/" + collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCloudUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: HTTP %d", ErrCloudUnavailable, resp.StatusCode())
	}
	return records, nil
}

// PullProducts 拉取云端商品集合
func (s *CloudService) PullProducts(ctx context.Context) ([]model.Product, error) {
	return pullCollection[model.Product](ctx, s, model.CollectionProducts)
}

// PullCategories 拉取云端分类集合
func (s *CloudService) PullCategories(ctx context.Context) ([]model.Category, error) {
	return pullCollection[model.Category](ctx, s, model.CollectionCategories)
}

// PullOrders 拉取云端订单集合
func (s *CloudService) PullOrders(ctx context.Context) ([]model.Order, error) {
	return pullCollection[model.Order](ctx, s, model.CollectionOrders)
}

// ==================== 全量重同步 ====================

// ForceResync 把本地集合全量 upsert 到云端
// 用于故障后的手动恢复；任何一个集合失败即整体失败
func (s *CloudService) ForceResync(ctx context.Context,
	products []model.Product, categories []model.Category, orders []model.Order) error {
	if !s.Enabled() {
		return ErrCloudUnavailable
	}

	if err := s.upsertAll(ctx, model.CollectionCategories, categories); err != nil {
		return err
	}
	if err := s.upsertAll(ctx, model.CollectionProducts, products); err != nil {
		return err
	}
	if err := s.upsertAll(ctx, model.CollectionOrders, orders); err != nil {
		return err
	}
	return nil
}

func (s *CloudService) upsertAll(ctx context.Context, collection string, records interface{}) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetQueryParam("on_conflict", "id").
		SetBody(records).
		Post("/" + collection)
	if err != nil {
		return fmt.Errorf("全量同步 %s 失败: %w", collection, err)
	}
	if resp.IsError() {
		return fmt.Errorf("全量同步 %s 失败: HTTP %d: %s", collection, resp.StatusCode(), resp.String())
	}
	return nil
}
