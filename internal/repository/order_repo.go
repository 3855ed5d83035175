package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mercora_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// OrderRepository 订单仓储接口
type OrderRepository interface {
	List(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	Update(ctx context.Context, id string, patch *model.OrderPatch) (*model.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ==================== 仓储实现 ====================

type fileOrderRepo struct {
	store *FileStore
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(store *FileStore) OrderRepository {
	return &fileOrderRepo{store: store}
}

func (r *fileOrderRepo) List(ctx context.Context) ([]model.Order, error) {
	return loadCollection[model.Order](r.store, model.CollectionOrders)
}

func (r *fileOrderRepo) GetByID(ctx context.Context, id string) (*model.Order, error) {
	orders, err := loadCollection[model.Order](r.store, model.CollectionOrders)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileOrderRepo) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	unlock := r.store.Lock(model.CollectionOrders)
	defer unlock()

	orders, err := loadCollection[model.Order](r.store, model.CollectionOrders)
	if err != nil {
		return nil, err
	}

	order.ID = uuid.NewString()
	order.CreatedAt = time.Now().UTC()
	order.Origin = model.OriginLocal
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}

	orders = append(orders, *order)
	if err := saveCollection(r.store, model.CollectionOrders, orders); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *fileOrderRepo) Update(ctx context.Context, id string, patch *model.OrderPatch) (*model.Order, error) {
	unlock := r.store.Lock(model.CollectionOrders)
	defer unlock()

	orders, err := loadCollection[model.Order](r.store, model.CollectionOrders)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		patch.Apply(&orders[i])

		if err := saveCollection(r.store, model.CollectionOrders, orders); err != nil {
			return nil, err
		}
		updated := orders[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (r *fileOrderRepo) Delete(ctx context.Context, id string) (bool, error) {
	unlock := r.store.Lock(model.CollectionOrders)
	defer unlock()

	orders, err := loadCollection[model.Order](r.store, model.CollectionOrders)
	if err != nil {
		return false, err
	}

	kept := orders[:0]
	found := false
	for _, o := range orders {
		if o.ID == id {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return false, nil
	}

	if err := saveCollection(r.store, model.CollectionOrders, kept); err != nil {
		return false, err
	}
	return true, nil
}
