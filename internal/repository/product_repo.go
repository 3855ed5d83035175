package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mercora_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, id string, patch *model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ==================== 仓储实现 ====================

type fileProductRepo struct {
	store *FileStore
}

// NewProductRepository 创建商品仓储
func NewProductRepository(store *FileStore) ProductRepository {
	return &fileProductRepo{store: store}
}

func (r *fileProductRepo) List(ctx context.Context) ([]model.Product, error) {
	return loadCollection[model.Product](r.store, model.CollectionProducts)
}

func (r *fileProductRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	products, err := loadCollection[model.Product](r.store, model.CollectionProducts)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create 新增商品
// ID 与时间戳由存储层生成；写入是同步的，返回即已落盘。
// 分类引用必须指向已存在的分类，这里是引用检查的唯一权威。
func (r *fileProductRepo) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	unlock := r.store.Lock(model.CollectionProducts)
	defer unlock()

	if err := r.checkCategoryRef(product.Category, product.Subcategory); err != nil {
		return nil, err
	}

	products, err := loadCollection[model.Product](r.store, model.CollectionProducts)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.Origin = model.OriginLocal
	if product.Status == "" {
		product.Status = model.ProductStatusActive
	}

	products = append(products, *product)
	if err := saveCollection(r.store, model.CollectionProducts, products); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 部分字段更新，刷新 updated_at，created_at 不可变
func (r *fileProductRepo) Update(ctx context.Context, id string, patch *model.ProductPatch) (*model.Product, error) {
	unlock := r.store.Lock(model.CollectionProducts)
	defer unlock()

	if patch.Category != nil || patch.Subcategory != nil {
		category := ""
		if patch.Category != nil {
			category = *patch.Category
		}
		subcategory := ""
		if patch.Subcategory != nil {
			subcategory = *patch.Subcategory
		}
		if err := r.checkCategoryRef(category, subcategory); err != nil {
			return nil, err
		}
	}

	products, err := loadCollection[model.Product](r.store, model.CollectionProducts)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		patch.Apply(&products[i])
		products[i].UpdatedAt = time.Now().UTC()

		if err := saveCollection(r.store, model.CollectionProducts, products); err != nil {
			return nil, err
		}
		updated := products[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (r *fileProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	unlock := r.store.Lock(model.CollectionProducts)
	defer unlock()

	products, err := loadCollection[model.Product](r.store, model.CollectionProducts)
	if err != nil {
		return false, err
	}

	kept := products[:0]
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return false, nil
	}

	if err := saveCollection(r.store, model.CollectionProducts, kept); err != nil {
		return false, err
	}
	return true, nil
}

// checkCategoryRef 校验分类引用是否存在
// 空值表示未引用，跳过检查。
// 只持商品锁读分类集合，与并发的分类删除之间存在跨集合窗口；
// 单实例部署下接受该窗口，分类删除侧的引用检查会挡住已存在的引用。
func (r *fileProductRepo) checkCategoryRef(category, subcategory string) error {
	if category == "" && subcategory == "" {
		return nil
	}

	categories, err := loadCollection[model.Category](r.store, model.CollectionCategories)
	if err != nil {
		return err
	}

	exists := make(map[string]bool, len(categories))
	for _, c := range categories {
		exists[c.ID] = true
	}

	if category != "" && !exists[category] {
		return &ValidationError{Field: "category", Message: "分类 " + category + " 不存在"}
	}
	if subcategory != "" && !exists[subcategory] {
		return &ValidationError{Field: "subcategory", Message: "分类 " + subcategory + " 不存在"}
	}
	return nil
}
