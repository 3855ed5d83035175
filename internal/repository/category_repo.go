package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mercora_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// CategoryRepository 分类仓储接口
// 分类最多两级；删除受引用完整性约束保护
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, id string, patch *model.CategoryPatch) (*model.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ==================== 仓储实现 ====================

type fileCategoryRepo struct {
	store *FileStore
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(store *FileStore) CategoryRepository {
	return &fileCategoryRepo{store: store}
}

func (r *fileCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	return loadCollection[model.Category](r.store, model.CollectionCategories)
}

func (r *fileCategoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	categories, err := loadCollection[model.Category](r.store, model.CollectionCategories)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create 新增分类
// 重名检查和父分类检查都在集合锁内完成，
// 与插入处于同一个读-改-写临界区，不存在先查后写的窗口。
func (r *fileCategoryRepo) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	unlock := r.store.Lock(model.CollectionCategories)
	defer unlock()

	categories, err := loadCollection[model.Category](r.store, model.CollectionCategories)
	if err != nil {
		return nil, err
	}

	for _, c := range categories {
		if strings.EqualFold(c.Name, category.Name) {
			return nil, &ValidationError{Field: "name", Message: "分类名 " + category.Name + " 已存在"}
		}
	}

	// 层级推导与父分类校验：无父即一级，有父必须挂在一级分类下
	if category.ParentID == nil || *category.ParentID == "" {
		category.ParentID = nil
		category.Level = model.CategoryLevelRoot
	} else {
		parent := findCategory(categories, *category.ParentID)
		if parent == nil {
			return nil, &ValidationError{Field: "parent_id", Message: "父分类 " + *category.ParentID + " 不存在"}
		}
		if parent.Level != model.CategoryLevelRoot {
			return nil, &ValidationError{Field: "parent_id", Message: "分类层级最多两层，父分类必须是一级分类"}
		}
		category.Level = model.CategoryLevelChild
	}

	now := time.Now().UTC()
	category.ID = uuid.NewString()
	category.CreatedAt = now
	category.UpdatedAt = now
	category.Origin = model.OriginLocal

	categories = append(categories, *category)
	if err := saveCollection(r.store, model.CollectionCategories, categories); err != nil {
		return nil, err
	}
	return category, nil
}

func (r *fileCategoryRepo) Update(ctx context.Context, id string, patch *model.CategoryPatch) (*model.Category, error) {
	unlock := r.store.Lock(model.CollectionCategories)
	defer unlock()

	categories, err := loadCollection[model.Category](r.store, model.CollectionCategories)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		for _, c := range categories {
			if c.ID != id && strings.EqualFold(c.Name, *patch.Name) {
				return nil, &ValidationError{Field: "name", Message: "分类名 " + *patch.Name + " 已存在"}
			}
		}
	}

	for i := range categories {
		if categories[i].ID != id {
			continue
		}
		patch.Apply(&categories[i])
		categories[i].UpdatedAt = time.Now().UTC()

		if err := saveCollection(r.store, model.CollectionCategories, categories); err != nil {
			return nil, err
		}
		updated := categories[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

// Delete 删除分类
// 引用完整性：仍有子分类或被商品引用的分类不可删除，
// 失败时错误里指明是哪条关系阻止了删除，记录保持原样。
func (r *fileCategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	unlock := r.store.Lock(model.CollectionCategories)
	defer unlock()

	categories, err := loadCollection[model.Category](r.store, model.CollectionCategories)
	if err != nil {
		return false, err
	}
	if findCategory(categories, id) == nil {
		return false, nil
	}

	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == id {
			return false, &RefIntegrityError{CategoryID: id, Relation: "subcategory", BlockedBy: c.ID}
		}
	}

	products, err := loadCollection[model.Product](r.store, model.CollectionProducts)
	if err != nil {
		return false, err
	}
	for _, p := range products {
		if p.Category == id || p.Subcategory == id {
			return false, &RefIntegrityError{CategoryID: id, Relation: "product", BlockedBy: p.ID}
		}
	}

	kept := categories[:0]
	for _, c := range categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if err := saveCollection(r.store, model.CollectionCategories, kept); err != nil {
		return false, err
	}
	return true, nil
}

func findCategory(categories []model.Category, id string) *model.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}
