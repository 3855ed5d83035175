package repository

import (
	"context"
	"errors"
	"testing"

	"mercora_dev_v1_202608/internal/model"
)

func TestCategoryRepo_CreateLevels(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewCategoryRepository(store)
	ctx := context.Background()

	root, err := repo.Create(ctx, &model.Category{Name: "首饰"})
	if err != nil {
		t.Fatalf("创建一级分类失败: %v", err)
	}
	if root.Level != model.CategoryLevelRoot {
		t.Errorf("level = %d, want %d", root.Level, model.CategoryLevelRoot)
	}
	if root.ParentID != nil {
		t.Errorf("一级分类 parent_id 应为 nil")
	}
	if root.Origin != model.OriginLocal {
		t.Errorf("origin = %s, want %s", root.Origin, model.OriginLocal)
	}

	child, err := repo.Create(ctx, &model.Category{Name: "项链", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("创建二级分类失败: %v", err)
	}
	if child.Level != model.CategoryLevelChild {
		t.Errorf("level = %d, want %d", child.Level, model.CategoryLevelChild)
	}

	// 二级分类下不能再挂分类
	_, err = repo.Create(ctx, &model.Category{Name: "银项链", ParentID: &child.ID})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("三层分类应返回校验错误, got %v", err)
	}
}

func TestCategoryRepo_DuplicateNameCaseInsensitive(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewCategoryRepository(store)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &model.Category{Name: "Home Decor"}); err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	_, err := repo.Create(ctx, &model.Category{Name: "home decor"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("重名分类应返回校验错误, got %v", err)
	}
	if ve.Field != "name" {
		t.Errorf("错误字段 = %s, want name", ve.Field)
	}
}

func TestCategoryRepo_MissingParent(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewCategoryRepository(store)

	missing := "no-such-id"
	_, err := repo.Create(context.Background(), &model.Category{Name: "孤儿分类", ParentID: &missing})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("父分类不存在应返回校验错误, got %v", err)
	}
}

func TestCategoryRepo_DeleteBlockedBySubcategory(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewCategoryRepository(store)
	ctx := context.Background()

	root, _ := repo.Create(ctx, &model.Category{Name: "服饰"})
	child, _ := repo.Create(ctx, &model.Category{Name: "围巾", ParentID: &root.ID})

	_, err := repo.Delete(ctx, root.ID)
	var re *RefIntegrityError
	if !errors.As(err, &re) {
		t.Fatalf("有子分类时删除应返回引用完整性错误, got %v", err)
	}
	if re.Relation != "subcategory" {
		t.Errorf("relation = %s, want subcategory", re.Relation)
	}
	if re.BlockedBy != child.ID {
		t.Errorf("blocked_by = %s, want %s", re.BlockedBy, child.ID)
	}

	// 失败的删除不得改动数据
	categories, _ := repo.List(ctx)
	if len(categories) != 2 {
		t.Errorf("分类数量 = %d, want 2", len(categories))
	}
}

func TestCategoryRepo_DeleteBlockedByProduct(t *testing.T) {
	store, _ := setupTestStore(t)
	catRepo := NewCategoryRepository(store)
	prodRepo := NewProductRepository(store)
	ctx := context.Background()

	cat, _ := catRepo.Create(ctx, &model.Category{Name: "木工"})
	product, err := prodRepo.Create(ctx, &model.Product{Name: "胡桃木砧板", Price: 45, Category: cat.ID})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	_, err = catRepo.Delete(ctx, cat.ID)
	var re *RefIntegrityError
	if !errors.As(err, &re) {
		t.Fatalf("有商品引用时删除应返回引用完整性错误, got %v", err)
	}
	if re.Relation != "product" {
		t.Errorf("relation = %s, want product", re.Relation)
	}

	// 解除引用后即可删除
	if _, err := prodRepo.Delete(ctx, product.ID); err != nil {
		t.Fatalf("删除商品失败: %v", err)
	}
	deleted, err := catRepo.Delete(ctx, cat.ID)
	if err != nil {
		t.Fatalf("删除分类失败: %v", err)
	}
	if !deleted {
		t.Errorf("deleted = false, want true")
	}
}

func TestCategoryRepo_DeleteMissing(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewCategoryRepository(store)

	deleted, err := repo.Delete(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("删除不存在的分类不应报错: %v", err)
	}
	if deleted {
		t.Errorf("deleted = true, want false")
	}
}
