package repository

import (
	"context"
	"errors"
	"testing"

	"mercora_dev_v1_202608/internal/model"
)

func TestProductRepo_CreateFillsServerFields(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewProductRepository(store)

	created, err := repo.Create(context.Background(), &model.Product{Name: "羊毛毯", Price: 120, Stock: 3})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if created.ID == "" {
		t.Errorf("ID 应由存储层生成")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Errorf("时间戳应由存储层生成")
	}
	if created.Status != model.ProductStatusActive {
		t.Errorf("status = %s, want %s", created.Status, model.ProductStatusActive)
	}
	if created.Origin != model.OriginLocal {
		t.Errorf("origin = %s, want %s", created.Origin, model.OriginLocal)
	}
}

func TestProductRepo_CreateRejectsMissingCategory(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewProductRepository(store)

	_, err := repo.Create(context.Background(), &model.Product{
		Name:     "帆布包",
		Price:    30,
		Category: "no-such-category",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("引用不存在的分类应返回校验错误, got %v", err)
	}
	if ve.Field != "category" {
		t.Errorf("错误字段 = %s, want category", ve.Field)
	}
}

func TestProductRepo_UpdatePatchSemantics(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewProductRepository(store)
	ctx := context.Background()

	created, _ := repo.Create(ctx, &model.Product{Name: "香薰蜡烛", Price: 18, Stock: 50})

	newPrice := 22.0
	updated, err := repo.Update(ctx, created.ID, &model.ProductPatch{Price: &newPrice})
	if err != nil {
		t.Fatalf("更新商品失败: %v", err)
	}

	if updated.Price != 22.0 {
		t.Errorf("price = %v, want 22", updated.Price)
	}
	// 未出现在补丁里的字段保持原值
	if updated.Name != "香薰蜡烛" {
		t.Errorf("name = %s, 不应被修改", updated.Name)
	}
	if updated.Stock != 50 {
		t.Errorf("stock = %d, 不应被修改", updated.Stock)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at 不可变")
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Errorf("updated_at 应被刷新")
	}
}

func TestProductRepo_UpdateMissing(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewProductRepository(store)

	name := "改名"
	_, err := repo.Update(context.Background(), "no-such-id", &model.ProductPatch{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProductRepo_Delete(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewProductRepository(store)
	ctx := context.Background()

	created, _ := repo.Create(ctx, &model.Product{Name: "刺绣手帕", Price: 9})

	deleted, err := repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("删除商品失败: %v", err)
	}
	if !deleted {
		t.Errorf("deleted = false, want true")
	}

	// 重复删除返回 false 而不是错误
	deleted, err = repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("重复删除不应报错: %v", err)
	}
	if deleted {
		t.Errorf("deleted = true, want false")
	}

	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("删除后 GetByID 应返回 ErrNotFound, got %v", err)
	}
}
