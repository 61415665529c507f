package service

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/shopcart-api/internal/models"
	"github.com/shopcart-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var itemTestDBSeq int64

func newItemTestService(t *testing.T) (*ItemService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:item_svc_%d?mode=memory&cache=shared", atomic.AddInt64(&itemTestDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Item{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewItemService(repository.NewItemRepository(db)), db
}

func seedItem(t *testing.T, db *gorm.DB, name, price string, categoryID uint, active bool) *models.Item {
	t.Helper()
	item := &models.Item{
		CategoryID: categoryID,
		Name:       name,
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Stock:      10,
		IsActive:   active,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed item failed: %v", err)
	}
	return item
}

func TestListPublic_OnlyActiveItems(t *testing.T) {
	svc, db := newItemTestService(t)
	seedItem(t, db, "在售", "10.00", 0, true)
	seedItem(t, db, "下架", "10.00", 0, false)

	items, total, err := svc.ListPublic(ItemListQuery{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected only active item, got total=%d len=%d", total, len(items))
	}
	if items[0].Name != "在售" {
		t.Fatalf("unexpected item: %s", items[0].Name)
	}
}

func TestListPublic_CategoryFilter(t *testing.T) {
	svc, db := newItemTestService(t)
	category := &models.Category{Slug: "electronics", Name: "电子产品"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	seedItem(t, db, "耳机", "299.00", category.ID, true)
	seedItem(t, db, "水杯", "89.00", 0, true)

	items, total, err := svc.ListPublic(ItemListQuery{
		CategoryID: strconv.FormatUint(uint64(category.ID), 10),
		Page:       1,
		PageSize:   20,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "耳机" {
		t.Fatalf("expected category-scoped result, got total=%d items=%+v", total, items)
	}
}

func TestListPublic_PriceRange(t *testing.T) {
	svc, db := newItemTestService(t)
	seedItem(t, db, "便宜", "9.90", 0, true)
	seedItem(t, db, "中等", "99.00", 0, true)
	seedItem(t, db, "昂贵", "999.00", 0, true)

	items, total, err := svc.ListPublic(ItemListQuery{
		MinPrice: "50",
		MaxPrice: "500",
		Page:     1,
		PageSize: 20,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "中等" {
		t.Fatalf("expected single mid-priced item, got total=%d items=%+v", total, items)
	}
}

func TestListPublic_IgnoresInvalidPriceFilter(t *testing.T) {
	svc, db := newItemTestService(t)
	seedItem(t, db, "商品", "10.00", 0, true)

	_, total, err := svc.ListPublic(ItemListQuery{
		MinPrice: "abc",
		MaxPrice: "-3",
		Page:     1,
		PageSize: 20,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected invalid price filters ignored, got total=%d", total)
	}
}

func TestListPublic_SearchMatchesNameAndDescription(t *testing.T) {
	svc, db := newItemTestService(t)
	item := seedItem(t, db, "无线耳机", "299.00", 0, true)
	item.Description = "支持主动降噪"
	if err := db.Save(item).Error; err != nil {
		t.Fatalf("update item failed: %v", err)
	}
	seedItem(t, db, "保温杯", "89.00", 0, true)

	items, total, err := svc.ListPublic(ItemListQuery{Search: "降噪", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "无线耳机" {
		t.Fatalf("expected description match, got total=%d items=%+v", total, items)
	}
}

func TestGetByID_InactiveNotFound(t *testing.T) {
	svc, db := newItemTestService(t)
	active := seedItem(t, db, "在售", "10.00", 0, true)
	inactive := seedItem(t, db, "下架", "10.00", 0, false)

	got, err := svc.GetByID(active.ID)
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if got.ID != active.ID {
		t.Fatalf("unexpected item: %+v", got)
	}

	if _, err := svc.GetByID(inactive.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("inactive: expected ErrItemNotFound, got %v", err)
	}
	if _, err := svc.GetByID(9999); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("missing: expected ErrItemNotFound, got %v", err)
	}
}
