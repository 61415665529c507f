package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopcart-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var cartRepoDBSeq int64

func newCartRepo(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:cart_repo_%d?mode=memory&cache=shared", atomic.AddInt64(&cartRepoDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Item{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCartRepository(db), db
}

func mustCreateLine(t *testing.T, repo *GormCartRepository, userID, itemID uint, quantity int) *models.CartItem {
	t.Helper()
	line := &models.CartItem{UserID: userID, ItemID: itemID, Quantity: quantity}
	if err := repo.Create(line); err != nil {
		t.Fatalf("create line failed: %v", err)
	}
	return line
}

func TestGetLine_ScopedToOwner(t *testing.T) {
	repo, _ := newCartRepo(t)
	line := mustCreateLine(t, repo, 1, 10, 2)

	got, err := repo.GetLine(line.ID, 1)
	if err != nil {
		t.Fatalf("get line failed: %v", err)
	}
	if got == nil || got.ID != line.ID {
		t.Fatalf("expected owner lookup to succeed, got %+v", got)
	}

	// 他人行与不存在的行同样返回 nil
	foreign, err := repo.GetLine(line.ID, 2)
	if err != nil {
		t.Fatalf("foreign lookup failed: %v", err)
	}
	if foreign != nil {
		t.Fatalf("expected nil for foreign user, got %+v", foreign)
	}
	missing, err := repo.GetLine(9999, 1)
	if err != nil {
		t.Fatalf("missing lookup failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing line, got %+v", missing)
	}
}

func TestUpdateQuantity_RowsAffected(t *testing.T) {
	repo, _ := newCartRepo(t)
	line := mustCreateLine(t, repo, 1, 10, 2)

	affected, err := repo.UpdateQuantity(line.ID, 1, 5)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	affected, err = repo.UpdateQuantity(line.ID, 2, 5)
	if err != nil {
		t.Fatalf("foreign update failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected rows for foreign user, got %d", affected)
	}
}

func TestDelete_RowsAffected(t *testing.T) {
	repo, _ := newCartRepo(t)
	line := mustCreateLine(t, repo, 1, 10, 2)

	affected, err := repo.Delete(line.ID, 2)
	if err != nil {
		t.Fatalf("foreign delete failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected rows for foreign user, got %d", affected)
	}

	affected, err = repo.Delete(line.ID, 1)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	// 硬删除后同商品可重新建行
	if err := repo.Create(&models.CartItem{UserID: 1, ItemID: 10, Quantity: 1}); err != nil {
		t.Fatalf("recreate after delete failed: %v", err)
	}
}

func TestClearByUser_CountsRemovedRows(t *testing.T) {
	repo, _ := newCartRepo(t)
	mustCreateLine(t, repo, 1, 10, 1)
	mustCreateLine(t, repo, 1, 11, 2)
	mustCreateLine(t, repo, 2, 10, 3)

	affected, err := repo.ClearByUser(1)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 cleared rows, got %d", affected)
	}

	affected, err = repo.ClearByUser(1)
	if err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected empty clear to report 0 rows, got %d", affected)
	}

	remaining, err := repo.ListByUser(2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected other user's line kept, got %d", len(remaining))
	}
}

func TestDeleteCreatedBefore_Cutoff(t *testing.T) {
	repo, db := newCartRepo(t)
	stale := mustCreateLine(t, repo, 1, 10, 1)
	mustCreateLine(t, repo, 1, 11, 1)

	if err := db.Model(&models.CartItem{}).
		Where("id = ?", stale.ID).
		Update("created_at", time.Now().Add(-72*time.Hour)).Error; err != nil {
		t.Fatalf("backdate failed: %v", err)
	}

	affected, err := repo.DeleteCreatedBefore(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 pruned row, got %d", affected)
	}
}
