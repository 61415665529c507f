package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopcart-api/internal/models"
	"github.com/shopcart-api/internal/provider"
	"github.com/shopcart-api/internal/repository"
	"github.com/shopcart-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var cartHandlerDBSeq int64

func init() {
	gin.SetMode(gin.TestMode)
}

func newCartTestRouter(t *testing.T, userID uint) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:cart_handler_%d?mode=memory&cache=shared", atomic.AddInt64(&cartHandlerDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Item{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cartRepo := repository.NewCartRepository(db)
	itemRepo := repository.NewItemRepository(db)
	container := &provider.Container{
		CartRepo:    cartRepo,
		ItemRepo:    itemRepo,
		CartService: service.NewCartService(cartRepo, itemRepo),
	}
	handler := New(container)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/cart", handler.GetCart)
	r.POST("/cart/items", handler.AddCartItem)
	r.PUT("/cart/items/:line_id", handler.UpdateCartItem)
	r.DELETE("/cart/items/:line_id", handler.DeleteCartItem)
	r.DELETE("/cart", handler.ClearCart)
	return r, db
}

func createHandlerItem(t *testing.T, db *gorm.DB, name, price string, stock int) *models.Item {
	t.Helper()
	item := &models.Item{
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Stock:    stock,
		IsActive: true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	return item
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (int, map[string]interface{}) {
	t.Helper()
	var envelope struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope failed: %v (%s)", err, w.Body.String())
	}
	return envelope.StatusCode, envelope.Data
}

func TestCartEndpoints_AddAndGet(t *testing.T) {
	r, db := newCartTestRouter(t, 1)
	item := createHandlerItem(t, db, "耳机", "299.00", 10)

	w := doJSON(t, r, http.MethodPost, "/cart/items", fmt.Sprintf(`{"item_id":%d,"quantity":2}`, item.ID))
	if code, _ := decodeEnvelope(t, w); code != 0 {
		t.Fatalf("expected success, got code %d: %s", code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/cart", "")
	code, data := decodeEnvelope(t, w)
	if code != 0 {
		t.Fatalf("expected success, got code %d", code)
	}
	if data["total_items"].(float64) != 1 {
		t.Fatalf("expected 1 line, got %v", data["total_items"])
	}
	if data["total_amount"].(string) != "598.00" {
		t.Fatalf("expected total 598.00, got %v", data["total_amount"])
	}
}

func TestCartEndpoints_AddErrors(t *testing.T) {
	r, db := newCartTestRouter(t, 1)
	item := createHandlerItem(t, db, "支架", "119.00", 2)

	w := doJSON(t, r, http.MethodPost, "/cart/items", `{"item_id":9999,"quantity":1}`)
	if code, _ := decodeEnvelope(t, w); code != 404 {
		t.Fatalf("unknown item: expected code 404, got %d", code)
	}

	w = doJSON(t, r, http.MethodPost, "/cart/items", fmt.Sprintf(`{"item_id":%d,"quantity":5}`, item.ID))
	if code, _ := decodeEnvelope(t, w); code != 400 {
		t.Fatalf("stock exceeded: expected code 400, got %d", code)
	}

	w = doJSON(t, r, http.MethodPost, "/cart/items", fmt.Sprintf(`{"item_id":%d,"quantity":-1}`, item.ID))
	if code, _ := decodeEnvelope(t, w); code != 400 {
		t.Fatalf("negative quantity: expected code 400, got %d", code)
	}
}

func TestCartEndpoints_UpdateAndDelete(t *testing.T) {
	r, db := newCartTestRouter(t, 1)
	item := createHandlerItem(t, db, "水杯", "89.00", 10)

	w := doJSON(t, r, http.MethodPost, "/cart/items", fmt.Sprintf(`{"item_id":%d,"quantity":1}`, item.ID))
	if code, _ := decodeEnvelope(t, w); code != 0 {
		t.Fatalf("add failed: %s", w.Body.String())
	}
	var line models.CartItem
	if err := db.Where("user_id = ?", 1).First(&line).Error; err != nil {
		t.Fatalf("load line failed: %v", err)
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/cart/items/%d", line.ID), `{"quantity":4}`)
	if code, _ := decodeEnvelope(t, w); code != 0 {
		t.Fatalf("update failed: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/cart/items/9999", `{"quantity":4}`)
	if code, _ := decodeEnvelope(t, w); code != 404 {
		t.Fatalf("missing line: expected 404, got %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/cart/items/abc", `{"quantity":4}`)
	if code, _ := decodeEnvelope(t, w); code != 400 {
		t.Fatalf("bad line id: expected 400, got %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/cart/items/%d", line.ID), "")
	if code, _ := decodeEnvelope(t, w); code != 0 {
		t.Fatalf("delete failed: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/cart/items/%d", line.ID), "")
	if code, _ := decodeEnvelope(t, w); code != 404 {
		t.Fatalf("repeat delete: expected 404, got %s", w.Body.String())
	}
}

func TestCartEndpoints_Clear(t *testing.T) {
	r, db := newCartTestRouter(t, 1)
	item := createHandlerItem(t, db, "贴膜", "19.90", 10)

	w := doJSON(t, r, http.MethodPost, "/cart/items", fmt.Sprintf(`{"item_id":%d,"quantity":3}`, item.ID))
	if code, _ := decodeEnvelope(t, w); code != 0 {
		t.Fatalf("add failed: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/cart", "")
	if code, _ := decodeEnvelope(t, w); code != 0 {
		t.Fatalf("clear failed: %s", w.Body.String())
	}

	// 空购物车再次清空仍然成功
	w = doJSON(t, r, http.MethodDelete, "/cart", "")
	if code, _ := decodeEnvelope(t, w); code != 0 {
		t.Fatalf("clear empty failed: %s", w.Body.String())
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty cart, got %d lines", count)
	}
}
