package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopcart-api/internal/cache"
	handlershared "github.com/shopcart-api/internal/http/handlers/shared"
	"github.com/shopcart-api/internal/http/response"
	"github.com/shopcart-api/internal/models"
	"github.com/shopcart-api/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	categoryListCacheKey = "public:categories"
	categoryListCacheTTL = 60 * time.Second
)

// GetItems 获取商品列表
func (h *Handler) GetItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	query := service.ItemListQuery{
		CategoryID: c.Query("category_id"),
		Search:     strings.TrimSpace(c.Query("search")),
		MinPrice:   c.Query("min_price"),
		MaxPrice:   c.Query("max_price"),
		Page:       page,
		PageSize:   pageSize,
	}

	items, total, err := h.ItemService.ListPublic(query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.item_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, items, pagination)
}

// GetItemByID 获取商品详情
func (h *Handler) GetItemByID(c *gin.Context) {
	rawID := c.Param("id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.item_id_invalid", nil)
		return
	}

	item, err := h.ItemService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			respondError(c, response.CodeNotFound, "error.item_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.item_fetch_failed", err)
		return
	}
	response.Success(c, item)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	var cached []models.Category
	if hit, err := cache.GetJSON(c.Request.Context(), categoryListCacheKey, &cached); err == nil && hit {
		response.Success(c, gin.H{"categories": cached})
		return
	}

	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), categoryListCacheKey, categories, categoryListCacheTTL)
	response.Success(c, gin.H{"categories": categories})
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}
