package service

import (
	"strings"

	"github.com/shopcart-api/internal/models"
	"github.com/shopcart-api/internal/repository"

	"github.com/shopspring/decimal"
)

// ItemListQuery 公开商品列表查询条件
type ItemListQuery struct {
	CategoryID string
	Search     string
	MinPrice   string
	MaxPrice   string
	Page       int
	PageSize   int
}

// ItemService 商品查询服务
type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService 创建商品服务
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// ListPublic 公开商品列表，仅返回上架商品
func (s *ItemService) ListPublic(query ItemListQuery) ([]models.Item, int64, error) {
	filter := repository.ItemListFilter{
		Page:         query.Page,
		PageSize:     query.PageSize,
		CategoryID:   strings.TrimSpace(query.CategoryID),
		Search:       strings.TrimSpace(query.Search),
		OnlyActive:   true,
		WithCategory: true,
	}
	if min, ok := parsePrice(query.MinPrice); ok {
		filter.MinPrice = &min
	}
	if max, ok := parsePrice(query.MaxPrice); ok {
		filter.MaxPrice = &max
	}
	return s.itemRepo.List(filter)
}

// GetByID 获取上架商品详情
func (s *ItemService) GetByID(id uint) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsActive {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func parsePrice(raw string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil || value.IsNegative() {
		return decimal.Zero, false
	}
	return value, true
}
