package repository

import (
	"errors"
	"strings"

	"github.com/shopcart-api/internal/models"

	"gorm.io/gorm"
)

// ItemRepository 商品数据访问接口
type ItemRepository interface {
	List(filter ItemListFilter) ([]models.Item, int64, error)
	GetByID(id uint) (*models.Item, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
}

// GormItemRepository GORM 实现
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建商品仓库
func NewItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// List 商品列表
func (r *GormItemRepository) List(filter ItemListFilter) ([]models.Item, int64, error) {
	var items []models.Item

	query := r.db.Model(&models.Item{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetByID 根据 ID 获取商品
func (r *GormItemRepository) GetByID(id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.Preload("Category").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 创建商品
func (r *GormItemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

// Update 更新商品
func (r *GormItemRepository) Update(item *models.Item) error {
	return r.db.Save(item).Error
}
