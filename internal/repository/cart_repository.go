package repository

import (
	"errors"
	"time"

	"github.com/shopcart-api/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetByUserAndItem(userID, itemID uint) (*models.CartItem, error)
	GetLine(lineID, userID uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(lineID, userID uint, quantity int) (int64, error)
	Delete(lineID, userID uint) (int64, error)
	ClearByUser(userID uint) (int64, error)
	DeleteCreatedBefore(cutoff time.Time) (int64, error)
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// ListByUser 获取用户购物车行，按加入时间倒序
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Item").Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByUserAndItem 根据用户与商品获取购物车行
func (r *GormCartRepository) GetByUserAndItem(userID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("user_id = ? AND item_id = ?", userID, itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetLine 根据行 ID 获取购物车行；查询同时约束归属用户，
// 非本人的行与不存在的行不作区分，统一返回未找到。
func (r *GormCartRepository) GetLine(lineID, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("id = ? AND user_id = ?", lineID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 创建购物车行
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateQuantity 更新购物车行数量，返回受影响行数
func (r *GormCartRepository) UpdateQuantity(lineID, userID uint, quantity int) (int64, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete 删除购物车行，返回受影响行数
func (r *GormCartRepository) Delete(lineID, userID uint) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", lineID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ClearByUser 清空用户购物车，返回受影响行数
func (r *GormCartRepository) ClearByUser(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteCreatedBefore 删除早于 cutoff 创建的购物车行（后台清理用）
func (r *GormCartRepository) DeleteCreatedBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
