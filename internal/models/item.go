package models

import (
	"time"

	"gorm.io/gorm"
)

// Item 商品表
type Item struct {
	ID          uint           `gorm:"primarykey" json:"id"`                              // 主键
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                 // 分类ID
	Name        string         `gorm:"not null;index" json:"name"`                        // 商品名称
	Description string         `gorm:"type:text" json:"description"`                      // 商品描述
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`                // 商品图片
	Stock       int            `gorm:"not null;default:0" json:"stock"`                   // 当前库存
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`               // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 关联分类
}

// TableName 指定表名
func (Item) TableName() string {
	return "items"
}
