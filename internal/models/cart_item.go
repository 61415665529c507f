package models

import (
	"time"
)

// CartItem 购物车行；每个 (用户, 商品) 组合至多存在一行
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                   // 行ID，创建后不变
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"user_id"` // 用户ID，创建后不变
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"item_id"` // 商品ID，创建后不变
	Quantity  int       `gorm:"not null" json:"quantity"`                               // 数量，始终 >= 1
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                // 创建时间，决定购物车展示顺序

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
