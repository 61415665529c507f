package service

import (
	"time"

	"github.com/shopcart-api/internal/models"
	"github.com/shopcart-api/internal/repository"

	"github.com/shopspring/decimal"
)

// CartLineDetail 购物车行详情（用于响应）
type CartLineDetail struct {
	LineID    uint         `json:"line_id"`
	ItemID    uint         `json:"item_id"`
	Name      string       `json:"name"`
	ImageURL  string       `json:"image_url"`
	Price     models.Money `json:"price"`
	Quantity  int          `json:"quantity"`
	LineTotal models.Money `json:"line_total"`
	Stock     int          `json:"stock"`
	CreatedAt time.Time    `json:"created_at"`
}

// CartSnapshot 购物车快照
type CartSnapshot struct {
	Items       []CartLineDetail `json:"items"`
	TotalAmount models.Money     `json:"total_amount"`
	TotalItems  int              `json:"total_items"`
}

// CartService 购物车服务；负责购物车行的全部状态迁移
type CartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.ItemRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, itemRepo repository.ItemRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

// GetCart 获取用户购物车快照；按加入时间倒序，合计金额按当前商品单价计算。
// 纯读操作，不产生任何写入。
func (s *CartService) GetCart(userID uint) (*CartSnapshot, error) {
	lines, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	details := make([]CartLineDetail, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		item := line.Item
		if item == nil || item.ID == 0 || !item.IsActive {
			// 商品已删除或已下架的行不进入快照，由后台清理任务回收
			continue
		}
		lineTotal := item.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		details = append(details, CartLineDetail{
			LineID:    line.ID,
			ItemID:    item.ID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			Price:     item.Price,
			Quantity:  line.Quantity,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
			Stock:     item.Stock,
			CreatedAt: line.CreatedAt,
		})
	}

	return &CartSnapshot{
		Items:       details,
		TotalAmount: models.NewMoneyFromDecimal(total),
		TotalItems:  len(details),
	}, nil
}

// AddToCart 加入购物车；该商品已在购物车时累加数量，否则新建行。
// 无论新建还是累加，最终数量都不得超过调用时刻的商品库存。
func (s *CartService) AddToCart(userID, itemID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil || !item.IsActive {
		return ErrItemNotFound
	}
	if item.Stock < quantity {
		return ErrInsufficientStock
	}

	existing, err := s.cartRepo.GetByUserAndItem(userID, itemID)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.cartRepo.Create(&models.CartItem{
			UserID:   userID,
			ItemID:   itemID,
			Quantity: quantity,
		})
	}

	merged := existing.Quantity + quantity
	if item.Stock < merged {
		return ErrInsufficientStock
	}
	affected, err := s.cartRepo.UpdateQuantity(existing.ID, userID, merged)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLineNotFound
	}
	return nil
}

// UpdateQuantity 将购物车行数量改写为指定值；覆盖而非累加。
// 行按 (行ID, 用户ID) 组合查询，非本人的行等同于不存在。
func (s *CartService) UpdateQuantity(userID, lineID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	line, err := s.cartRepo.GetLine(lineID, userID)
	if err != nil {
		return err
	}
	if line == nil {
		return ErrLineNotFound
	}

	item, err := s.itemRepo.GetByID(line.ItemID)
	if err != nil {
		return err
	}
	if item == nil || !item.IsActive {
		return ErrItemNotFound
	}
	if item.Stock < quantity {
		return ErrInsufficientStock
	}

	affected, err := s.cartRepo.UpdateQuantity(lineID, userID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLineNotFound
	}
	return nil
}

// Remove 删除购物车行；没有命中任何行时返回未找到，重复删除不静默成功。
func (s *CartService) Remove(userID, lineID uint) error {
	affected, err := s.cartRepo.Delete(lineID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLineNotFound
	}
	return nil
}

// Clear 清空用户购物车；购物车本来为空也算成功。
func (s *CartService) Clear(userID uint) error {
	_, err := s.cartRepo.ClearByUser(userID)
	return err
}

// PruneStale 删除早于保留时长的购物车行，返回删除数量
func (s *CartService) PruneStale(maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-maxAge)
	return s.cartRepo.DeleteCreatedBefore(cutoff)
}
