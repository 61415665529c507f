package repository

import "github.com/shopspring/decimal"

// ItemListFilter 查询商品列表的过滤条件
type ItemListFilter struct {
	Page         int
	PageSize     int
	CategoryID   string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	OnlyActive   bool
	WithCategory bool
}
