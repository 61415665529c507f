package public

import (
	"strconv"

	"github.com/shopcart-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 购物车行数量更新请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车快照
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	snapshot, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, snapshot)
}

// AddCartItem 加购；同商品重复加购时合并数量
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.AddToCart(uid, req.ItemID, req.Quantity); err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"added": true})
}

// UpdateCartItem 将购物车行数量设置为给定值
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	lineID, ok := parseLineID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.UpdateQuantity(uid, lineID, req.Quantity); err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem 删除单个购物车行
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	lineID, ok := parseLineID(c)
	if !ok {
		return
	}

	if err := h.CartService.Remove(uid, lineID); err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车；空购物车清空同样视为成功
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

func parseLineID(c *gin.Context) (uint, bool) {
	rawID := c.Param("line_id")
	lineID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || lineID == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_line_invalid", nil)
		return 0, false
	}
	return uint(lineID), true
}
