package public

import "github.com/shopcart-api/internal/provider"

// Handler 前台/用户侧 API 处理器入口
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
