package service

import "errors"

// 业务错误定义；handler 层通过 errors.Is 映射为接口错误响应。
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrLineNotFound      = errors.New("cart line not found")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrWeakPassword       = errors.New("password too short")
)
