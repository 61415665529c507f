package public

import (
	"errors"

	"github.com/shopcart-api/internal/http/response"
	"github.com/shopcart-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartCommonErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "error.quantity_invalid"},
	{target: service.ErrLineNotFound, code: response.CodeNotFound, msg: "error.cart_line_not_found"},
}

var cartStockErrorRules = []mappedHandlerError{
	{target: service.ErrItemNotFound, code: response.CodeNotFound, msg: "error.item_not_found"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "error.stock_insufficient"},
}

var userAuthErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "error.email_invalid"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "error.password_weak"},
	{target: service.ErrEmailExists, code: response.CodeConflict, msg: "error.email_exists"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "error.invalid_credentials"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "error.user_disabled"},
}

func respondCartMutationError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartCommonErrorRules, cartStockErrorRules), response.CodeInternal, "error.cart_update_failed")
}

func respondUserAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.auth_failed")
}
