package handler

import (
	"errors"
	"net/http"

	"github.com/blues/fms/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// BusinessError 按业务错误映射 HTTP 状态码后返回错误响应
func BusinessError(c *gin.Context, err error) {
	ErrorResponse(c, statusFromError(err), err.Error())
}

// statusFromError 业务错误到 HTTP 状态码的映射
func statusFromError(err error) int {
	switch {
	case errors.Is(err, logic.ErrMemberProjectNotFound),
		errors.Is(err, logic.ErrUserNotFound),
		errors.Is(err, logic.ErrProjectNotFound),
		errors.Is(err, logic.ErrDisputeNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, logic.ErrInsufficientFunds),
		errors.Is(err, logic.ErrEscrowExceedsSalary),
		errors.Is(err, logic.ErrEscrowUnderflow),
		errors.Is(err, logic.ErrNoActivePhase),
		errors.Is(err, logic.ErrMilestoneDisputed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
