// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"ai-content-api/internal/interfaces/http/dto"
	"ai-content-api/pkg/errors"
	"ai-content-api/pkg/logger"
)

// respondError 将服务层错误翻译为错误响应
func respondError(c *gin.Context, err error, fallback *errors.AppError) {
	appErr := fallback.WithError(err)
	if errors.IsAppError(err) {
		appErr = errors.AsAppError(err)
		// 被包装的错误（如批量中的单个主题）保留完整上下文
		if _, direct := err.(*errors.AppError); !direct && appErr.Detail == "" {
			appErr = appErr.WithDetail(err.Error())
		}
	}
	if appErr.HTTPStatus >= 500 {
		logger.Error(c.Request.Context(), "request failed", err, "error_code", string(appErr.Code))
	}
	_ = c.Error(err)
	dto.AppError(c, appErr)
}

// respondBindError 返回请求体解析失败的 400 响应
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	dto.BadRequest(c, err.Error())
}
