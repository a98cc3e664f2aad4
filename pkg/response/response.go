package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"AttendSheet/pkg/errors"
)

// ErrorResponse 统一的错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse 统一的成功响应格式
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

func errorToHTTPStatus(err error) int {
	def, ok := err.(errors.Definition)
	if !ok {
		return http.StatusInternalServerError
	}

	// 根据错误码映射 HTTP 状态码
	switch def.Code {
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "REFRESH_TOKEN_INVALID":
		return http.StatusUnauthorized // 401
	case "INVALID_USER_ID", "INVALID_REQUEST", "EMAIL_ALREADY_REGISTERED",
		"PERIOD_INVALID", "FILE_TOO_LARGE", "FILE_TYPE_INVALID",
		"SIGNATORY_LIMIT_EXCEEDED", "SIGNATORY_ID_INVALID", "SIGNATURE_INVALID":
		return http.StatusBadRequest // 400
	case "SHEET_NOT_EDITABLE", "SHEET_CAPACITY_REACHED", "SHEET_NO_EMPTY_ROWS",
		"SHEET_SAVE_IN_PROGRESS", "SHEET_DRAFT_EXPIRED", "SHEET_UNDO_EXPIRED",
		"EXPORT_NOT_READY":
		return http.StatusConflict // 409
	case "WORKLOG_NOT_FOUND", "EXPORT_NOT_FOUND":
		return http.StatusNotFound // 404
	case "EXPORT_EXPIRED":
		return http.StatusGone // 410
	case "EXTRACTION_FAILED":
		return http.StatusUnprocessableEntity // 422
	case "EXTRACTION_UNAVAILABLE":
		return http.StatusBadGateway // 502
	case "RATE_LIMITED":
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}

// Error 返回错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	ErrorWithDetails(ctx, c, err, nil)
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

func SuccessWithMeta(ctx context.Context, c *app.RequestContext, data interface{}, meta map[string]interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func Created(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Data: data,
	})
}

// Accepted 用于异步受理的操作（导出排队）
func Accepted(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusAccepted, SuccessResponse{
		Data: data,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

// NoContent 返回 204 No Content（用于 DELETE 等操作）
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
