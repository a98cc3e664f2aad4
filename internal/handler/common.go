package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"AttendSheet/internal/middleware"
	"AttendSheet/pkg/errors"
	"AttendSheet/pkg/response"
)

// requireUserID 取当前认证用户，缺失时直接写 401
func requireUserID(ctx context.Context, c *app.RequestContext) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return 0, false
	}
	return userID, true
}

// parseIDParam 解析路径里的雪花 ID，失败时写 400
func parseIDParam(ctx context.Context, c *app.RequestContext, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(ctx, c, errors.InvalidRequest)
		return 0, false
	}
	return id, true
}
