package handler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cloudwego/hertz/pkg/app"

	"AttendSheet/internal/service"
	"AttendSheet/pkg/response"
)

// RequestExport 受理异步导出
// POST /v1/work-logs/:id/exports
func RequestExport(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	workLogID, ok := parseIDParam(ctx, c, "id")
	if !ok {
		return
	}

	resp, err := service.Export().Request(ctx, userID, workLogID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Accepted(ctx, c, resp)
}

// GetExportStatus 导出任务状态
// GET /v1/exports/:id
func GetExportStatus(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	exportID, ok := parseIDParam(ctx, c, "id")
	if !ok {
		return
	}

	resp, err := service.Export().Status(ctx, userID, exportID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// DownloadExport 下载导出文件
// GET /v1/exports/:id/download
func DownloadExport(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	exportID, ok := parseIDParam(ctx, c, "id")
	if !ok {
		return
	}

	path, err := service.Export().FilePath(ctx, userID, exportID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	c.Response.Header.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	c.File(path)
}
