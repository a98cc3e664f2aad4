package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"AttendSheet/internal/model/dto"
	"AttendSheet/internal/service"
	"AttendSheet/pkg/response"
)

// EnableEditing 进入编辑态（幂等）
// POST /v1/work-logs/:id/edit
func EnableEditing(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	workLogID, ok := parseIDParam(ctx, c, "id")
	if !ok {
		return
	}

	resp, err := service.Sheet().Enable(ctx, userID, workLogID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// UpdateCell 修改草稿中的单元格
// PATCH /v1/work-logs/:id/cells
func UpdateCell(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	workLogID, ok := parseIDParam(ctx, c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCellRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Sheet().UpdateCell(ctx, userID, workLogID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// AddRow 向分组追加一行
// POST /v1/work-logs/:id/rows
func AddRow(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	workLogID, ok := parseIDParam(ctx, c, "id")
	if !ok {
		return
	}

	var req dto.AddRowRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Sheet().AddRow(ctx, userID, workLogID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// UndoChange 撤销最近一次行插入
// POST /v1/work-logs/:id/undo
func UndoChange(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	workLogID, ok := parseIDParam(ctx, c, "id")
	if !ok {
		return
	}

	resp, err := service.Sheet().Undo(ctx, userID, workLogID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// SaveSheet 持久化草稿
// POST /v1/work-logs/:id/save
func SaveSheet(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	workLogID, ok := parseIDParam(ctx, c, "id")
	if !ok {
		return
	}

	resp, err := service.Sheet().Save(ctx, userID, workLogID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}
