package handler

import (
	"context"
	"io"

	"github.com/cloudwego/hertz/pkg/app"

	"AttendSheet/config"
	"AttendSheet/internal/model/dto"
	"AttendSheet/internal/service"
	"AttendSheet/pkg/errors"
	"AttendSheet/pkg/response"
)

// ListWorkLogs 考勤表列表
// GET /v1/work-logs
func ListWorkLogs(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	resp, err := service.WorkLog().List(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// CreateWorkLog 新建考勤表
// POST /v1/work-logs
func CreateWorkLog(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.CreateWorkLogRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.WorkLog().Create(ctx, userID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, resp)
}

// GetWorkLog 考勤表详情
// GET /v1/work-logs/:id
func GetWorkLog(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	workLogID, ok := parseIDParam(ctx, c, "id")
	if !ok {
		return
	}

	resp, err := service.WorkLog().Get(ctx, userID, workLogID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// DeleteWorkLog 删除考勤表
// DELETE /v1/work-logs/:id
func DeleteWorkLog(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	workLogID, ok := parseIDParam(ctx, c, "id")
	if !ok {
		return
	}

	if err := service.WorkLog().Delete(ctx, userID, workLogID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// ExtractWorkLog 上传考勤 PDF 并提取成分组表。
// 带 period 表单字段时直接落库，否则仅返回提取结果供审阅。
// POST /v1/work-logs/extract
func ExtractWorkLog(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(ctx, c, errors.InvalidRequest)
		return
	}

	// 读入前先按声明大小拦截，避免缓冲超限文件
	if fileHeader.Size > config.Cfg.UploadMaxBytes {
		response.Error(ctx, c, errors.FileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(ctx, c, errors.InvalidRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, config.Cfg.UploadMaxBytes+1))
	if err != nil {
		response.Error(ctx, c, errors.InvalidRequest)
		return
	}
	if int64(len(content)) > config.Cfg.UploadMaxBytes {
		response.Error(ctx, c, errors.FileTooLarge)
		return
	}

	extracted, err := service.WorkLog().Extract(ctx, fileHeader.Filename, content)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	period := string(c.FormValue("period"))
	if period == "" {
		response.Success(ctx, c, extracted)
		return
	}

	created, err := service.WorkLog().CreateFromExtraction(ctx, userID, period, extracted)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, created)
}
