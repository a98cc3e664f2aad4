package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"AttendSheet/internal/model/dto"
	"AttendSheet/internal/service"
	"AttendSheet/pkg/response"
)

// GetProfile 个人资料
// GET /v1/profile
func GetProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	resp, err := service.Profile().Get(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// UpdateProfile 更新基础资料，字段省略时保持原值
// PATCH /v1/profile
func UpdateProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Profile().Update(ctx, userID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// UpdateSignature 上传本人签名（base64 PNG）
// PUT /v1/profile/signature
func UpdateSignature(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.UpdateSignatureRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Profile().UpdateSignature(ctx, userID, req.Signature)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// ReplaceSignatories 签核人整体替换，最多两个
// PUT /v1/profile/signatories
func ReplaceSignatories(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.ReplaceSignatoriesRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Profile().ReplaceSignatories(ctx, userID, req.Signatories)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}
