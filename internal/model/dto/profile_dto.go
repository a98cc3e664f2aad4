package dto

import "AttendSheet/internal/model"

// ========== Profile 相关 DTO ==========

// ProfileResponse 个人资料
type ProfileResponse struct {
	FullName    string            `json:"full_name"`
	Position    string            `json:"position"`
	Division    string            `json:"division"`
	Signature   string            `json:"signature"` // base64 PNG，空串表示未设置
	Signatories model.Signatories `json:"signatories"`
}

// UpdateProfileRequest 更新基础资料
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Position *string `json:"position"`
	Division *string `json:"division"`
}

// UpdateSignatureRequest 签名上传，base64 编码的 PNG
type UpdateSignatureRequest struct {
	Signature string `json:"signature" binding:"required"`
}

// ReplaceSignatoriesRequest 签核人整体替换，最多两个
type ReplaceSignatoriesRequest struct {
	Signatories []model.Signatory `json:"signatories"`
}
