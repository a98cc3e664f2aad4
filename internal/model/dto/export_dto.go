package dto

import "time"

// ========== 导出相关 DTO ==========

// ExportResponse 导出任务状态
type ExportResponse struct {
	ID        string    `json:"id"`
	WorkLogID string    `json:"work_log_id"`
	Period    string    `json:"period"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
