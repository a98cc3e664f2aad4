package dto

import (
	"time"

	"AttendSheet/internal/sheet"
)

// ========== WorkLog 相关 DTO ==========

// WorkLogSummary 列表项
type WorkLogSummary struct {
	ID        string    `json:"id"`
	Period    string    `json:"period"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkLogDetail 详情，含整张考勤表
type WorkLogDetail struct {
	ID        string               `json:"id"`
	Period    string               `json:"period"`
	Data      sheet.AttendanceData `json:"data"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// CreateWorkLogRequest 创建考勤表请求，data 省略时生成空白表
type CreateWorkLogRequest struct {
	Period string               `json:"period" binding:"required"` // YYYY-MM
	Data   sheet.AttendanceData `json:"data"`
}

// ExtractedEmployee 提取服务返回的员工信息
type ExtractedEmployee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExtractResponse PDF 提取结果：员工信息 + 分组后的 40 行考勤表
type ExtractResponse struct {
	Employee ExtractedEmployee    `json:"employee"`
	Data     sheet.AttendanceData `json:"data"`
	Logs     []sheet.RawLogEntry  `json:"logs"`
}
