package dto

import "AttendSheet/internal/sheet"

// ========== 编辑会话相关 DTO ==========

// SheetStateResponse 编辑会话当前状态
type SheetStateResponse struct {
	Mode    string               `json:"mode"`
	Data    sheet.AttendanceData `json:"data"`
	CanUndo bool                 `json:"can_undo"`
}

// UpdateCellRequest 更新单个单元格
type UpdateCellRequest struct {
	Group int    `json:"group"`
	Row   int    `json:"row"`
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// AddRowRequest 向分组追加一行
type AddRowRequest struct {
	Group int `json:"group"`
}

// SaveSheetResponse 保存结果
type SaveSheetResponse struct {
	ID        string `json:"id"`
	Period    string `json:"period"`
	SavedRows int    `json:"saved_rows"`
}
