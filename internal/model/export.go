package model

// ExportStatus 导出任务状态枚举
type ExportStatus string

const (
	ExportStatusPending ExportStatus = "pending"
	ExportStatusDone    ExportStatus = "done"
	ExportStatusFailed  ExportStatus = "failed"
	ExportStatusExpired ExportStatus = "expired" // 文件已被保留期清理
)

// ExportDocument 打印文档导出任务
type ExportDocument struct {
	BaseModel
	PublicID  int64        `gorm:"uniqueIndex;not null" json:"public_id"`
	UserID    int64        `gorm:"not null;index:idx_export_documents_user" json:"user_id"`
	WorkLogID int64        `gorm:"not null" json:"work_log_id"`
	Period    string       `gorm:"type:varchar(7);not null" json:"period"`
	Status    ExportStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_export_documents_status" json:"status"`
	FilePath  string       `gorm:"type:varchar(512);not null;default:''" json:"-"`
	Error     string       `gorm:"type:text;not null;default:''" json:"error,omitempty"`
}

// TableName 指定表名
func (ExportDocument) TableName() string {
	return "export_documents"
}
