package model

import (
	"gorm.io/datatypes"

	"AttendSheet/internal/sheet"
)

// WorkLog 一个用户某个考勤期的考勤表，保存语义为整表覆盖（last write wins）
type WorkLog struct {
	BaseModel
	PublicID int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	UserID   int64  `gorm:"not null;index:idx_work_logs_user;uniqueIndex:idx_work_logs_user_period,priority:1" json:"user_id"`
	Period   string `gorm:"type:varchar(7);not null;uniqueIndex:idx_work_logs_user_period,priority:2" json:"period"` // YYYY-MM

	// 提取服务返回的原始日志，原样留存便于重新生成
	RawLogs datatypes.JSON `gorm:"type:jsonb" json:"raw_logs,omitempty"`

	// 分组后的考勤表，40 行不变式在应用层维护
	Data sheet.AttendanceData `gorm:"type:jsonb;serializer:json" json:"data"`
}

// TableName 指定表名
func (WorkLog) TableName() string {
	return "work_logs"
}
