package model

// ExportRequestedMessage 导出请求消息
type ExportRequestedMessage struct {
	MessageID   string `json:"message_id"` // 消息唯一ID，用于幂等性检查
	ExportID    int64  `json:"export_id"`  // export_documents.public_id
	UserID      int64  `json:"user_id"`
	WorkLogID   int64  `json:"work_log_id"` // work_logs.public_id
	Period      string `json:"period"`
	RequestedAt string `json:"requested_at"`
}
