package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"AttendSheet/internal/model"
	"AttendSheet/internal/model/dto"
	"AttendSheet/internal/repository"
	"AttendSheet/pkg/errors"
	"AttendSheet/pkg/logger"
	"AttendSheet/pkg/metrics"
	"AttendSheet/pkg/snowflake"
	"AttendSheet/storage/mq"
)

var (
	exportService *ExportService
	exportOnce    sync.Once
)

func Export() *ExportService {
	exportOnce.Do(func() {
		exportService = &ExportService{
			exports: repository.NewExportRepository(),
			logs:    repository.NewWorkLogRepository(),
		}
	})
	return exportService
}

// ExportService 导出任务受理与状态查询，渲染在 worker 进程完成
type ExportService struct {
	exports *repository.ExportRepository
	logs    *repository.WorkLogRepository
}

// Request 受理导出：先落 pending 记录再发消息
func (s *ExportService) Request(ctx context.Context, userID, workLogID int64) (*dto.ExportResponse, error) {
	log, err := s.logs.GetByPublicID(ctx, userID, workLogID)
	if err == gorm.ErrRecordNotFound {
		return nil, errors.WorkLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query work log: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate export ID: %w", err)
	}

	doc := &model.ExportDocument{
		PublicID:  publicID,
		UserID:    userID,
		WorkLogID: log.PublicID,
		Period:    log.Period,
		Status:    model.ExportStatusPending,
	}

	if err := s.exports.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create export record: %w", err)
	}

	msg := model.ExportRequestedMessage{
		MessageID:   uuid.NewString(),
		ExportID:    publicID,
		UserID:      userID,
		WorkLogID:   log.PublicID,
		Period:      log.Period,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := mq.PublishMessage(ctx, mq.ExportExchange, mq.ExportRoutingKey, msg); err != nil {
		// 消息没发出去，标记失败避免永远 pending
		if markErr := s.exports.MarkFailed(ctx, publicID, "failed to enqueue export request"); markErr != nil {
			logger.Logger.Error("Failed to mark export failed", zap.Error(markErr))
		}
		return nil, fmt.Errorf("failed to publish export request: %w", err)
	}

	metrics.GetMetrics().AddExportQueueDepth(ctx, 1)
	logger.Logger.Info("Export requested",
		zap.Int64("user_id", userID),
		zap.Int64("export_id", publicID),
	)

	return toExportResponse(doc), nil
}

// Status 导出任务状态
func (s *ExportService) Status(ctx context.Context, userID, exportID int64) (*dto.ExportResponse, error) {
	doc, err := s.exports.GetByPublicID(ctx, userID, exportID)
	if err == gorm.ErrRecordNotFound {
		return nil, errors.ExportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query export: %w", err)
	}

	return toExportResponse(doc), nil
}

// FilePath 下载用：仅 done 状态有文件
func (s *ExportService) FilePath(ctx context.Context, userID, exportID int64) (string, error) {
	doc, err := s.exports.GetByPublicID(ctx, userID, exportID)
	if err == gorm.ErrRecordNotFound {
		return "", errors.ExportNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query export: %w", err)
	}

	switch doc.Status {
	case model.ExportStatusDone:
		return doc.FilePath, nil
	case model.ExportStatusExpired:
		return "", errors.ExportExpired
	default:
		return "", errors.ExportNotReady
	}
}

func toExportResponse(doc *model.ExportDocument) *dto.ExportResponse {
	return &dto.ExportResponse{
		ID:        strconv.FormatInt(doc.PublicID, 10),
		WorkLogID: strconv.FormatInt(doc.WorkLogID, 10),
		Period:    doc.Period,
		Status:    string(doc.Status),
		Error:     doc.Error,
		CreatedAt: doc.CreatedAt,
	}
}
