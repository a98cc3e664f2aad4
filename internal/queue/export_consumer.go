package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"AttendSheet/config"
	"AttendSheet/internal/cache"
	"AttendSheet/internal/export"
	"AttendSheet/internal/model"
	"AttendSheet/internal/repository"
	"AttendSheet/pkg/logger"
	"AttendSheet/pkg/metrics"
	"AttendSheet/storage/mq"
)

// StartExportConsumer 启动导出渲染消费者，阻塞直到 ctx 取消或通道关闭。
// 业务性失败（记录缺失、渲染失败）写回 failed 状态且不重投；
// 基础设施失败返回错误触发 Nack 重投。
func StartExportConsumer(ctx context.Context) error {
	exports := repository.NewExportRepository()
	logs := repository.NewWorkLogRepository()
	profiles := repository.NewProfileRepository()

	handler := func(msgCtx context.Context, body []byte) error {
		var msg model.ExportRequestedMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			// 消息体坏了，重投也无济于事
			logger.Logger.Error("Discarding malformed export message", zap.Error(err))
			return nil
		}

		first, err := cache.MarkProcessed(msgCtx, msg.MessageID)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败时继续处理，宁可重复渲染也不丢任务
		} else if !first {
			logger.Logger.Info("Message already processed, skipping",
				zap.String("message_id", msg.MessageID),
			)
			return nil
		}

		metrics.GetMetrics().AddExportQueueDepth(msgCtx, -1)

		if err := renderExport(msgCtx, exports, logs, profiles, msg); err != nil {
			// 让重投后的副本能重新占位
			_ = cache.ClearProcessed(msgCtx, msg.MessageID)
			return err
		}

		return nil
	}

	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         mq.ExportQueue,
		ConsumerTag:   "export-worker",
		PrefetchCount: 4,
		Handler:       handler,
	})
}

func renderExport(
	ctx context.Context,
	exports *repository.ExportRepository,
	logs *repository.WorkLogRepository,
	profiles *repository.ProfileRepository,
	msg model.ExportRequestedMessage,
) error {
	start := time.Now()

	doc, err := exports.GetAnyByPublicID(ctx, msg.ExportID)
	if err == gorm.ErrRecordNotFound {
		logger.Logger.Error("Export record missing, discarding message",
			zap.Int64("export_id", msg.ExportID),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load export record: %w", err)
	}

	if doc.Status != model.ExportStatusPending {
		// 重复投递的旧消息
		return nil
	}

	workLog, err := logs.GetByPublicID(ctx, msg.UserID, msg.WorkLogID)
	if err == gorm.ErrRecordNotFound {
		metrics.GetMetrics().RecordExport(ctx, "failed", time.Since(start).Seconds())
		return exports.MarkFailed(ctx, msg.ExportID, "work log no longer exists")
	}
	if err != nil {
		return fmt.Errorf("failed to load work log: %w", err)
	}

	profile, err := profiles.GetOrCreate(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	buf, err := export.RenderSheet(workLog.Period, workLog.Data, profile.Signatories)
	if err != nil {
		metrics.GetMetrics().RecordExport(ctx, "failed", time.Since(start).Seconds())
		logger.Logger.Error("Failed to render export document",
			zap.Int64("export_id", msg.ExportID),
			zap.Error(err),
		)
		return exports.MarkFailed(ctx, msg.ExportID, err.Error())
	}

	if err := os.MkdirAll(config.Cfg.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	filePath := filepath.Join(config.Cfg.ExportDir, fmt.Sprintf("attendance_%d.xlsx", msg.ExportID))
	if err := os.WriteFile(filePath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	if err := exports.MarkDone(ctx, msg.ExportID, filePath); err != nil {
		return fmt.Errorf("failed to mark export done: %w", err)
	}

	metrics.GetMetrics().RecordExport(ctx, "success", time.Since(start).Seconds())
	logger.Logger.Info("Export document rendered",
		zap.Int64("export_id", msg.ExportID),
		zap.String("file", filePath),
		zap.Duration("took", time.Since(start)),
	)

	return nil
}
