package schedule

// 导出清理器：定期把保留期外的导出文件从磁盘删除并标记为 expired

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"AttendSheet/config"
	"AttendSheet/internal/cache"
	"AttendSheet/internal/repository"
	"AttendSheet/pkg/logger"
)

const (
	sweepInterval  = time.Hour
	sweepBatchSize = 100
	sweepLockKey   = "sweep:exports"
	sweepLockTTL   = 10 * time.Minute
)

var (
	sweeperOnce sync.Once
	sweeperInst *ExportSweeper
)

type ExportSweeper struct {
	logger  *zap.Logger
	exports *repository.ExportRepository
}

func GetSweeper() *ExportSweeper {
	sweeperOnce.Do(func() {
		sweeperInst = &ExportSweeper{
			logger:  logger.Logger,
			exports: repository.NewExportRepository(),
		}
	})
	return sweeperInst
}

// Run 周期执行清理直到 ctx 取消。启动时先跑一轮。
func (s *ExportSweeper) Run(ctx context.Context) {
	s.logger.Info("Export sweeper started",
		zap.Duration("interval", sweepInterval),
		zap.Int("retention_days", config.Cfg.ExportRetentionDays),
	)

	if err := s.SweepOnce(ctx); err != nil {
		s.logger.Error("Export sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Export sweeper stopped")
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				s.logger.Error("Export sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepOnce 扫一批过保留期的导出。多实例部署时用 Redis 锁确保单飞。
func (s *ExportSweeper) SweepOnce(ctx context.Context) error {
	acquired, err := cache.TryLock(ctx, sweepLockKey, sweepLockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	if !acquired {
		s.logger.Info("Another sweeper instance is running, skipping")
		return nil
	}
	defer func() {
		if err := cache.Unlock(ctx, sweepLockKey); err != nil {
			s.logger.Warn("Failed to release sweep lock", zap.Error(err))
		}
	}()

	cutoff := time.Now().AddDate(0, 0, -config.Cfg.ExportRetentionDays)

	docs, err := s.exports.ListExpirable(ctx, cutoff, sweepBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list expirable exports: %w", err)
	}

	if len(docs) == 0 {
		return nil
	}

	swept := 0
	for _, doc := range docs {
		if doc.FilePath != "" {
			if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
				s.logger.Warn("Failed to remove export file",
					zap.Int64("export_id", doc.PublicID),
					zap.String("file", doc.FilePath),
					zap.Error(err),
				)
				continue
			}
		}

		if err := s.exports.MarkExpired(ctx, doc.ID); err != nil {
			s.logger.Error("Failed to mark export expired",
				zap.Int64("export_id", doc.PublicID),
				zap.Error(err),
			)
			continue
		}
		swept++
	}

	s.logger.Info("Export sweep finished",
		zap.Int("candidates", len(docs)),
		zap.Int("swept", swept),
	)

	return nil
}
