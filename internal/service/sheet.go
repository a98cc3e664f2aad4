package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"AttendSheet/internal/cache"
	"AttendSheet/internal/model/dto"
	"AttendSheet/internal/repository"
	"AttendSheet/internal/sheet"
	"AttendSheet/pkg/errors"
	"AttendSheet/pkg/logger"
	"AttendSheet/pkg/metrics"
)

var (
	sheetService *SheetService
	sheetOnce    sync.Once
)

func Sheet() *SheetService {
	sheetOnce.Do(func() {
		sheetService = &SheetService{
			logs: repository.NewWorkLogRepository(),
		}
	})
	return sheetService
}

// SheetService 编辑会话：草稿在 Redis，保存时整表覆盖落库
type SheetService struct {
	logs *repository.WorkLogRepository
}

const saveLockTTL = 30 * time.Second

func saveLockKey(userID, workLogID int64) string {
	return fmt.Sprintf("save:%d:%d", userID, workLogID)
}

// Enable 进入编辑态。已有草稿则续用（幂等），否则从持久化数据建新会话。
func (s *SheetService) Enable(ctx context.Context, userID, workLogID int64) (*dto.SheetStateResponse, error) {
	grid, err := cache.GetDraft(ctx, userID, workLogID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	if grid == nil {
		log, err := s.logs.GetByPublicID(ctx, userID, workLogID)
		if err == gorm.ErrRecordNotFound {
			return nil, errors.WorkLogNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query work log: %w", err)
		}

		grid = sheet.NewGrid(log.Data)
	}

	grid.EnableEditing()

	if err := cache.SetDraft(ctx, userID, workLogID, grid); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	return s.state(ctx, userID, workLogID, grid), nil
}

// UpdateCell 更新草稿中的一个单元格
func (s *SheetService) UpdateCell(ctx context.Context, userID, workLogID int64, req dto.UpdateCellRequest) (*dto.SheetStateResponse, error) {
	grid, err := s.loadDraft(ctx, userID, workLogID)
	if err != nil {
		return nil, err
	}

	if err := grid.UpdateCell(req.Group, req.Row, req.Field, req.Value); err != nil {
		return nil, mapSheetError(err)
	}

	if err := cache.SetDraft(ctx, userID, workLogID, grid); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	return s.state(ctx, userID, workLogID, grid), nil
}

// AddRow 向分组追加一行，变更前快照进入限时撤销窗口
func (s *SheetService) AddRow(ctx context.Context, userID, workLogID int64, req dto.AddRowRequest) (*dto.SheetStateResponse, error) {
	grid, err := s.loadDraft(ctx, userID, workLogID)
	if err != nil {
		return nil, err
	}

	snapshot, err := grid.AddRowToGroup(req.Group)
	if err != nil {
		return nil, mapSheetError(err)
	}

	if err := cache.SetUndoSnapshot(ctx, userID, workLogID, snapshot); err != nil {
		logger.Logger.Warn("Failed to store undo snapshot",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	if err := cache.SetDraft(ctx, userID, workLogID, grid); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	return s.state(ctx, userID, workLogID, grid), nil
}

// Undo 恢复到最近一次行插入前的快照，窗口过期则拒绝
func (s *SheetService) Undo(ctx context.Context, userID, workLogID int64) (*dto.SheetStateResponse, error) {
	grid, err := s.loadDraft(ctx, userID, workLogID)
	if err != nil {
		return nil, err
	}

	snapshot, err := cache.TakeUndoSnapshot(ctx, userID, workLogID)
	if err != nil {
		return nil, fmt.Errorf("failed to load undo snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, errors.SheetUndoExpired
	}

	if err := grid.Restore(snapshot); err != nil {
		return nil, mapSheetError(err)
	}

	if err := cache.SetDraft(ctx, userID, workLogID, grid); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	return s.state(ctx, userID, workLogID, grid), nil
}

// Save 持久化草稿。SETNX 锁做重入保护，写入为整表覆盖（后写赢）。
// 失败回到可编辑态并保留草稿，由用户重试。
func (s *SheetService) Save(ctx context.Context, userID, workLogID int64) (*dto.SaveSheetResponse, error) {
	grid, err := s.loadDraft(ctx, userID, workLogID)
	if err != nil {
		return nil, err
	}

	lockKey := saveLockKey(userID, workLogID)
	acquired, err := cache.TryLock(ctx, lockKey, saveLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire save lock: %w", err)
	}
	if !acquired {
		metrics.GetMetrics().RecordSheetSave(ctx, "conflict")
		return nil, errors.SheetSaveInProgress
	}
	defer func() {
		if err := cache.Unlock(ctx, lockKey); err != nil {
			logger.Logger.Warn("Failed to release save lock", zap.Error(err))
		}
	}()

	if err := grid.BeginSave(); err != nil {
		return nil, mapSheetError(err)
	}

	if err := s.logs.SaveData(ctx, userID, workLogID, grid.Data); err != nil {
		grid.FinishSave(false)
		// 退回可编辑态，草稿保留
		if storeErr := cache.SetDraft(ctx, userID, workLogID, grid); storeErr != nil {
			logger.Logger.Error("Failed to store draft after failed save", zap.Error(storeErr))
		}

		metrics.GetMetrics().RecordSheetSave(ctx, "failed")
		if err == gorm.ErrRecordNotFound {
			return nil, errors.WorkLogNotFound
		}
		return nil, fmt.Errorf("failed to save work log: %w", err)
	}

	grid.FinishSave(true)

	if err := cache.DeleteDraft(ctx, userID, workLogID); err != nil {
		logger.Logger.Warn("Failed to clear draft after save", zap.Error(err))
	}

	metrics.GetMetrics().RecordSheetSave(ctx, "success")
	logger.Logger.Info("Work log saved",
		zap.Int64("user_id", userID),
		zap.Int64("work_log_id", workLogID),
	)

	log, err := s.logs.GetByPublicID(ctx, userID, workLogID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload work log: %w", err)
	}

	return &dto.SaveSheetResponse{
		ID:        strconv.FormatInt(log.PublicID, 10),
		Period:    log.Period,
		SavedRows: log.Data.TotalRows(),
	}, nil
}

func (s *SheetService) loadDraft(ctx context.Context, userID, workLogID int64) (*sheet.Grid, error) {
	grid, err := cache.GetDraft(ctx, userID, workLogID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if grid == nil {
		return nil, errors.SheetDraftExpired
	}
	return grid, nil
}

func (s *SheetService) state(ctx context.Context, userID, workLogID int64, grid *sheet.Grid) *dto.SheetStateResponse {
	return &dto.SheetStateResponse{
		Mode:    string(grid.Mode),
		Data:    grid.Data,
		CanUndo: cache.HasUndoSnapshot(ctx, userID, workLogID),
	}
}

// mapSheetError 把领域层哨兵错误翻译成业务错误码
func mapSheetError(err error) error {
	switch err {
	case sheet.ErrNotEditable:
		return errors.SheetNotEditable
	case sheet.ErrCapacityReached:
		return errors.SheetCapacity
	case sheet.ErrNoEmptyRows:
		return errors.SheetNoEmptyRows
	case sheet.ErrSaveInProgress:
		return errors.SheetSaveInProgress
	case sheet.ErrIndexOutOfRange:
		return errors.InvalidRequest
	default:
		return err
	}
}
