package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"AttendSheet/internal/extractor"
	"AttendSheet/internal/model"
	"AttendSheet/internal/model/dto"
	"AttendSheet/internal/repository"
	"AttendSheet/internal/sheet"
	"AttendSheet/pkg/errors"
	"AttendSheet/pkg/logger"
	"AttendSheet/pkg/metrics"
	"AttendSheet/pkg/snowflake"
	"AttendSheet/utils"
)

var (
	workLogService *WorkLogService
	workLogOnce    sync.Once
)

func WorkLog() *WorkLogService {
	workLogOnce.Do(func() {
		workLogService = &WorkLogService{
			logs:      repository.NewWorkLogRepository(),
			extractor: extractor.New(),
		}
	})
	return workLogService
}

type WorkLogService struct {
	logs      *repository.WorkLogRepository
	extractor *extractor.Client
}

func (s *WorkLogService) List(ctx context.Context, userID int64) ([]dto.WorkLogSummary, error) {
	logs, err := s.logs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs: %w", err)
	}

	summaries := make([]dto.WorkLogSummary, 0, len(logs))
	for _, log := range logs {
		summaries = append(summaries, dto.WorkLogSummary{
			ID:        strconv.FormatInt(log.PublicID, 10),
			Period:    log.Period,
			UpdatedAt: log.UpdatedAt,
		})
	}
	return summaries, nil
}

func (s *WorkLogService) Get(ctx context.Context, userID, workLogID int64) (*dto.WorkLogDetail, error) {
	log, err := s.logs.GetByPublicID(ctx, userID, workLogID)
	if err == gorm.ErrRecordNotFound {
		return nil, errors.WorkLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query work log: %w", err)
	}

	data := log.Data
	if data == nil {
		// 没有历史记录时呈现空白表
		data = sheet.DefaultData()
	}

	return &dto.WorkLogDetail{
		ID:        strconv.FormatInt(log.PublicID, 10),
		Period:    log.Period,
		Data:      data,
		UpdatedAt: log.UpdatedAt,
	}, nil
}

// Create 建表，data 省略时生成 40 个空白单行分组
func (s *WorkLogService) Create(ctx context.Context, userID int64, req dto.CreateWorkLogRequest) (*dto.WorkLogDetail, error) {
	if !utils.ValidatePeriod(req.Period) {
		return nil, errors.PeriodInvalid
	}

	data := req.Data
	if data == nil {
		data = sheet.DefaultData()
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate work log ID: %w", err)
	}

	log := &model.WorkLog{
		PublicID: publicID,
		UserID:   userID,
		Period:   req.Period,
		Data:     data,
	}

	if err := s.logs.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create work log: %w", err)
	}

	logger.Logger.Info("Work log created",
		zap.Int64("user_id", userID),
		zap.String("period", req.Period),
	)

	return &dto.WorkLogDetail{
		ID:        strconv.FormatInt(log.PublicID, 10),
		Period:    log.Period,
		Data:      log.Data,
		UpdatedAt: log.UpdatedAt,
	}, nil
}

func (s *WorkLogService) Delete(ctx context.Context, userID, workLogID int64) error {
	err := s.logs.Delete(ctx, userID, workLogID)
	if err == gorm.ErrRecordNotFound {
		return errors.WorkLogNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete work log: %w", err)
	}
	return nil
}

// Extract 转发 PDF 给提取服务，转换为分组考勤表返回给用户审阅
func (s *WorkLogService) Extract(ctx context.Context, filename string, content []byte) (*dto.ExtractResponse, error) {
	start := time.Now()
	result, err := s.extractor.Extract(ctx, filename, content)
	if err != nil {
		metrics.GetMetrics().RecordExtraction(ctx, "failed", time.Since(start).Seconds(), int64(len(content)))
		return nil, err
	}
	metrics.GetMetrics().RecordExtraction(ctx, "success", time.Since(start).Seconds(), int64(len(content)))

	return &dto.ExtractResponse{
		Employee: dto.ExtractedEmployee{
			ID:   result.Employee.ID,
			Name: result.Employee.Name,
		},
		Data: sheet.ProcessLogs(result.Logs),
		Logs: result.Logs,
	}, nil
}

// CreateFromExtraction 提取成功后直接落库，原始日志一并留存
func (s *WorkLogService) CreateFromExtraction(ctx context.Context, userID int64, period string, extracted *dto.ExtractResponse) (*dto.WorkLogDetail, error) {
	if !utils.ValidatePeriod(period) {
		return nil, errors.PeriodInvalid
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate work log ID: %w", err)
	}

	rawLogs, err := json.Marshal(extracted.Logs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw logs: %w", err)
	}

	log := &model.WorkLog{
		PublicID: publicID,
		UserID:   userID,
		Period:   period,
		RawLogs:  rawLogs,
		Data:     extracted.Data,
	}

	if err := s.logs.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create work log: %w", err)
	}

	return &dto.WorkLogDetail{
		ID:        strconv.FormatInt(log.PublicID, 10),
		Period:    log.Period,
		Data:      log.Data,
		UpdatedAt: log.UpdatedAt,
	}, nil
}
