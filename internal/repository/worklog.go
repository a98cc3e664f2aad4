package repository

import (
	"context"

	"gorm.io/gorm"

	"AttendSheet/internal/model"
	"AttendSheet/internal/sheet"
	"AttendSheet/storage/database"
)

// WorkLogRepository work_logs 表访问层，所有操作都带 user_id 过滤
type WorkLogRepository struct {
	db *gorm.DB
}

func NewWorkLogRepository() *WorkLogRepository {
	return &WorkLogRepository{db: database.DB()}
}

func (r *WorkLogRepository) Create(ctx context.Context, log *model.WorkLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *WorkLogRepository) ListByUser(ctx context.Context, userID int64) ([]model.WorkLog, error) {
	var logs []model.WorkLog
	err := r.db.WithContext(ctx).
		Select("public_id", "period", "updated_at").
		Where("user_id = ?", userID).
		Order("period DESC").
		Find(&logs).Error
	return logs, err
}

func (r *WorkLogRepository) GetByPublicID(ctx context.Context, userID, publicID int64) (*model.WorkLog, error) {
	var log model.WorkLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND public_id = ?", userID, publicID).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// SaveData 整表覆盖写入，后写覆盖先写
func (r *WorkLogRepository) SaveData(ctx context.Context, userID, publicID int64, data sheet.AttendanceData) error {
	result := r.db.WithContext(ctx).
		Model(&model.WorkLog{}).
		Where("user_id = ? AND public_id = ?", userID, publicID).
		Update("data", data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *WorkLogRepository) Delete(ctx context.Context, userID, publicID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND public_id = ?", userID, publicID).
		Delete(&model.WorkLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
