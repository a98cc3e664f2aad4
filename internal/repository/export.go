package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"AttendSheet/internal/model"
	"AttendSheet/storage/database"
)

// ExportRepository export_documents 表访问层
type ExportRepository struct {
	db *gorm.DB
}

func NewExportRepository() *ExportRepository {
	return &ExportRepository{db: database.DB()}
}

func (r *ExportRepository) Create(ctx context.Context, doc *model.ExportDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *ExportRepository) GetByPublicID(ctx context.Context, userID, publicID int64) (*model.ExportDocument, error) {
	var doc model.ExportDocument
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND public_id = ?", userID, publicID).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetAnyByPublicID worker 用，不按用户过滤（消息里已带 user_id 校验）
func (r *ExportRepository) GetAnyByPublicID(ctx context.Context, publicID int64) (*model.ExportDocument, error) {
	var doc model.ExportDocument
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ExportRepository) MarkDone(ctx context.Context, publicID int64, filePath string) error {
	return r.db.WithContext(ctx).
		Model(&model.ExportDocument{}).
		Where("public_id = ?", publicID).
		Updates(map[string]interface{}{
			"status":    model.ExportStatusDone,
			"file_path": filePath,
			"error":     "",
		}).Error
}

func (r *ExportRepository) MarkFailed(ctx context.Context, publicID int64, reason string) error {
	return r.db.WithContext(ctx).
		Model(&model.ExportDocument{}).
		Where("public_id = ?", publicID).
		Updates(map[string]interface{}{
			"status": model.ExportStatusFailed,
			"error":  reason,
		}).Error
}

// ListExpirable 保留期外仍标记为 done 的导出
func (r *ExportRepository) ListExpirable(ctx context.Context, before time.Time, limit int) ([]model.ExportDocument, error) {
	var docs []model.ExportDocument
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", model.ExportStatusDone, before).
		Limit(limit).
		Find(&docs).Error
	return docs, err
}

func (r *ExportRepository) MarkExpired(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.ExportDocument{}).
		Where("id = ?", id).
		Update("status", model.ExportStatusExpired).Error
}
