package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"AttendSheet/internal/model"
	"AttendSheet/storage/database"
)

// ProfileRepository profiles 表访问层
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{db: database.DB()}
}

// GetOrCreate 资料按需创建，首次访问返回空资料
func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID int64) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = model.Profile{UserID: userID, Signatories: model.Signatories{}}
		if err := r.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// UpdateSignatories 只更新签核人列，两阶段提交的持久化阶段
func (r *ProfileRepository) UpdateSignatories(ctx context.Context, userID int64, signatories model.Signatories) error {
	result := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("signatories", signatories)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateSignature 只更新签名列
func (r *ProfileRepository) UpdateSignature(ctx context.Context, userID int64, signature string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("signature", signature)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
