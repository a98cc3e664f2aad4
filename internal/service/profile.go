package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"AttendSheet/internal/model"
	"AttendSheet/internal/model/dto"
	"AttendSheet/internal/repository"
	"AttendSheet/pkg/errors"
	"AttendSheet/pkg/logger"
)

var (
	profileService *ProfileService
	profileOnce    sync.Once
)

func Profile() *ProfileService {
	profileOnce.Do(func() {
		profileService = &ProfileService{
			profiles: repository.NewProfileRepository(),
		}
	})
	return profileService
}

type ProfileService struct {
	profiles *repository.ProfileRepository
}

// 签名图片上限 1 MB（base64 解码后）
const maxSignatureBytes = 1 << 20

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func (s *ProfileService) Get(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return toProfileResponse(profile), nil
}

func (s *ProfileService) Update(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Position != nil {
		profile.Position = *req.Position
	}
	if req.Division != nil {
		profile.Division = *req.Division
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return toProfileResponse(profile), nil
}

// UpdateSignature 签名上传：base64 PNG，解码校验文件头和大小后存储
func (s *ProfileService) UpdateSignature(ctx context.Context, userID int64, signature string) (*dto.ProfileResponse, error) {
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return nil, errors.SignatureInvalid
	}
	if len(decoded) > maxSignatureBytes {
		return nil, errors.FileTooLarge
	}
	if len(decoded) < len(pngMagic) || string(decoded[:len(pngMagic)]) != string(pngMagic) {
		return nil, errors.SignatureInvalid
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if err := s.profiles.UpdateSignature(ctx, userID, signature); err != nil {
		return nil, fmt.Errorf("failed to update signature: %w", err)
	}

	profile.Signature = signature
	return toProfileResponse(profile), nil
}

// ReplaceSignatories 签核人整体替换。
// 先校验，再快照旧值，持久化失败时回滚内存状态并上报。
func (s *ProfileService) ReplaceSignatories(ctx context.Context, userID int64, signatories []model.Signatory) (*dto.ProfileResponse, error) {
	if err := validateSignatories(signatories); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	previous := profile.Signatories
	next := model.Signatories(signatories)
	if next == nil {
		next = model.Signatories{}
	}
	profile.Signatories = next

	if err := s.profiles.UpdateSignatories(ctx, userID, next); err != nil {
		profile.Signatories = previous

		logger.Logger.Error("Failed to persist signatories, rolled back",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to update signatories: %w", err)
	}

	return toProfileResponse(profile), nil
}

func validateSignatories(signatories []model.Signatory) error {
	if len(signatories) > model.MaxSignatories {
		return errors.SignatoryLimitExceeded
	}

	seen := make(map[int]bool, len(signatories))
	for _, sig := range signatories {
		if sig.ID != 1 && sig.ID != 2 {
			return errors.SignatoryIDInvalid
		}
		if seen[sig.ID] {
			return errors.SignatoryIDInvalid
		}
		seen[sig.ID] = true
	}

	return nil
}

func toProfileResponse(profile *model.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		FullName:    profile.FullName,
		Position:    profile.Position,
		Division:    profile.Division,
		Signature:   profile.Signature,
		Signatories: profile.Signatories,
	}
}
