package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"AttendSheet/config"
	"AttendSheet/internal/sheet"
	"AttendSheet/storage/redis"
)

// 编辑会话的草稿和撤销快照。
// 草稿键 atds:draft:{user_id}:{worklog_id}，撤销键 atds:draft:undo:...，
// 撤销快照的短 TTL 就是限时撤销窗口。

const (
	draftPrefix = "draft"
	undoPrefix  = "undo"
)

func draftKey(userID, workLogID int64) string {
	return redis.Key(draftPrefix, strconv.FormatInt(userID, 10), strconv.FormatInt(workLogID, 10))
}

func undoKey(userID, workLogID int64) string {
	return redis.Key(draftPrefix, undoPrefix, strconv.FormatInt(userID, 10), strconv.FormatInt(workLogID, 10))
}

func draftTTL() time.Duration {
	return time.Duration(config.Cfg.DraftTTLMinutes) * time.Minute
}

func undoTTL() time.Duration {
	return time.Duration(config.Cfg.UndoTTLSeconds) * time.Second
}

// SetDraft 整体写入编辑中的表格状态并续期
func SetDraft(ctx context.Context, userID, workLogID int64, grid *sheet.Grid) error {
	data, err := json.Marshal(grid)
	if err != nil {
		return err
	}

	return redis.Client().Set(ctx, draftKey(userID, workLogID), data, draftTTL()).Err()
}

// GetDraft 读取草稿，未命中返回 (nil, nil)
func GetDraft(ctx context.Context, userID, workLogID int64) (*sheet.Grid, error) {
	raw, err := redis.Client().Get(ctx, draftKey(userID, workLogID)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var grid sheet.Grid
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, err
	}
	return &grid, nil
}

func DeleteDraft(ctx context.Context, userID, workLogID int64) error {
	return redis.Client().Del(ctx, draftKey(userID, workLogID), undoKey(userID, workLogID)).Err()
}

// SetUndoSnapshot 保存变更前的快照，TTL 即撤销窗口
func SetUndoSnapshot(ctx context.Context, userID, workLogID int64, snapshot sheet.AttendanceData) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return redis.Client().Set(ctx, undoKey(userID, workLogID), data, undoTTL()).Err()
}

// TakeUndoSnapshot 取出并删除快照，过期或不存在返回 (nil, nil)
func TakeUndoSnapshot(ctx context.Context, userID, workLogID int64) (sheet.AttendanceData, error) {
	key := undoKey(userID, workLogID)

	raw, err := redis.Client().Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot sheet.AttendanceData
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}

	_ = redis.Client().Del(ctx, key).Err()
	return snapshot, nil
}

// HasUndoSnapshot 撤销窗口内是否有可用快照
func HasUndoSnapshot(ctx context.Context, userID, workLogID int64) bool {
	n, err := redis.Client().Exists(ctx, undoKey(userID, workLogID)).Result()
	return err == nil && n > 0
}
