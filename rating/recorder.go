// Package rating 是评分写入协作方：维护 by-user / by-item 两个互为转置的
// 评分视图，并提供 CSV 批量导入。推荐流水线只读这两个视图，不经过本包。
package rating

import (
	"context"

	"github.com/rushteam/simkit/core"
)

// Recorder 负责评分事实的写入。
// 每条评分同时落 by-user 与 by-item 两侧，分数一致；对同一 (user, item)
// 的后写覆盖先写（upsert 语义，幂等）。评分值不做范围校验，原样存储。
type Recorder struct {
	Store core.SetStore

	// KeyPrefix 是评分数据的 key 前缀，须与推荐引擎使用的前缀一致。
	// 为空时使用 "cf"。
	KeyPrefix string
}

func NewRecorder(s core.SetStore, keyPrefix string) *Recorder {
	if keyPrefix == "" {
		keyPrefix = (&core.DefaultEngineConfig{}).DefaultKeyPrefix()
	}
	return &Recorder{Store: s, KeyPrefix: keyPrefix}
}

// Record 写入一条评分：user 对 item 打了 score 分。
// 先写 by-user 侧再写 by-item 侧；第二侧失败时错误原样上抛，
// 调用方重放整条评分即可恢复一致（两侧写入都是幂等覆盖）。
func (r *Recorder) Record(ctx context.Context, userID, itemID string, score float64) error {
	if err := r.Store.ZAdd(ctx, core.UserItemsKey(r.KeyPrefix, userID), itemID, score); err != nil {
		return err
	}
	return r.Store.ZAdd(ctx, core.ItemScoresKey(r.KeyPrefix, itemID), userID, score)
}

// UserItems 返回某用户的全部评分（物品 → 分数，按分数升序）。
func (r *Recorder) UserItems(ctx context.Context, userID string) ([]core.Entry, error) {
	return r.Store.ZEntries(ctx, core.UserItemsKey(r.KeyPrefix, userID))
}

// ItemScores 返回某物品收到的全部评分（用户 → 分数，按分数升序）。
func (r *Recorder) ItemScores(ctx context.Context, itemID string) ([]core.Entry, error) {
	return r.Store.ZEntries(ctx, core.ItemScoresKey(r.KeyPrefix, itemID))
}

// Reset 清空全部存储状态（reset 协作方契约，不提供部分重置）。
func (r *Recorder) Reset(ctx context.Context) error {
	return r.Store.FlushAll(ctx)
}
