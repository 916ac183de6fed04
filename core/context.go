package core

import "github.com/google/uuid"

// RecommendContext 承载一次推荐调用的目标用户与 key 命名空间，
// 贯穿整个 Pipeline 透传。
//
// 每次调用构造一个新的不可变 Context：目标用户作为参数传入，派生 key
// 由 Context 本地推导，不存在进程级的"当前焦点用户"可变状态。
// RunID 给本次调用一个私有的临时 key 命名空间，因此不同目标用户的
// 并发调用互不覆盖对方的 scratch 集合。
type RecommendContext struct {
	TargetUser string // 目标用户 ID（为谁计算推荐）
	KeyPrefix  string // 评分数据的 key 前缀（与写入侧一致）
	RunID      string // 本次调用的唯一 ID，决定 run 级命名空间
}

// NewRecommendContext 创建一次调用的 Context，RunID 自动生成。
func NewRecommendContext(prefix, targetUser string) *RecommendContext {
	return &RecommendContext{
		TargetUser: targetUser,
		KeyPrefix:  prefix,
		RunID:      uuid.NewString(),
	}
}

// TargetItemsKey 返回目标用户的 by-user 集合 key。
func (rctx *RecommendContext) TargetItemsKey() string {
	return UserItemsKey(rctx.KeyPrefix, rctx.TargetUser)
}

// UserItemsKey 返回任意用户的 by-user 集合 key。
func (rctx *RecommendContext) UserItemsKey(userID string) string {
	return UserItemsKey(rctx.KeyPrefix, userID)
}

// ItemScoresKey 返回任意物品的 by-item 集合 key。
func (rctx *RecommendContext) ItemScoresKey(itemID string) string {
	return ItemScoresKey(rctx.KeyPrefix, itemID)
}

func (rctx *RecommendContext) runKey(suffix string) string {
	return rctx.KeyPrefix + ":run:" + rctx.RunID + ":" + suffix
}

// SimilarsKey 返回本次调用的相似用户集合 key（成员=候选用户，分数=RMS 距离）。
func (rctx *RecommendContext) SimilarsKey() string {
	return rctx.runKey("similars")
}

// SuggestionsKey 返回本次调用的建议集合 key（成员=物品，分数=预测分）。
func (rctx *RecommendContext) SuggestionsKey() string {
	return rctx.runKey("suggestions")
}

// ScratchKey 返回某个阶段的 scratch 集合 key。
func (rctx *RecommendContext) ScratchKey(stage string) string {
	return rctx.runKey("tmp:" + stage)
}

// RunKeys 返回本次调用写过的全部 run 级 key，供调用结束后回收。
func (rctx *RecommendContext) RunKeys(stages ...string) []string {
	keys := []string{rctx.SimilarsKey(), rctx.SuggestionsKey()}
	for _, s := range stages {
		keys = append(keys, rctx.ScratchKey(s))
	}
	return keys
}
