// Package recommend 实现基于用户的协同过滤推荐流水线：
// 候选用户发现 → 相似度计算 → 候选物品发现 → 建议打分。
// 四个阶段严格串行，全部读写都走 core.SetStore 的集合代数原语，
// 阶段之间不保留 store 之外的状态。
package recommend

import (
	"context"

	"github.com/rushteam/simkit/core"
	"github.com/rushteam/simkit/pipeline"
)

// CandidateUsers 是候选用户发现 Node：找出与目标用户至少共同评过一个
// 物品的全部用户（候选池）。
//
// 做法：取目标用户评过的物品，把这些物品的 by-item 集合做并集
// （SUM 聚合，下游只关心成员资格，不用并集分数）。候选池包含目标用户
// 自己；这里不剔除，剔除发生在候选物品阶段真正需要它的位置。
type CandidateUsers struct {
	Store core.SetStore
}

func (n *CandidateUsers) Name() string        { return "recommend.candidates" }
func (n *CandidateUsers) Kind() pipeline.Kind { return pipeline.KindCandidates }

func (n *CandidateUsers) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []core.Entry,
) ([]core.Entry, error) {
	items, err := n.Store.ZEntries(ctx, rctx.TargetItemsKey())
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		// 目标用户零评分：候选池为空，下游各阶段产出空集，不是错误
		return nil, nil
	}

	keys := make([]core.WeightedKey, 0, len(items))
	for _, it := range items {
		keys = append(keys, core.WeightedKey{Key: rctx.ItemScoresKey(it.Member), Weight: 1})
	}

	scratch := rctx.ScratchKey(StageCandidates)
	if err := n.Store.ZUnionStore(ctx, scratch, keys, core.AggregateSum); err != nil {
		return nil, err
	}
	return n.Store.ZEntries(ctx, scratch)
}

var _ pipeline.Node = (*CandidateUsers)(nil)
