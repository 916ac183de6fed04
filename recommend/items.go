package recommend

import (
	"context"
	"math"

	"github.com/rushteam/simkit/core"
	"github.com/rushteam/simkit/pipeline"
)

// CandidateItems 是候选物品发现 Node：找出相似用户评过、而目标用户
// 还没评过的物品。
//
// 做法：带权并集 {target: -1, 每个相似用户: +1}，MIN 聚合。目标用户
// 评过的物品经 -1 权重后合并分数为负，ZRangeByScore(0, +Inf) 把它们
// 过滤掉，只留下"仅被相似用户评过"的物品——这就是"只推荐未评分物品"
// 不变量的实现位置。目标用户自己在这里被显式排除出相似用户 key 列表。
type CandidateItems struct {
	Store core.SetStore
}

func (n *CandidateItems) Name() string        { return "recommend.items" }
func (n *CandidateItems) Kind() pipeline.Kind { return pipeline.KindItems }

func (n *CandidateItems) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	similars []core.Entry,
) ([]core.Entry, error) {
	keys := []core.WeightedKey{
		{Key: rctx.TargetItemsKey(), Weight: -1},
	}
	for _, sim := range similars {
		if sim.Member == rctx.TargetUser {
			continue // 自己不算相似用户
		}
		keys = append(keys, core.WeightedKey{Key: rctx.UserItemsKey(sim.Member), Weight: 1})
	}
	if len(keys) == 1 {
		// 没有目标之外的相似用户：没有候选物品，合法的空结果
		return nil, nil
	}

	scratch := rctx.ScratchKey(StageItems)
	if err := n.Store.ZUnionStore(ctx, scratch, keys, core.AggregateMin); err != nil {
		return nil, err
	}
	return n.Store.ZRangeByScore(ctx, scratch, 0, math.Inf(1))
}

var _ pipeline.Node = (*CandidateItems)(nil)
