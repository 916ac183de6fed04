package recommend

import (
	"context"
	"math"

	"github.com/rushteam/simkit/core"
	"github.com/rushteam/simkit/pipeline"
)

// Similarity 是相似度计算 Node：对候选池里的每个用户，在双方共同评过的
// 物品上计算评分差的均方根（RMS），写入本次调用的 similars 集合。
// 分数越小越相似；目标用户自己也会得到一个 0 分（无害，候选物品阶段
// 会把它排除在相似用户之外）。
//
// 共同物品的选取用 ZInterStore 的权重技巧：{target: -1, candidate: +1}
// 只为了取交集成员，真正的评分值另行 ZScore 读取，不用交集分数。
// 全程 float64，不做整数截断（截断属于展示层，不进打分数学）。
type Similarity struct {
	Store core.SetStore
}

func (n *Similarity) Name() string        { return "recommend.similarity" }
func (n *Similarity) Kind() pipeline.Kind { return pipeline.KindSimilarity }

func (n *Similarity) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	candidates []core.Entry,
) ([]core.Entry, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	targetKey := rctx.TargetItemsKey()
	scratch := rctx.ScratchKey(StageShared)

	for _, cand := range candidates {
		candKey := rctx.UserItemsKey(cand.Member)

		keys := []core.WeightedKey{
			{Key: targetKey, Weight: -1},
			{Key: candKey, Weight: 1},
		}
		if err := n.Store.ZInterStore(ctx, scratch, keys, core.AggregateMin); err != nil {
			return nil, err
		}
		shared, err := n.Store.ZEntries(ctx, scratch)
		if err != nil {
			return nil, err
		}
		if len(shared) == 0 {
			continue // 候选发现保证至少一个共同物品；真出现零交集则跳过不记录
		}

		var sum float64
		for _, it := range shared {
			targetScore, err := n.Store.ZScore(ctx, targetKey, it.Member)
			if err != nil {
				return nil, err
			}
			candScore, err := n.Store.ZScore(ctx, candKey, it.Member)
			if err != nil {
				return nil, err
			}
			diff := targetScore - candScore
			sum += diff * diff
		}
		rms := math.Sqrt(sum / float64(len(shared)))

		if err := n.Store.ZAdd(ctx, rctx.SimilarsKey(), cand.Member, rms); err != nil {
			return nil, err
		}
	}

	// 升序返回：最相似的在前
	return n.Store.ZEntries(ctx, rctx.SimilarsKey())
}

var _ pipeline.Node = (*Similarity)(nil)
