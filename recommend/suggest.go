package recommend

import (
	"context"
	"sort"

	"github.com/rushteam/simkit/core"
	"github.com/rushteam/simkit/pipeline"
)

// Suggest 是建议打分 Node：对每个候选物品，聚合"评过这个物品的相似用户"
// 给出的评分，得到预测分，写入本次调用的 suggestions 集合。
//
// 相似用户 × 物品评分人的选取还是权重技巧：ZInterStore {similars: 0,
// item: +1}，交集成员是评过该物品的相似用户，交集分数恰好是他们对
// 该物品的评分（similars 侧权重为 0，不混入相似度值）。
//
// 预测分默认是这些评分的无加权算术平均。WeightBySimilarity 打开后改为
// 按 1/(1+rms) 加权的平均（越相似权重越大）——显式 opt-in，不是默认。
type Suggest struct {
	Store core.SetStore

	// WeightBySimilarity 用相似度强度给评分加权（默认关闭，保持无加权平均）
	WeightBySimilarity bool
}

func (n *Suggest) Name() string        { return "recommend.suggest" }
func (n *Suggest) Kind() pipeline.Kind { return pipeline.KindSuggest }

func (n *Suggest) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []core.Entry,
) ([]core.Entry, error) {
	if len(items) == 0 {
		return nil, nil
	}

	similarsKey := rctx.SimilarsKey()
	scratch := rctx.ScratchKey(StageRaters)

	for _, item := range items {
		keys := []core.WeightedKey{
			{Key: similarsKey, Weight: 0},
			{Key: rctx.ItemScoresKey(item.Member), Weight: 1},
		}
		if err := n.Store.ZInterStore(ctx, scratch, keys, core.AggregateSum); err != nil {
			return nil, err
		}
		raters, err := n.Store.ZEntries(ctx, scratch)
		if err != nil {
			return nil, err
		}
		if len(raters) == 0 {
			continue
		}

		var predicted float64
		if n.WeightBySimilarity {
			predicted, err = n.weightedMean(ctx, similarsKey, raters)
			if err != nil {
				return nil, err
			}
		} else {
			var sum float64
			for _, r := range raters {
				sum += r.Score
			}
			predicted = sum / float64(len(raters))
		}

		if err := n.Store.ZAdd(ctx, rctx.SuggestionsKey(), item.Member, predicted); err != nil {
			return nil, err
		}
	}

	suggestions, err := n.Store.ZEntries(ctx, rctx.SuggestionsKey())
	if err != nil {
		return nil, err
	}
	// 最终排名：预测分降序，同分按物品 ID 升序
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Member < suggestions[j].Member
	})
	return suggestions, nil
}

// weightedMean 按 1/(1+rms) 给每个评分人的评分加权。
// rms=0（完全一致的口味）权重为 1，距离越大权重越小。
func (n *Suggest) weightedMean(ctx context.Context, similarsKey string, raters []core.Entry) (float64, error) {
	var sum, wsum float64
	for _, r := range raters {
		rms, err := n.Store.ZScore(ctx, similarsKey, r.Member)
		if err != nil {
			return 0, err
		}
		w := 1 / (1 + rms)
		sum += w * r.Score
		wsum += w
	}
	return sum / wsum, nil
}

var _ pipeline.Node = (*Suggest)(nil)
