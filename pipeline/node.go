package pipeline

import (
	"context"

	"github.com/rushteam/simkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindCandidates Kind = "candidates" // 候选用户发现：与目标用户有共同评分物品的用户
	KindSimilarity Kind = "similarity" // 相似度计算：RMS 距离，越小越相似
	KindItems      Kind = "items"      // 候选物品发现：相似用户评过、目标用户未评的物品
	KindSuggest    Kind = "suggest"    // 建议打分：聚合相似用户的评分得到预测分
	KindFilter     Kind = "filter"     // 过滤阶段：剔除不符合约束的建议
	KindReRank     Kind = "rerank"     // 重排阶段：截断/调序
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 entries -> 输出 entries"的形态：阶段 1~2 的 entries 是
// 用户（分数=并集权重/RMS 距离），阶段 3~4 之后是物品（分数=预测分）。
// 空的输入 entries 对每个阶段都是合法输入，不是错误。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		entries []core.Entry,
	) ([]core.Entry, error)
}
