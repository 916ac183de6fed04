package recommend

import (
	"context"

	"github.com/rushteam/simkit/core"
	"github.com/rushteam/simkit/pipeline"
)

// TopN 是截断 Node，保留建议列表的前 N 条。
// Suggest 阶段的输出已按预测分降序排好，所以截断即取 Top N。
//
// 示例：
//
//	engine := recommend.NewEngine(s)
//	engine.Post = []pipeline.Node{&recommend.TopN{N: 10}}
type TopN struct {
	// N 要保留的条数；N <= 0 表示不截断
	N int
}

func (n *TopN) Name() string        { return "recommend.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	entries []core.Entry,
) ([]core.Entry, error) {
	if n.N <= 0 || len(entries) <= n.N {
		return entries, nil
	}
	return entries[:n.N], nil
}

var _ pipeline.Node = (*TopN)(nil)
