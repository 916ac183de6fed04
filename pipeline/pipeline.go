package pipeline

import (
	"context"

	"github.com/rushteam/simkit/core"
)

// Pipeline 是 simkit 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 严格串行执行：每个 Node 完整结束并落库后，下一个 Node 才开始读取。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	entries []core.Entry,
) ([]core.Entry, error) {
	cur := entries
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
