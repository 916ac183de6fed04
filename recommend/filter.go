package recommend

import (
	"context"

	"github.com/rushteam/simkit/core"
	"github.com/rushteam/simkit/pipeline"
	"github.com/rushteam/simkit/pkg/dsl"
)

// ExprFilter 是建议过滤 Node：只保留 CEL 表达式求值为 true 的条目。
// 默认流水线不做任何阈值过滤，这是显式挂到 Engine.Post 上的扩展点。
type ExprFilter struct {
	// Expr 是 CEL 表达式，可用变量见 dsl.Eval（member / score / user）
	Expr string

	eval *dsl.Eval
}

// NewExprFilter 预编译表达式，表达式非法时在构建期报错而不是求值期。
func NewExprFilter(expr string) (*ExprFilter, error) {
	eval, err := dsl.NewEval(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{Expr: expr, eval: eval}, nil
}

func (n *ExprFilter) Name() string        { return "recommend.filter.expr" }
func (n *ExprFilter) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *ExprFilter) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	entries []core.Entry,
) ([]core.Entry, error) {
	if n.eval == nil || len(entries) == 0 {
		return entries, nil
	}

	out := make([]core.Entry, 0, len(entries))
	for _, e := range entries {
		keep, err := n.eval.Evaluate(e, rctx)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ pipeline.Node = (*ExprFilter)(nil)
