package recommend

import (
	"context"

	"github.com/rushteam/simkit/core"
	"github.com/rushteam/simkit/pipeline"
)

// scratch 阶段名，决定 run 命名空间下的 tmp key
const (
	StageCandidates = "candidates"
	StageShared     = "shared"
	StageItems      = "items"
	StageRaters     = "raters"
)

// Engine 把四个阶段组装成一次可调用的推荐流水线。
//
// 每次 Recommend 构造一个新的 RecommendContext（私有 run 命名空间），
// 因此不同目标用户的并发调用互不干扰；评分写入与流水线的交错安全性
// 仍由调用方保证（写入正在参与计算的用户/物品时结果未定义）。
type Engine struct {
	Store core.SetStore

	// KeyPrefix 是评分数据的 key 前缀，须与 rating.Recorder 一致。
	// 为空时使用 "cf"。
	KeyPrefix string

	// WeightBySimilarity 透传给 Suggest 阶段（默认关闭）
	WeightBySimilarity bool

	// Post 是追加在四个阶段之后的后处理 Node（过滤/截断等），可为空
	Post []pipeline.Node

	// KeepRunKeys 保留 run 级派生集合（similars/suggestions/tmp），
	// 用于调试和离线分析；默认调用结束后尽力回收
	KeepRunKeys bool
}

func NewEngine(s core.SetStore) *Engine {
	return &Engine{Store: s}
}

func (e *Engine) prefix() string {
	if e.KeyPrefix != "" {
		return e.KeyPrefix
	}
	return (&core.DefaultEngineConfig{}).DefaultKeyPrefix()
}

// Recommend 为目标用户计算一轮建议，返回按预测分降序的物品列表。
// 目标用户没有任何评分记录时返回 core.ErrUnknownUser，不执行任何阶段；
// 任一阶段为空集时正常短路，返回空列表。
func (e *Engine) Recommend(ctx context.Context, targetUser string) ([]core.Entry, error) {
	rctx := core.NewRecommendContext(e.prefix(), targetUser)

	ok, err := e.Store.Exists(ctx, rctx.TargetItemsKey())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrUnknownUser
	}

	if !e.KeepRunKeys {
		// 尽力回收 run 级 key；失败只影响存储占用，不影响结果
		defer func() {
			keys := rctx.RunKeys(StageCandidates, StageShared, StageItems, StageRaters)
			_ = e.Store.Delete(context.WithoutCancel(ctx), keys...)
		}()
	}

	p := &pipeline.Pipeline{
		Nodes: append([]pipeline.Node{
			&CandidateUsers{Store: e.Store},
			&Similarity{Store: e.Store},
			&CandidateItems{Store: e.Store},
			&Suggest{Store: e.Store, WeightBySimilarity: e.WeightBySimilarity},
		}, e.Post...),
	}
	return p.Run(ctx, rctx, nil)
}
