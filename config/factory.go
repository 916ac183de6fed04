package config

import (
	"fmt"

	"github.com/rushteam/simkit/core"
	"github.com/rushteam/simkit/pipeline"
	"github.com/rushteam/simkit/pkg/conv"
	"github.com/rushteam/simkit/recommend"
	"github.com/rushteam/simkit/store"
)

// DefaultFactory 返回一个包含所有内置后处理 Node 的默认工厂。
func DefaultFactory() *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()
	factory.Register("filter.expr", buildExprFilterNode)
	factory.Register("rerank.topn", buildTopNNode)
	return factory
}

func buildExprFilterNode(config map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet[string](config, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("filter.expr: expr is required")
	}
	return recommend.NewExprFilter(expr)
}

func buildTopNNode(config map[string]any) (pipeline.Node, error) {
	return &recommend.TopN{N: int(conv.ConfigGetInt64(config, "n", 0))}, nil
}

// BuildStore 根据配置创建存储后端。
func BuildStore(cfg *Config) (core.SetStore, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(cfg.Store.Addr, cfg.Store.DB)
	default:
		return nil, core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput,
			fmt.Sprintf("config: unknown store backend %q", cfg.Store.Backend))
	}
}

// Build 根据配置创建存储与引擎。失败时不持有任何资源。
func Build(cfg *Config) (*recommend.Engine, core.SetStore, error) {
	s, err := BuildStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	engine, err := BuildEngine(cfg, s)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return engine, s, nil
}

// BuildEngine 在已有存储上根据配置创建引擎（存储生命周期归调用方）。
func BuildEngine(cfg *Config, s core.SetStore) (*recommend.Engine, error) {
	engine := recommend.NewEngine(s)
	engine.KeyPrefix = cfg.Engine.KeyPrefix
	engine.WeightBySimilarity = cfg.Engine.WeightBySimilarity

	factory := DefaultFactory()
	for _, nc := range cfg.Engine.Post {
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			return nil, fmt.Errorf("build node %s: %w", nc.Type, err)
		}
		engine.Post = append(engine.Post, node)
	}
	return engine, nil
}
