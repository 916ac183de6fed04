package core

import "time"

// EngineConfig 是推荐引擎相关的配置接口，用于提供默认值。
type EngineConfig interface {
	// DefaultKeyPrefix 返回默认的评分数据 key 前缀
	DefaultKeyPrefix() string

	// DefaultTopN 返回默认的建议截断数量（<=0 表示不截断）
	DefaultTopN() int

	// DefaultTimeout 返回默认的单次调用超时时间
	DefaultTimeout() time.Duration
}

// DefaultEngineConfig 是默认的引擎配置实现。
type DefaultEngineConfig struct{}

func (c *DefaultEngineConfig) DefaultKeyPrefix() string {
	return "cf"
}

func (c *DefaultEngineConfig) DefaultTopN() int {
	return 20
}

func (c *DefaultEngineConfig) DefaultTimeout() time.Duration {
	return 2 * time.Second
}
