package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是引擎的声明式配置（支持 YAML）。
//
// 示例：
//
//	store:
//	  backend: redis          # memory / redis
//	  addr: localhost:6379
//	  db: 0
//	engine:
//	  key_prefix: cf
//	  weight_by_similarity: false
//	  post:
//	    - type: filter.expr
//	      config: {expr: "score >= 3.0"}
//	    - type: rerank.topn
//	      config: {n: 10}
type Config struct {
	Store struct {
		Backend string `yaml:"backend"` // memory / redis
		Addr    string `yaml:"addr"`    // redis 地址
		DB      int    `yaml:"db"`      // redis 库号
	} `yaml:"store"`

	Engine struct {
		KeyPrefix          string       `yaml:"key_prefix"`
		WeightBySimilarity bool         `yaml:"weight_by_similarity"`
		Post               []NodeConfig `yaml:"post"` // 追加在四个阶段之后的后处理 Node
	} `yaml:"engine"`
}

// NodeConfig 是单个后处理 Node 的配置。
type NodeConfig struct {
	Type   string         `yaml:"type"`   // filter.expr / rerank.topn 等
	Config map[string]any `yaml:"config"` // Node 特定配置
}

// Load 从 YAML 文件加载配置。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return LoadYAML(data)
}

// LoadYAML 从 YAML 字节加载配置。
func LoadYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}
