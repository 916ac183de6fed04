// Package simkit 是一个基于集合代数的用户协同过滤推荐引擎（Similarity Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑拆成四个串行 Node（候选用户 → 相似度 → 候选物品 → 建议打分）
// - Store-first: 所有阶段状态都落在 SetStore 的有序分数集合里，阶段之间只传 store key 的内容
// - Run-scoped: 每次调用一个私有的临时 key 命名空间，并发调用互不覆盖
package simkit

import "github.com/rushteam/simkit/pipeline"

// 轻量 facade：便于用户直接 import "simkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindCandidates = pipeline.KindCandidates
	KindSimilarity = pipeline.KindSimilarity
	KindItems      = pipeline.KindItems
	KindSuggest    = pipeline.KindSuggest
	KindFilter     = pipeline.KindFilter
	KindReRank     = pipeline.KindReRank
)
