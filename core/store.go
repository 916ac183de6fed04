package core

import "context"

// Entry 是有序分数集合中的一个成员及其分数。
// 全链路的统一承载结构：阶段之间传递的候选用户、相似用户、候选物品、
// 建议结果都是 []Entry。
type Entry struct {
	Member string  // 成员 ID（用户 ID 或物品 ID，统一用 string 支持所有 ID 格式）
	Score  float64 // 分数（评分 / RMS 距离 / 预测分，语义由所在集合决定）
}

// Aggregate 是 Union/Inter 的分数聚合策略。
type Aggregate string

const (
	AggregateSum Aggregate = "SUM" // 各来源分数求和
	AggregateMin Aggregate = "MIN" // 取各来源最小分数
	AggregateMax Aggregate = "MAX" // 取各来源最大分数
)

// WeightedKey 是带权重的来源集合。成员的每个来源贡献 = score × Weight，
// 再按 Aggregate 合并。负权重是集合代数里的排除手段：配合 MIN 聚合与
// ZRangeByScore(0, +Inf) 可以剔除出现在该来源中的成员。
type WeightedKey struct {
	Key    string
	Weight float64
}

// SetStore 是评分存储的领域接口：一组按分数有序的集合，外加集合代数原语。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 语义对齐 Redis Sorted Set：ZADD / ZSCORE / ZUNIONSTORE / ZINTERSTORE
//
// 排序契约：所有返回 []Entry 的读操作按分数升序排列，分数相同时按
// Member 字典序升序，保证迭代确定性。
//
// 实现：
//   - store.MemoryStore 实现此接口（测试/开发/原型）
//   - store.RedisStore 实现此接口（生产环境）
type SetStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// ZAdd 插入或覆盖成员分数（upsert 语义，幂等）
	ZAdd(ctx context.Context, key, member string, score float64) error

	// ZEntries 返回集合全部成员，按排序契约排列；key 不存在时返回空
	ZEntries(ctx context.Context, key string) ([]Entry, error)

	// ZRangeByScore 返回分数落在 [min, max]（闭区间）内的成员
	ZRangeByScore(ctx context.Context, key string, min, max float64) ([]Entry, error)

	// ZUnionStore 把所有来源集合的并集写入 dest（覆盖 dest 原有内容）。
	// 成员只要出现在任一来源即纳入；分数 = Aggregate(各来源 score × weight)。
	ZUnionStore(ctx context.Context, dest string, keys []WeightedKey, agg Aggregate) error

	// ZInterStore 把所有来源集合的交集写入 dest（覆盖 dest 原有内容）。
	// 成员必须出现在全部来源；分数 = Aggregate(各来源 score × weight)。
	ZInterStore(ctx context.Context, dest string, keys []WeightedKey, agg Aggregate) error

	// ZScore 返回成员分数；成员或 key 不存在时返回 ErrStoreNotFound
	ZScore(ctx context.Context, key, member string) (float64, error)

	// Exists 检查集合是否存在（至少有一个成员）
	Exists(ctx context.Context, key string) (bool, error)

	// Delete 删除若干集合（用于回收 run 级临时 key）
	Delete(ctx context.Context, keys ...string) error

	// FlushAll 清空全部数据（仅供外部 reset 协作方使用，流水线自身不调用）
	FlushAll(ctx context.Context) error

	// Close 关闭连接/释放资源
	Close() error
}
