package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/simkit/core"
)

// MemoryStore 是内存实现的 SetStore，用于测试/开发/原型。
// 进程重启后数据丢失。
type MemoryStore struct {
	mu    sync.RWMutex
	zsets map[string]map[string]float64 // key -> member -> score
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		zsets: make(map[string]map[string]float64),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) ZAdd(ctx context.Context, key, member string, score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.zsets[key] == nil {
		m.zsets[key] = make(map[string]float64)
	}
	m.zsets[key][member] = score
	return nil
}

func (m *MemoryStore) ZEntries(ctx context.Context, key string) ([]core.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return sortEntries(m.zsets[key]), nil
}

func (m *MemoryStore) ZRangeByScore(ctx context.Context, key string, min, max float64) ([]core.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	zset := m.zsets[key]
	if len(zset) == 0 {
		return nil, nil
	}
	filtered := make(map[string]float64)
	for member, score := range zset {
		if score >= min && score <= max {
			filtered[member] = score
		}
	}
	return sortEntries(filtered), nil
}

func (m *MemoryStore) ZUnionStore(ctx context.Context, dest string, keys []core.WeightedKey, agg core.Aggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.zsets[dest] = m.combine(keys, agg, false)
	return nil
}

func (m *MemoryStore) ZInterStore(ctx context.Context, dest string, keys []core.WeightedKey, agg core.Aggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.zsets[dest] = m.combine(keys, agg, true)
	return nil
}

// combine 计算并/交集。结果先算完再落 dest，因此 dest 出现在来源里也安全。
func (m *MemoryStore) combine(keys []core.WeightedKey, agg core.Aggregate, inter bool) map[string]float64 {
	scores := make(map[string]float64)
	counts := make(map[string]int)

	for _, wk := range keys {
		for member, score := range m.zsets[wk.Key] {
			weighted := score * wk.Weight
			if n, seen := counts[member]; !seen || n == 0 {
				scores[member] = weighted
			} else {
				switch agg {
				case core.AggregateMin:
					if weighted < scores[member] {
						scores[member] = weighted
					}
				case core.AggregateMax:
					if weighted > scores[member] {
						scores[member] = weighted
					}
				default: // SUM
					scores[member] += weighted
				}
			}
			counts[member]++
		}
	}

	result := make(map[string]float64, len(scores))
	for member, score := range scores {
		if inter && counts[member] < len(keys) {
			continue // 交集：必须出现在全部来源
		}
		result[member] = score
	}
	return result
}

func (m *MemoryStore) ZScore(ctx context.Context, key, member string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	zset, ok := m.zsets[key]
	if !ok {
		return 0, core.ErrStoreNotFound
	}
	score, ok := zset[member]
	if !ok {
		return 0, core.ErrStoreNotFound
	}
	return score, nil
}

func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.zsets[key]) > 0, nil
}

func (m *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.zsets, k)
	}
	return nil
}

func (m *MemoryStore) FlushAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.zsets = make(map[string]map[string]float64)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// sortEntries 按排序契约转换：分数升序，同分按 Member 字典序升序。
func sortEntries(zset map[string]float64) []core.Entry {
	if len(zset) == 0 {
		return nil
	}
	entries := make([]core.Entry, 0, len(zset))
	for member, score := range zset {
		entries = append(entries, core.Entry{Member: member, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].Member < entries[j].Member
	})
	return entries
}

// 确保 MemoryStore 实现了 core.SetStore 接口
var _ core.SetStore = (*MemoryStore)(nil)
