package store

import (
	"context"
	"math"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rushteam/simkit/core"
)

// RedisStore 是 Redis 实现的 SetStore，集合代数直接落在 Redis Sorted Set
// 原语上（ZUNIONSTORE / ZINTERSTORE 的 WEIGHTS + AGGREGATE）。
// 生产环境常用，支持持久化、集群、哨兵等。
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) ZAdd(ctx context.Context, key, member string, score float64) error {
	return r.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

func (r *RedisStore) ZEntries(ctx context.Context, key string) ([]core.Entry, error) {
	zs, err := r.client.ZRangeWithScores(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return toEntries(zs), nil
}

func (r *RedisStore) ZRangeByScore(ctx context.Context, key string, min, max float64) ([]core.Entry, error) {
	zs, err := r.client.ZRangeByScoreWithScores(ctx, key, &redis.ZRangeBy{
		Min: formatScore(min),
		Max: formatScore(max),
	}).Result()
	if err != nil {
		return nil, err
	}
	return toEntries(zs), nil
}

func (r *RedisStore) ZUnionStore(ctx context.Context, dest string, keys []core.WeightedKey, agg core.Aggregate) error {
	return r.client.ZUnionStore(ctx, dest, toZStore(keys, agg)).Err()
}

func (r *RedisStore) ZInterStore(ctx context.Context, dest string, keys []core.WeightedKey, agg core.Aggregate) error {
	return r.client.ZInterStore(ctx, dest, toZStore(keys, agg)).Err()
}

func (r *RedisStore) ZScore(ctx context.Context, key, member string) (float64, error) {
	score, err := r.client.ZScore(ctx, key, member).Result()
	if err == redis.Nil {
		return 0, core.ErrStoreNotFound
	}
	return score, err
}

func (r *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisStore) FlushAll(ctx context.Context) error {
	// 只清当前 DB，避免影响同实例上的其他库
	return r.client.FlushDB(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func toZStore(keys []core.WeightedKey, agg core.Aggregate) *redis.ZStore {
	zs := &redis.ZStore{
		Keys:      make([]string, 0, len(keys)),
		Weights:   make([]float64, 0, len(keys)),
		Aggregate: string(agg),
	}
	for _, wk := range keys {
		zs.Keys = append(zs.Keys, wk.Key)
		zs.Weights = append(zs.Weights, wk.Weight)
	}
	return zs
}

func toEntries(zs []redis.Z) []core.Entry {
	if len(zs) == 0 {
		return nil
	}
	entries := make([]core.Entry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		entries = append(entries, core.Entry{Member: member, Score: z.Score})
	}
	return entries
}

func formatScore(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "+inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// 确保 RedisStore 实现了 core.SetStore 接口
var _ core.SetStore = (*RedisStore)(nil)
