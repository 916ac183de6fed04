package recommend

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/simkit/core"
)

// BatchRunner 并发地为一批目标用户各跑一轮推荐。
// 每次调用都有私有的 run 命名空间，所以并发运行是安全的；
// 支持超时、限流。单个用户失败不中断其他用户，错误记录在各自的 Result 里。
type BatchRunner struct {
	Engine        *Engine
	Timeout       time.Duration // 每个用户的超时时间（0 表示不限制）
	MaxConcurrent int           // 最大并发数（0 表示无限制）
}

// Result 是批量运行中单个用户的结果。
type Result struct {
	User        string
	Suggestions []core.Entry
	Err         error
}

// Run 返回与 users 顺序一致的结果列表。
func (b *BatchRunner) Run(ctx context.Context, users []string) ([]Result, error) {
	if b.Engine == nil || len(users) == 0 {
		return nil, nil
	}

	results := make([]Result, len(users))
	eg, ctx := errgroup.WithContext(ctx)

	// 限流：使用 semaphore 控制并发数
	sem := make(chan struct{}, b.MaxConcurrent)
	if b.MaxConcurrent <= 0 {
		close(sem) // 无限制时直接关闭，避免阻塞
	}

	for i, user := range users {
		i, user := i, user
		results[i].User = user

		eg.Go(func() error {
			if b.MaxConcurrent > 0 {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			runCtx := ctx
			if b.Timeout > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(ctx, b.Timeout)
				defer cancel()
			}

			suggestions, err := b.Engine.Recommend(runCtx, user)
			results[i].Suggestions = suggestions
			results[i].Err = err
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
