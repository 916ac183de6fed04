package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/simkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("member", cel.StringType),
		cel.Variable("score", cel.DoubleType),
		cel.Variable("user", cel.StringType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	if celEnv == nil && err == nil {
		err = fmt.Errorf("cel env not initialized")
	}
	return celEnv, err
}

// Eval 是建议过滤表达式的解释器，使用 CEL (Common Expression Language)
// 实现。表达式编译一次缓存，可对每条建议反复 Evaluate。
//
// 可用变量：
//   - member: string，建议条目的成员 ID（物品 ID）
//   - score:  double，预测分
//   - user:   string，目标用户 ID
//
// 示例：
//   - `score >= 3.0` → 只保留预测分不低于 3 的物品
//   - `member != "42"` → 排除某个物品
//   - `score > 4.0 || user == "vip_1"` → 组合条件
type Eval struct {
	prg cel.Program
}

// NewEval 编译表达式并返回解释器；表达式必须产出 bool。
func NewEval(expr string) (*Eval, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expr %q: %w", expr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("expr %q: want bool output, got %s", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program expr %q: %w", expr, err)
	}
	return &Eval{prg: prg}, nil
}

// Evaluate 对一条建议求值。
func (e *Eval) Evaluate(entry core.Entry, rctx *core.RecommendContext) (bool, error) {
	out, _, err := e.prg.Eval(map[string]any{
		"member": entry.Member,
		"score":  entry.Score,
		"user":   rctx.TargetUser,
	})
	if err != nil {
		return false, err
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expr result is not bool: %v", out.Value())
	}
	return b, nil
}
