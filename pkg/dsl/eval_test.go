package dsl

import (
	"testing"

	"github.com/rushteam/simkit/core"
)

func TestEval(t *testing.T) {
	rctx := &core.RecommendContext{TargetUser: "u1", KeyPrefix: "cf", RunID: "test"}

	tests := []struct {
		name  string
		expr  string
		entry core.Entry
		want  bool
	}{
		{
			name:  "score threshold pass",
			expr:  "score >= 3.0",
			entry: core.Entry{Member: "i1", Score: 4.2},
			want:  true,
		},
		{
			name:  "score threshold reject",
			expr:  "score >= 3.0",
			entry: core.Entry{Member: "i1", Score: 2.9},
			want:  false,
		},
		{
			name:  "member match",
			expr:  `member == "i7"`,
			entry: core.Entry{Member: "i7", Score: 1},
			want:  true,
		},
		{
			name:  "combined with target user",
			expr:  `score > 4.0 || user == "u1"`,
			entry: core.Entry{Member: "i1", Score: 1},
			want:  true,
		},
		{
			name:  "string function",
			expr:  `member.startsWith("i")`,
			entry: core.Entry{Member: "i42", Score: 0},
			want:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := NewEval(tt.expr)
			if err != nil {
				t.Fatalf("NewEval(%q) error = %v", tt.expr, err)
			}
			got, err := eval.Evaluate(tt.entry, rctx)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_CompileErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"syntax error", "score >="},
		{"unknown variable", "unknown_var > 1.0"},
		{"non-bool output", "score + 1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEval(tt.expr); err == nil {
				t.Errorf("NewEval(%q) error = nil, want compile error", tt.expr)
			}
		})
	}
}
