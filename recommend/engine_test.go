package recommend

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/simkit/core"
	"github.com/rushteam/simkit/pipeline"
	"github.com/rushteam/simkit/store"
)

func seedRatings(t *testing.T, s core.SetStore, ratings [][3]any) {
	t.Helper()
	ctx := context.Background()
	for _, r := range ratings {
		user, item := r[0].(string), r[1].(string)
		score := r[2].(float64)
		if err := s.ZAdd(ctx, core.UserItemsKey("cf", user), item, score); err != nil {
			t.Fatalf("seed by-user: %v", err)
		}
		if err := s.ZAdd(ctx, core.ItemScoresKey("cf", item), user, score); err != nil {
			t.Fatalf("seed by-item: %v", err)
		}
	}
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCandidateUsers(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	seedRatings(t, s, [][3]any{
		{"u1", "i1", 5.0}, {"u1", "i2", 3.0},
		{"u2", "i1", 4.0},
		{"u3", "i9", 1.0}, // no overlap with u1
	})

	rctx := core.NewRecommendContext("cf", "u1")
	node := &CandidateUsers{Store: s}
	pool, err := node.Process(ctx, rctx, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// pool holds exactly the users sharing at least one rated item, target included
	got := make(map[string]bool)
	for _, e := range pool {
		got[e.Member] = true
	}
	if len(got) != 2 || !got["u1"] || !got["u2"] {
		t.Errorf("pool = %v, want {u1, u2}", pool)
	}

	// every candidate really overlaps with the target
	targetItems := map[string]bool{"i1": true, "i2": true}
	for _, e := range pool {
		items, _ := s.ZEntries(ctx, rctx.UserItemsKey(e.Member))
		overlap := false
		for _, it := range items {
			if targetItems[it.Member] {
				overlap = true
			}
		}
		if !overlap {
			t.Errorf("candidate %s has no overlap with target", e.Member)
		}
	}
}

func TestCandidateUsers_NoRatings(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	rctx := core.NewRecommendContext("cf", "ghost")
	pool, err := (&CandidateUsers{Store: s}).Process(ctx, rctx, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(pool) != 0 {
		t.Errorf("pool = %v, want empty", pool)
	}
}

func TestSimilarity_RMS(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	seedRatings(t, s, [][3]any{
		{"u1", "i1", 4.0}, {"u1", "i2", 2.0},
		{"u2", "i1", 5.0}, {"u2", "i2", 1.0},
	})

	rctx := core.NewRecommendContext("cf", "u1")
	node := &Similarity{Store: s}
	similars, err := node.Process(ctx, rctx, []core.Entry{{Member: "u2"}})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(similars) != 1 {
		t.Fatalf("similars = %v, want one entry", similars)
	}
	// sqrt(((4-5)^2 + (2-1)^2) / 2) = 1.0
	if !floatEq(similars[0].Score, 1.0) {
		t.Errorf("rms = %v, want 1.0", similars[0].Score)
	}
}

func TestSimilarity_SelfIsZero(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	seedRatings(t, s, [][3]any{{"u1", "i1", 5.0}})

	rctx := core.NewRecommendContext("cf", "u1")
	similars, err := (&Similarity{Store: s}).Process(ctx, rctx, []core.Entry{{Member: "u1"}})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(similars) != 1 || !floatEq(similars[0].Score, 0) {
		t.Errorf("similars = %v, want self at distance 0", similars)
	}
}

func TestCandidateItems_ExcludesRatedAndSelf(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	seedRatings(t, s, [][3]any{
		{"u1", "i1", 5.0}, {"u1", "i2", 3.0},
		{"u2", "i1", 4.0}, {"u2", "i2", 5.0}, {"u2", "i3", 2.0},
	})

	rctx := core.NewRecommendContext("cf", "u1")
	node := &CandidateItems{Store: s}
	// similars as produced by the similarity stage: target plus u2
	similars := []core.Entry{{Member: "u1", Score: 0}, {Member: "u2", Score: 1.58}}
	items, err := node.Process(ctx, rctx, similars)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 1 || items[0].Member != "i3" {
		t.Errorf("items = %v, want [i3]", items)
	}
}

func TestCandidateItems_OnlySelfSimilar(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	seedRatings(t, s, [][3]any{{"u1", "i1", 5.0}})

	rctx := core.NewRecommendContext("cf", "u1")
	items, err := (&CandidateItems{Store: s}).Process(ctx, rctx, []core.Entry{{Member: "u1"}})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %v, want empty", items)
	}
}

func TestEngine_EndToEndScenario(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	seedRatings(t, s, [][3]any{
		{"u1", "i1", 5.0}, {"u1", "i2", 3.0},
		{"u2", "i1", 4.0}, {"u2", "i2", 5.0}, {"u2", "i3", 2.0},
	})

	suggestions, err := NewEngine(s).Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// u2 shares {i1, i2}; only unrated item is i3; its sole rating is 2.0
	if len(suggestions) != 1 {
		t.Fatalf("suggestions = %v, want one entry", suggestions)
	}
	if suggestions[0].Member != "i3" || !floatEq(suggestions[0].Score, 2.0) {
		t.Errorf("suggestion = %v, want {i3 2.0}", suggestions[0])
	}
}

func TestEngine_UnratedOnly(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	seedRatings(t, s, [][3]any{
		{"u1", "i1", 5.0}, {"u1", "i2", 3.0},
		{"u2", "i1", 4.0}, {"u2", "i2", 5.0}, {"u2", "i3", 2.0}, {"u2", "i4", 4.0},
		{"u3", "i2", 3.0}, {"u3", "i4", 2.0}, {"u3", "i5", 5.0},
	})

	suggestions, err := NewEngine(s).Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	rated := map[string]bool{"i1": true, "i2": true}
	for _, sg := range suggestions {
		if rated[sg.Member] {
			t.Errorf("suggestion %s is already rated by target", sg.Member)
		}
	}
	if len(suggestions) == 0 {
		t.Error("expected at least one suggestion")
	}
}

func TestEngine_DescendingOrderWithTieBreak(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	seedRatings(t, s, [][3]any{
		{"u1", "i1", 5.0},
		{"u2", "i1", 4.0}, {"u2", "i3", 2.0}, {"u2", "i5", 2.0}, {"u2", "i4", 3.0},
	})

	suggestions, err := NewEngine(s).Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// i4 mean 3.0 first, then the 2.0 tie ordered by member id
	wantMembers := []string{"i4", "i3", "i5"}
	if len(suggestions) != len(wantMembers) {
		t.Fatalf("suggestions = %v, want %d entries", suggestions, len(wantMembers))
	}
	for i, m := range wantMembers {
		if suggestions[i].Member != m {
			t.Errorf("suggestions[%d].Member = %s, want %s", i, suggestions[i].Member, m)
		}
	}
}

func TestEngine_UnknownUser(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	seedRatings(t, s, [][3]any{{"u1", "i1", 5.0}})

	_, err := NewEngine(s).Recommend(ctx, "never_loaded")
	if !core.IsUnknownUser(err) {
		t.Errorf("Recommend() error = %v, want unknown user", err)
	}
}

func TestEngine_LonelyUserEmptyResult(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	// one rated item, no other user shares it: empty result, not an error
	seedRatings(t, s, [][3]any{
		{"u1", "i1", 5.0},
		{"u2", "i2", 3.0},
	})

	suggestions, err := NewEngine(s).Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("suggestions = %v, want empty", suggestions)
	}
}

func TestEngine_WeightedMeanOptIn(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	// u2 at rms sqrt(2.5) rates i4=4; u3 at rms 0 rates i4=2
	seedRatings(t, s, [][3]any{
		{"u1", "i1", 5.0}, {"u1", "i2", 3.0},
		{"u2", "i1", 4.0}, {"u2", "i2", 5.0}, {"u2", "i4", 4.0},
		{"u3", "i1", 5.0}, {"u3", "i2", 3.0}, {"u3", "i4", 2.0},
	})

	engine := NewEngine(s)
	plain, err := engine.Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(plain) != 1 || !floatEq(plain[0].Score, 3.0) {
		t.Errorf("unweighted suggestion = %v, want {i4 3.0}", plain)
	}

	engine.WeightBySimilarity = true
	weighted, err := engine.Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	w2 := 1 / (1 + math.Sqrt(2.5))
	want := (w2*4 + 1*2) / (w2 + 1)
	if len(weighted) != 1 || !floatEq(weighted[0].Score, want) {
		t.Errorf("weighted suggestion = %v, want score %v", weighted, want)
	}
}

func TestEngine_PostNodes(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	seedRatings(t, s, [][3]any{
		{"u1", "i1", 5.0},
		{"u2", "i1", 4.0}, {"u2", "i3", 2.0}, {"u2", "i4", 5.0}, {"u2", "i5", 4.0},
	})

	filter, err := NewExprFilter("score >= 4.0")
	if err != nil {
		t.Fatalf("NewExprFilter() error = %v", err)
	}
	engine := NewEngine(s)
	engine.Post = []pipeline.Node{filter, &TopN{N: 1}}

	suggestions, err := engine.Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Member != "i4" {
		t.Errorf("suggestions = %v, want [i4]", suggestions)
	}
}

func TestTopN(t *testing.T) {
	entries := []core.Entry{
		{Member: "a", Score: 3}, {Member: "b", Score: 2}, {Member: "c", Score: 1},
	}
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"truncate", 2, 2},
		{"no limit", 0, 3},
		{"larger than input", 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := (&TopN{N: tt.n}).Process(context.Background(), nil, entries)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("len(out) = %d, want %d", len(out), tt.want)
			}
		})
	}
}
