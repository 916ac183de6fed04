package rating

import (
	"context"
	"strings"
	"testing"

	"github.com/rushteam/simkit/core"
	"github.com/rushteam/simkit/store"
)

func TestRecorder_TwoSidedSymmetry(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	rec := NewRecorder(s, "cf")

	if err := rec.Record(ctx, "u1", "i1", 4.5); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	// by-user and by-item views carry the same score
	userSide, err := s.ZScore(ctx, core.UserItemsKey("cf", "u1"), "i1")
	if err != nil {
		t.Fatalf("ZScore(by-user) error = %v", err)
	}
	itemSide, err := s.ZScore(ctx, core.ItemScoresKey("cf", "i1"), "u1")
	if err != nil {
		t.Fatalf("ZScore(by-item) error = %v", err)
	}
	if userSide != 4.5 || itemSide != 4.5 {
		t.Errorf("scores = (%v, %v), want (4.5, 4.5)", userSide, itemSide)
	}
}

func TestRecorder_IdempotentUpsert(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	rec := NewRecorder(s, "cf")

	for i := 0; i < 2; i++ {
		if err := rec.Record(ctx, "u1", "i1", 3); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	items, err := rec.UserItems(ctx, "u1")
	if err != nil {
		t.Fatalf("UserItems() error = %v", err)
	}
	if len(items) != 1 || items[0].Score != 3 {
		t.Errorf("items = %v, want single entry with score 3", items)
	}

	// a later rating for the same pair overwrites
	if err := rec.Record(ctx, "u1", "i1", 5); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	scores, err := rec.ItemScores(ctx, "i1")
	if err != nil {
		t.Fatalf("ItemScores() error = %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 5 {
		t.Errorf("scores = %v, want single entry with score 5", scores)
	}
}

func TestLoadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantN   int
		wantErr bool
	}{
		{
			name:  "header plus rows",
			input: "user_id,item_id,rating\nu1,i1,5\nu2,i1,3.5\n",
			wantN: 2,
		},
		{
			name:  "header only",
			input: "user_id,item_id,rating\n",
			wantN: 0,
		},
		{
			name:    "wrong field count",
			input:   "user_id,item_id,rating\nu1,i1\n",
			wantN:   0,
			wantErr: true,
		},
		{
			name:    "non-numeric rating",
			input:   "user_id,item_id,rating\nu1,i1,five\n",
			wantN:   0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := store.NewMemoryStore()
			defer s.Close()
			rec := NewRecorder(s, "cf")

			n, err := LoadCSV(ctx, strings.NewReader(tt.input), rec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("LoadCSV() error = nil, want invalid input")
				}
				if !core.IsInvalidInput(err) {
					t.Errorf("LoadCSV() error = %v, want INVALID_INPUT", err)
				}
			} else if err != nil {
				t.Fatalf("LoadCSV() error = %v", err)
			}
			if n != tt.wantN {
				t.Errorf("LoadCSV() n = %d, want %d", n, tt.wantN)
			}
		})
	}
}

func TestLoadCSV_FractionalPrecision(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	rec := NewRecorder(s, "cf")

	// fractional ratings survive ingestion untruncated
	if _, err := LoadCSV(ctx, strings.NewReader("u,i,r\nu1,i1,3.75\n"), rec); err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	score, err := s.ZScore(ctx, core.UserItemsKey("cf", "u1"), "i1")
	if err != nil {
		t.Fatalf("ZScore() error = %v", err)
	}
	if score != 3.75 {
		t.Errorf("score = %v, want 3.75", score)
	}
}

func TestRecorder_Reset(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	rec := NewRecorder(s, "cf")

	rec.Record(ctx, "u1", "i1", 5)
	if err := rec.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	ok, _ := s.Exists(ctx, core.UserItemsKey("cf", "u1"))
	if ok {
		t.Error("by-user set still exists after Reset")
	}
}
