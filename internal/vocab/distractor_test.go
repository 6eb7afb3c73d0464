package vocab

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func makePool(n int) []StudyItem {
	pool := make([]StudyItem, n)
	for i := range pool {
		pool[i] = StudyItem{ID: fmt.Sprintf("item-%d", i), PrimaryText: fmt.Sprintf("w%d", i)}
	}
	return pool
}

func testSampler() *Sampler {
	return NewSampler(rand.New(rand.NewPCG(1, 2)))
}

func TestSample_OptionCount(t *testing.T) {
	s := testSampler()
	for others := 0; others <= 6; others++ {
		pool := makePool(others + 1)
		current := pool[0]

		opts := s.Sample(current, pool)

		want := min(MaxDistractors, others) + 1
		if len(opts) != want {
			t.Errorf("others=%d: got %d options, want %d", others, len(opts), want)
		}
	}
}

func TestSample_OnlyCurrent(t *testing.T) {
	s := testSampler()
	current := StudyItem{ID: "a"}

	opts := s.Sample(current, []StudyItem{current})
	if len(opts) != 1 || opts[0].ID != "a" {
		t.Errorf("expected only current, got %+v", opts)
	}

	opts = s.Sample(current, nil)
	if len(opts) != 1 || opts[0].ID != "a" {
		t.Errorf("expected only current for nil pool, got %+v", opts)
	}
}

func TestSample_ContainsCurrentOnceAndNoDuplicates(t *testing.T) {
	s := testSampler()
	pool := makePool(10)
	current := pool[4]

	for i := 0; i < 200; i++ {
		opts := s.Sample(current, pool)
		seen := make(map[string]bool)
		currentCount := 0
		for _, o := range opts {
			if seen[o.ID] {
				t.Fatalf("duplicate option %q in %+v", o.ID, opts)
			}
			seen[o.ID] = true
			if o.ID == current.ID {
				currentCount++
			}
		}
		if currentCount != 1 {
			t.Fatalf("current appears %d times", currentCount)
		}
	}
}

func TestSample_DoesNotMutatePool(t *testing.T) {
	s := testSampler()
	pool := makePool(6)
	before := make([]StudyItem, len(pool))
	copy(before, pool)

	s.Sample(pool[0], pool)

	for i := range pool {
		if pool[i] != before[i] {
			t.Fatalf("pool mutated at %d: %+v != %+v", i, pool[i], before[i])
		}
	}
}

func TestSample_Reshuffles(t *testing.T) {
	s := testSampler()
	pool := makePool(8)
	current := pool[0]

	positions := make(map[int]bool)
	distractors := make(map[string]bool)
	for i := 0; i < 200; i++ {
		opts := s.Sample(current, pool)
		for idx, o := range opts {
			if o.ID == current.ID {
				positions[idx] = true
			} else {
				distractors[o.ID] = true
			}
		}
	}
	if len(positions) != 4 {
		t.Errorf("current landed in %d distinct slots, want 4", len(positions))
	}
	if len(distractors) != 7 {
		t.Errorf("sampled %d distinct distractors, want 7", len(distractors))
	}
}
