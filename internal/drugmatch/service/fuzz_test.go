package service

import (
	"math"
	"testing"
)

func TestScoreSelfMatch(t *testing.T) {
	for _, q := range []string{"히아레인 0.1%", "타리비드안연고", "Ocuvite", "a"} {
		n := NormalizeName(q)
		if n == "" {
			t.Fatalf("unexpected empty normalization for %q", q)
		}
		if got := Score(n, n); got != 100 {
			t.Fatalf("Score(%q, %q) = %d, want 100", n, n, got)
		}
	}
}

func TestScoreEmpty(t *testing.T) {
	if Score("", "히아레인") != 0 || Score("히아레인", "") != 0 {
		t.Fatalf("empty side must score 0")
	}
}

func TestScoreFavorsContainment(t *testing.T) {
	contained := Score("히아레인", "히아레인01")
	other := Score("히아레인", "타리비드")
	if contained < 85 {
		t.Fatalf("containment score too low: %d", contained)
	}
	if contained <= other {
		t.Fatalf("containment (%d) should beat unrelated (%d)", contained, other)
	}
}

func TestScoreTokenOrder(t *testing.T) {
	if got := Score("히아레인 0.1", "0.1 히아레인"); got < 95 {
		t.Fatalf("reordered tokens scored %d", got)
	}
	if got := tokenSortRatio("b a", "a b"); got != 100 {
		t.Fatalf("tokenSortRatio = %v", got)
	}
	if got := tokenSetRatio("히아레인 점안액", "히아레인 점안액 0.1"); got != 100 {
		t.Fatalf("subset token set should score 100, got %v", got)
	}
}

func TestRatio(t *testing.T) {
	if got := ratio("abc", "abd"); math.Abs(got-66.6667) > 0.01 {
		t.Fatalf("ratio = %v", got)
	}
	if got := ratio("", ""); got != 100 {
		t.Fatalf("ratio of empties = %v", got)
	}
}

func TestPartialRatio(t *testing.T) {
	if got := partialRatio("abc", "xxabcxx"); got != 100 {
		t.Fatalf("exact window = %v", got)
	}
	if got := partialRatio("xxabcxx", "abc"); got != 100 {
		t.Fatalf("argument order must not matter, got %v", got)
	}
	got := partialRatio("abd", "xxabcxx")
	if got < 60 || got > 70 {
		t.Fatalf("near window = %v", got)
	}
	if got := partialRatio("", "abc"); got != 0 {
		t.Fatalf("empty = %v", got)
	}
}
