package recommend

import (
	"testing"

	"github.com/cmarsiglia/habitai/internal/domain/ranking"
)

func heuristicResult(name string, score float64) ranking.Result {
	return ranking.NewHeuristic(row(name, "Cali", 1, 1, 1, 1), score, nil)
}

func TestRank_SortsDescendingAndTruncates(t *testing.T) {
	in := []ranking.Result{
		heuristicResult("a", 1),
		heuristicResult("b", 3),
		heuristicResult("c", 2),
		heuristicResult("d", 5),
	}
	got := names(rank(in, 3))
	want := []string{"d", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRank_StableOnTies(t *testing.T) {
	in := []ranking.Result{
		heuristicResult("x", 2),
		heuristicResult("y", 2),
		heuristicResult("z", 4),
		heuristicResult("w", 2),
	}
	got := names(rank(in, 8))
	want := []string{"z", "x", "y", "w"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRank_Empty(t *testing.T) {
	if got := rank(nil, 8); len(got) != 0 {
		t.Fatalf("expected 0 results, got %d", len(got))
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{4.256, 4.26},
		{4.254, 4.25},
		{3, 3},
		{2.005001, 2.01},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
