package stattest

import (
	"math"
	"testing"

	"betweenstats/domain/compare"
)

func TestMidranks(t *testing.T) {
	ranks, tieSum := midranks([]float64{3, 1, 4, 1, 5})
	want := []float64{3, 1.5, 4, 1.5, 5}
	for i := range want {
		if ranks[i] != want[i] {
			t.Errorf("rank[%d] = %g, want %g", i, ranks[i], want[i])
		}
	}
	// One run of two ties: 2^3 - 2.
	if tieSum != 6 {
		t.Errorf("tieSum = %g, want 6", tieSum)
	}

	_, tieSum = midranks([]float64{7, 7, 7})
	if tieSum != 24 {
		t.Errorf("tieSum for an all-tied column = %g, want 24", tieSum)
	}
}

func TestMannWhitneyUFullSeparation(t *testing.T) {
	g1 := compare.Sample{Label: "low", Values: []float64{1, 2, 3, 4}}
	g2 := compare.Sample{Label: "high", Values: []float64{5, 6, 7, 8}}

	res := mannWhitneyU(g1, g2)
	if res.Statistic != 0 {
		t.Errorf("U = %g, want 0 for fully separated groups", res.Statistic)
	}
	if res.EffectSize != 1 {
		t.Errorf("rank-biserial r = %g, want 1", res.EffectSize)
	}
	// Continuity-corrected normal approximation: z = -7.5/sqrt(12).
	approx(t, "p", res.PValue, 0.030382, 5e-5)
}

func TestMannWhitneyUSymmetry(t *testing.T) {
	g1 := compare.Sample{Label: "a", Values: []float64{1.2, 3.4, 2.2, 5.1, 0.4}}
	g2 := compare.Sample{Label: "b", Values: []float64{2.1, 4.4, 6.0, 1.9}}

	fwd := mannWhitneyU(g1, g2)
	rev := mannWhitneyU(g2, g1)

	n1n2 := float64(g1.N() * g2.N())
	approx(t, "U1+U2", fwd.Statistic+rev.Statistic, n1n2, 1e-12)
	approx(t, "p symmetry", fwd.PValue, rev.PValue, 1e-12)
	approx(t, "r antisymmetry", fwd.EffectSize, -rev.EffectSize, 1e-12)
}

func TestMannWhitneyUHandlesTies(t *testing.T) {
	g1 := compare.Sample{Label: "a", Values: []float64{1, 2, 2, 3}}
	g2 := compare.Sample{Label: "b", Values: []float64{2, 3, 3, 4}}

	res := mannWhitneyU(g1, g2)
	if math.IsNaN(res.PValue) || res.PValue <= 0 || res.PValue > 1 {
		t.Errorf("tied data p = %g, want a value in (0,1]", res.PValue)
	}
}

func TestWilcoxonSignedRankUniformShift(t *testing.T) {
	g1 := compare.Sample{Label: "pre", Values: []float64{1, 2, 3, 4, 5}}
	g2 := compare.Sample{Label: "post", Values: []float64{2, 3, 4, 5, 6}}

	res := wilcoxonSignedRank(g1, g2)
	if res.Statistic != 0 {
		t.Errorf("W+ = %g, want 0 when every difference is negative", res.Statistic)
	}
	if res.EffectSize != -1 {
		t.Errorf("effect = %g, want -1", res.EffectSize)
	}
	if res.PValue <= 0 || res.PValue >= 0.05 {
		t.Errorf("p = %g, want a small positive value", res.PValue)
	}
}

func TestWilcoxonSignedRankMixedSigns(t *testing.T) {
	// Differences 1, -2, 3, -4, 5: positive ranks 1, 3, 5 sum to 9.
	g1 := compare.Sample{Label: "pre", Values: []float64{1, 0, 3, 0, 5}}
	g2 := compare.Sample{Label: "post", Values: []float64{0, 2, 0, 4, 0}}

	res := wilcoxonSignedRank(g1, g2)
	if res.Statistic != 9 {
		t.Errorf("W+ = %g, want 9", res.Statistic)
	}
	approx(t, "effect", res.EffectSize, (9.0-6.0)/15.0, 1e-12)
}

func TestWilcoxonSignedRankDropsZeroDifferences(t *testing.T) {
	g1 := compare.Sample{Label: "pre", Values: []float64{1, 2, 3, 4}}
	g2 := compare.Sample{Label: "post", Values: []float64{1, 2, 5, 7}}

	res := wilcoxonSignedRank(g1, g2)
	// Only two non-zero differences remain, both negative.
	if res.Statistic != 0 {
		t.Errorf("W+ = %g, want 0", res.Statistic)
	}
}

func TestWilcoxonSignedRankAllTied(t *testing.T) {
	g := compare.Sample{Label: "x", Values: []float64{1, 2, 3}}
	res := wilcoxonSignedRank(g, g)
	if !math.IsNaN(res.Statistic) || !math.IsNaN(res.PValue) {
		t.Errorf("all-tied pairs should be degenerate, got W+=%g p=%g", res.Statistic, res.PValue)
	}
}
