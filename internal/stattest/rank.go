package stattest

import (
	"math"
	"sort"

	"betweenstats/domain/compare"
)

// midranks assigns 1-based ranks with ties sharing their average rank.
// The returned tieSum is sum(t^3 - t) over tie runs, used by the variance
// corrections of the rank tests.
func midranks(values []float64) (ranks []float64, tieSum float64) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		avg := (float64(i+1) + float64(j+1)) / 2
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		if t := float64(j - i + 1); t > 1 {
			tieSum += t*t*t - t
		}
		i = j + 1
	}
	return ranks, tieSum
}

// mannWhitneyU computes the two-sample rank-sum test. The reported statistic
// is U of the first group; the p-value uses the tie-corrected normal
// approximation with a 0.5 continuity correction.
func mannWhitneyU(g1, g2 compare.Sample) *compare.TestResult {
	n1, n2 := float64(g1.N()), float64(g2.N())
	combined := make([]float64, 0, g1.N()+g2.N())
	combined = append(combined, g1.Values...)
	combined = append(combined, g2.Values...)

	ranks, tieSum := midranks(combined)
	r1 := 0.0
	for i := 0; i < g1.N(); i++ {
		r1 += ranks[i]
	}
	u1 := r1 - n1*(n1+1)/2

	total := n1 + n2
	mu := n1 * n2 / 2
	variance := n1 * n2 / 12 * ((total + 1) - tieSum/(total*(total-1)))
	z := continuityZ(u1, mu, math.Sqrt(variance))

	return &compare.TestResult{
		Statistic:  u1,
		PValue:     normalTwoSidedP(z),
		EffectSize: 1 - 2*u1/(n1*n2),
		EffectName: "r",
	}
}

// wilcoxonSignedRank computes the paired signed-rank test on the per-pair
// differences. Zero differences are dropped before ranking; the reported
// statistic is W+, the positive rank sum.
func wilcoxonSignedRank(g1, g2 compare.Sample) *compare.TestResult {
	absDiffs := make([]float64, 0, g1.N())
	signs := make([]float64, 0, g1.N())
	for i := 0; i < g1.N(); i++ {
		d := g1.Values[i] - g2.Values[i]
		if d == 0 {
			continue
		}
		absDiffs = append(absDiffs, math.Abs(d))
		signs = append(signs, math.Copysign(1, d))
	}

	nr := float64(len(absDiffs))
	if nr == 0 {
		// All pairs tied: the test is degenerate.
		return &compare.TestResult{
			Statistic:  math.NaN(),
			PValue:     math.NaN(),
			EffectSize: math.NaN(),
			EffectName: "r",
		}
	}

	ranks, tieSum := midranks(absDiffs)
	wPlus := 0.0
	for i, r := range ranks {
		if signs[i] > 0 {
			wPlus += r
		}
	}
	totalRank := nr * (nr + 1) / 2
	wMinus := totalRank - wPlus

	mu := nr * (nr + 1) / 4
	variance := nr*(nr+1)*(2*nr+1)/24 - tieSum/48
	z := continuityZ(wPlus, mu, math.Sqrt(variance))

	return &compare.TestResult{
		Statistic:  wPlus,
		PValue:     normalTwoSidedP(z),
		EffectSize: (wPlus - wMinus) / totalRank,
		EffectName: "r",
	}
}

// continuityZ standardizes a rank statistic with a 0.5 continuity correction
// toward the mean. A zero spread yields NaN, never a division panic.
func continuityZ(stat, mu, sigma float64) float64 {
	d := stat - mu
	switch {
	case d > 0:
		d -= 0.5
	case d < 0:
		d += 0.5
	}
	return d / sigma
}
