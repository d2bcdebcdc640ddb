package stattest

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"betweenstats/domain/compare"
	"betweenstats/internal/errors"
)

// trimmedMoments returns the trimmed mean, the Winsorized sample variance and
// the effective (post-trim) size for one group. trim is the per-tail
// fraction; g = floor(trim * n) observations are cut from each tail for the
// mean and capped at the cut points for the variance.
func trimmedMoments(values []float64, trim float64) (tmean, winVar float64, h int) {
	n := len(values)
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	g := int(trim * float64(n))
	h = n - 2*g

	sum := 0.0
	for _, x := range sorted[g : n-g] {
		sum += x
	}
	tmean = sum / float64(h)

	winsorized := make([]float64, n)
	copy(winsorized, sorted)
	for i := 0; i < g; i++ {
		winsorized[i] = sorted[g]
		winsorized[n-1-i] = sorted[n-1-g]
	}
	winVar, _ = stats.SampleVariance(winsorized)
	return tmean, winVar, h
}

// yuenT computes Yuen's trimmed two-sample t-test: a Welch-style statistic on
// trimmed means with Winsorized variances, and the trimmed-sample
// Satterthwaite analogue for the fractional dof.
func yuenT(g1, g2 compare.Sample, trim float64) (*compare.TestResult, error) {
	tm1, wv1, h1 := trimmedMoments(g1.Values, trim)
	tm2, wv2, h2 := trimmedMoments(g2.Values, trim)
	if h1 < 2 || h2 < 2 {
		return nil, errors.InsufficientDataf(
			"trim fraction %g leaves fewer than 2 observations per group", trim)
	}

	d1 := float64(g1.N()-1) * wv1 / (float64(h1) * float64(h1-1))
	d2 := float64(g2.N()-1) * wv2 / (float64(h2) * float64(h2-1))

	t := (tm1 - tm2) / math.Sqrt(d1+d2)
	df := (d1 + d2) * (d1 + d2) /
		(d1*d1/float64(h1-1) + d2*d2/float64(h2-1))

	return &compare.TestResult{
		Statistic:  t,
		DF:         compare.DegreesOfFreedom{Primary: df},
		PValue:     tTwoSidedP(t, df),
		EffectSize: (tm1 - tm2) / math.Sqrt((wv1+wv2)/2),
		EffectName: "dR",
	}, nil
}
