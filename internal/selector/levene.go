package selector

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"betweenstats/domain/compare"
)

// EqualVarianceAlpha is the significance threshold of the variance
// homogeneity test that decides between the pooled and the heteroscedastic
// parametric branch. Surfaced as a named constant so callers can override it
// per invocation.
const EqualVarianceAlpha = 0.05

// HomogeneityResult carries the outcome of the variance homogeneity test.
type HomogeneityResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	// EqualVariance is true when the test did not reject homogeneity at the
	// configured alpha. A degenerate (NaN) test counts as not rejected.
	EqualVariance bool `json:"equal_variance"`
}

// BrownForsythe runs the Brown-Forsythe variant of Levene's test: absolute
// deviations from the group median, compared with an F(k-1, N-k) reference.
// The median variant is the robust choice for skewed groups.
func BrownForsythe(groups []compare.Sample, alpha float64) HomogeneityResult {
	k := len(groups)
	n := 0
	for _, g := range groups {
		n += g.N()
	}

	zbars := make([]float64, k)
	sizes := make([]float64, k)
	grand := 0.0
	z := make([][]float64, k)
	for j, g := range groups {
		med, _ := stats.Median(g.Values)
		zj := make([]float64, g.N())
		sum := 0.0
		for i, x := range g.Values {
			zj[i] = math.Abs(x - med)
			sum += zj[i]
		}
		z[j] = zj
		zbars[j] = sum / float64(g.N())
		sizes[j] = float64(g.N())
		grand += sum
	}
	grand /= float64(n)

	between := 0.0
	within := 0.0
	for j := range groups {
		d := zbars[j] - grand
		between += sizes[j] * d * d
		for _, zij := range z[j] {
			e := zij - zbars[j]
			within += e * e
		}
	}

	w := (float64(n-k) / float64(k-1)) * between / within
	fDist := distuv.F{D1: float64(k - 1), D2: float64(n - k)}
	p := 1 - fDist.CDF(w)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	return HomogeneityResult{
		Statistic: w,
		PValue:    p,
		// NaN compares false, so a degenerate test never rejects.
		EqualVariance: !(p < alpha),
	}
}
