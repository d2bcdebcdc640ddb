package stattest

import (
	"math"

	"betweenstats/domain/compare"
)

// sumsOfSquares decomposes total variation into between- and within-group
// parts over the grand mean.
func sumsOfSquares(groups []compare.Sample) (ssBetween, ssWithin float64) {
	grandSum, grandN := 0.0, 0.0
	means := make([]float64, len(groups))
	for j, g := range groups {
		m, _ := meanVar(g.Values)
		means[j] = m
		grandSum += m * float64(g.N())
		grandN += float64(g.N())
	}
	grand := grandSum / grandN

	for j, g := range groups {
		d := means[j] - grand
		ssBetween += float64(g.N()) * d * d
		for _, x := range g.Values {
			e := x - means[j]
			ssWithin += e * e
		}
	}
	return ssBetween, ssWithin
}

// oneWayANOVA computes the classic equal-variance F test,
// F = MS_between / MS_within with (k-1, N-k) degrees of freedom.
func oneWayANOVA(groups []compare.Sample) *compare.TestResult {
	k := float64(len(groups))
	n := float64(totalObs(groups))
	ssb, ssw := sumsOfSquares(groups)

	dfBetween := k - 1
	dfWithin := n - k
	f := (ssb / dfBetween) / (ssw / dfWithin)

	return &compare.TestResult{
		Statistic:  f,
		DF:         compare.DegreesOfFreedom{Primary: dfBetween, Within: dfWithin, IsPair: true},
		PValue:     fUpperP(f, dfBetween, dfWithin),
		EffectSize: ssb / (ssb + ssw),
		EffectName: "eta2",
	}
}

// welchANOVA computes the heteroscedastic F test with variance-weighted group
// means and the Welch-adjusted fractional denominator dof.
func welchANOVA(groups []compare.Sample) *compare.TestResult {
	k := float64(len(groups))

	weightSum := 0.0
	weights := make([]float64, len(groups))
	means := make([]float64, len(groups))
	for j, g := range groups {
		m, v := meanVar(g.Values)
		means[j] = m
		weights[j] = float64(g.N()) / v
		weightSum += weights[j]
	}

	weightedMean := 0.0
	for j := range groups {
		weightedMean += weights[j] * means[j] / weightSum
	}

	numerator := 0.0
	lambda := 0.0
	for j, g := range groups {
		d := means[j] - weightedMean
		numerator += weights[j] * d * d
		frac := 1 - weights[j]/weightSum
		lambda += frac * frac / float64(g.N()-1)
	}
	numerator /= k - 1

	denominator := 1 + 2*(k-2)/(k*k-1)*lambda
	f := numerator / denominator

	dfBetween := k - 1
	dfWithin := (k*k - 1) / (3 * lambda)

	ssb, ssw := sumsOfSquares(groups)

	return &compare.TestResult{
		Statistic:  f,
		DF:         compare.DegreesOfFreedom{Primary: dfBetween, Within: dfWithin, IsPair: true},
		PValue:     fUpperP(f, dfBetween, dfWithin),
		EffectSize: ssb / (ssb + ssw),
		EffectName: "eta2",
	}
}

// kruskalWallis computes the H statistic on midranks across k groups with the
// tie correction applied, referred to a chi-squared with k-1 dof.
func kruskalWallis(groups []compare.Sample) *compare.TestResult {
	k := float64(len(groups))
	n := float64(totalObs(groups))

	combined := make([]float64, 0, int(n))
	for _, g := range groups {
		combined = append(combined, g.Values...)
	}
	ranks, tieSum := midranks(combined)

	h := 0.0
	offset := 0
	for _, g := range groups {
		rankSum := 0.0
		for i := 0; i < g.N(); i++ {
			rankSum += ranks[offset+i]
		}
		offset += g.N()
		h += rankSum * rankSum / float64(g.N())
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	if correction := 1 - tieSum/(n*n*n-n); correction > 0 {
		h /= correction
	} else {
		// Every observation tied: the rank distribution is degenerate.
		h = math.NaN()
	}

	df := k - 1
	return &compare.TestResult{
		Statistic:  h,
		DF:         compare.DegreesOfFreedom{Primary: df},
		PValue:     chiSquaredUpperP(h, df),
		EffectSize: (h - k + 1) / (n - k),
		EffectName: "eps2",
	}
}
