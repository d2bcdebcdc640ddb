package stattest

import (
	"math"

	"betweenstats/domain/compare"
)

// studentT computes the pooled-variance two-sample t-test. A zero pooled
// variance yields an Inf statistic when the means differ and NaN when they
// coincide; both propagate untouched.
func studentT(g1, g2 compare.Sample) *compare.TestResult {
	n1, n2 := float64(g1.N()), float64(g2.N())
	m1, v1 := meanVar(g1.Values)
	m2, v2 := meanVar(g2.Values)

	df := n1 + n2 - 2
	pooled := ((n1-1)*v1 + (n2-1)*v2) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	t := (m1 - m2) / se

	effect, effectName := pooledEffect(m1, m2, pooled, int(n1+n2))

	return &compare.TestResult{
		Statistic:  t,
		DF:         compare.DegreesOfFreedom{Primary: df},
		PValue:     tTwoSidedP(t, df),
		EffectSize: effect,
		EffectName: effectName,
	}
}

// welchT computes the separate-variance t-test with Welch-Satterthwaite
// degrees of freedom. The fractional dof is kept as-is.
func welchT(g1, g2 compare.Sample) *compare.TestResult {
	n1, n2 := float64(g1.N()), float64(g2.N())
	m1, v1 := meanVar(g1.Values)
	m2, v2 := meanVar(g2.Values)

	se := math.Sqrt(v1/n1 + v2/n2)
	t := (m1 - m2) / se
	df := math.Pow(v1/n1+v2/n2, 2) /
		(math.Pow(v1/n1, 2)/(n1-1) + math.Pow(v2/n2, 2)/(n2-1))

	pooled := ((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2)
	effect, effectName := pooledEffect(m1, m2, pooled, int(n1+n2))

	return &compare.TestResult{
		Statistic:  t,
		DF:         compare.DegreesOfFreedom{Primary: df},
		PValue:     tTwoSidedP(t, df),
		EffectSize: effect,
		EffectName: effectName,
	}
}

// pairedT runs the one-sample t-test on the per-pair differences. The groups
// are equal length by the time they reach the engine.
func pairedT(g1, g2 compare.Sample) *compare.TestResult {
	n := g1.N()
	diffs := make([]float64, n)
	for i := range diffs {
		diffs[i] = g1.Values[i] - g2.Values[i]
	}
	md, vd := meanVar(diffs)

	df := float64(n - 1)
	t := md / math.Sqrt(vd/float64(n))

	return &compare.TestResult{
		Statistic:  t,
		DF:         compare.DegreesOfFreedom{Primary: df},
		PValue:     tTwoSidedP(t, df),
		EffectSize: md / math.Sqrt(vd),
		EffectName: "dz",
	}
}

// pooledEffect returns Cohen's d on the pooled standard deviation, switching
// to the Hedges-corrected g below the small-sample threshold.
func pooledEffect(m1, m2, pooledVar float64, totalN int) (float64, string) {
	d := (m1 - m2) / math.Sqrt(pooledVar)
	if totalN < smallSampleN {
		correction := 1 - 3/(4*float64(totalN)-9)
		return d * correction, "g"
	}
	return d, "d"
}
