// Package stattest computes the statistic, degrees of freedom, p-value and
// effect size for the test variant chosen by the selector.
//
// Numeric edge cases follow IEEE semantics: zero-variance groups produce Inf
// or NaN statistics which are surfaced unchanged, while finite p-values are
// clamped to [0,1] to absorb floating-point overshoot from the reference
// distribution CDFs. There are no retries here; every computation is a pure
// function of its inputs.
package stattest

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"betweenstats/domain/compare"
	"betweenstats/internal/errors"
)

// smallSampleN is the total sample size below which the pooled Cohen's d is
// reported with the Hedges small-sample correction applied.
const smallSampleN = 50

// Run computes the selected test over the validated group samples.
func Run(spec compare.TestSpec, groups []compare.Sample) (*compare.TestResult, error) {
	var res *compare.TestResult
	var err error

	switch spec.ID {
	case compare.TestStudentT:
		res = studentT(groups[0], groups[1])
	case compare.TestWelchT:
		res = welchT(groups[0], groups[1])
	case compare.TestPairedT:
		res = pairedT(groups[0], groups[1])
	case compare.TestMannWhitneyU:
		res = mannWhitneyU(groups[0], groups[1])
	case compare.TestWilcoxonSignedRank:
		res = wilcoxonSignedRank(groups[0], groups[1])
	case compare.TestYuenT:
		res, err = yuenT(groups[0], groups[1], spec.Trim)
	case compare.TestOneWayANOVA:
		res = oneWayANOVA(groups)
	case compare.TestWelchANOVA:
		res = welchANOVA(groups)
	case compare.TestKruskalWallis:
		res = kruskalWallis(groups)
	default:
		err = errors.New(errors.CodeInternalError, "unknown test id "+string(spec.ID))
	}
	if err != nil {
		return nil, err
	}

	res.Test = spec.ID
	res.TestName = spec.ID.Name()
	res.Family = spec.ID.Family()
	res.NObs = totalObs(groups)
	return res, nil
}

func totalObs(groups []compare.Sample) int {
	n := 0
	for _, g := range groups {
		n += g.N()
	}
	return n
}

func meanVar(xs []float64) (mean, variance float64) {
	mean, _ = stats.Mean(xs)
	variance, _ = stats.SampleVariance(xs)
	return mean, variance
}

// clampP bounds a finite p-value to [0,1]. NaN passes through so degenerate
// tests stay visibly degenerate.
func clampP(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// tTwoSidedP is the two-sided p-value from a Student's t reference with df
// degrees of freedom.
func tTwoSidedP(t, df float64) float64 {
	if math.IsNaN(t) || math.IsNaN(df) || df <= 0 {
		return math.NaN()
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return clampP(2 * dist.CDF(-math.Abs(t)))
}

// fUpperP is the upper-tail p-value from an F(d1, d2) reference.
func fUpperP(f, d1, d2 float64) float64 {
	if math.IsNaN(f) || math.IsNaN(d1) || math.IsNaN(d2) || d1 <= 0 || d2 <= 0 {
		return math.NaN()
	}
	if math.IsInf(f, 1) {
		return 0
	}
	if f < 0 {
		return 1
	}
	dist := distuv.F{D1: d1, D2: d2}
	return clampP(1 - dist.CDF(f))
}

// chiSquaredUpperP is the upper-tail p-value from a chi-squared reference.
func chiSquaredUpperP(x, df float64) float64 {
	if math.IsNaN(x) || math.IsNaN(df) || df <= 0 {
		return math.NaN()
	}
	if math.IsInf(x, 1) {
		return 0
	}
	dist := distuv.ChiSquared{K: df}
	return clampP(1 - dist.CDF(x))
}

// normalTwoSidedP is the two-sided p-value of a standard normal z score.
func normalTwoSidedP(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return clampP(2 * dist.CDF(-math.Abs(z)))
}
