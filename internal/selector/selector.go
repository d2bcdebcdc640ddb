// Package selector maps the validated (group count, paired, approach) tuple
// to a concrete test variant. The mapping is a finite decision table over a
// closed set of tests; combinations outside the table are rejected at this
// boundary instead of falling through to undefined behavior.
package selector

import (
	"betweenstats/domain/compare"
	"betweenstats/internal/errors"
)

// comboKey is the tagged configuration tuple the table is indexed by. Group
// counts collapse to two classes: exactly two groups, or three and more.
type comboKey struct {
	multiGroup bool
	paired     bool
	approach   compare.Approach
}

// resolver turns a table cell into a test identifier. The homogeneity result
// is only consulted by the parametric cells.
type resolver func(h HomogeneityResult) compare.TestID

var decisionTable = map[comboKey]resolver{
	{false, false, compare.Parametric}: func(h HomogeneityResult) compare.TestID {
		if h.EqualVariance {
			return compare.TestStudentT
		}
		return compare.TestWelchT
	},
	{false, false, compare.Nonparametric}: fixed(compare.TestMannWhitneyU),
	{false, false, compare.Robust}:        fixed(compare.TestYuenT),
	{false, true, compare.Parametric}:     fixed(compare.TestPairedT),
	{false, true, compare.Nonparametric}:  fixed(compare.TestWilcoxonSignedRank),
	{true, false, compare.Parametric}: func(h HomogeneityResult) compare.TestID {
		if h.EqualVariance {
			return compare.TestOneWayANOVA
		}
		return compare.TestWelchANOVA
	},
	{true, false, compare.Nonparametric}: fixed(compare.TestKruskalWallis),
	// Absent cells are unsupported by design: robust paired, robust k>=3,
	// and any paired comparison over three or more groups (repeated-measures
	// ANOVA / Friedman reserved, not selectable yet).
}

func fixed(id compare.TestID) resolver {
	return func(HomogeneityResult) compare.TestID { return id }
}

// Select picks the test for the given groups and declared assumptions. The
// groups must already have passed partition validation. alpha is the
// equal-variance significance threshold, normally EqualVarianceAlpha.
func Select(groups []compare.Sample, paired bool, approach compare.Approach, trim, alpha float64) (compare.TestSpec, HomogeneityResult, error) {
	var none HomogeneityResult

	if !approach.Valid() {
		return compare.TestSpec{}, none, errors.Schemaf("unknown approach %q", approach)
	}
	if trim < 0 || trim >= 0.5 {
		return compare.TestSpec{}, none, errors.Schemaf(
			"trim fraction must be in [0, 0.5), got %g", trim)
	}

	k := len(groups)
	key := comboKey{multiGroup: k > 2, paired: paired, approach: approach}
	resolve, ok := decisionTable[key]
	if !ok {
		return compare.TestSpec{}, none, errors.UnsupportedCombination(k, paired, string(approach))
	}

	var hom HomogeneityResult
	if approach == compare.Parametric && !paired {
		hom = BrownForsythe(groups, alpha)
	}

	spec := compare.TestSpec{
		ID:       resolve(hom),
		Paired:   paired,
		Approach: approach,
	}
	if spec.ID == compare.TestYuenT {
		spec.Trim = trim
	}
	return spec, hom, nil
}
