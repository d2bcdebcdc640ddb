// Package format renders TestResult values into the fixed annotation
// grammar. It performs string construction only; every number it prints was
// computed upstream, including NaN and Inf values which are rendered
// literally.
package format

import (
	"fmt"
	"math"
	"strings"

	"betweenstats/domain/compare"
)

// Annotation renders the one-line annotation for a result:
//
//	t_{Student}(42) = 2.14, p = 0.0391, n_obs = 50
//	F(2, 94.32) = 10.72, p = 0.0001, n_obs = 150
//	U = 12.00, p = 0.0304, n_obs = 10
//
// Statistics use two decimal places, p-values four. Integral degrees of
// freedom print without decimals, fractional ones with two.
func Annotation(r *compare.TestResult) string {
	var head string
	switch r.Family {
	case compare.FamilyANOVA:
		head = fmt.Sprintf("F(%s, %s)", df(r.DF.Primary), df(r.DF.Within))
	case compare.FamilyRank:
		head = statSymbol(r.Test)
	default:
		head = fmt.Sprintf("t_{%s}(%s)", tFamilyToken(r.Test), df(r.DF.Primary))
	}
	return fmt.Sprintf("%s = %.2f, p = %.4f, n_obs = %d", head, r.Statistic, r.PValue, r.NObs)
}

// Summary renders a short multi-line report of the performed test.
func Summary(r *compare.TestResult, groupCount int) string {
	var b strings.Builder
	b.WriteString("Between stats comparison\n\n")
	if r.Family == compare.FamilyANOVA || r.Test == compare.TestKruskalWallis {
		fmt.Fprintf(&b, "Test: %s with %d groups\n", r.TestName, groupCount)
	} else {
		fmt.Fprintf(&b, "Test: %s\n", r.TestName)
	}
	b.WriteString(Annotation(r))
	if r.EffectName != "" {
		fmt.Fprintf(&b, "\nEffect size: %s = %.3f", r.EffectName, r.EffectSize)
	}
	return b.String()
}

// tFamilyToken is the subscript of the t-family annotation. The paired test
// is a Student t on the per-pair differences and keeps the Student label.
func tFamilyToken(id compare.TestID) string {
	switch id {
	case compare.TestWelchT:
		return "Welch"
	case compare.TestYuenT:
		return "Yuen"
	default:
		return "Student"
	}
}

func statSymbol(id compare.TestID) string {
	switch id {
	case compare.TestMannWhitneyU:
		return "U"
	case compare.TestWilcoxonSignedRank:
		return "W"
	case compare.TestKruskalWallis:
		return "H"
	}
	return "S"
}

func df(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
