package compare

// Approach declares the distributional assumptions the caller is willing to
// make when comparing groups.
type Approach string

const (
	Parametric    Approach = "parametric"
	Nonparametric Approach = "nonparametric"
	Robust        Approach = "robust"
)

// Valid reports whether the approach is one of the declared values.
func (a Approach) Valid() bool {
	switch a {
	case Parametric, Nonparametric, Robust:
		return true
	}
	return false
}

// TestID identifies a concrete hypothesis test variant
type TestID string

const (
	TestStudentT           TestID = "student_t"
	TestWelchT             TestID = "welch_t"
	TestPairedT            TestID = "paired_t"
	TestMannWhitneyU       TestID = "mann_whitney_u"
	TestWilcoxonSignedRank TestID = "wilcoxon_signed_rank"
	TestYuenT              TestID = "yuen_t"
	TestOneWayANOVA        TestID = "oneway_anova"
	TestWelchANOVA         TestID = "welch_anova"
	TestKruskalWallis      TestID = "kruskal_wallis"
)

// TestFamily groups test variants that share an annotation grammar
type TestFamily string

const (
	FamilyT     TestFamily = "t"
	FamilyANOVA TestFamily = "anova"
	FamilyRank  TestFamily = "rank"
)

// Family returns the annotation family of the test.
func (id TestID) Family() TestFamily {
	switch id {
	case TestStudentT, TestWelchT, TestPairedT, TestYuenT:
		return FamilyT
	case TestOneWayANOVA, TestWelchANOVA:
		return FamilyANOVA
	case TestMannWhitneyU, TestWilcoxonSignedRank, TestKruskalWallis:
		return FamilyRank
	}
	return ""
}

// Name returns the display name of the test.
func (id TestID) Name() string {
	switch id {
	case TestStudentT:
		return "Student's t-test"
	case TestWelchT:
		return "Welch's t-test"
	case TestPairedT:
		return "Paired t-test"
	case TestMannWhitneyU:
		return "Mann-Whitney U test"
	case TestWilcoxonSignedRank:
		return "Wilcoxon signed-rank test"
	case TestYuenT:
		return "Yuen's trimmed t-test"
	case TestOneWayANOVA:
		return "One-way ANOVA"
	case TestWelchANOVA:
		return "Welch's ANOVA"
	case TestKruskalWallis:
		return "Kruskal-Wallis test"
	}
	return string(id)
}

// TestSpec is the immutable record of the selected test. It is produced once
// per invocation by the selector and never mutated afterwards.
type TestSpec struct {
	ID       TestID   `json:"test_id"`
	Paired   bool     `json:"paired"`
	Approach Approach `json:"approach"`
	// Trim is the per-tail trimming fraction in [0, 0.5). Only meaningful
	// for the robust branch.
	Trim float64 `json:"trim,omitempty"`
}

// DegreesOfFreedom carries one or two degrees of freedom. The Within field is
// only populated for the ANOVA family (between, within); everything else uses
// Primary alone. Fractional values are kept as-is, never rounded.
type DegreesOfFreedom struct {
	Primary float64 `json:"primary"`
	Within  float64 `json:"within,omitempty"`
	IsPair  bool    `json:"is_pair,omitempty"`
}

// TestResult is the immutable output of one analysis call.
//
// Numeric anomalies are surfaced as IEEE values: a zero-variance comparison
// yields an Inf or NaN statistic, and the p-value may be NaN. PValue is
// clamped to [0,1] whenever it is finite.
type TestResult struct {
	Test       TestID           `json:"test_id"`
	TestName   string           `json:"test_name"`
	Family     TestFamily       `json:"family"`
	Statistic  float64          `json:"statistic"`
	DF         DegreesOfFreedom `json:"df"`
	PValue     float64          `json:"p_value"`
	EffectSize float64          `json:"effect_size"`
	// EffectName declares the effect size unit: "d", "g", "dz", "r",
	// "eta2", "eps2" or "dR". Empty when no effect size is defined.
	EffectName string `json:"effect_name,omitempty"`
	NObs       int    `json:"n_obs"`
}
