package stattest

import (
	"math"
	"testing"

	"betweenstats/domain/compare"
)

func TestRunFillsResultMetadata(t *testing.T) {
	spec := compare.TestSpec{ID: compare.TestWelchT, Approach: compare.Parametric}
	res, err := Run(spec, []compare.Sample{fixtureA, fixtureB})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Test != compare.TestWelchT {
		t.Errorf("Test = %s", res.Test)
	}
	if res.TestName != "Welch's t-test" {
		t.Errorf("TestName = %q", res.TestName)
	}
	if res.Family != compare.FamilyT {
		t.Errorf("Family = %s", res.Family)
	}
	if res.NObs != 8 {
		t.Errorf("NObs = %d, want 8", res.NObs)
	}
}

func TestRunDispatchesEveryTest(t *testing.T) {
	pair := []compare.Sample{fixtureA, fixtureB}
	three := threeGroups()

	cases := []struct {
		spec   compare.TestSpec
		groups []compare.Sample
	}{
		{compare.TestSpec{ID: compare.TestStudentT}, pair},
		{compare.TestSpec{ID: compare.TestWelchT}, pair},
		{compare.TestSpec{ID: compare.TestPairedT, Paired: true}, pair},
		{compare.TestSpec{ID: compare.TestMannWhitneyU}, pair},
		{compare.TestSpec{ID: compare.TestWilcoxonSignedRank, Paired: true}, pair},
		{compare.TestSpec{ID: compare.TestYuenT, Trim: 0.25}, pair},
		{compare.TestSpec{ID: compare.TestOneWayANOVA}, three},
		{compare.TestSpec{ID: compare.TestWelchANOVA}, three},
		{compare.TestSpec{ID: compare.TestKruskalWallis}, three},
	}
	for _, tc := range cases {
		t.Run(string(tc.spec.ID), func(t *testing.T) {
			res, err := Run(tc.spec, tc.groups)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.IsNaN(res.PValue) || res.PValue < 0 || res.PValue > 1 {
				t.Errorf("p = %g outside [0,1]", res.PValue)
			}
			if res.TestName == "" || res.Family == "" {
				t.Errorf("metadata not filled: %+v", res)
			}
		})
	}
}

func TestRunUnknownTestID(t *testing.T) {
	_, err := Run(compare.TestSpec{ID: "friedman"}, []compare.Sample{fixtureA, fixtureB})
	if err == nil {
		t.Fatal("expected an error for an unknown test id")
	}
}

func TestClampP(t *testing.T) {
	if clampP(1.0000000000000002) != 1 {
		t.Error("overshoot above 1 not clamped")
	}
	if clampP(-1e-17) != 0 {
		t.Error("undershoot below 0 not clamped")
	}
	if !math.IsNaN(clampP(math.NaN())) {
		t.Error("NaN must pass through the clamp")
	}
}

func TestReferenceDistributionGuards(t *testing.T) {
	if !math.IsNaN(tTwoSidedP(1.5, 0)) {
		t.Error("t reference with zero dof must be NaN")
	}
	if p := fUpperP(math.Inf(1), 2, 6); p != 0 {
		t.Errorf("F upper tail at +Inf = %g, want 0", p)
	}
	if p := chiSquaredUpperP(math.Inf(1), 2); p != 0 {
		t.Errorf("chi-squared upper tail at +Inf = %g, want 0", p)
	}
	if !math.IsNaN(normalTwoSidedP(math.NaN())) {
		t.Error("normal reference must propagate NaN")
	}
}
