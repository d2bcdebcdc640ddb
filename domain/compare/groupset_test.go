package compare

import (
	"testing"

	"betweenstats/internal/errors"
)

func TestGroupSetAppendKeepsFirstSeenOrder(t *testing.T) {
	gs := NewGroupSet()
	gs.Append("b", 1)
	gs.Append("a", 2)
	gs.Append("b", 3)
	gs.Append("c", 4)
	gs.Append("a", 5)

	labels := gs.Labels()
	want := []string{"b", "a", "c"}
	if len(labels) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(labels))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label[%d] = %q, want %q", i, labels[i], want[i])
		}
	}

	groups := gs.Groups()
	if groups[0].N() != 2 || groups[1].N() != 2 || groups[2].N() != 1 {
		t.Errorf("unexpected group sizes: %d, %d, %d", groups[0].N(), groups[1].N(), groups[2].N())
	}
	if gs.TotalObs() != 5 {
		t.Errorf("TotalObs = %d, want 5", gs.TotalObs())
	}
}

func TestPartitionRequiresTwoGroups(t *testing.T) {
	gs := NewGroupSet()
	gs.Append("only", 1)
	gs.Append("only", 2)

	_, err := gs.Partition(false, Parametric)
	if !errors.IsInsufficientData(err) {
		t.Fatalf("expected insufficient data error, got %v", err)
	}
}

func TestPartitionRequiresTwoObservationsPerGroup(t *testing.T) {
	gs := NewGroupSet()
	gs.Append("a", 1)
	gs.Append("a", 2)
	gs.Append("b", 3)

	_, err := gs.Partition(false, Parametric)
	if !errors.IsInsufficientData(err) {
		t.Fatalf("expected insufficient data error, got %v", err)
	}
}

func TestPartitionPairedNeedsExactlyTwoGroups(t *testing.T) {
	gs := NewGroupSet()
	for _, label := range []string{"a", "b", "c"} {
		gs.Append(label, 1)
		gs.Append(label, 2)
	}

	_, err := gs.Partition(true, Robust)
	comb, ok := errors.AsUnsupportedCombination(err)
	if !ok {
		t.Fatalf("expected unsupported combination error, got %v", err)
	}
	if comb.K != 3 || !comb.Paired || comb.Approach != "robust" {
		t.Errorf("combination error carries (k=%d, paired=%t, approach=%q)", comb.K, comb.Paired, comb.Approach)
	}
}

func TestPartitionPairedNeedsEqualSizes(t *testing.T) {
	gs := NewGroupSet()
	gs.Append("pre", 1)
	gs.Append("pre", 2)
	gs.Append("pre", 3)
	gs.Append("post", 4)
	gs.Append("post", 5)

	_, err := gs.Partition(true, Parametric)
	if !errors.IsInsufficientData(err) {
		t.Fatalf("expected insufficient data error, got %v", err)
	}
}

func TestPartitionReturnsGroupsInOrder(t *testing.T) {
	gs := NewGroupSet()
	gs.Append("x", 1)
	gs.Append("x", 2)
	gs.Append("y", 3)
	gs.Append("y", 4)

	groups, err := gs.Partition(false, Nonparametric)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 || groups[0].Label != "x" || groups[1].Label != "y" {
		t.Errorf("unexpected partition: %+v", groups)
	}
}
