package compare

import (
	"betweenstats/internal/errors"
)

// Sample is an ordered sequence of observations for one group. By the time a
// Sample reaches the statistic engine it contains no NaN values; the
// extractor enforces that.
type Sample struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// N returns the number of observations in the sample.
func (s Sample) N() int { return len(s.Values) }

// GroupSet holds the per-group samples in stable first-seen order.
type GroupSet struct {
	groups []Sample
	index  map[string]int
}

// NewGroupSet creates an empty group set.
func NewGroupSet() *GroupSet {
	return &GroupSet{index: make(map[string]int)}
}

// Append adds one observation to the group identified by label, creating the
// group on first sight so group ordering follows the input.
func (g *GroupSet) Append(label string, value float64) {
	i, ok := g.index[label]
	if !ok {
		i = len(g.groups)
		g.index[label] = i
		g.groups = append(g.groups, Sample{Label: label})
	}
	g.groups[i].Values = append(g.groups[i].Values, value)
}

// K returns the number of groups.
func (g *GroupSet) K() int { return len(g.groups) }

// Groups returns the samples in first-seen order.
func (g *GroupSet) Groups() []Sample { return g.groups }

// Labels returns the group labels in first-seen order.
func (g *GroupSet) Labels() []string {
	labels := make([]string, len(g.groups))
	for i, s := range g.groups {
		labels[i] = s.Label
	}
	return labels
}

// TotalObs returns the total number of retained observations across groups.
func (g *GroupSet) TotalObs() int {
	n := 0
	for _, s := range g.groups {
		n += s.N()
	}
	return n
}

// Partition validates the structural invariants for the requested comparison
// and returns the per-group samples. It fails with an insufficient-data error
// when there are fewer than 2 groups or any group has fewer than 2
// observations, and with an unsupported-combination error when pairing is
// requested over anything but exactly two equal-length groups.
func (g *GroupSet) Partition(paired bool, approach Approach) ([]Sample, error) {
	k := g.K()
	if k < 2 {
		return nil, errors.InsufficientDataf(
			"need at least 2 distinct groups, got %d", k)
	}
	for _, s := range g.groups {
		if s.N() < 2 {
			return nil, errors.InsufficientDataf(
				"group %q has %d observation(s), need at least 2", s.Label, s.N())
		}
	}
	if paired {
		if k != 2 {
			// Pairing is only defined over exactly two repeated-measures
			// conditions; repeated-measures ANOVA is not selectable yet.
			return nil, errors.UnsupportedCombination(k, true, string(approach))
		}
		if g.groups[0].N() != g.groups[1].N() {
			return nil, errors.InsufficientDataf(
				"paired comparison requires equal group sizes, got %d and %d",
				g.groups[0].N(), g.groups[1].N())
		}
	}
	return g.groups, nil
}
