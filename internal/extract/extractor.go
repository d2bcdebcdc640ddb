package extract

import (
	"context"
	"math"

	"betweenstats/domain/compare"
	"betweenstats/internal/errors"
	"betweenstats/ports"
)

// missing sentinels: NaN for numeric cells, "" for group labels. DataSource
// implementations normalize their own null representation to these before the
// columns reach the extractor.

// GroupSet normalizes two aligned columns into per-group samples.
//
// Rows with a missing numeric value or a missing group label are dropped. In
// paired mode a dropped numeric value also invalidates its pair: the row at
// the same within-group position in the other group is removed so index-wise
// correspondence survives extraction.
func GroupSet(values []float64, groups []string, paired bool) (*compare.GroupSet, error) {
	if len(values) != len(groups) {
		return nil, errors.Schemaf(
			"numeric column has %d rows but group column has %d", len(values), len(groups))
	}
	if len(values) == 0 {
		return nil, errors.Schema("input columns are empty")
	}

	gs := compare.NewGroupSet()
	if paired {
		if err := appendPaired(gs, values, groups); err != nil {
			return nil, err
		}
	} else {
		for i, v := range values {
			if math.IsNaN(v) || groups[i] == "" {
				continue
			}
			gs.Append(groups[i], v)
		}
	}

	if err := checkDiscrete(gs); err != nil {
		return nil, err
	}
	return gs, nil
}

// FromSource extracts a group set from two named columns of a tabular source.
func FromSource(ctx context.Context, src ports.DataSource, valueCol, groupCol string, paired bool) (*compare.GroupSet, error) {
	values, err := src.NumericColumn(ctx, valueCol)
	if err != nil {
		return nil, errors.Wrapf(err, "reading numeric column %q", valueCol)
	}
	groups, err := src.LabelColumn(ctx, groupCol)
	if err != nil {
		return nil, errors.Wrapf(err, "reading group column %q", groupCol)
	}
	return GroupSet(values, groups, paired)
}

type cell struct {
	value   float64
	missing bool
}

// appendPaired drops missing observations pairwise. Pairing is positional:
// the i-th retained row of one group corresponds to the i-th retained row of
// the other. Rows with a missing label cannot be assigned a pair position and
// are dropped up front.
func appendPaired(gs *compare.GroupSet, values []float64, groups []string) error {
	order := []string{}
	byGroup := map[string][]cell{}
	for i, v := range values {
		label := groups[i]
		if label == "" {
			continue
		}
		if _, seen := byGroup[label]; !seen {
			order = append(order, label)
		}
		byGroup[label] = append(byGroup[label], cell{value: v, missing: math.IsNaN(v)})
	}

	if len(order) != 2 {
		// Pairing over k != 2 is rejected downstream; keep whatever survives
		// the plain missing policy so the error carries the real group count.
		for _, label := range order {
			for _, c := range byGroup[label] {
				if !c.missing {
					gs.Append(label, c.value)
				}
			}
		}
		return nil
	}

	a, b := byGroup[order[0]], byGroup[order[1]]
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].missing || b[i].missing {
			continue
		}
		gs.Append(order[0], a[i].value)
		gs.Append(order[1], b[i].value)
	}
	// Unpaired surplus rows are kept so unequal-length pairings fail loudly
	// at partition time instead of being silently truncated.
	for i := n; i < len(a); i++ {
		if !a[i].missing {
			gs.Append(order[0], a[i].value)
		}
	}
	for i := n; i < len(b); i++ {
		if !b[i].missing {
			gs.Append(order[1], b[i].value)
		}
	}
	return nil
}

// checkDiscrete rejects group columns that look continuous: every retained
// row carrying its own distinct label is not a grouping, it is a second
// numeric axis.
func checkDiscrete(gs *compare.GroupSet) error {
	n := gs.TotalObs()
	if n == 0 {
		return errors.InsufficientData("no rows survived the missing-value policy")
	}
	if k := gs.K(); k == n && n > 2 {
		return errors.Schemaf(
			"group column is not discrete: %d distinct labels across %d rows", k, n)
	}
	return nil
}
