package app

import (
	"context"

	"betweenstats/domain/compare"
	"betweenstats/domain/core"
	"betweenstats/internal/extract"
	"betweenstats/internal/format"
	"betweenstats/internal/selector"
	"betweenstats/internal/stattest"
	"betweenstats/ports"
)

// Options declares the caller's assumptions for one comparison. The zero
// value is usable: parametric approach, default trim, default equal-variance
// alpha.
type Options struct {
	Paired   bool             `json:"paired"`
	Approach compare.Approach `json:"approach"`
	// Trim is the per-tail trimming fraction for the robust branch.
	Trim float64 `json:"trim"`
	// EqualVarianceAlpha overrides the homogeneity-test threshold.
	EqualVarianceAlpha float64 `json:"equal_variance_alpha"`
}

// DefaultTrim is the per-tail trimming fraction used when the robust branch
// is requested without an explicit trim.
const DefaultTrim = 0.2

func (o Options) normalized() Options {
	if o.Approach == "" {
		o.Approach = compare.Parametric
	}
	if o.Trim == 0 {
		o.Trim = DefaultTrim
	}
	if o.EqualVarianceAlpha == 0 {
		o.EqualVarianceAlpha = selector.EqualVarianceAlpha
	}
	return o
}

// Analysis is the complete output of one comparison call. It is built once
// and never mutated; concurrent callers each get their own.
type Analysis struct {
	ID          core.AnalysisID            `json:"analysis_id"`
	Spec        compare.TestSpec           `json:"spec"`
	Homogeneity selector.HomogeneityResult `json:"homogeneity"`
	Result      *compare.TestResult        `json:"result"`
	Annotation  string                     `json:"annotation"`
	Groups      []compare.Sample           `json:"groups"`
}

// CompareService runs the extraction, partitioning, selection, computation
// and formatting pipeline. It holds no mutable state.
type CompareService struct{}

// NewCompareService creates a compare service
func NewCompareService() *CompareService {
	return &CompareService{}
}

// Compare analyzes two aligned columns: numeric values and group labels.
func (s *CompareService) Compare(ctx context.Context, values []float64, labels []string, opts Options) (*Analysis, error) {
	gs, err := extract.GroupSet(values, labels, opts.Paired)
	if err != nil {
		return nil, err
	}
	return s.run(gs, opts)
}

// CompareSource analyzes two named columns of a tabular source.
func (s *CompareService) CompareSource(ctx context.Context, src ports.DataSource, valueCol, groupCol string, opts Options) (*Analysis, error) {
	gs, err := extract.FromSource(ctx, src, valueCol, groupCol, opts.Paired)
	if err != nil {
		return nil, err
	}
	return s.run(gs, opts)
}

func (s *CompareService) run(gs *compare.GroupSet, opts Options) (*Analysis, error) {
	opts = opts.normalized()

	groups, err := gs.Partition(opts.Paired, opts.Approach)
	if err != nil {
		return nil, err
	}

	spec, hom, err := selector.Select(groups, opts.Paired, opts.Approach, opts.Trim, opts.EqualVarianceAlpha)
	if err != nil {
		return nil, err
	}

	result, err := stattest.Run(spec, groups)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		ID:          core.NewAnalysisID(),
		Spec:        spec,
		Homogeneity: hom,
		Result:      result,
		Annotation:  format.Annotation(result),
		Groups:      groups,
	}, nil
}

// Compare is the package-level convenience form of the public call surface.
func Compare(values []float64, labels []string, opts Options) (*compare.TestResult, error) {
	analysis, err := NewCompareService().Compare(context.Background(), values, labels, opts)
	if err != nil {
		return nil, err
	}
	return analysis.Result, nil
}

// FormatResult renders a result into the fixed annotation grammar.
func FormatResult(r *compare.TestResult) string {
	return format.Annotation(r)
}
