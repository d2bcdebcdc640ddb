package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"betweenstats/adapters/dataset"
	"betweenstats/adapters/excel"
	"betweenstats/adapters/report"
	"betweenstats/app"
	"betweenstats/domain/compare"
	"betweenstats/internal/format"
	"betweenstats/ports"
)

var compareFlags struct {
	dataset  string
	file     string
	value    string
	group    string
	approach string
	paired   bool
	trim     float64
	alpha    float64
	asJSON   bool
	report   string
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a numeric column between groups",
	Long: `The 'compare' command splits a numeric column by a group column, picks the
matching test for the group count, pairing and approach, and prints the
annotated result. The source is either an embedded dataset or a csv/xlsx file.`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareFlags.dataset, "dataset", "", "embedded dataset name (see 'datasets')")
	f.StringVar(&compareFlags.file, "file", "", "path to a csv or xlsx file")
	f.StringVar(&compareFlags.value, "value", "", "numeric column to compare")
	f.StringVar(&compareFlags.group, "group", "", "group label column")
	f.StringVar(&compareFlags.approach, "approach", "parametric", "parametric, nonparametric or robust")
	f.BoolVar(&compareFlags.paired, "paired", false, "treat the two groups as paired samples")
	f.Float64Var(&compareFlags.trim, "trim", 0, "per-tail trim fraction for the robust approach")
	f.Float64Var(&compareFlags.alpha, "alpha", 0, "equal-variance test alpha override")
	f.BoolVar(&compareFlags.asJSON, "json", false, "print the full analysis as JSON")
	f.StringVar(&compareFlags.report, "report", "", "write a markdown report to this path")
	compareCmd.MarkFlagRequired("value")
	compareCmd.MarkFlagRequired("group")
	rootCmd.AddCommand(compareCmd)
}

func openSource(datasetName, file string) (ports.DataSource, error) {
	switch {
	case datasetName != "" && file != "":
		return nil, fmt.Errorf("--dataset and --file are mutually exclusive")
	case datasetName != "":
		return dataset.Load(datasetName)
	case file != "":
		return excel.NewDataReader(file).Open()
	}
	return nil, fmt.Errorf("one of --dataset or --file is required")
}

func runCompare(cmd *cobra.Command, args []string) error {
	src, err := openSource(compareFlags.dataset, compareFlags.file)
	if err != nil {
		return err
	}

	opts := app.Options{
		Paired:             compareFlags.paired,
		Approach:           compare.Approach(compareFlags.approach),
		Trim:               compareFlags.trim,
		EqualVarianceAlpha: compareFlags.alpha,
	}
	analysis, err := app.NewCompareService().CompareSource(
		context.Background(), src, compareFlags.value, compareFlags.group, opts)
	if err != nil {
		return err
	}

	if compareFlags.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	fmt.Println(format.Summary(analysis.Result, len(analysis.Groups)))

	if compareFlags.report != "" {
		chart, err := report.NewMarkdownRenderer().Render(
			context.Background(), analysis.Groups, analysis.Result, analysis.Annotation, ports.DefaultStyle())
		if err != nil {
			return err
		}
		if err := os.WriteFile(compareFlags.report, chart.Data, 0o644); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", compareFlags.report)
	}
	return nil
}
