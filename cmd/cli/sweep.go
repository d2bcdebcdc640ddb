package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"betweenstats/app"
	"betweenstats/domain/compare"
)

var sweepFlags struct {
	dataset     string
	file        string
	group       string
	values      []string
	approach    string
	concurrency int
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare every listed numeric column against one group column",
	RunE:  runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.StringVar(&sweepFlags.dataset, "dataset", "", "embedded dataset name (see 'datasets')")
	f.StringVar(&sweepFlags.file, "file", "", "path to a csv or xlsx file")
	f.StringVar(&sweepFlags.group, "group", "", "group label column")
	f.StringSliceVar(&sweepFlags.values, "values", nil, "numeric columns to sweep")
	f.StringVar(&sweepFlags.approach, "approach", "parametric", "parametric, nonparametric or robust")
	f.IntVar(&sweepFlags.concurrency, "concurrency", 4, "parallel column analyses")
	sweepCmd.MarkFlagRequired("group")
	sweepCmd.MarkFlagRequired("values")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	src, err := openSource(sweepFlags.dataset, sweepFlags.file)
	if err != nil {
		return err
	}

	svc := app.NewSweepService(app.NewCompareService(), sweepFlags.concurrency)
	result, err := svc.Run(context.Background(), src, app.SweepRequest{
		GroupColumn:  sweepFlags.group,
		ValueColumns: sweepFlags.values,
		Options:      app.Options{Approach: compare.Approach(sweepFlags.approach)},
	})
	if err != nil {
		return err
	}

	columns := make([]string, 0, len(result.Analyses))
	for col := range result.Analyses {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	for _, col := range columns {
		fmt.Printf("%-16s %s\n", col, result.Analyses[col].Annotation)
	}
	for col, msg := range result.Failures {
		fmt.Printf("%-16s failed: %s\n", col, msg)
	}
	fmt.Printf("\n%d columns in %dms\n", len(result.Analyses)+len(result.Failures), result.RuntimeMs)
	return nil
}
