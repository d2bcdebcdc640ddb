package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"betweenstats/adapters/dataset"
	"betweenstats/ports"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the embedded datasets and their columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range dataset.List() {
			table, err := dataset.Load(name)
			if err != nil {
				return err
			}
			columns, err := table.Columns(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", name)
			for _, col := range columns {
				marker := "label"
				if col.Kind == ports.ColumnNumeric {
					marker = "numeric"
				}
				fmt.Printf("  %-16s %s\n", col.Name, marker)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}
