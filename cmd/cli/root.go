// Command cli is the terminal front-end: it runs comparisons over embedded
// datasets or local csv/xlsx files without starting the server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "betweenstats",
	Short: "Between-group statistical comparisons",
	Long: `betweenstats selects and runs the appropriate hypothesis test for a
grouped numeric column and prints the result in a fixed annotation grammar.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
