// Command advisor-cli runs the risk questionnaire locally and manages the
// activity registry.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "advisor-cli",
		Short:         "Robo-advisor questionnaire and registry tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("output", "o", "yaml", "Output format (yaml or json)")

	root.AddCommand(
		newQuestionsCmd(),
		newRecommendCmd(),
		newPredictCmd(),
		newRegistryCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
