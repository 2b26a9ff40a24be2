// Package cli implements the splitpay command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/splitpay/pkg/logging"
)

// Execute runs the root command with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "splitpay",
		Short: "Settle shared expenses",
		Long: `splitpay computes who owes what from a list of purchases.
Each purchase has a payer and items owned by one or more participants;
an item's price is split evenly among its owners.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logging.Setup(level)
		},
	}

	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")
	root.PersistentFlags().StringP("file", "f", "-", "Purchases file (JSON), - for stdin")
	root.PersistentFlags().Bool("assign-tax", false, "Split lines named \"tax\" among everyone who owns another item")

	root.AddCommand(newBalancesCmd())
	root.AddCommand(newSettleCmd())
	return root
}
