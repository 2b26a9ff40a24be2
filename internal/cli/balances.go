package cli

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitpay/internal/calculator"
)

// ─── balances ───────────────────────────────────────────────────────────────

func newBalancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Print every participant's net balance",
		Long: `Print every participant's net balance. Positive amounts are owed into
the settlement, negative amounts are owed to the participant.`,
		Args: cobra.NoArgs,
		RunE: runBalances,
	}
	cmd.Flags().String("viewer", "", "Also print how much everyone else owes this participant")
	return cmd
}

func runBalances(cmd *cobra.Command, args []string) error {
	purchases, err := readPurchases(cmd)
	if err != nil {
		return err
	}

	report, err := calculator.Compute(purchases)
	if err != nil {
		return err
	}
	for _, s := range report.Skipped {
		slog.Warn("Item skipped", "purchase", s.Purchase, "item", s.Item, "name", s.Name, "reason", s.Reason)
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "PARTICIPANT\tBALANCE\t")
	for _, name := range report.Balances.Participants() {
		fmt.Fprintf(w, "%s\t%s\t\n", name, report.Balances[name].StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if viewer, _ := cmd.Flags().GetString("viewer"); viewer != "" {
		fmt.Fprintf(out, "Owed to %s: %s\n", viewer, calculator.OwedTo(viewer, report.Balances).StringFixed(2))
	}
	return nil
}

// ─── settle ─────────────────────────────────────────────────────────────────

func newSettleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "Print the payments that clear all balances",
		Args:  cobra.NoArgs,
		RunE:  runSettle,
	}
}

func runSettle(cmd *cobra.Command, args []string) error {
	purchases, err := readPurchases(cmd)
	if err != nil {
		return err
	}

	balances, err := calculator.ComputeBalances(purchases)
	if err != nil {
		return err
	}

	transfers := calculator.SuggestTransfers(balances)
	out := cmd.OutOrStdout()
	if len(transfers) == 0 {
		fmt.Fprintln(out, "All settled.")
		return nil
	}
	for _, t := range transfers {
		fmt.Fprintf(out, "%s pays %s %s\n", t.From, t.To, t.Amount.StringFixed(2))
	}
	return nil
}
