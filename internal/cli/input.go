package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitpay/internal/calculator"
	"github.com/mmynk/splitpay/pkg/api"
)

// purchasesFile accepts either {"purchases": [...]} or a single purchase
// object {"paid_by": ..., "items": [...]}.
type purchasesFile struct {
	Purchases []api.Purchase `json:"purchases"`
	PaidBy    string         `json:"paid_by"`
	Items     []api.Item     `json:"items"`
}

func readPurchases(cmd *cobra.Command) ([]calculator.Purchase, error) {
	path, _ := cmd.Flags().GetString("file")
	assignTax, _ := cmd.Flags().GetBool("assign-tax")

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open purchases: %w", err)
		}
		defer f.Close()
		r = f
	}

	var in purchasesFile
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("decode purchases: %w", err)
	}

	wire := in.Purchases
	if len(wire) == 0 && (in.PaidBy != "" || len(in.Items) > 0) {
		wire = []api.Purchase{{PaidBy: in.PaidBy, Items: in.Items}}
	}

	raw := make([]calculator.RawPurchase, len(wire))
	for i, p := range wire {
		raw[i] = calculator.RawPurchase{PaidBy: p.PaidBy, Items: make([]calculator.RawItem, len(p.Items))}
		for j, item := range p.Items {
			raw[i].Items[j] = calculator.RawItem{Name: item.Name, Price: item.Price, Owners: item.Owners}
		}
	}

	purchases, err := calculator.ParsePurchases(raw)
	if err != nil {
		return nil, err
	}
	if assignTax {
		for i := range purchases {
			purchases[i].Items = calculator.AssignTaxOwners(purchases[i].Items)
		}
	}
	return purchases, nil
}
