package service

import (
	"github.com/mmynk/splitpay/internal/calculator"
	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/pkg/api"
)

func toRawPurchase(paidBy string, items []api.Item) calculator.RawPurchase {
	raw := calculator.RawPurchase{
		PaidBy: paidBy,
		Items:  make([]calculator.RawItem, len(items)),
	}
	for i, item := range items {
		raw.Items[i] = calculator.RawItem{
			Name:   item.Name,
			Price:  item.Price,
			Owners: item.Owners,
		}
	}
	return raw
}

func toAPIBalances(balances calculator.Balances) map[string]string {
	out := make(map[string]string, len(balances))
	for p, amount := range balances {
		out[p] = amount.StringFixed(2)
	}
	return out
}

func toAPISkipped(skipped []calculator.SkippedItem) []api.SkippedItem {
	if len(skipped) == 0 {
		return nil
	}
	out := make([]api.SkippedItem, len(skipped))
	for i, s := range skipped {
		out[i] = api.SkippedItem{
			Purchase: s.Purchase,
			Item:     s.Item,
			Name:     s.Name,
			Reason:   string(s.Reason),
		}
	}
	return out
}

func toAPITransfers(transfers []calculator.Transfer) []api.Transfer {
	if len(transfers) == 0 {
		return nil
	}
	out := make([]api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = api.Transfer{
			From:   t.From,
			To:     t.To,
			Amount: t.Amount.StringFixed(2),
		}
	}
	return out
}

func toAPITransaction(txn *models.Transaction) *api.Transaction {
	return &api.Transaction{
		ID:          txn.ID,
		Payer:       txn.Payer,
		Amount:      txn.Amount.StringFixed(2),
		Description: txn.Description,
		CreatedAt:   txn.CreatedAt,
	}
}
