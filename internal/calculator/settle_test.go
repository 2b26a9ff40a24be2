package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestTransfers(t *testing.T) {
	tests := []struct {
		name     string
		balances Balances
		want     []Transfer
	}{
		{
			name:     "single payer",
			balances: Balances{"alice": d("-20"), "bob": d("10"), "carol": d("10")},
			want: []Transfer{
				{From: "bob", To: "alice", Amount: d("10")},
				{From: "carol", To: "alice", Amount: d("10")},
			},
		},
		{
			name:     "largest debts clear first",
			balances: Balances{"alice": d("-30"), "bob": d("-5"), "carol": d("25"), "dave": d("10")},
			want: []Transfer{
				{From: "carol", To: "alice", Amount: d("25")},
				{From: "dave", To: "alice", Amount: d("5")},
				{From: "dave", To: "bob", Amount: d("5")},
			},
		},
		{
			name:     "all settled",
			balances: Balances{"alice": d("0"), "bob": d("0")},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestTransfers(tt.balances)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].From, got[i].From)
				assert.Equal(t, tt.want[i].To, got[i].To)
				assert.True(t, tt.want[i].Amount.Equal(got[i].Amount), "transfer %d amount = %s", i, got[i].Amount)
			}
		})
	}
}

func TestSuggestTransfers_ClearsComputedBalances(t *testing.T) {
	balances, err := ComputeBalances([]Purchase{
		{PaidBy: "alice", Items: []LineItem{{Name: "Cab", Price: d("10"), Owners: []string{"alice", "bob", "carol"}}}},
		{PaidBy: "bob", Items: []LineItem{{Name: "Lunch", Price: d("47.21"), Owners: []string{"bob", "carol", "dave"}}}},
	})
	require.NoError(t, err)

	remaining := make(Balances, len(balances))
	for k, v := range balances {
		remaining[k] = v
	}
	for _, tr := range SuggestTransfers(balances) {
		remaining[tr.From] = remaining[tr.From].Sub(tr.Amount)
		remaining[tr.To] = remaining[tr.To].Add(tr.Amount)
	}
	for name, v := range remaining {
		assert.True(t, v.IsZero(), "%s still at %s", name, v)
	}
}
