package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitpay/internal/middleware"
	"github.com/mmynk/splitpay/internal/storage/sqlite"
	"github.com/mmynk/splitpay/pkg/api"
)

// setupTestServer creates a test server backed by a temporary SQLite database
func setupTestServer(t *testing.T) (api.BalanceServiceClient, *BalanceService) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")

	reg := prometheus.NewRegistry()
	svc := NewBalanceService(store, reg)
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(nil),
		middleware.NewMetrics(reg).Interceptor(),
	)
	path, handler := api.NewBalanceServiceHandler(svc, interceptors)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return api.NewBalanceServiceClient(http.DefaultClient, server.URL), svc
}

func pizza() []api.Item {
	return []api.Item{
		{Name: "Pizza", Price: 30.00, Owners: []string{"alice", "bob", "carol"}},
	}
}

func TestCalculateBalances_WorkedExample(t *testing.T) {
	client, _ := setupTestServer(t)

	resp, err := client.CalculateBalances(context.Background(), connect.NewRequest(&api.CalculateBalancesRequest{
		PaidBy: "alice",
		Items:  pizza(),
	}))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"alice": "-20.00", "bob": "10.00", "carol": "10.00"}, resp.Msg.Balances)
	assert.Equal(t, []api.Transfer{
		{From: "bob", To: "alice", Amount: "10.00"},
		{From: "carol", To: "alice", Amount: "10.00"},
	}, resp.Msg.Transfers)
	assert.Empty(t, resp.Msg.OwedToViewer)
	assert.Empty(t, resp.Msg.TransactionID)
}

func TestCalculateBalances_CoercesStringPrices(t *testing.T) {
	client, svc := setupTestServer(t)

	resp, err := client.CalculateBalances(context.Background(), connect.NewRequest(&api.CalculateBalancesRequest{
		PaidBy: "alice",
		Items: []api.Item{
			{Name: "Cab", Price: "$10.00", Owners: []string{"alice", "bob", "carol"}},
			{Name: "Gum", Price: "0", Owners: []string{"bob"}},
			{Name: "Mystery", Price: 4},
		},
	}))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"alice": "-6.66", "bob": "3.33", "carol": "3.33"}, resp.Msg.Balances)
	assert.Equal(t, []api.SkippedItem{
		{Purchase: 0, Item: 1, Name: "Gum", Reason: "zero_price"},
		{Purchase: 0, Item: 2, Name: "Mystery", Reason: "no_owners"},
	}, resp.Msg.Skipped)
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.skippedItems.WithLabelValues("zero_price")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.skippedItems.WithLabelValues("no_owners")))
}

func TestCalculateBalances_AssignTax(t *testing.T) {
	client, _ := setupTestServer(t)

	resp, err := client.CalculateBalances(context.Background(), connect.NewRequest(&api.CalculateBalancesRequest{
		PaidBy: "alice",
		Items: []api.Item{
			{Name: "Burger", Price: "12", Owners: []string{"alice"}},
			{Name: "Fries", Price: "6", Owners: []string{"bob"}},
			{Name: "Tax", Price: "2"},
		},
		AssignTax: true,
	}))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"alice": "-7.00", "bob": "7.00"}, resp.Msg.Balances)
	assert.Empty(t, resp.Msg.Skipped)
}

func TestCalculateBalances_InvalidInput(t *testing.T) {
	client, _ := setupTestServer(t)

	tests := []struct {
		name string
		req  *api.CalculateBalancesRequest
	}{
		{name: "missing payer", req: &api.CalculateBalancesRequest{Items: pizza()}},
		{
			name: "negative price",
			req: &api.CalculateBalancesRequest{
				PaidBy: "alice",
				Items:  []api.Item{{Name: "Refund", Price: -5, Owners: []string{"bob"}}},
			},
		},
		{
			name: "non numeric price",
			req: &api.CalculateBalancesRequest{
				PaidBy: "alice",
				Items:  []api.Item{{Name: "Pizza", Price: "thirty", Owners: []string{"bob"}}},
			},
		},
		{name: "record without viewer", req: &api.CalculateBalancesRequest{PaidBy: "alice", Items: pizza(), Record: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CalculateBalances(context.Background(), connect.NewRequest(tt.req))
			require.Error(t, err)
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		})
	}
}

func TestCalculateBalances_ViewerAndRecord(t *testing.T) {
	client, svc := setupTestServer(t)
	ctx := context.Background()

	// bob is not the payer: nothing is recorded even when asked
	resp, err := client.CalculateBalances(ctx, connect.NewRequest(&api.CalculateBalancesRequest{
		PaidBy: "alice",
		Items:  pizza(),
		Viewer: "bob",
		Record: true,
	}))
	require.NoError(t, err)
	assert.Equal(t, "10.00", resp.Msg.OwedToViewer)
	assert.Empty(t, resp.Msg.TransactionID)

	resp, err = client.CalculateBalances(ctx, connect.NewRequest(&api.CalculateBalancesRequest{
		PaidBy: "alice",
		Items:  pizza(),
		Viewer: "alice",
		Record: true,
	}))
	require.NoError(t, err)
	assert.Equal(t, "20.00", resp.Msg.OwedToViewer)
	require.NotEmpty(t, resp.Msg.TransactionID)
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.transactionsSaved))

	list, err := client.ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{Payer: "alice"}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Transactions, 1)
	txn := list.Msg.Transactions[0]
	assert.Equal(t, resp.Msg.TransactionID, txn.ID)
	assert.Equal(t, "20.00", txn.Amount)
	assert.Equal(t, "Pizza ($30.00) split between: alice, bob, carol", txn.Description)
}

func TestCalculateBatch_AccumulatesAcrossPurchases(t *testing.T) {
	client, _ := setupTestServer(t)

	resp, err := client.CalculateBatch(context.Background(), connect.NewRequest(&api.CalculateBatchRequest{
		Purchases: []api.Purchase{
			{PaidBy: "alice", Items: []api.Item{{Name: "Dinner", Price: "60", Owners: []string{"alice", "bob"}}}},
			{PaidBy: "bob", Items: []api.Item{{Name: "Drinks", Price: 20, Owners: []string{"alice", "bob"}}}},
			{PaidBy: "carol"},
		},
	}))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"alice": "-20.00", "bob": "20.00", "carol": "0.00"}, resp.Msg.Balances)
	assert.Equal(t, []api.Transfer{{From: "bob", To: "alice", Amount: "20.00"}}, resp.Msg.Transfers)
}

func TestCalculateBatch_ReportsPurchaseIndex(t *testing.T) {
	client, _ := setupTestServer(t)

	_, err := client.CalculateBatch(context.Background(), connect.NewRequest(&api.CalculateBatchRequest{
		Purchases: []api.Purchase{
			{PaidBy: "alice", Items: pizza()},
			{Items: pizza()},
		},
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	var connectErr *connect.Error
	require.ErrorAs(t, err, &connectErr)
	assert.Equal(t, "purchase 1: paid_by: must not be empty", connectErr.Message())
}

func TestSaveTransaction_ListAndDelete(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	saved, err := client.SaveTransaction(ctx, connect.NewRequest(&api.SaveTransactionRequest{
		Payer: "carol",
		Items: []api.Item{
			{Name: "Groceries", Price: "45.10", Owners: []string{"carol", "dave"}},
			{Name: "Bags", Price: 0.25, Owners: []string{"carol"}},
		},
	}))
	require.NoError(t, err)
	require.NotNil(t, saved.Msg.Transaction)
	assert.Equal(t, "45.35", saved.Msg.Transaction.Amount)
	assert.Equal(t, "carol", saved.Msg.Transaction.Payer)
	assert.Equal(t,
		"Groceries ($45.10) split between: carol, dave\nBags ($0.25) split between: carol",
		saved.Msg.Transaction.Description)

	got, err := client.GetTransaction(ctx, connect.NewRequest(&api.GetTransactionRequest{ID: saved.Msg.Transaction.ID}))
	require.NoError(t, err)
	assert.Equal(t, saved.Msg.Transaction, got.Msg.Transaction)

	list, err := client.ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{Payer: "carol", Limit: 5}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Transactions, 1)

	_, err = client.DeleteTransaction(ctx, connect.NewRequest(&api.DeleteTransactionRequest{ID: saved.Msg.Transaction.ID}))
	require.NoError(t, err)

	_, err = client.DeleteTransaction(ctx, connect.NewRequest(&api.DeleteTransactionRequest{ID: saved.Msg.Transaction.ID}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = client.GetTransaction(ctx, connect.NewRequest(&api.GetTransactionRequest{ID: saved.Msg.Transaction.ID}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	list, err = client.ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{Payer: "carol"}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Transactions)
}

func TestSaveTransaction_RequiresPayer(t *testing.T) {
	client, _ := setupTestServer(t)

	_, err := client.SaveTransaction(context.Background(), connect.NewRequest(&api.SaveTransactionRequest{Items: pizza()}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.ListTransactions(context.Background(), connect.NewRequest(&api.ListTransactionsRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.GetTransaction(context.Background(), connect.NewRequest(&api.GetTransactionRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}
