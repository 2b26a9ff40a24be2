package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/splitpay/internal/calculator"
	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/storage"
	"github.com/mmynk/splitpay/pkg/api"
)

// Ensure BalanceService implements the Connect handler interface.
var _ api.BalanceServiceHandler = (*BalanceService)(nil)

// BalanceService implements the Connect BalanceService
type BalanceService struct {
	store storage.Store

	skippedItems      *prometheus.CounterVec
	transactionsSaved prometheus.Counter
}

// NewBalanceService creates a new BalanceService with the given storage backend.
// Its collectors are registered with reg; a nil reg leaves them unregistered.
func NewBalanceService(store storage.Store, reg prometheus.Registerer) *BalanceService {
	s := &BalanceService{
		store: store,
		skippedItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitpay",
			Name:      "skipped_items_total",
			Help:      "Items that contributed nothing to a computation, by reason.",
		}, []string{"reason"}),
		transactionsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "splitpay",
			Name:      "transactions_saved_total",
			Help:      "Transactions written to history.",
		}),
	}
	if reg != nil {
		reg.MustRegister(s.skippedItems, s.transactionsSaved)
	}
	return s
}

// toConnectError maps domain errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, calculator.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// compute balances the purchases, logging and counting skipped items.
func (s *BalanceService) compute(purchases []calculator.Purchase) (*calculator.Report, error) {
	report, err := calculator.Compute(purchases)
	if err != nil {
		return nil, err
	}
	for _, skipped := range report.Skipped {
		slog.Debug("Item skipped",
			"purchase", skipped.Purchase,
			"item", skipped.Item,
			"name", skipped.Name,
			"reason", skipped.Reason,
		)
		s.skippedItems.WithLabelValues(string(skipped.Reason)).Inc()
	}
	return report, nil
}

// CalculateBalances splits a single purchase. With a viewer it also reports
// what the others owe the viewer and, when asked to and the viewer paid,
// records that amount as a transaction.
func (s *BalanceService) CalculateBalances(ctx context.Context, req *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error) {
	viewer := req.Msg.Viewer
	if req.Msg.Record && viewer == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("record requires a viewer"))
	}

	purchase, err := calculator.ParsePurchase(toRawPurchase(req.Msg.PaidBy, req.Msg.Items))
	if err != nil {
		slog.Error("CalculateBalances validation failed", "error", err)
		return nil, toConnectError(err)
	}
	if req.Msg.AssignTax {
		purchase.Items = calculator.AssignTaxOwners(purchase.Items)
	}

	report, err := s.compute([]calculator.Purchase{purchase})
	if err != nil {
		slog.Error("CalculateBalances failed", "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.CalculateBalancesResponse{
		Balances:  toAPIBalances(report.Balances),
		Skipped:   toAPISkipped(report.Skipped),
		Transfers: toAPITransfers(calculator.SuggestTransfers(report.Balances)),
	}
	if viewer == "" {
		return connect.NewResponse(resp), nil
	}

	owed := calculator.OwedTo(viewer, report.Balances)
	resp.OwedToViewer = owed.StringFixed(2)

	if req.Msg.Record && viewer == purchase.PaidBy && owed.IsPositive() {
		txn := &models.Transaction{
			Payer:       viewer,
			Amount:      owed,
			Description: calculator.DescribeItems(purchase.Items),
		}
		if err := s.store.CreateTransaction(ctx, txn); err != nil {
			slog.Error("CalculateBalances: failed to record transaction", "payer", viewer, "error", err)
			return nil, toConnectError(err)
		}
		s.transactionsSaved.Inc()
		slog.Info("Transaction recorded", "transaction_id", txn.ID, "payer", viewer, "amount", owed.StringFixed(2))
		resp.TransactionID = txn.ID
	}

	return connect.NewResponse(resp), nil
}

// CalculateBatch balances several purchases together.
func (s *BalanceService) CalculateBatch(ctx context.Context, req *connect.Request[api.CalculateBatchRequest]) (*connect.Response[api.CalculateBatchResponse], error) {
	raw := make([]calculator.RawPurchase, len(req.Msg.Purchases))
	for i, p := range req.Msg.Purchases {
		raw[i] = toRawPurchase(p.PaidBy, p.Items)
	}

	purchases, err := calculator.ParsePurchases(raw)
	if err != nil {
		slog.Error("CalculateBatch validation failed", "error", err)
		return nil, toConnectError(err)
	}

	report, err := s.compute(purchases)
	if err != nil {
		slog.Error("CalculateBatch failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Debug("CalculateBatch computed",
		"purchases", len(purchases),
		"participants", len(report.Balances),
		"skipped", len(report.Skipped),
	)

	return connect.NewResponse(&api.CalculateBatchResponse{
		Balances:  toAPIBalances(report.Balances),
		Skipped:   toAPISkipped(report.Skipped),
		Transfers: toAPITransfers(calculator.SuggestTransfers(report.Balances)),
	}), nil
}

// SaveTransaction records a purchase in the payer's history. The amount is
// the total of the counted items.
func (s *BalanceService) SaveTransaction(ctx context.Context, req *connect.Request[api.SaveTransactionRequest]) (*connect.Response[api.SaveTransactionResponse], error) {
	purchase, err := calculator.ParsePurchase(toRawPurchase(req.Msg.Payer, req.Msg.Items))
	if err != nil {
		slog.Error("SaveTransaction validation failed", "error", err)
		return nil, toConnectError(err)
	}

	txn := &models.Transaction{
		Payer:       purchase.PaidBy,
		Amount:      calculator.TotalPrice(purchase.Items),
		Description: calculator.DescribeItems(purchase.Items),
	}
	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		slog.Error("SaveTransaction failed", "payer", txn.Payer, "error", err)
		return nil, toConnectError(err)
	}
	s.transactionsSaved.Inc()

	return connect.NewResponse(&api.SaveTransactionResponse{
		Transaction: toAPITransaction(txn),
	}), nil
}

// GetTransaction returns one recorded transaction.
func (s *BalanceService) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("id required"))
	}

	txn, err := s.store.GetTransaction(ctx, req.Msg.ID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("GetTransaction failed", "transaction_id", req.Msg.ID, "error", err)
		}
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetTransactionResponse{
		Transaction: toAPITransaction(txn),
	}), nil
}

// ListTransactions returns a payer's history, newest first.
func (s *BalanceService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	if req.Msg.Payer == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("payer required"))
	}

	txns, err := s.store.ListTransactionsByPayer(ctx, req.Msg.Payer, int(req.Msg.Limit))
	if err != nil {
		slog.Error("ListTransactions failed", "payer", req.Msg.Payer, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Transaction, len(txns))
	for i, txn := range txns {
		out[i] = toAPITransaction(txn)
	}

	return connect.NewResponse(&api.ListTransactionsResponse{
		Transactions: out,
	}), nil
}

// DeleteTransaction removes a transaction from history.
func (s *BalanceService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("id required"))
	}

	if err := s.store.DeleteTransaction(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteTransaction failed", "transaction_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}
