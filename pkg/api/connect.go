package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BalanceServiceName is the fully-qualified name of the BalanceService.
const BalanceServiceName = "splitpay.v1.BalanceService"

// Procedure paths of the BalanceService.
const (
	BalanceServiceCalculateBalancesProcedure = "/splitpay.v1.BalanceService/CalculateBalances"
	BalanceServiceCalculateBatchProcedure    = "/splitpay.v1.BalanceService/CalculateBatch"
	BalanceServiceSaveTransactionProcedure   = "/splitpay.v1.BalanceService/SaveTransaction"
	BalanceServiceGetTransactionProcedure    = "/splitpay.v1.BalanceService/GetTransaction"
	BalanceServiceListTransactionsProcedure  = "/splitpay.v1.BalanceService/ListTransactions"
	BalanceServiceDeleteTransactionProcedure = "/splitpay.v1.BalanceService/DeleteTransaction"
)

// BalanceServiceHandler is implemented by the server side of the service.
type BalanceServiceHandler interface {
	CalculateBalances(context.Context, *connect.Request[CalculateBalancesRequest]) (*connect.Response[CalculateBalancesResponse], error)
	CalculateBatch(context.Context, *connect.Request[CalculateBatchRequest]) (*connect.Response[CalculateBatchResponse], error)
	SaveTransaction(context.Context, *connect.Request[SaveTransactionRequest]) (*connect.Response[SaveTransactionResponse], error)
	GetTransaction(context.Context, *connect.Request[GetTransactionRequest]) (*connect.Response[GetTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error)
	DeleteTransaction(context.Context, *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	calculateBalances := connect.NewUnaryHandler(BalanceServiceCalculateBalancesProcedure, svc.CalculateBalances, opts...)
	calculateBatch := connect.NewUnaryHandler(BalanceServiceCalculateBatchProcedure, svc.CalculateBatch, opts...)
	saveTransaction := connect.NewUnaryHandler(BalanceServiceSaveTransactionProcedure, svc.SaveTransaction, opts...)
	getTransaction := connect.NewUnaryHandler(BalanceServiceGetTransactionProcedure, svc.GetTransaction, opts...)
	listTransactions := connect.NewUnaryHandler(BalanceServiceListTransactionsProcedure, svc.ListTransactions, opts...)
	deleteTransaction := connect.NewUnaryHandler(BalanceServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts...)

	return "/" + BalanceServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BalanceServiceCalculateBalancesProcedure:
			calculateBalances.ServeHTTP(w, r)
		case BalanceServiceCalculateBatchProcedure:
			calculateBatch.ServeHTTP(w, r)
		case BalanceServiceSaveTransactionProcedure:
			saveTransaction.ServeHTTP(w, r)
		case BalanceServiceGetTransactionProcedure:
			getTransaction.ServeHTTP(w, r)
		case BalanceServiceListTransactionsProcedure:
			listTransactions.ServeHTTP(w, r)
		case BalanceServiceDeleteTransactionProcedure:
			deleteTransaction.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BalanceServiceClient is a client for the BalanceService.
type BalanceServiceClient interface {
	CalculateBalances(context.Context, *connect.Request[CalculateBalancesRequest]) (*connect.Response[CalculateBalancesResponse], error)
	CalculateBatch(context.Context, *connect.Request[CalculateBatchRequest]) (*connect.Response[CalculateBatchResponse], error)
	SaveTransaction(context.Context, *connect.Request[SaveTransactionRequest]) (*connect.Response[SaveTransactionResponse], error)
	GetTransaction(context.Context, *connect.Request[GetTransactionRequest]) (*connect.Response[GetTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error)
	DeleteTransaction(context.Context, *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error)
}

// NewBalanceServiceClient constructs a client for the service at baseURL
// (for example, http://localhost:8080).
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &balanceServiceClient{
		calculateBalances: connect.NewClient[CalculateBalancesRequest, CalculateBalancesResponse](
			httpClient, baseURL+BalanceServiceCalculateBalancesProcedure, opts...),
		calculateBatch: connect.NewClient[CalculateBatchRequest, CalculateBatchResponse](
			httpClient, baseURL+BalanceServiceCalculateBatchProcedure, opts...),
		saveTransaction: connect.NewClient[SaveTransactionRequest, SaveTransactionResponse](
			httpClient, baseURL+BalanceServiceSaveTransactionProcedure, opts...),
		getTransaction: connect.NewClient[GetTransactionRequest, GetTransactionResponse](
			httpClient, baseURL+BalanceServiceGetTransactionProcedure, opts...),
		listTransactions: connect.NewClient[ListTransactionsRequest, ListTransactionsResponse](
			httpClient, baseURL+BalanceServiceListTransactionsProcedure, opts...),
		deleteTransaction: connect.NewClient[DeleteTransactionRequest, DeleteTransactionResponse](
			httpClient, baseURL+BalanceServiceDeleteTransactionProcedure, opts...),
	}
}

type balanceServiceClient struct {
	calculateBalances *connect.Client[CalculateBalancesRequest, CalculateBalancesResponse]
	calculateBatch    *connect.Client[CalculateBatchRequest, CalculateBatchResponse]
	saveTransaction   *connect.Client[SaveTransactionRequest, SaveTransactionResponse]
	getTransaction    *connect.Client[GetTransactionRequest, GetTransactionResponse]
	listTransactions  *connect.Client[ListTransactionsRequest, ListTransactionsResponse]
	deleteTransaction *connect.Client[DeleteTransactionRequest, DeleteTransactionResponse]
}

func (c *balanceServiceClient) CalculateBalances(ctx context.Context, req *connect.Request[CalculateBalancesRequest]) (*connect.Response[CalculateBalancesResponse], error) {
	return c.calculateBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) CalculateBatch(ctx context.Context, req *connect.Request[CalculateBatchRequest]) (*connect.Response[CalculateBatchResponse], error) {
	return c.calculateBatch.CallUnary(ctx, req)
}

func (c *balanceServiceClient) SaveTransaction(ctx context.Context, req *connect.Request[SaveTransactionRequest]) (*connect.Response[SaveTransactionResponse], error) {
	return c.saveTransaction.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetTransaction(ctx context.Context, req *connect.Request[GetTransactionRequest]) (*connect.Response[GetTransactionResponse], error) {
	return c.getTransaction.CallUnary(ctx, req)
}

func (c *balanceServiceClient) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *balanceServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}
