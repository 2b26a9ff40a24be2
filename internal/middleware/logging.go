package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitpay/internal/calculator"
)

// LoggingInterceptor logs one line per unary RPC: "RPC ok" at info,
// "RPC error" at warn for Connect errors and at error for anything else.
// Rejected input is logged with the purchase, item and field that failed
// validation. A nil logger means slog.Default().
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			l := logger
			if l == nil {
				l = slog.Default()
			}
			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("peer", req.Peer().Addr),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}

			if err == nil {
				l.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}

			var connectErr *connect.Error
			if !errors.As(err, &connectErr) {
				l.LogAttrs(ctx, slog.LevelError, "RPC error", append(attrs, slog.Any("error", err))...)
				return resp, err
			}

			attrs = append(attrs,
				slog.String("code", connectErr.Code().String()),
				slog.String("error", connectErr.Message()),
			)
			var verr *calculator.ValidationError
			if connectErr.Code() == connect.CodeInvalidArgument && errors.As(err, &verr) {
				attrs = append(attrs, slog.Int("purchase", verr.Purchase), slog.String("field", verr.Field))
				if verr.Item >= 0 {
					attrs = append(attrs, slog.Int("item", verr.Item))
				}
			}
			l.LogAttrs(ctx, slog.LevelWarn, "RPC error", attrs...)
			return resp, err
		}
	}
}
