package api

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

const (
	ctxRequestIdKey = "REQUEST_ID"
	ctxLoggerKey    = "LOGGER"
	ctxPrincipalKey = "PRINCIPAL"
)

func ctxWithRequestId(ctx context.Context, requestId uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxRequestIdKey, requestId)
}

func getRequestIdFromCtx(ctx context.Context) uuid.UUID {
	return ctx.Value(ctxRequestIdKey).(uuid.UUID)
}

func ctxWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey, logger)
}

func getLoggerFromCtx(ctx context.Context) *slog.Logger {
	return ctx.Value(ctxLoggerKey).(*slog.Logger)
}

func ctxWithPrincipal(ctx context.Context, p principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, p)
}

func getPrincipalFromCtx(ctx context.Context) principal {
	return ctx.Value(ctxPrincipalKey).(principal)
}
