package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/amharF/udacity-ND-P4/api")

func (a *API) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := uuid.New()

		ctx := ctxWithRequestId(r.Context(), requestId)
		ctx = ctxWithLogger(ctx, a.logger.With(slog.String("request-id", requestId.String())))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *API) tracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *API) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		loggingRW := newLoggingResponseWriter(w)

		// process the request
		next.ServeHTTP(loggingRW, r)

		getLoggerFromCtx(r.Context()).InfoContext(r.Context(),
			"Access log",
			slog.String("latency", formatDuration(time.Since(start))),
			slog.Int64("request-content-length", r.ContentLength),
			slog.Int("resp-body-size", loggingRW.responseSize),
			slog.String("host", r.Host),
			slog.String("method", r.Method),
			slog.Int("status-code", loggingRW.statusCode),
			slog.String("path", r.URL.Path),
		)
	})
}

func (a *API) corsMiddleware() func(next http.Handler) http.Handler {
	var serverCors *cors.Cors

	switch a.env {
	case LOCAL:
		serverCors = cors.AllowAll()
	case PROD:
		serverCors = cors.New(cors.Options{
			AllowedOrigins: []string{"https://udacity-nd-p4.appspot.com"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			MaxAge:         300,
		})
	}

	return serverCors.Handler
}

// formatDuration formats a duration to one decimal point.
func formatDuration(d time.Duration) string {
	div := time.Duration(10)
	switch {
	case d > time.Second:
		d = d.Round(time.Second / div)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond / div)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond / div)
	case d > time.Nanosecond:
		d = d.Round(time.Nanosecond / div)
	}
	return d.String()
}
