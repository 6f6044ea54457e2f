package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/grievance-backend/pkg/ctxutil"
)

type accessKey struct{}

// accessInfo is filled by inner middleware so the access log can see the
// actor resolved further down the chain.
type accessInfo struct {
	actorID uuid.UUID
	role    string
}

func noteActor(ctx context.Context, id uuid.UUID, role string) {
	if info, ok := ctx.Value(accessKey{}).(*accessInfo); ok {
		info.actorID = id
		info.role = role
	}
}

// Logger returns middleware that logs each HTTP request with method, path,
// status code, duration, request_id and, when authenticated, actor_id.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			info := &accessInfo{}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), accessKey{}, info)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if info.actorID != uuid.Nil {
				attrs = append(attrs,
					slog.String("actor_id", info.actorID.String()),
					slog.String("role", info.role),
				)
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case sw.status >= 400:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}
