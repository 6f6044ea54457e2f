package graphql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/heartmarshall/grievance-backend/internal/domain"
	"github.com/heartmarshall/grievance-backend/pkg/ctxutil"
)

// NewErrorPresenter returns a gqlgen error presenter that maps domain errors
// to GraphQL error codes.
func NewErrorPresenter(log *slog.Logger) graphql.ErrorPresenterFunc {
	return func(ctx context.Context, err error) *gqlerror.Error {
		gqlErr := graphql.DefaultErrorPresenter(ctx, err)

		switch {
		case errors.Is(err, domain.ErrNotFound):
			gqlErr.Extensions = map[string]any{"code": "NOT_FOUND"}

		case errors.Is(err, domain.ErrValidation):
			gqlErr.Extensions = map[string]any{"code": "VALIDATION"}
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				fields := make([]map[string]string, 0, len(ve.Errors))
				for _, fe := range ve.Errors {
					fields = append(fields, map[string]string{"field": fe.Field, "message": fe.Message})
				}
				gqlErr.Extensions["fields"] = fields
			}

		case errors.Is(err, domain.ErrUnauthorized):
			gqlErr.Extensions = map[string]any{"code": "UNAUTHENTICATED"}

		case errors.Is(err, domain.ErrConflict):
			gqlErr.Extensions = map[string]any{"code": "CONFLICT"}

		case errors.Is(err, errNull):
			gqlErr.Extensions = map[string]any{"code": "INTERNAL"}

		default:
			log.ErrorContext(ctx, "unexpected GraphQL error",
				slog.String("error", err.Error()),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			)
			gqlErr.Message = "internal error"
			gqlErr.Extensions = map[string]any{"code": "INTERNAL"}
		}

		return gqlErr
	}
}
