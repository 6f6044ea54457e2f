package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
)

const maxBodyBytes = 1 << 20

// Handler serves GraphQL queries over HTTP. Only the query operation type
// exists; lifecycle changes go through the REST API.
type Handler struct {
	schema    *ast.Schema
	types     map[string]objectType
	presenter graphql.ErrorPresenterFunc
	log       *slog.Logger
}

// NewHandler creates a Handler. The request context must carry DataLoaders
// (see dataloader.Middleware).
func NewHandler(resolver *Resolver, logger *slog.Logger) *Handler {
	log := logger.With("handler", "graphql")
	return &Handler{
		schema:    Schema(),
		types:     resolver.types(),
		presenter: NewErrorPresenter(log),
		log:       log,
	}
}

// ServeHTTP handles GET and POST /api/graphql.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(w, r)
	if err != nil {
		h.log.DebugContext(r.Context(), "graphql request rejected", slog.String("error", err.Error()))
		writeResponse(w, http.StatusBadRequest, errorResponse(gqlerror.Errorf("%s", err.Error())))
		return
	}

	status, resp := h.Execute(r.Context(), params)
	writeResponse(w, status, resp)
}

// Execute parses, validates and runs one request. Documents that fail to
// parse or validate produce 422 without touching any resolver.
func (h *Handler) Execute(ctx context.Context, params *graphql.RawParams) (int, *graphql.Response) {
	doc, errs := gqlparser.LoadQueryWithRules(h.schema, params.Query, nil)
	if len(errs) > 0 {
		return http.StatusUnprocessableEntity, &graphql.Response{Errors: errs}
	}

	op := doc.Operations.ForName(params.OperationName)
	if op == nil {
		return http.StatusUnprocessableEntity, errorResponse(gqlerror.Errorf("operation %q not found", params.OperationName))
	}
	if op.Operation != ast.Query {
		return http.StatusUnprocessableEntity, errorResponse(gqlerror.Errorf("%s operations are not supported", op.Operation))
	}

	vars, err := validator.VariableValues(h.schema, op, params.Variables)
	if err != nil {
		var gqlErr *gqlerror.Error
		if !errors.As(err, &gqlErr) {
			gqlErr = gqlerror.Errorf("%s", err.Error())
		}
		return http.StatusUnprocessableEntity, errorResponse(gqlErr)
	}

	exec := &executor{
		schema:    h.schema,
		types:     h.types,
		fragments: doc.Fragments,
		vars:      vars,
		present:   h.presenter,
	}
	if d := exec.depth(op.SelectionSet, map[string]bool{}); d > maxDepth {
		return http.StatusUnprocessableEntity, errorResponse(gqlerror.Errorf("query depth %d exceeds the limit of %d", d, maxDepth))
	}

	return http.StatusOK, exec.execute(ctx, op)
}

func decodeParams(w http.ResponseWriter, r *http.Request) (*graphql.RawParams, error) {
	params := &graphql.RawParams{}

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		params.Query = q.Get("query")
		params.OperationName = q.Get("operationName")
		if raw := q.Get("variables"); raw != "" {
			dec := json.NewDecoder(strings.NewReader(raw))
			dec.UseNumber()
			if err := dec.Decode(&params.Variables); err != nil {
				return nil, fmt.Errorf("variables could not be decoded: %w", err)
			}
		}
	case http.MethodPost:
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.UseNumber()
		if err := dec.Decode(params); err != nil {
			return nil, fmt.Errorf("body could not be decoded: %w", err)
		}
	default:
		return nil, fmt.Errorf("method %s not allowed", r.Method)
	}

	if params.Query == "" {
		return nil, errors.New("no query document supplied")
	}
	return params, nil
}

func errorResponse(err *gqlerror.Error) *graphql.Response {
	return &graphql.Response{Errors: gqlerror.List{err}}
}

func writeResponse(w http.ResponseWriter, status int, resp *graphql.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp) //nolint:errcheck
}
