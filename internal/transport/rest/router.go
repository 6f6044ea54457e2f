package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/heartmarshall/grievance-backend/internal/auth"
	"github.com/heartmarshall/grievance-backend/internal/transport/middleware"
)

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health      *HealthHandler
	Cases       *CaseHandler
	Deadlines   *DeadlineHandler
	Caseworkers *CaseworkerHandler
	Escalations *EscalationHandler
	Timeline    *TimelineHandler
	// GraphQL serves the read API at /api/graphql.
	GraphQL http.Handler
}

// NewRouter mounts the probes at the root and the API under /api. Every
// /api route needs an authenticated actor; staff routes additionally need
// the caseworker or admin role and configuration routes the admin role.
// Token parsing itself happens in middleware.Auth, applied by the caller.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.HandleFunc("/live", h.Health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = r.NotFoundHandler
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler
	api.Use(mux.MiddlewareFunc(middleware.RequireActor()))

	staff := middleware.RequireRole(auth.RoleCaseworker, auth.RoleAdmin)
	admin := middleware.RequireRole(auth.RoleAdmin)

	// Cases
	api.HandleFunc("/cases", h.Cases.Create).Methods(http.MethodPost)
	api.HandleFunc("/cases/{id}", h.Cases.Get).Methods(http.MethodGet)
	api.Handle("/cases/{id}/status", staff(http.HandlerFunc(h.Cases.ChangeStatus))).Methods(http.MethodPatch)
	api.Handle("/cases/{id}/assignments", staff(http.HandlerFunc(h.Cases.Assign))).Methods(http.MethodPost)
	api.Handle("/cases/{id}/assignments", staff(http.HandlerFunc(h.Cases.Assignments))).Methods(http.MethodGet)
	api.Handle("/cases/{id}/auto-assign", staff(http.HandlerFunc(h.Cases.AutoAssign))).Methods(http.MethodPost)

	// Deadlines
	api.HandleFunc("/cases/{id}/deadlines", h.Deadlines.ListByCase).Methods(http.MethodGet)
	api.Handle("/cases/{id}/deadlines", staff(http.HandlerFunc(h.Deadlines.AddCustom))).Methods(http.MethodPost)
	api.Handle("/deadlines/{id}/met", staff(http.HandlerFunc(h.Deadlines.MarkMet))).Methods(http.MethodPost)

	// Caseworker dashboard
	api.Handle("/caseworkers/{id}/workload", staff(http.HandlerFunc(h.Caseworkers.Workload))).Methods(http.MethodGet)
	api.Handle("/caseworkers/{id}/deadlines/upcoming", staff(http.HandlerFunc(h.Caseworkers.Upcoming))).Methods(http.MethodGet)
	api.Handle("/caseworkers/{id}/deadlines/overdue", staff(http.HandlerFunc(h.Caseworkers.Overdue))).Methods(http.MethodGet)

	// Escalation
	api.Handle("/cases/{id}/escalations", staff(http.HandlerFunc(h.Escalations.Escalate))).Methods(http.MethodPost)
	api.Handle("/escalations", staff(http.HandlerFunc(h.Escalations.History))).Methods(http.MethodGet)
	api.Handle("/escalations/scan", admin(http.HandlerFunc(h.Escalations.Scan))).Methods(http.MethodPost)
	api.Handle("/escalation-rules", staff(http.HandlerFunc(h.Escalations.ListRules))).Methods(http.MethodGet)
	api.Handle("/escalation-rules", admin(http.HandlerFunc(h.Escalations.CreateRule))).Methods(http.MethodPost)
	api.Handle("/escalation-rules/{id}", admin(http.HandlerFunc(h.Escalations.SetRuleActive))).Methods(http.MethodPatch)

	// Timeline
	api.HandleFunc("/cases/{id}/timeline", h.Timeline.CaseHistory).Methods(http.MethodGet)
	api.Handle("/cases/{id}/idle", staff(http.HandlerFunc(h.Timeline.Idle))).Methods(http.MethodGet)
	api.Handle("/activity", staff(http.HandlerFunc(h.Timeline.Recent))).Methods(http.MethodGet)

	// GraphQL read API
	api.Handle("/graphql", staff(h.GraphQL)).Methods(http.MethodGet, http.MethodPost)

	return r
}
