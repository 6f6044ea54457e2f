package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	actorIDKey   ctxKey = "actor_id"
	roleKey      ctxKey = "role"
	requestIDKey ctxKey = "request_id"
)

// WithActor stores the authenticated actor and their role in the context.
func WithActor(ctx context.Context, id uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, actorIDKey, id)
	return context.WithValue(ctx, roleKey, role)
}

// ActorIDFromCtx extracts the actor ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func ActorIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// PerformedBy returns the actor ID as a pointer suitable for audit fields,
// or nil for anonymous and system calls.
func PerformedBy(ctx context.Context) *uuid.UUID {
	id, ok := ActorIDFromCtx(ctx)
	if !ok {
		return nil
	}
	return &id
}

// RoleFromCtx extracts the actor's role. Returns "" if absent.
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
