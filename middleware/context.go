package middleware

import (
	"context"

	"github.com/academia-hq/backend/auth"
)

// Context key type to avoid collisions
type contextKey string

const (
	// principalKey is the context key for the resolved principal
	principalKey contextKey = "principal"

	// academyKey is the context key for the effective academy id
	academyKey contextKey = "academy_id"
)

// WithPrincipal attaches the resolved principal to the context. The principal
// is immutable for the request's lifetime.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the resolved principal from the context.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(auth.Principal)
	return p, ok
}

// StaffFromContext retrieves the principal as a StaffPrincipal.
func StaffFromContext(ctx context.Context) (auth.StaffPrincipal, bool) {
	p, ok := ctx.Value(principalKey).(auth.StaffPrincipal)
	return p, ok
}

// GuardianFromContext retrieves the principal as a GuardianPrincipal.
func GuardianFromContext(ctx context.Context) (auth.GuardianPrincipal, bool) {
	p, ok := ctx.Value(principalKey).(auth.GuardianPrincipal)
	return p, ok
}

// WithAcademy attaches the effective academy id to the context. Only the
// policy executor sets this, once per request.
func WithAcademy(ctx context.Context, academyID int) context.Context {
	return context.WithValue(ctx, academyKey, academyID)
}

// AcademyFromContext retrieves the effective academy id from the context.
// Every tenant-scoped query must use this value and nothing else.
func AcademyFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(academyKey).(int)
	return id, ok
}
