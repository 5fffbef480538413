package httpx

import (
	"context"

	"github.com/openummah/masjidhub/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyIdentity ctxKey = "identity"
)

// ContextWithIdentity injects the verified token identity for downstream
// handlers.
func ContextWithIdentity(ctx context.Context, id jwtx.Identity) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, id.UserID)
	return context.WithValue(ctx, CtxKeyIdentity, id)
}

// IdentityFromContext returns the identity injected by the authentication
// middleware, or ok=false for ungated requests.
func IdentityFromContext(ctx context.Context) (jwtx.Identity, bool) {
	id, ok := ctx.Value(CtxKeyIdentity).(jwtx.Identity)
	return id, ok
}
