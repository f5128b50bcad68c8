package utility

import (
	"context"
	"net/http"

	"github.com/minglehq/mingle/internal/domain"
)

type ctxKey string

const userCtxKey = ctxKey("USER")

func ContextSetUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userCtxKey, user))
}

// ContextGetUser panics on a missing user, every route below the authenticate
// middleware is guaranteed to have one set.
func ContextGetUser(ctx context.Context) *domain.User {
	user, ok := ctx.Value(userCtxKey).(*domain.User)
	if !ok {
		panic("missing user in request context")
	}
	return user
}
