package interceptor

import (
	"context"
	"net/http"

	"swiftpost/internal/apiclient"
)

// TokenSource yields the bearer token and user id of the current session
type TokenSource interface {
	Credentials(ctx context.Context) (token, userID string, ok bool)
}

// Auth attaches "Authorization: Bearer <token>" and X-User-ID when a session exists.
// Requests without a session are forwarded unchanged.
func Auth(src TokenSource) apiclient.Interceptor {
	return func(req *http.Request, next apiclient.Handler) (*http.Response, error) {
		token, userID, ok := src.Credentials(req.Context())
		if !ok || token == "" {
			return next(req)
		}

		authed := req.Clone(req.Context())
		authed.Header.Set("Authorization", "Bearer "+token)
		if userID != "" {
			authed.Header.Set("X-User-ID", userID)
		}
		return next(authed)
	}
}
