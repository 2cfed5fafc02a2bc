package interceptor

import (
	"context"
	"net/http"

	"swiftpost/internal/apiclient"
)

// HeaderRequestID carries the gateway request id to the remote API
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID stores a request id in ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id stored in ctx, or ""
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID forwards the context's request id so gateway and backend logs line up
func RequestID() apiclient.Interceptor {
	return func(req *http.Request, next apiclient.Handler) (*http.Response, error) {
		id := RequestIDFrom(req.Context())
		if id == "" || req.Header.Get(HeaderRequestID) != "" {
			return next(req)
		}
		tagged := req.Clone(req.Context())
		tagged.Header.Set(HeaderRequestID, id)
		return next(tagged)
	}
}
