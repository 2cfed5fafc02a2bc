package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"swiftpost/internal/interceptor"
	"swiftpost/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSessions struct {
	interactive bool
	authed      bool
	role        string
}

func (f fakeSessions) IsAuthenticated(context.Context) bool {
	return f.authed
}

func (f fakeSessions) Interactive() bool {
	return f.interactive
}

func (f fakeSessions) HasRole(_ context.Context, name string) bool {
	return f.authed && strings.EqualFold(f.role, name)
}

func TestCheckAuth(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, Decision{Allow: true}, CheckAuth(ctx, fakeSessions{interactive: true, authed: true}, "/paquetes"))
	assert.Equal(t, Decision{Redirect: "/login?returnUrl=%2Fpaquetes%3Festado%3Dentregado"},
		CheckAuth(ctx, fakeSessions{interactive: true}, "/paquetes?estado=entregado"))
	assert.Equal(t, Decision{}, CheckAuth(ctx, fakeSessions{authed: true}, "/paquetes"))
}

func TestCheckLogin(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, Decision{Allow: true}, CheckLogin(ctx, fakeSessions{interactive: true}))
	assert.Equal(t, Decision{Redirect: "/inicio"}, CheckLogin(ctx, fakeSessions{interactive: true, authed: true}))
	assert.Equal(t, Decision{}, CheckLogin(ctx, fakeSessions{}))
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestAuthGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		sessions fakeSessions
		status   int
		location string
	}{
		{name: "signed in", sessions: fakeSessions{interactive: true, authed: true}, status: http.StatusOK},
		{name: "signed out", sessions: fakeSessions{interactive: true}, status: http.StatusFound, location: "/login?returnUrl=%2Fapi%2Fsedes"},
		{name: "non interactive", sessions: fakeSessions{authed: true}, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/api/sedes", AuthGuard(tt.sessions), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := serve(r, http.MethodGet, "/api/sedes")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func TestLoginGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/login", LoginGuard(fakeSessions{interactive: true, authed: true}), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/login")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/inicio", w.Header().Get("Location"))
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		sessions fakeSessions
		status   int
	}{
		{name: "matching role", sessions: fakeSessions{interactive: true, authed: true, role: "Administrador"}, status: http.StatusOK},
		{name: "other role", sessions: fakeSessions{interactive: true, authed: true, role: "mensajero"}, status: http.StatusForbidden},
		{name: "signed out", sessions: fakeSessions{interactive: true}, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.DELETE("/api/usuarios/:id", RequireRole(tt.sessions, "administrador"), func(c *gin.Context) { c.Status(http.StatusOK) })
			assert.Equal(t, tt.status, serve(r, http.MethodDelete, "/api/usuarios/u1").Code)
		})
	}
}

func TestRequestLogger_PropagatesID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var fromCtx, fromGin string
	r := gin.New()
	r.Use(RequestLogger(logger.NewNop()))
	r.GET("/health", func(c *gin.Context) {
		fromCtx = interceptor.RequestIDFrom(c.Request.Context())
		fromGin = RequestID(c)
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/health")
	id := w.Header().Get(interceptor.HeaderRequestID)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, fromCtx)
	assert.Equal(t, id, fromGin)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(interceptor.HeaderRequestID, "upstream-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-1", w.Header().Get(interceptor.HeaderRequestID))
}
