package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"swiftpost/internal/draft"
	"swiftpost/internal/logger"
	"swiftpost/internal/model"
	"swiftpost/internal/storage"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeSessions struct {
	user *model.Usuario
}

func (f *fakeSessions) IsAuthenticated(context.Context) bool { return f.user != nil }

func (f *fakeSessions) Interactive() bool { return true }

func (f *fakeSessions) HasRole(_ context.Context, name string) bool {
	return f.user != nil && strings.EqualFold(f.user.RoleName(), name)
}

func (f *fakeSessions) CurrentUser(context.Context) *model.Usuario { return f.user }

func newDeps() Deps {
	log := logger.NewNop()
	return Deps{
		Sessions: &fakeSessions{user: &model.Usuario{IDUsuario: "u1", NombreUsuario: "admin", Activo: true}},
		Drafts:   draft.NewStore(storage.NewMemory(), log),
		Log:      log,
	}
}

func newRouter() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	return r, r.Group("/api")
}

type envelope struct {
	Status     string              `json:"status"`
	StatusCode int                 `json:"status_code"`
	Data       jsoniter.RawMessage `json:"data"`
	Error      string              `json:"error"`
	Details    interface{}         `json:"details"`
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}
