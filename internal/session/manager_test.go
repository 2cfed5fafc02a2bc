package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/logger"
	"swiftpost/internal/model"
	"swiftpost/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string, _ map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

func loginServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var creds map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds["nombre_usuario"] != "admin" || creds["contraseña"] != "x" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Credenciales incorrectas o usuario inactivo"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id_usuario":"u1","nombre_usuario":"admin","activo":true,"id_rol":"r1","rol":{"id_rol":"r1","nombre_rol":"Administrador"}}`))
	}))
}

func newManager(t *testing.T, store storage.Storage, baseURL string) (*Manager, *recordingNavigator) {
	t.Helper()
	nav := &recordingNavigator{}
	client := apiclient.New(apiclient.Config{BaseURL: baseURL})
	return NewManager(context.Background(), store, client, nav, logger.NewNop()), nav
}

func TestLogin_PersistsRecordAndPublishesUser(t *testing.T) {
	srv := loginServer(t)
	defer srv.Close()
	ctx := context.Background()
	store := storage.NewMemory()
	m, _ := newManager(t, store, srv.URL)

	updates, cancel := m.Subscribe()
	defer cancel()
	assert.Nil(t, <-updates)

	user, err := m.Login(ctx, Credentials{NombreUsuario: "admin", Contrasena: "x"})
	require.NoError(t, err)

	assert.Equal(t, "u1", user.IDUsuario)
	assert.True(t, m.IsAuthenticated(ctx))
	assert.Equal(t, "u1", m.CurrentUser(ctx).IDUsuario)
	assert.Same(t, user, <-updates)

	raw, ok, err := store.Get(ctx, RecordKey)
	require.NoError(t, err)
	require.True(t, ok)
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.Equal(t, "u1", rec.Token)
	assert.Equal(t, "u1", rec.UserID)

	var stored model.Usuario
	require.NoError(t, json.Unmarshal([]byte(rec.UserData), &stored))
	assert.Equal(t, *user, stored)

	token, userID, ok := m.Credentials(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", token)
	assert.Equal(t, "u1", userID)
}

func TestLogin_RejectedCredentialsLeaveStateUntouched(t *testing.T) {
	srv := loginServer(t)
	defer srv.Close()
	ctx := context.Background()
	store := storage.NewMemory()
	m, _ := newManager(t, store, srv.URL)

	_, err := m.Login(ctx, Credentials{NombreUsuario: "admin", Contrasena: "wrong"})
	require.Error(t, err)

	keys, _ := store.Keys(ctx, "")
	assert.Empty(t, keys)
	assert.Nil(t, m.CurrentUser(ctx))
	assert.False(t, m.IsAuthenticated(ctx))
}

func TestLogin_CancelledAfterResponseDoesNotPersist(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id_usuario":"u1","nombre_usuario":"admin","activo":true}`))
		cancel()
	}))
	defer srv.Close()

	store := storage.NewMemory()
	m, _ := newManager(t, store, srv.URL)

	_, err := m.Login(ctx, Credentials{NombreUsuario: "admin", Contrasena: "x"})
	require.Error(t, err)
	assert.False(t, m.IsAuthenticated(context.Background()))
	assert.Nil(t, m.CurrentUser(context.Background()))
}

func TestIsAuthenticated_RequiresTokenAndUserID(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		record string
		want   bool
	}{
		{name: "both present", record: `{"auth_token":"u1","user_id":"u1"}`, want: true},
		{name: "token missing", record: `{"user_id":"u1"}`, want: false},
		{name: "user id missing", record: `{"auth_token":"u1"}`, want: false},
		{name: "no record", record: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemory()
			if tt.record != "" {
				require.NoError(t, store.Set(ctx, RecordKey, tt.record))
			}
			m, _ := newManager(t, store, "http://unused")
			assert.Equal(t, tt.want, m.IsAuthenticated(ctx))
		})
	}
}

func TestCurrentUser_ReloadsFromStorage(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	m, _ := newManager(t, store, "http://unused")
	assert.Nil(t, m.CurrentUser(ctx))

	// another console process wrote the record after this manager started
	rec := `{"auth_token":"u9","user_id":"u9","user_data":"{\"id_usuario\":\"u9\",\"nombre_usuario\":\"ops\",\"activo\":true,\"id_rol\":\"r2\"}"}`
	require.NoError(t, store.Set(ctx, RecordKey, rec))

	user := m.CurrentUser(ctx)
	require.NotNil(t, user)
	assert.Equal(t, "ops", user.NombreUsuario)
}

func TestCurrentUser_CorruptDataForcesLogout(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	m, nav := newManager(t, store, "http://unused")

	require.NoError(t, store.Set(ctx, RecordKey, `{"auth_token":"u1","user_id":"u1","user_data":"{not json"}`))

	assert.Nil(t, m.CurrentUser(ctx))
	assert.Equal(t, SignInPath, nav.last())
	_, ok, _ := store.Get(ctx, RecordKey)
	assert.False(t, ok)
}

func TestNewManager_CorruptRecordForcesLogout(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Set(ctx, RecordKey, `garbage`))

	m, nav := newManager(t, store, "http://unused")

	assert.Equal(t, SignInPath, nav.last())
	assert.False(t, m.IsAuthenticated(ctx))
}

func TestLogout_ClearsEverything(t *testing.T) {
	srv := loginServer(t)
	defer srv.Close()
	ctx := context.Background()
	store := storage.NewMemory()
	m, nav := newManager(t, store, srv.URL)

	_, err := m.Login(ctx, Credentials{NombreUsuario: "admin", Contrasena: "x"})
	require.NoError(t, err)

	m.Logout(ctx)

	assert.False(t, m.IsAuthenticated(ctx))
	assert.Nil(t, m.CurrentUser(ctx))
	assert.Equal(t, SignInPath, nav.last())
}

func TestHasRole_CaseInsensitive(t *testing.T) {
	srv := loginServer(t)
	defer srv.Close()
	ctx := context.Background()
	m, _ := newManager(t, storage.NewMemory(), srv.URL)

	assert.False(t, m.HasRole(ctx, "administrador"))

	_, err := m.Login(ctx, Credentials{NombreUsuario: "admin", Contrasena: "x"})
	require.NoError(t, err)

	assert.True(t, m.HasRole(ctx, "administrador"))
	assert.True(t, m.HasRole(ctx, "ADMINISTRADOR"))
	assert.False(t, m.HasRole(ctx, "mensajero"))
}

func TestNonInteractiveStorage(t *testing.T) {
	srv := loginServer(t)
	defer srv.Close()
	ctx := context.Background()
	m, _ := newManager(t, storage.NewNoop(), srv.URL)

	user, err := m.Login(ctx, Credentials{NombreUsuario: "admin", Contrasena: "x"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.IDUsuario)

	assert.False(t, m.Interactive())
	assert.False(t, m.IsAuthenticated(ctx))
	_, _, ok := m.Credentials(ctx)
	assert.False(t, ok)
}
