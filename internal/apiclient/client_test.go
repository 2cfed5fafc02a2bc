package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_OmitsNilAndStringifies(t *testing.T) {
	var missing *string
	estado := "en_transito"

	q := BuildQuery(Params{
		"skip":    0,
		"limit":   25,
		"activo":  true,
		"estado":  &estado,
		"ciudad":  nil,
		"missing": missing,
	})

	assert.Equal(t, "0", q.Get("skip"))
	assert.Equal(t, "25", q.Get("limit"))
	assert.Equal(t, "true", q.Get("activo"))
	assert.Equal(t, "en_transito", q.Get("estado"))
	assert.NotContains(t, q, "ciudad")
	assert.NotContains(t, q, "missing")
	assert.Equal(t, "activo=true&estado=en_transito&limit=25&skip=0", q.Encode())
}

func TestParams_Merge(t *testing.T) {
	base := Params{"skip": 0, "limit": 10}
	merged := base.Merge(Params{"limit": 50, "tipo": "caja"})

	assert.Equal(t, Params{"skip": 0, "limit": 50, "tipo": "caja"}, merged)
	assert.Equal(t, 10, base["limit"], "merge must not mutate the receiver")
}

func TestClient_PrefixesBaseURLAndSetsJSONHeaders(t *testing.T) {
	var got *http.Request
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id_rol":"r1","nombre_rol":"admin"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/"})
	var out map[string]string
	err := c.Post(context.Background(), "/roles", map[string]string{"nombre_rol": "admin"}, Params{"creado_por": "u1"}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/roles", got.URL.Path)
	assert.Equal(t, "u1", got.URL.Query().Get("creado_por"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.JSONEq(t, `{"nombre_rol":"admin"}`, gotBody)
	assert.Equal(t, "admin", out["nombre_rol"])
	assert.Equal(t, srv.URL+"/roles", c.FullURL("/roles"))
}

func TestClient_ErrorStatusBecomesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Paquete no encontrado"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	err := c.Get(context.Background(), "/paquetes/x", nil, nil)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.StatusCode)
	assert.Equal(t, "Not Found", he.Status)
	assert.JSONEq(t, `{"detail":"Paquete no encontrado"}`, string(he.Body))
}

func TestClient_InterceptorsRunInRegistrationOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("X-Trace")))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	tag := func(name string) Interceptor {
		return func(req *http.Request, next Handler) (*http.Response, error) {
			clone := req.Clone(req.Context())
			clone.Header.Set("X-Trace", req.Header.Get("X-Trace")+name)
			return next(clone)
		}
	}
	c.Use(tag("a"), tag("b"))

	resp, err := c.Do(context.Background(), http.MethodGet, "/", nil, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ab", string(body))
}

func TestClient_CancelledContextStopsCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Config{BaseURL: srv.URL})
	err := c.Get(ctx, "/sedes/", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_GetFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30", r.URL.Query().Get("days_line"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	data, ct, err := c.GetFile(context.Background(), "/analytics/export-resumen", Params{"days_line": 30})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, "%PDF-1.4", string(data))
}
