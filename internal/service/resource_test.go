package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]interface{}
}

// fakeAPI answers every request with reply and records what it received
func fakeAPI(t *testing.T, reply string) (*apiclient.Client, *[]capturedRequest) {
	t.Helper()
	var seen []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := capturedRequest{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
		for k := range r.URL.Query() {
			c.Query[k] = r.URL.Query().Get(k)
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = jsoniter.Unmarshal(data, &c.Body)
		}
		seen = append(seen, c)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return apiclient.New(apiclient.Config{BaseURL: srv.URL}), &seen
}

func TestList_NormalizesEnvelopeAndBareArray(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{name: "envelope", reply: `{"paquetes":[{"id_paquete":"p1"},{"id_paquete":"p2"}],"total":2}`, want: []string{"p1", "p2"}},
		{name: "bare array", reply: `[{"id_paquete":"p3"}]`, want: []string{"p3"}},
		{name: "unexpected shape", reply: `{"otros":[]}`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := fakeAPI(t, tt.reply)
			got, err := NewPaqueteService(client).List(context.Background(), apiclient.DefaultPage, nil)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.IDPaquete)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestList_MergesFiltersIntoQuery(t *testing.T) {
	client, seen := fakeAPI(t, `[]`)
	var nilPtr *string

	_, err := NewPaqueteService(client).List(context.Background(), apiclient.Page{Skip: 20, Limit: 10},
		apiclient.Params{"estado": "en_transito", "tipo": nilPtr})
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, "/paquetes/", req.Path)
	assert.Equal(t, map[string]string{"skip": "20", "limit": "10", "estado": "en_transito"}, req.Query)
}

func TestUpdate_StripsAuditFieldsAndForwardsActingUser(t *testing.T) {
	tests := []struct {
		name       string
		actingUser string
		wantUser   string
	}{
		{name: "explicit user wins", actingUser: "u1", wantUser: "u1"},
		{name: "falls back to body value", actingUser: "", wantUser: "u7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, seen := fakeAPI(t, `{"id_paquete":"p1"}`)
			changes := model.Paquete{
				Peso:      decimal.RequireFromString("2.75"),
				Contenido: "ropa",
				Audit: model.Audit{
					CreadoPor:      "u0",
					ActualizadoPor: "u7",
					FechaCreacion:  "2024-01-01",
				},
			}

			_, err := NewPaqueteService(client).Update(context.Background(), "p1", changes, tt.actingUser)
			require.NoError(t, err)

			req := (*seen)[0]
			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, "/paquetes/p1", req.Path)
			assert.Equal(t, tt.wantUser, req.Query["actualizado_por"])
			for _, f := range model.AuditFields {
				assert.NotContains(t, req.Body, f)
			}
			assert.Equal(t, "ropa", req.Body["contenido"])
			assert.EqualValues(t, 2.75, req.Body["peso"])
		})
	}
}

func TestStripAudit_KeepsPrecision(t *testing.T) {
	fields, user, err := StripAudit(map[string]interface{}{
		"salario":         decimal.RequireFromString("1234567.891"),
		"actualizado_por": "u2",
	})
	require.NoError(t, err)
	assert.Equal(t, "u2", user)
	assert.Equal(t, jsoniter.Number("1234567.891"), fields["salario"])
	assert.NotContains(t, fields, "actualizado_por")
}

func TestCreate_ForwardsCreatorAndExtras(t *testing.T) {
	client, seen := fakeAPI(t, `{"id_paquete":"p9"}`)

	out, err := NewPaqueteService(client).Create(context.Background(), model.Paquete{Contenido: "docs"}, "u1",
		apiclient.Params{"id_cliente": "c1", "ignored": ""})
	require.NoError(t, err)
	assert.Equal(t, "p9", out.IDPaquete)

	req := (*seen)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/paquetes/", req.Path)
	assert.Equal(t, map[string]string{"creado_por": "u1", "id_cliente": "c1"}, req.Query)
}

func TestDeleteAndReactivate(t *testing.T) {
	client, seen := fakeAPI(t, `{"mensaje":"ok","exito":true}`)
	svc := NewSedeService(client)

	res, err := svc.Delete(context.Background(), "s1", "u1")
	require.NoError(t, err)
	assert.True(t, res.Exito)

	_, err = svc.Reactivate(context.Background(), "s1")
	require.NoError(t, err)

	del, react := (*seen)[0], (*seen)[1]
	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "u1", del.Query["actualizado_por"])
	assert.Equal(t, http.MethodPatch, react.Method)
	assert.Equal(t, "/sedes/s1/reactivar", react.Path)
	assert.Empty(t, react.Body)
}

func TestSedeList_RoutesFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters apiclient.Params
		path    string
	}{
		{name: "active", filters: apiclient.Params{"activo": true}, path: "/sedes/activos"},
		{name: "city", filters: apiclient.Params{"ciudad": "Cali"}, path: "/sedes/ciudad/Cali"},
		{name: "plain", filters: nil, path: "/sedes/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, seen := fakeAPI(t, `{"sedes":[]}`)
			_, err := NewSedeService(client).List(context.Background(), apiclient.DefaultPage, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.path, (*seen)[0].Path)
		})
	}
}

func TestLookup_SingleObjectBecomesList(t *testing.T) {
	client, seen := fakeAPI(t, `{"id_transporte":"t1","placa":"ABC123"}`)

	got, err := NewTransporteService(client).FindByPlaca(context.Background(), "ABC123")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].IDTransporte)
	assert.Equal(t, "/transportes/placa/ABC123", (*seen)[0].Path)
}

func TestDetalleEntrega_ByClienteDefaultsToRemitente(t *testing.T) {
	client, seen := fakeAPI(t, `{"detalles":[{"id_detalle":"d1"}]}`)

	got, err := NewDetalleEntregaService(client).ListByCliente(context.Background(), "c1", "", apiclient.DefaultPage)
	require.NoError(t, err)
	require.Len(t, got, 1)

	req := (*seen)[0]
	assert.Equal(t, "/detalles-entrega/cliente/c1", req.Path)
	assert.Equal(t, LadoRemitente, req.Query["tipo"])
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	client, seen := fakeAPI(t, `[]`)
	_, err := NewClienteService(client).SearchByName(context.Background(), "ana maría")
	require.NoError(t, err)
	assert.Equal(t, "/clientes/buscar/nombre/ana maría", (*seen)[0].Path)
}

func TestAnalyticsExport_FillsDefaults(t *testing.T) {
	client, seen := fakeAPI(t, `%PDF-1.4`)

	data, _, err := NewAnalyticsService(client).ExportResumen(context.Background(), ExportOptions{DaysLine: 7})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, map[string]string{"days_line": "7", "days_states": "90", "days_top": "90", "top_limit": "5"}, (*seen)[0].Query)
}
