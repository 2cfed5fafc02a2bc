package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
	"swiftpost/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalytics struct {
	exportOpts service.ExportOptions
}

func (f *fakeAnalytics) PaquetesUltimosDias(context.Context, int) (*model.SerieXY, error) {
	return &model.SerieXY{Labels: []string{"2024-03-01"}, Data: []int64{4}}, nil
}

func (f *fakeAnalytics) SedesMasActivas(context.Context, int, int) (*model.TopItems, error) {
	return nil, apiclient.NewNormalizedError(http.StatusInternalServerError, "Internal server error", nil, nil)
}

func (f *fakeAnalytics) EstadosPaquetes(context.Context, int) (*model.TopItems, error) {
	return &model.TopItems{Labels: []string{"Entregado"}, Data: []int64{7}}, nil
}

func (f *fakeAnalytics) TiempoPromedioEntrega(context.Context, int) (*model.TiempoPromedioEntrega, error) {
	return &model.TiempoPromedioEntrega{}, nil
}

func (f *fakeAnalytics) Resumen(context.Context) (*model.ResumenAnalytics, error) {
	return &model.ResumenAnalytics{TotalPaquetes: 11}, nil
}

func (f *fakeAnalytics) ExportResumen(_ context.Context, opts service.ExportOptions) ([]byte, string, error) {
	f.exportOpts = opts
	return []byte("%PDF-1.4"), "", nil
}

func TestDashboard_PartialFailure(t *testing.T) {
	r, _ := newRouter()
	NewAnalyticsHandler(&fakeAnalytics{}).RegisterHome(r.Group(""))

	w, env := do(t, r, http.MethodGet, "/inicio", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var d Dashboard
	require.NoError(t, json.Unmarshal(env.Data, &d))
	require.NotNil(t, d.Resumen)
	assert.EqualValues(t, 11, d.Resumen.TotalPaquetes)
	assert.NotNil(t, d.Estados)
	assert.Nil(t, d.SedesActivas)
	assert.Equal(t, map[string]string{"sedes_mas_activas": "Internal server error"}, d.Errors)
}

func TestExport_Download(t *testing.T) {
	fake := &fakeAnalytics{}
	r, api := newRouter()
	NewAnalyticsHandler(fake).RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/export-resumen?days_line=7&top_limit=3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "%PDF-1.4", w.Body.String())
	assert.Equal(t, service.ExportOptions{DaysLine: 7, TopLimit: 3}, fake.exportOpts)
}
