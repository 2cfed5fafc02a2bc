package service

import (
	"context"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
)

// ExportOptions selects the windows of the PDF summary
type ExportOptions struct {
	DaysLine   int `form:"days_line"`
	DaysStates int `form:"days_states"`
	DaysTop    int `form:"days_top"`
	TopLimit   int `form:"top_limit"`
}

// DefaultExportOptions mirrors the dashboard's default windows
var DefaultExportOptions = ExportOptions{DaysLine: 30, DaysStates: 90, DaysTop: 90, TopLimit: 5}

type AnalyticsService interface {
	PaquetesUltimosDias(ctx context.Context, days int) (*model.SerieXY, error)
	SedesMasActivas(ctx context.Context, limit, days int) (*model.TopItems, error)
	EstadosPaquetes(ctx context.Context, days int) (*model.TopItems, error)
	TiempoPromedioEntrega(ctx context.Context, days int) (*model.TiempoPromedioEntrega, error)
	Resumen(ctx context.Context) (*model.ResumenAnalytics, error)
	ExportResumen(ctx context.Context, opts ExportOptions) ([]byte, string, error)
}

type analyticsService struct {
	client *apiclient.Client
}

func NewAnalyticsService(client *apiclient.Client) AnalyticsService {
	return &analyticsService{client: client}
}

func (s *analyticsService) PaquetesUltimosDias(ctx context.Context, days int) (*model.SerieXY, error) {
	var out model.SerieXY
	if err := s.client.Get(ctx, "/analytics/paquetes-ultimos-30-dias", apiclient.Params{"days": days}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) SedesMasActivas(ctx context.Context, limit, days int) (*model.TopItems, error) {
	var out model.TopItems
	if err := s.client.Get(ctx, "/analytics/sedes-mas-activas", apiclient.Params{"limit": limit, "days": days}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) EstadosPaquetes(ctx context.Context, days int) (*model.TopItems, error) {
	var out model.TopItems
	if err := s.client.Get(ctx, "/analytics/estados-paquetes", apiclient.Params{"days": days}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) TiempoPromedioEntrega(ctx context.Context, days int) (*model.TiempoPromedioEntrega, error) {
	var out model.TiempoPromedioEntrega
	if err := s.client.Get(ctx, "/analytics/tiempo-promedio-entrega", apiclient.Params{"days": days}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) Resumen(ctx context.Context) (*model.ResumenAnalytics, error) {
	var out model.ResumenAnalytics
	if err := s.client.Get(ctx, "/analytics/resumen", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportResumen downloads the PDF summary. Zero option fields fall back to the defaults.
func (s *analyticsService) ExportResumen(ctx context.Context, opts ExportOptions) ([]byte, string, error) {
	d := DefaultExportOptions
	params := apiclient.Params{
		"days_line":   orDefault(opts.DaysLine, d.DaysLine),
		"days_states": orDefault(opts.DaysStates, d.DaysStates),
		"days_top":    orDefault(opts.DaysTop, d.DaysTop),
		"top_limit":   orDefault(opts.TopLimit, d.TopLimit),
	}
	return s.client.GetFile(ctx, "/analytics/export-resumen", params)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
