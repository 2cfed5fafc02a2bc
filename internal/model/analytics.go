package model

import "github.com/shopspring/decimal"

// SerieXY is a labelled time series
type SerieXY struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// TopItems is a ranked label/count list
type TopItems struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

type TiempoPromedioEntrega struct {
	AvgHours decimal.Decimal `json:"avg_hours"`
	AvgDays  decimal.Decimal `json:"avg_days"`
}

type ResumenAnalytics struct {
	TotalPaquetes      int64 `json:"total_paquetes"`
	PaquetesMes        int64 `json:"paquetes_mes"`
	SedesActivas       int64 `json:"sedes_activas"`
	EntregasPendientes int64 `json:"entregas_pendientes"`
}
