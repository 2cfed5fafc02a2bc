package model

import "github.com/shopspring/decimal"

// Transporte is a delivery vehicle assigned to a site
type Transporte struct {
	IDTransporte   string          `json:"id_transporte,omitempty"`
	TipoVehiculo   string          `json:"tipo_vehiculo"`
	CapacidadCarga decimal.Decimal `json:"capacidad_carga"`
	IDSede         string          `json:"id_sede"`
	Placa          string          `json:"placa"`
	Modelo         string          `json:"modelo"`
	Marca          string          `json:"marca"`
	Anio           int             `json:"año"`
	Estado         string          `json:"estado,omitempty"`
	Activo         *bool           `json:"activo,omitempty"`
	Audit
}
