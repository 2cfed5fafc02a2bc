package model

import "github.com/shopspring/decimal"

// Paquete is a parcel registered for delivery
type Paquete struct {
	IDPaquete      string           `json:"id_paquete,omitempty"`
	Peso           decimal.Decimal  `json:"peso"`
	Tamano         string           `json:"tamaño"`
	Fragilidad     string           `json:"fragilidad"`
	Contenido      string           `json:"contenido"`
	Tipo           string           `json:"tipo"`
	ValorDeclarado *decimal.Decimal `json:"valor_declarado,omitempty"`
	Estado         string           `json:"estado,omitempty"`
	Activo         *bool            `json:"activo,omitempty"`
	Audit
}
