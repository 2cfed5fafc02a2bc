package model

import "github.com/shopspring/decimal"

func init() {
	// the remote API validates numbers, not numeric strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Audit carries the server-managed bookkeeping fields shared by every entity.
// The client never sets these; it forwards the acting user id as a query parameter instead.
type Audit struct {
	FechaCreacion      string `json:"fecha_creacion,omitempty"`
	FechaActualizacion string `json:"fecha_actualizacion,omitempty"`
	CreadoPor          string `json:"creado_por,omitempty"`
	ActualizadoPor     string `json:"actualizado_por,omitempty"`
}

// AuditFields lists the wire names stripped from update bodies
var AuditFields = []string{"fecha_creacion", "fecha_actualizacion", "creado_por", "actualizado_por"}

// APIResponse is the envelope returned by mutating endpoints (delete, reactivate, auth helpers)
type APIResponse struct {
	Mensaje string                 `json:"mensaje"`
	Exito   bool                   `json:"exito"`
	Datos   map[string]interface{} `json:"datos,omitempty"`
}

// IsActive treats a missing flag as active, matching how lists render soft-deleted rows
func IsActive(activo *bool) bool {
	return activo == nil || *activo
}
