package model

// Sede is a warehouse site
type Sede struct {
	IDSede    string   `json:"id_sede,omitempty"`
	Nombre    string   `json:"nombre"`
	Ciudad    string   `json:"ciudad"`
	Direccion string   `json:"direccion"`
	Telefono  string   `json:"telefono"`
	Latitud   *float64 `json:"latitud,omitempty"`
	Longitud  *float64 `json:"longitud,omitempty"`
	Altitud   *float64 `json:"altitud,omitempty"`
	Activo    *bool    `json:"activo,omitempty"`
	Audit
}
