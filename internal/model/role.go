package model

// Rol is a user role
type Rol struct {
	IDRol       string `json:"id_rol,omitempty"`
	NombreRol   string `json:"nombre_rol"`
	Descripcion string `json:"descripcion,omitempty"`
	Activo      *bool  `json:"activo,omitempty"`
	Audit
}

// TipoDocumento is an identity document type (CC, NIT, passport...)
type TipoDocumento struct {
	IDTipoDocumento string `json:"id_tipo_documento,omitempty"`
	Codigo          string `json:"codigo"`
	Nombre          string `json:"nombre"`
	Descripcion     string `json:"descripcion,omitempty"`
	Activo          *bool  `json:"activo,omitempty"`
	Audit
}
