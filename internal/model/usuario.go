package model

// RolRef is the role summary embedded in a user record
type RolRef struct {
	IDRol       string `json:"id_rol"`
	NombreRol   string `json:"nombre_rol"`
	Descripcion string `json:"descripcion,omitempty"`
}

// Usuario is the account record returned by login and the users endpoints
type Usuario struct {
	IDUsuario          string  `json:"id_usuario,omitempty"`
	NombreUsuario      string  `json:"nombre_usuario"`
	Contrasena         string  `json:"contraseña,omitempty"`
	IDRol              string  `json:"id_rol"`
	Activo             bool    `json:"activo"`
	FechaCreacion      string  `json:"fecha_creacion,omitempty"`
	FechaActualizacion string  `json:"fecha_actualizacion,omitempty"`
	Rol                *RolRef `json:"rol,omitempty"`
}

// RoleName returns the role name or "" when the record carries no role
func (u *Usuario) RoleName() string {
	if u == nil || u.Rol == nil {
		return ""
	}
	return u.Rol.NombreRol
}

// CambioContrasena is the body of a self-service password change
type CambioContrasena struct {
	ContrasenaActual    string `json:"contraseña_actual" binding:"required"`
	ContrasenaNueva     string `json:"contraseña_nueva" binding:"required"`
	ConfirmarContrasena string `json:"confirmar_contraseña" binding:"required"`
}
