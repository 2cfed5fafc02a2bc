package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Nombres groups the four name parts shared by employees and clients
type Nombres struct {
	PrimerNombre    string `json:"primer_nombre"`
	SegundoNombre   string `json:"segundo_nombre,omitempty"`
	PrimerApellido  string `json:"primer_apellido"`
	SegundoApellido string `json:"segundo_apellido,omitempty"`
}

// FullName joins the non-empty name parts
func (n Nombres) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{n.PrimerNombre, n.SegundoNombre, n.PrimerApellido, n.SegundoApellido} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Empleado is a staff member (mensajero, logistico, secretario)
type Empleado struct {
	IDEmpleado string `json:"id_empleado,omitempty"`
	Nombres
	Documento       string          `json:"documento"`
	IDTipoDocumento string          `json:"id_tipo_documento"`
	UsuarioID       string          `json:"usuario_id"`
	TipoEmpleado    string          `json:"tipo_empleado"`
	Salario         decimal.Decimal `json:"salario"`
	FechaIngreso    string          `json:"fecha_ingreso"`
	FechaNacimiento string          `json:"fecha_nacimiento"`
	Telefono        string          `json:"telefono"`
	Correo          string          `json:"correo"`
	Direccion       string          `json:"direccion"`
	IDSede          string          `json:"id_sede,omitempty"`
	Activo          *bool           `json:"activo,omitempty"`
	Audit
}

// Cliente is a sender or receiver of parcels
type Cliente struct {
	IDCliente string `json:"id_cliente,omitempty"`
	Nombres
	NumeroDocumento string `json:"numero_documento"`
	IDTipoDocumento string `json:"id_tipo_documento"`
	UsuarioID       string `json:"usuario_id"`
	Direccion       string `json:"direccion"`
	Telefono        string `json:"telefono"`
	Correo          string `json:"correo"`
	Tipo            string `json:"tipo"`
	Activo          *bool  `json:"activo,omitempty"`
	Audit
}

// ShortName is first name plus first surname, as shown in tables
func (n Nombres) ShortName() string {
	return strings.TrimSpace(n.PrimerNombre + " " + n.PrimerApellido)
}
