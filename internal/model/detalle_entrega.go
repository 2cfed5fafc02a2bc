package model

// DetalleEntrega records one shipment of a package between two sites and two clients.
// All references are opaque ids; nothing here is checked client-side.
type DetalleEntrega struct {
	IDDetalle          string `json:"id_detalle,omitempty"`
	IDSedeRemitente    string `json:"id_sede_remitente"`
	IDSedeReceptora    string `json:"id_sede_receptora"`
	IDPaquete          string `json:"id_paquete"`
	IDClienteRemitente string `json:"id_cliente_remitente"`
	IDClienteReceptor  string `json:"id_cliente_receptor"`
	EstadoEnvio        string `json:"estado_envio"`
	FechaEnvio         string `json:"fecha_envio"`
	FechaEntrega       string `json:"fecha_entrega,omitempty"`
	Observaciones      string `json:"observaciones,omitempty"`
	Activo             *bool  `json:"activo,omitempty"`
	Audit
}
