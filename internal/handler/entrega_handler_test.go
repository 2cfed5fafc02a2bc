package handler

import (
	"testing"

	"swiftpost/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entregaFixture() ([]model.DetalleEntrega, []model.Sede, []model.Cliente, []model.Paquete) {
	inactive := false
	detalles := []model.DetalleEntrega{
		{IDDetalle: "d1", IDSedeRemitente: "s1", IDSedeReceptora: "s2", IDClienteRemitente: "c1", IDClienteReceptor: "c2", IDPaquete: "p1", EstadoEnvio: "En tránsito"},
		{IDDetalle: "d2", IDSedeRemitente: "s2", IDSedeReceptora: "s9", IDClienteRemitente: "c2", IDClienteReceptor: "c9", IDPaquete: "p9", EstadoEnvio: "Pendiente"},
		{IDDetalle: "d3", IDSedeRemitente: "s1", IDSedeReceptora: "s2", EstadoEnvio: "Entregado", Activo: &inactive},
	}
	sedes := []model.Sede{{IDSede: "s1", Nombre: "Bogotá Centro"}, {IDSede: "s2", Nombre: "Medellín Norte"}}
	clientes := []model.Cliente{
		{IDCliente: "c1", Nombres: model.Nombres{PrimerNombre: "Ana", SegundoNombre: "María", PrimerApellido: "Gómez"}},
		{IDCliente: "c2", Nombres: model.Nombres{PrimerNombre: "Luis", PrimerApellido: "Pérez"}},
	}
	paquetes := []model.Paquete{{IDPaquete: "p1", Contenido: "Libros"}}
	return detalles, sedes, clientes, paquetes
}

func TestJoinEntregas(t *testing.T) {
	rows := JoinEntregas(entregaFixture())
	require.Len(t, rows, 2, "soft-deleted delivery must be hidden")

	assert.Equal(t, "Bogotá Centro", rows[0].SedeRemitente)
	assert.Equal(t, "Medellín Norte", rows[0].SedeReceptora)
	assert.Equal(t, "Ana Gómez", rows[0].ClienteRemitente)
	assert.Equal(t, "Luis Pérez", rows[0].ClienteReceptor)
	assert.Equal(t, "Libros", rows[0].Paquete)

	assert.Equal(t, "Medellín Norte", rows[1].SedeRemitente)
	assert.Equal(t, unknownName, rows[1].SedeReceptora)
	assert.Equal(t, unknownName, rows[1].ClienteReceptor)
	assert.Equal(t, unknownName, rows[1].Paquete)
}

func TestFilterEntregas(t *testing.T) {
	rows := JoinEntregas(entregaFixture())

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"d1", "d2"}},
		{"  ", []string{"d1", "d2"}},
		{"medellín", []string{"d1", "d2"}},
		{"ANA", []string{"d1"}},
		{"pendiente", []string{"d2"}},
		{"libros", nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			var ids []string
			for _, r := range FilterEntregas(rows, tt.term) {
				ids = append(ids, r.IDDetalle)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
