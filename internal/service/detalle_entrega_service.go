package service

import (
	"context"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
)

// Sides of a delivery a client can be looked up by
const (
	LadoRemitente = "remitente"
	LadoReceptor  = "receptor"
)

type DetalleEntregaService interface {
	CRUD[model.DetalleEntrega]
	ListPendientes(ctx context.Context, page apiclient.Page) ([]model.DetalleEntrega, error)
	ListByEstado(ctx context.Context, estado string, page apiclient.Page) ([]model.DetalleEntrega, error)
	GetByPaquete(ctx context.Context, idPaquete string) (*model.DetalleEntrega, error)
	ListByCliente(ctx context.Context, idCliente, lado string, page apiclient.Page) ([]model.DetalleEntrega, error)
}

type detalleEntregaService struct {
	*Resource[model.DetalleEntrega]
}

func NewDetalleEntregaService(client *apiclient.Client) DetalleEntregaService {
	return &detalleEntregaService{NewResource[model.DetalleEntrega](client, ResourceConfig{
		Base:       "/detalles-entrega",
		Collection: "/detalles-entrega",
		Key:        "detalles",
	})}
}

func (s *detalleEntregaService) ListPendientes(ctx context.Context, page apiclient.Page) ([]model.DetalleEntrega, error) {
	return s.ListBy(ctx, page, "pendientes")
}

func (s *detalleEntregaService) ListByEstado(ctx context.Context, estado string, page apiclient.Page) ([]model.DetalleEntrega, error) {
	return s.ListBy(ctx, page, "estado", estado)
}

func (s *detalleEntregaService) GetByPaquete(ctx context.Context, idPaquete string) (*model.DetalleEntrega, error) {
	return s.GetBy(ctx, "paquete", idPaquete)
}

// ListByCliente lists deliveries where the client is the sender or the receiver.
// lado defaults to remitente.
func (s *detalleEntregaService) ListByCliente(ctx context.Context, idCliente, lado string, page apiclient.Page) ([]model.DetalleEntrega, error) {
	if lado == "" {
		lado = LadoRemitente
	}
	return s.fetchList(ctx, s.Path("cliente", idCliente), page.Params().Merge(apiclient.Params{"tipo": lado}))
}
