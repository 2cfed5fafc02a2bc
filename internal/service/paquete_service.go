package service

import (
	"context"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
)

type PaqueteService interface {
	CRUD[model.Paquete]
	ListByEstado(ctx context.Context, estado string, page apiclient.Page) ([]model.Paquete, error)
	ListByTipo(ctx context.Context, tipo string, page apiclient.Page) ([]model.Paquete, error)
	ListByFragilidad(ctx context.Context, fragilidad string, page apiclient.Page) ([]model.Paquete, error)
	UpdateEstado(ctx context.Context, id, estado string) (*model.Paquete, error)
}

type paqueteService struct {
	*Resource[model.Paquete]
}

// NewPaqueteService wires the /paquetes collection. Create accepts an optional
// id_cliente in extra to link the package to its sender.
func NewPaqueteService(client *apiclient.Client) PaqueteService {
	return &paqueteService{NewResource[model.Paquete](client, ResourceConfig{Base: "/paquetes", Key: "paquetes"})}
}

func (s *paqueteService) ListByEstado(ctx context.Context, estado string, page apiclient.Page) ([]model.Paquete, error) {
	return s.ListBy(ctx, page, "estado", estado)
}

func (s *paqueteService) ListByTipo(ctx context.Context, tipo string, page apiclient.Page) ([]model.Paquete, error) {
	return s.ListBy(ctx, page, "tipo", tipo)
}

func (s *paqueteService) ListByFragilidad(ctx context.Context, fragilidad string, page apiclient.Page) ([]model.Paquete, error) {
	return s.ListBy(ctx, page, "fragilidad", fragilidad)
}

func (s *paqueteService) UpdateEstado(ctx context.Context, id, estado string) (*model.Paquete, error) {
	var out model.Paquete
	if err := s.patch(ctx, id, "estado", map[string]string{"estado": estado}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
