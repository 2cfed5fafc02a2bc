package service

import (
	"context"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
)

type ClienteService interface {
	CRUD[model.Cliente]
	ListByTipo(ctx context.Context, tipo string, page apiclient.Page) ([]model.Cliente, error)
	FindByDocumento(ctx context.Context, documento string) ([]model.Cliente, error)
	SearchByName(ctx context.Context, nombre string) ([]model.Cliente, error)
}

type clienteService struct {
	*Resource[model.Cliente]
}

func NewClienteService(client *apiclient.Client) ClienteService {
	return &clienteService{NewResource[model.Cliente](client, ResourceConfig{Base: "/clientes", Key: "clientes"})}
}

func (s *clienteService) ListByTipo(ctx context.Context, tipo string, page apiclient.Page) ([]model.Cliente, error) {
	return s.ListBy(ctx, page, "tipo", tipo)
}

func (s *clienteService) FindByDocumento(ctx context.Context, documento string) ([]model.Cliente, error) {
	return s.Lookup(ctx, "buscar", "documento", documento)
}

func (s *clienteService) SearchByName(ctx context.Context, nombre string) ([]model.Cliente, error) {
	return s.Search(ctx, "nombre", nombre)
}
