package service

import (
	"context"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
)

type TransporteService interface {
	CRUD[model.Transporte]
	ListBySede(ctx context.Context, idSede string, page apiclient.Page) ([]model.Transporte, error)
	ListByTipo(ctx context.Context, tipo string, page apiclient.Page) ([]model.Transporte, error)
	ListByEstado(ctx context.Context, estado string, page apiclient.Page) ([]model.Transporte, error)
	FindByPlaca(ctx context.Context, placa string) ([]model.Transporte, error)
	UpdateEstado(ctx context.Context, id, estado string) (*model.Transporte, error)
}

type transporteService struct {
	*Resource[model.Transporte]
}

func NewTransporteService(client *apiclient.Client) TransporteService {
	return &transporteService{NewResource[model.Transporte](client, ResourceConfig{Base: "/transportes", Key: "transportes"})}
}

func (s *transporteService) ListBySede(ctx context.Context, idSede string, page apiclient.Page) ([]model.Transporte, error) {
	return s.ListBy(ctx, page, "sede", idSede)
}

func (s *transporteService) ListByTipo(ctx context.Context, tipo string, page apiclient.Page) ([]model.Transporte, error) {
	return s.ListBy(ctx, page, "tipo", tipo)
}

func (s *transporteService) ListByEstado(ctx context.Context, estado string, page apiclient.Page) ([]model.Transporte, error) {
	return s.ListBy(ctx, page, "estado", estado)
}

// FindByPlaca returns at most one vehicle; the list shape keeps table rendering uniform
func (s *transporteService) FindByPlaca(ctx context.Context, placa string) ([]model.Transporte, error) {
	return s.Lookup(ctx, "placa", placa)
}

func (s *transporteService) UpdateEstado(ctx context.Context, id, estado string) (*model.Transporte, error) {
	var out model.Transporte
	if err := s.patch(ctx, id, "estado", map[string]string{"estado": estado}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
