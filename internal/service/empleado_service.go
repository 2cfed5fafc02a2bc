package service

import (
	"context"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
)

type EmpleadoService interface {
	CRUD[model.Empleado]
	ListBySede(ctx context.Context, idSede string, page apiclient.Page) ([]model.Empleado, error)
	ListByTipo(ctx context.Context, tipo string, page apiclient.Page) ([]model.Empleado, error)
	FindByDocumento(ctx context.Context, documento string) ([]model.Empleado, error)
	SearchByName(ctx context.Context, nombre string) ([]model.Empleado, error)
}

type empleadoService struct {
	*Resource[model.Empleado]
}

func NewEmpleadoService(client *apiclient.Client) EmpleadoService {
	return &empleadoService{NewResource[model.Empleado](client, ResourceConfig{Base: "/empleados", Key: "empleados"})}
}

func (s *empleadoService) ListBySede(ctx context.Context, idSede string, page apiclient.Page) ([]model.Empleado, error) {
	return s.ListBy(ctx, page, "sede", idSede)
}

// ListByTipo filters by tipo_empleado (mensajero, logistico, secretario)
func (s *empleadoService) ListByTipo(ctx context.Context, tipo string, page apiclient.Page) ([]model.Empleado, error) {
	return s.ListBy(ctx, page, "tipo", tipo)
}

func (s *empleadoService) FindByDocumento(ctx context.Context, documento string) ([]model.Empleado, error) {
	return s.Lookup(ctx, "documento", documento)
}

func (s *empleadoService) SearchByName(ctx context.Context, nombre string) ([]model.Empleado, error) {
	return s.Search(ctx, "nombre", nombre)
}
