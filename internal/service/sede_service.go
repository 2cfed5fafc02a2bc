package service

import (
	"context"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"

	"github.com/spf13/cast"
)

type SedeService interface {
	CRUD[model.Sede]
	ListByCiudad(ctx context.Context, ciudad string, page apiclient.Page) ([]model.Sede, error)
}

type sedeService struct {
	*Resource[model.Sede]
}

func NewSedeService(client *apiclient.Client) SedeService {
	return &sedeService{NewResource[model.Sede](client, ResourceConfig{Base: "/sedes", Key: "sedes"})}
}

// List has no generic filter support on the server: activo=true and ciudad map to their
// own endpoints, every other filter is ignored.
func (s *sedeService) List(ctx context.Context, page apiclient.Page, filters apiclient.Params) ([]model.Sede, error) {
	if activo, err := cast.ToBoolE(filters["activo"]); err == nil && activo {
		return s.ListActive(ctx, page)
	}
	if ciudad := cast.ToString(filters["ciudad"]); ciudad != "" {
		return s.ListByCiudad(ctx, ciudad, page)
	}
	return s.Resource.List(ctx, page, nil)
}

func (s *sedeService) ListByCiudad(ctx context.Context, ciudad string, page apiclient.Page) ([]model.Sede, error) {
	return s.ListBy(ctx, page, "ciudad", ciudad)
}
