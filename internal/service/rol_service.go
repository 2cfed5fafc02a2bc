package service

import (
	"context"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
)

type RolService interface {
	CRUD[model.Rol]
	SearchByName(ctx context.Context, nombre string) ([]model.Rol, error)
}

type rolService struct {
	*Resource[model.Rol]
}

func NewRolService(client *apiclient.Client) RolService {
	return &rolService{NewResource[model.Rol](client, ResourceConfig{Base: "/roles", Collection: "/roles", Key: "roles"})}
}

func (s *rolService) SearchByName(ctx context.Context, nombre string) ([]model.Rol, error) {
	return s.Search(ctx, "nombre", nombre)
}

type TipoDocumentoService interface {
	CRUD[model.TipoDocumento]
	GetByCodigo(ctx context.Context, codigo string) (*model.TipoDocumento, error)
	SearchByName(ctx context.Context, nombre string) ([]model.TipoDocumento, error)
}

type tipoDocumentoService struct {
	*Resource[model.TipoDocumento]
}

func NewTipoDocumentoService(client *apiclient.Client) TipoDocumentoService {
	return &tipoDocumentoService{NewResource[model.TipoDocumento](client, ResourceConfig{
		Base:       "/tipos-documento",
		Collection: "/tipos-documento",
		Key:        "tipos_documento",
	})}
}

func (s *tipoDocumentoService) GetByCodigo(ctx context.Context, codigo string) (*model.TipoDocumento, error) {
	return s.GetBy(ctx, "codigo", codigo)
}

func (s *tipoDocumentoService) SearchByName(ctx context.Context, nombre string) ([]model.TipoDocumento, error) {
	return s.Search(ctx, "nombre", nombre)
}
