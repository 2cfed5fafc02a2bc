package service

import (
	"context"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
)

type UsuarioService interface {
	CRUD[model.Usuario]
	ListByRol(ctx context.Context, idRol string, page apiclient.Page) ([]model.Usuario, error)
	SearchByName(ctx context.Context, nombreUsuario string) ([]model.Usuario, error)
	CheckAvailability(ctx context.Context, nombreUsuario string) (*model.APIResponse, error)
	ChangePassword(ctx context.Context, id string, req model.CambioContrasena) (*model.APIResponse, error)
	ResetPassword(ctx context.Context, id, nueva string) (*model.APIResponse, error)
	ChangeRole(ctx context.Context, id, idRol string) (*model.Usuario, error)
}

type usuarioService struct {
	*Resource[model.Usuario]
}

func NewUsuarioService(client *apiclient.Client) UsuarioService {
	return &usuarioService{NewResource[model.Usuario](client, ResourceConfig{Base: "/usuarios", Collection: "/usuarios", Key: "usuarios"})}
}

func (s *usuarioService) ListByRol(ctx context.Context, idRol string, page apiclient.Page) ([]model.Usuario, error) {
	return s.ListBy(ctx, page, "rol", idRol)
}

func (s *usuarioService) SearchByName(ctx context.Context, nombreUsuario string) ([]model.Usuario, error) {
	return s.Search(ctx, "nombre", nombreUsuario)
}

// CheckAvailability asks whether a username is still free; the answer is in Exito
func (s *usuarioService) CheckAvailability(ctx context.Context, nombreUsuario string) (*model.APIResponse, error) {
	var out model.APIResponse
	if err := s.client.Get(ctx, s.Path("verificar-disponibilidad", nombreUsuario), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *usuarioService) ChangePassword(ctx context.Context, id string, req model.CambioContrasena) (*model.APIResponse, error) {
	var out model.APIResponse
	if err := s.patch(ctx, id, "cambiar-contrasena", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword is the administrator variant: no current password required
func (s *usuarioService) ResetPassword(ctx context.Context, id, nueva string) (*model.APIResponse, error) {
	var out model.APIResponse
	if err := s.patch(ctx, id, "restablecer-contrasena", map[string]string{"contraseña_nueva": nueva}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *usuarioService) ChangeRole(ctx context.Context, id, idRol string) (*model.Usuario, error) {
	var out model.Usuario
	if err := s.patch(ctx, id, "cambiar-rol", map[string]string{"id_rol": idRol}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
