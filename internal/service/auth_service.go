package service

import (
	"context"
	"net/url"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
)

// AuthService covers the auth endpoints other than login, which the session manager owns
type AuthService interface {
	Verify(ctx context.Context, userID string) (*model.APIResponse, error)
	Status(ctx context.Context) (*model.APIResponse, error)
	CreateAdmin(ctx context.Context) (*model.APIResponse, error)
}

type authService struct {
	client *apiclient.Client
}

func NewAuthService(client *apiclient.Client) AuthService {
	return &authService{client: client}
}

func (s *authService) Verify(ctx context.Context, userID string) (*model.APIResponse, error) {
	var out model.APIResponse
	if err := s.client.Get(ctx, "/auth/verificar/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *authService) Status(ctx context.Context) (*model.APIResponse, error) {
	var out model.APIResponse
	if err := s.client.Get(ctx, "/auth/estado", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAdmin bootstraps the first administrator account on an empty installation
func (s *authService) CreateAdmin(ctx context.Context) (*model.APIResponse, error) {
	var out model.APIResponse
	if err := s.client.Post(ctx, "/auth/crear-admin", struct{}{}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
