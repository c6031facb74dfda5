package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
	ListClients(ctx context.Context, sortByName bool) ([]*Client, error)
	CountClients(ctx context.Context) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name     string
	Business string
	Address  string
	Phone    string
	Email    string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("client name cannot be empty")
	}

	if strings.TrimSpace(params.Email) == "" {
		return nil, fmt.Errorf("client email cannot be empty")
	}

	c := &Client{
		Name:     params.Name,
		Business: params.Business,
		Address:  params.Address,
		Phone:    params.Phone,
		Email:    params.Email,
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) Update(ctx context.Context, c *Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("client name cannot be empty")
	}

	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("client email cannot be empty")
	}

	return s.repo.UpdateClient(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, id)
}

func (s *Service) List(ctx context.Context, sortByName bool) ([]*Client, error) {
	return s.repo.ListClients(ctx, sortByName)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.CountClients(ctx)
}
