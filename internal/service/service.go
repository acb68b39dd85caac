package service

import (
	"context"

	"github.com/nzwalks/backend/internal/domain"
	"github.com/nzwalks/backend/internal/repository"

	"github.com/google/uuid"
)

type Services struct {
	Regions Regions
}

type Deps struct {
	Repos *repository.Repositories
}

func NewServices(deps Deps) *Services {
	return &Services{
		Regions: newRegionService(deps.Repos.Regions),
	}
}

type Regions interface {
	GetAll(ctx context.Context) ([]domain.Region, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Region, error)
	Create(ctx context.Context, region *domain.Region) error
	Update(ctx context.Context, region *domain.Region) error
	Delete(ctx context.Context, id uuid.UUID) error
}
