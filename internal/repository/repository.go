package repository

import (
	"context"

	"github.com/nzwalks/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Regions Regions
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Regions: newRegionRepository(db),
	}
}

// Regions is the persistent collection of regions. Every write is committed
// on return.
type Regions interface {
	GetAll(ctx context.Context) ([]domain.Region, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Region, error)
	Create(ctx context.Context, region *domain.Region) error
	Update(ctx context.Context, region *domain.Region) error
	Delete(ctx context.Context, id uuid.UUID) error
}
