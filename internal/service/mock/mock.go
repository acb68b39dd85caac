package mock_service

import (
	"context"

	"github.com/nzwalks/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Regions struct {
	mock.Mock
}

func (m *Regions) GetAll(ctx context.Context) ([]domain.Region, error) {
	args := m.Called(ctx)

	regions, _ := args.Get(0).([]domain.Region)
	return regions, args.Error(1)
}

func (m *Regions) GetByID(ctx context.Context, id uuid.UUID) (*domain.Region, error) {
	args := m.Called(ctx, id)

	region, _ := args.Get(0).(*domain.Region)
	return region, args.Error(1)
}

func (m *Regions) Create(ctx context.Context, region *domain.Region) error {
	args := m.Called(ctx, region)

	return args.Error(0)
}

func (m *Regions) Update(ctx context.Context, region *domain.Region) error {
	args := m.Called(ctx, region)

	return args.Error(0)
}

func (m *Regions) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
