package service

import (
	"context"
	"errors"

	"github.com/nzwalks/backend/internal/domain"
	"github.com/nzwalks/backend/internal/repository"

	"github.com/google/uuid"
)

type regionService struct {
	regionRepository repository.Regions
}

func newRegionService(regionRepository repository.Regions) *regionService {
	return &regionService{
		regionRepository: regionRepository,
	}
}

func (s *regionService) GetAll(ctx context.Context) ([]domain.Region, error) {
	return s.regionRepository.GetAll(ctx)
}

func (s *regionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Region, error) {
	region, err := s.regionRepository.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return region, nil
}

// Create assigns a fresh id to region and persists it.
func (s *regionService) Create(ctx context.Context, region *domain.Region) error {
	region.ID = uuid.New()

	err := s.regionRepository.Create(ctx, region)
	if errors.Is(err, domain.ErrDuplicateEntry) {
		return ErrRegionAlreadyExists
	}
	return err
}

func (s *regionService) Update(ctx context.Context, region *domain.Region) error {
	return notFound(s.regionRepository.Update(ctx, region))
}

func (s *regionService) Delete(ctx context.Context, id uuid.UUID) error {
	return notFound(s.regionRepository.Delete(ctx, id))
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrRegionNotFound
	}
	return err
}
