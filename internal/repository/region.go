package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nzwalks/backend/internal/db"
	"github.com/nzwalks/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type regionRepository struct {
	db *sqlx.DB
}

func newRegionRepository(db *sqlx.DB) *regionRepository {
	return &regionRepository{
		db: db,
	}
}

func (r *regionRepository) GetAll(ctx context.Context) ([]domain.Region, error) {
	const query = `
	SELECT id, code, name, region_image_url FROM regions;
	`
	regions := []domain.Region{}
	if err := r.db.SelectContext(ctx, &regions, query); err != nil {
		return nil, fmt.Errorf("select from regions failed: %w", err)
	}
	return regions, nil
}

func (r *regionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Region, error) {
	const query = `
	SELECT id, code, name, region_image_url FROM regions WHERE id = ?;
	`
	var region domain.Region
	if err := r.db.GetContext(ctx, &region, r.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from regions by id failed: %w", err)
	}
	return &region, nil
}

func (r *regionRepository) Create(ctx context.Context, region *domain.Region) error {
	const query = `
	INSERT INTO regions (id, code, name, region_image_url) VALUES (?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		region.ID,
		region.Code,
		region.Name,
		region.RegionImageURL,
	)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert region: %w", err)
	}
	return nil
}

func (r *regionRepository) Update(ctx context.Context, region *domain.Region) error {
	const query = `
	UPDATE regions SET code = ?, name = ?, region_image_url = ? WHERE id = ?;
	`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		region.Code,
		region.Name,
		region.RegionImageURL,
		region.ID,
	)
	if err != nil {
		return fmt.Errorf("db update region: %w", err)
	}
	return requireAffected(result)
}

func (r *regionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `
	DELETE FROM regions WHERE id = ?;
	`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return fmt.Errorf("db delete region: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
