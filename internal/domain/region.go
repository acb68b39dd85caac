package domain

import (
	"github.com/google/uuid"
)

type Region struct {
	ID             uuid.UUID `db:"id"`
	Code           string    `db:"code"`
	Name           string    `db:"name"`
	RegionImageURL *string   `db:"region_image_url"`
}
