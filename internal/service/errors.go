package service

import "errors"

var (
	ErrRegionNotFound      = errors.New("region not found")
	ErrRegionAlreadyExists = errors.New("region already exists")
)
