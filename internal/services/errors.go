package services

import "errors"

var (
	ErrClassNotFound = errors.New("class not found")
	ErrClassExists   = errors.New("class already registered")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
)
