package product

import "errors"

var (
	// -- Validation & Input --
	ErrNameRequired = errors.New("product name cannot be empty")
	ErrInvalidPrice = errors.New("product price must be positive")
	ErrInvalidStock = errors.New("product stock cannot be negative")
	ErrNoFields     = errors.New("no fields to update")
	ErrIDRequired   = errors.New("product id is required")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")

	// -- Authorization --
	ErrUnauthorized = errors.New("unauthorized")
)
