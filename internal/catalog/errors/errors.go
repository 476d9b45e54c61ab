package errors

import "errors"

var (
	ErrSpaceNotFound = errors.New("space not found")

	ErrSlotNotFound = errors.New("slot not found")

	ErrInvalidCatalog = errors.New("invalid space catalog")
)
