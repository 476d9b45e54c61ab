package errors

import (
	"errors"

	catalogerrors "spacebook/internal/catalog/errors"
)

var (
	ErrSpaceNotFound = catalogerrors.ErrSpaceNotFound

	ErrSlotNotFound = catalogerrors.ErrSlotNotFound

	ErrInvalidDate = errors.New("date is malformed or in the past")

	ErrSlotAlreadyBooked = errors.New("slot already booked for this date")

	ErrStoreUnavailable = errors.New("reservation store unavailable")

	ErrReservationNotFound = errors.New("reservation not found")

	ErrNotOwner = errors.New("reservation belongs to another user")

	ErrNotCancellable = errors.New("only upcoming reservations can be cancelled")
)
