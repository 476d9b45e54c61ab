package repository

import (
	"context"
	"errors"
	"time"

	"spacebook/pkg/model"
)

var (
	// ErrConflict is returned by Insert when an upcoming reservation already holds the slot key
	ErrConflict = errors.New("slot key already held by an upcoming reservation")

	// ErrDuplicateID is returned by Insert when the reservation id is already stored
	ErrDuplicateID = errors.New("reservation id already exists")

	// ErrNotFound is returned when no reservation matches the lookup
	ErrNotFound = errors.New("reservation not found")

	// ErrUnavailable is returned when the backing store cannot answer
	ErrUnavailable = errors.New("reservation store unavailable")
)

// ReservationStore persists reservations. Insert is the only write that can create an
// upcoming reservation and must be atomic per slot key: of any number of concurrent
// inserts for the same (space, date, slot), at most one succeeds.
type ReservationStore interface {
	ListActiveBySpaceAndDate(ctx context.Context, spaceID string, date string) ([]model.Reservation, error)
	Insert(ctx context.Context, r *model.Reservation) error
	ListByUser(ctx context.Context, userID string) ([]model.Reservation, error)
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	// Cancel moves an upcoming reservation owned by userID to cancelled, freeing its slot key.
	// ErrNotFound means no upcoming reservation with that id and owner exists.
	Cancel(ctx context.Context, id string, userID string, cancelledAt time.Time) (*model.Reservation, error)
	Ping(ctx context.Context) error
}
