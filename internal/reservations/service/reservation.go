package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spacebook/internal/catalog"
	reservationserrors "spacebook/internal/reservations/errors"
	"spacebook/internal/reservations/events"
	"spacebook/internal/reservations/repository"
	"spacebook/internal/reservations/validator"
	"spacebook/pkg/config"
	apperrors "spacebook/pkg/errors"
	"spacebook/pkg/model"
	"spacebook/pkg/sanitizer"

	"github.com/google/uuid"
)

type ReservationService interface {
	Book(ctx context.Context, req *model.BookRequest) (*model.Reservation, error)
	Cancel(ctx context.Context, id string, requester string) (*model.Reservation, error)
	GetAvailability(ctx context.Context, spaceID string, date string) (*model.SpaceAvailability, error)
	ListReservationsForUser(ctx context.Context, userID string) ([]model.Reservation, error)

	ListSpaces(ctx context.Context) []model.Space
	GetSpace(ctx context.Context, spaceID string) (*model.Space, error)
	Ready(ctx context.Context) error
}

// reservationService keeps no per-request state: every call re-reads the store, and the
// store's atomic insert is the only thing deciding who gets a slot.
type reservationService struct {
	store     repository.ReservationStore
	catalog   catalog.Catalog
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewReservationService(
	store repository.ReservationStore,
	catalog catalog.Catalog,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		store:     store,
		catalog:   catalog,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *reservationService) Book(ctx context.Context, req *model.BookRequest) (*model.Reservation, error) {
	s.sanitize(req)

	if err := s.validator.Validate(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && validationErrs.HasField("Date") {
			return nil, s.invalidDate(req.Date)
		}
		s.cfg.Log.Warn("Booking request validation failed",
			"space_id", req.SpaceID,
			"slot_id", req.SlotID,
			"error", err,
		)
		return nil, apperrors.Validation("Booking request validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	// The date is checked before the catalog so a past date is InvalidDate whatever the slot.
	if err := s.checkBookableDate(req.Date); err != nil {
		return nil, err
	}

	space, err := s.catalog.GetSpace(req.SpaceID)
	if err != nil {
		return nil, s.catalogError(err, req.SpaceID, req.SlotID)
	}
	slot, err := s.catalog.GetSlot(space.ID, req.SlotID)
	if err != nil {
		return nil, s.catalogError(err, req.SpaceID, req.SlotID)
	}

	reservation := &model.Reservation{
		ID:            uuid.NewString(),
		UserID:        req.Requester,
		SpaceID:       space.ID,
		SpaceName:     space.Name,
		SpaceCategory: space.Category,
		Date:          req.Date,
		SlotID:        slot.ID,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		Status:        model.StatusUpcoming,
		BookedAt:      s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.store.Insert(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.cfg.Log.Warn("Slot already booked",
				"space_id", reservation.SpaceID,
				"date", reservation.Date,
				"slot_id", reservation.SlotID,
				"requester", reservation.UserID,
			)
			return nil, apperrors.Conflict("Slot is already booked for this date").
				WithCause(reservationserrors.ErrSlotAlreadyBooked).
				WithDetails(map[string]any{
					"space_id": reservation.SpaceID,
					"date":     reservation.Date,
					"slot_id":  reservation.SlotID,
				})
		}
		return nil, s.storeUnavailable("book", err)
	}

	s.cfg.Log.Info("Reservation booked",
		"id", reservation.ID,
		"space_id", reservation.SpaceID,
		"date", reservation.Date,
		"slot_id", reservation.SlotID,
		"user_id", reservation.UserID,
	)
	s.publish(ctx, events.TypeReservationCreated, reservation)

	return reservation, nil
}

func (s *reservationService) Cancel(ctx context.Context, id string, requester string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	if requester == "" {
		return nil, apperrors.InvalidInput("Requester cannot be empty")
	}

	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id).WithCause(reservationserrors.ErrReservationNotFound)
		}
		return nil, s.storeUnavailable("find reservation", err)
	}

	if existing.UserID != requester {
		s.cfg.Log.Warn("Cancellation by non-owner rejected",
			"id", id,
			"requester", requester,
		)
		return nil, apperrors.Forbidden("Only the user who booked a reservation can cancel it").
			WithCause(reservationserrors.ErrNotOwner)
	}

	now := s.now()
	if existing.EffectiveStatus(now, s.location()) != model.StatusUpcoming {
		return nil, s.notCancellable(id)
	}

	cancelled, err := s.store.Cancel(ctx, id, requester, now.UTC().Truncate(time.Millisecond))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Cancelled concurrently between the read and the conditional update.
			return nil, s.notCancellable(id)
		}
		return nil, s.storeUnavailable("cancel", err)
	}

	s.cfg.Log.Info("Reservation cancelled",
		"id", cancelled.ID,
		"space_id", cancelled.SpaceID,
		"date", cancelled.Date,
		"slot_id", cancelled.SlotID,
		"user_id", cancelled.UserID,
	)
	s.publish(ctx, events.TypeReservationCancelled, cancelled)

	return cancelled, nil
}

func (s *reservationService) GetAvailability(ctx context.Context, spaceID string, date string) (*model.SpaceAvailability, error) {
	spaceID = sanitizer.TrimAndNormalize(spaceID)
	date = sanitizer.TrimAndNormalize(date)

	if _, err := model.ParseDate(date, s.location()); err != nil {
		return nil, s.invalidDate(date)
	}

	space, err := s.catalog.GetSpace(spaceID)
	if err != nil {
		return nil, s.catalogError(err, spaceID, "")
	}

	active, err := s.store.ListActiveBySpaceAndDate(ctx, space.ID, date)
	if err != nil {
		return nil, s.storeUnavailable("availability", err)
	}

	booked := make(map[string]struct{}, len(active))
	for _, r := range active {
		booked[r.SlotID] = struct{}{}
	}

	availability := &model.SpaceAvailability{
		SpaceID:   space.ID,
		SpaceName: space.Name,
		Date:      date,
		Slots:     make([]model.SlotAvailability, 0, len(space.Slots)),
	}
	for _, slot := range space.Slots {
		_, isBooked := booked[slot.ID]
		availability.Slots = append(availability.Slots, model.SlotAvailability{
			TimeSlot: slot,
			Booked:   isBooked,
		})
	}

	return availability, nil
}

// ListReservationsForUser returns the user's reservations ordered by date and start time.
// Upcoming reservations whose slot has ended are reported as completed.
func (s *reservationService) ListReservationsForUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	userID = sanitizer.TrimAndNormalize(userID)
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	reservations, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.storeUnavailable("list reservations", err)
	}

	now := s.now()
	loc := s.location()
	out := make([]model.Reservation, 0, len(reservations))
	for _, r := range reservations {
		r.Status = r.EffectiveStatus(now, loc)
		out = append(out, r)
	}
	return out, nil
}

func (s *reservationService) ListSpaces(ctx context.Context) []model.Space {
	return s.catalog.ListSpaces()
}

func (s *reservationService) GetSpace(ctx context.Context, spaceID string) (*model.Space, error) {
	space, err := s.catalog.GetSpace(sanitizer.TrimAndNormalize(spaceID))
	if err != nil {
		return nil, s.catalogError(err, spaceID, "")
	}
	return space, nil
}

func (s *reservationService) Ready(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return s.storeUnavailable("ping", err)
	}
	return nil
}

func (s *reservationService) sanitize(req *model.BookRequest) {
	req.SpaceID = sanitizer.TrimAndNormalize(req.SpaceID)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
	req.SlotID = sanitizer.TrimAndNormalize(req.SlotID)
	req.Requester = sanitizer.TrimAndNormalize(req.Requester)
}

// checkBookableDate rejects malformed dates and days strictly before today in the
// booking time zone. Earlier slots of the current day remain bookable.
func (s *reservationService) checkBookableDate(date string) error {
	loc := s.location()
	day, err := model.ParseDate(date, loc)
	if err != nil {
		return s.invalidDate(date)
	}

	now := s.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) {
		s.cfg.Log.Warn("Booking for a past date rejected",
			"date", date,
			"today", today.Format(model.DateLayout),
		)
		return s.invalidDate(date)
	}
	return nil
}

func (s *reservationService) location() *time.Location {
	if s.cfg.Location != nil {
		return s.cfg.Location
	}
	return time.UTC
}

func (s *reservationService) invalidDate(date string) error {
	return apperrors.InvalidInput("Date must be a YYYY-MM-DD calendar day that is not in the past").
		WithCause(reservationserrors.ErrInvalidDate).
		WithDetails(map[string]any{"date": date})
}

func (s *reservationService) notCancellable(id string) error {
	return apperrors.Conflict("Only upcoming reservations can be cancelled").
		WithCause(reservationserrors.ErrNotCancellable).
		WithDetails(map[string]any{"id": id})
}

func (s *reservationService) catalogError(err error, spaceID, slotID string) error {
	switch {
	case errors.Is(err, reservationserrors.ErrSpaceNotFound):
		return apperrors.NotFoundWithID("Space", spaceID).WithCause(reservationserrors.ErrSpaceNotFound)
	case errors.Is(err, reservationserrors.ErrSlotNotFound):
		return apperrors.NotFoundWithID("Slot", slotID).
			WithCause(reservationserrors.ErrSlotNotFound).
			WithDetails(map[string]any{"resource": "Slot", "id": slotID, "space_id": spaceID})
	default:
		return apperrors.Internal("Failed to resolve space", err)
	}
}

func (s *reservationService) storeUnavailable(op string, err error) error {
	s.cfg.Log.Error("Reservation store failure",
		"operation", op,
		"error", err,
	)
	return apperrors.Unavailable("Reservation store").
		WithCause(fmt.Errorf("%w: %w", reservationserrors.ErrStoreUnavailable, err))
}

func (s *reservationService) publish(ctx context.Context, eventType string, r *model.Reservation) {
	if err := s.publisher.Publish(ctx, eventType, r); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"event_type", eventType,
			"id", r.ID,
			"error", err,
		)
	}
}
