package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"spacebook/pkg/model"
)

type memoryReservationStore struct {
	mu     sync.RWMutex
	byID   map[string]model.Reservation
	active map[model.SlotKey]string
}

// NewMemoryReservationStore returns a process-local store. The check and the write of
// Insert happen under one lock, which is what makes it atomic per slot key.
func NewMemoryReservationStore() ReservationStore {
	return &memoryReservationStore{
		byID:   make(map[string]model.Reservation),
		active: make(map[model.SlotKey]string),
	}
}

func (s *memoryReservationStore) ListActiveBySpaceAndDate(ctx context.Context, spaceID string, date string) ([]model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Reservation
	for key, id := range s.active {
		if key.SpaceID == spaceID && key.Date == date {
			out = append(out, s.byID[id])
		}
	}
	sortReservations(out)
	return out, nil
}

func (s *memoryReservationStore) Insert(ctx context.Context, r *model.Reservation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[r.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
	}

	key := r.Key()
	if r.Status == model.StatusUpcoming {
		if holder, held := s.active[key]; held {
			return fmt.Errorf("%w: %s held by %s", ErrConflict, key, holder)
		}
		s.active[key] = r.ID
	}
	s.byID[r.ID] = *r
	return nil
}

func (s *memoryReservationStore) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Reservation
	for _, r := range s.byID {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sortReservations(out)
	return out, nil
}

func (s *memoryReservationStore) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &r, nil
}

func (s *memoryReservationStore) Cancel(ctx context.Context, id string, userID string, cancelledAt time.Time) (*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[id]
	if !ok || r.UserID != userID || r.Status != model.StatusUpcoming {
		return nil, fmt.Errorf("%w: no upcoming reservation %s for user %s", ErrNotFound, id, userID)
	}

	r.Status = model.StatusCancelled
	r.CancelledAt = &cancelledAt
	s.byID[id] = r
	delete(s.active, r.Key())
	return &r, nil
}

func (s *memoryReservationStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// sortReservations orders by date, then start time, then booking time.
func sortReservations(rs []model.Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Date != rs[j].Date {
			return rs[i].Date < rs[j].Date
		}
		if rs[i].StartTime != rs[j].StartTime {
			return rs[i].StartTime < rs[j].StartTime
		}
		return rs[i].BookedAt.Before(rs[j].BookedAt)
	})
}
