package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spacebook/pkg/config"
	"spacebook/pkg/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the SQLSTATE raised when the partial unique index on upcoming
// reservations rejects a second holder of a slot key.
const pgUniqueViolation = "23505"

// activeSlotConstraint is the partial unique index created by the postgres migration.
const activeSlotConstraint = "reservations_active_slot_key"

const reservationColumns = `id, user_id, space_id, space_name, space_category, date::text,
	slot_id, start_time, end_time, status, booked_at, cancelled_at`

type postgresReservationStore struct {
	cfg  *config.Config
	pool *pgxpool.Pool
}

func NewPostgresReservationStore(cfg *config.Config) ReservationStore {
	return &postgresReservationStore{
		cfg:  cfg,
		pool: cfg.Client.Postgres,
	}
}

func (s *postgresReservationStore) ListActiveBySpaceAndDate(ctx context.Context, spaceID string, date string) ([]model.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE space_id = $1 AND date = $2::date AND status = 'upcoming'
		ORDER BY start_time, booked_at`
	return s.query(ctx, "list active reservations", query, spaceID, date)
}

func (s *postgresReservationStore) Insert(ctx context.Context, r *model.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO reservations (id, user_id, space_id, space_name, space_category, date,
			slot_id, start_time, end_time, status, booked_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9, $10, $11, $12)`,
		r.ID, r.UserID, r.SpaceID, r.SpaceName, r.SpaceCategory, r.Date,
		r.SlotID, r.StartTime, r.EndTime, string(r.Status), r.BookedAt, r.CancelledAt,
	)
	if err != nil {
		return classifyPostgresError("insert reservation", err)
	}
	return nil
}

func (s *postgresReservationStore) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE user_id = $1
		ORDER BY date, start_time, booked_at`
	return s.query(ctx, "list user reservations", query, userID)
}

func (s *postgresReservationStore) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	row := s.pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	r, err := scanReservation(row)
	if err != nil {
		return nil, classifyPostgresError("find reservation "+id, err)
	}
	return r, nil
}

func (s *postgresReservationStore) Cancel(ctx context.Context, id string, userID string, cancelledAt time.Time) (*model.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	row := s.pool.QueryRow(ctx, `
		UPDATE reservations SET status = 'cancelled', cancelled_at = $3
		WHERE id = $1 AND user_id = $2 AND status = 'upcoming'
		RETURNING `+reservationColumns,
		id, userID, cancelledAt,
	)
	r, err := scanReservation(row)
	if err != nil {
		return nil, classifyPostgresError("cancel reservation "+id, err)
	}
	return r, nil
}

func (s *postgresReservationStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *postgresReservationStore) query(ctx context.Context, op string, query string, args ...any) ([]model.Reservation, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyPostgresError(op, err)
	}
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, classifyPostgresError(op, err)
		}
		reservations = append(reservations, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPostgresError(op, err)
	}
	return reservations, nil
}

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var r model.Reservation
	var status string
	err := row.Scan(
		&r.ID, &r.UserID, &r.SpaceID, &r.SpaceName, &r.SpaceCategory, &r.Date,
		&r.SlotID, &r.StartTime, &r.EndTime, &status, &r.BookedAt, &r.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	r.Status = model.ReservationStatus(status)
	return &r, nil
}

func classifyPostgresError(op string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		if pgErr.ConstraintName == activeSlotConstraint {
			return fmt.Errorf("%w: %s", ErrConflict, op)
		}
		return fmt.Errorf("%w: %s: %s", ErrDuplicateID, op, pgErr.ConstraintName)
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	default:
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
}
