package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spacebook/pkg/config"
	"spacebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollectionName = "Reservations"

	// ActiveSlotIndex is the unique partial index created by the mongo migration.
	ActiveSlotIndex = "active_slot_key"
)

type mongoReservationStore struct {
	cfg        *config.Config
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoReservationStore relies on the unique partial index on
// (space_id, date, slot_id) where status is upcoming, created by the mongo migration.
func NewMongoReservationStore(cfg *config.Config) ReservationStore {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationStore{
		cfg:        cfg,
		client:     cfg.Client.Mongo,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout wraps the context with a timeout unless the caller's deadline is sooner.
func (s *mongoReservationStore) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *mongoReservationStore) ListActiveBySpaceAndDate(ctx context.Context, spaceID string, date string) ([]model.Reservation, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"space_id": spaceID,
		"date":     date,
		"status":   model.StatusUpcoming,
	}
	return s.find(ctx, filter)
}

func (s *mongoReservationStore) Insert(ctx context.Context, r *model.Reservation) error {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, r); err != nil {
		return classifyMongoError("insert reservation", err)
	}
	return nil
}

func (s *mongoReservationStore) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *mongoReservationStore) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var r model.Reservation
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, classifyMongoError("find reservation "+id, err)
	}
	return &r, nil
}

func (s *mongoReservationStore) Cancel(ctx context.Context, id string, userID string, cancelledAt time.Time) (*model.Reservation, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":     id,
		"user_id": userID,
		"status":  model.StatusUpcoming,
	}
	update := bson.M{"$set": bson.M{
		"status":       model.StatusCancelled,
		"cancelled_at": cancelledAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var r model.Reservation
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&r); err != nil {
		return nil, classifyMongoError("cancel reservation "+id, err)
	}
	return &r, nil
}

func (s *mongoReservationStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *mongoReservationStore) find(ctx context.Context, filter bson.M) ([]model.Reservation, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "start_time", Value: 1},
		{Key: "booked_at", Value: 1},
	})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyMongoError("query reservations", err)
	}
	defer cursor.Close(ctx)

	var reservations []model.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, classifyMongoError("decode reservations", err)
	}
	return reservations, nil
}

// classifyMongoError maps driver errors onto the store sentinels. Anything that is not a
// duplicate key or a missing document is treated as the store being unavailable, so an
// ambiguous write is never reported as success or conflict.
func classifyMongoError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		if strings.Contains(err.Error(), ActiveSlotIndex) {
			return fmt.Errorf("%w: %s", ErrConflict, op)
		}
		return fmt.Errorf("%w: %s: %v", ErrDuplicateID, op, err)
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	case mongo.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s timed out: %v", ErrUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
}
