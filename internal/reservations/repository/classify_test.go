package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassifyMongoError(t *testing.T) {
	slotTaken := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error collection: spacebook.Reservations index: active_slot_key dup key"}},
	}
	idTaken := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error collection: spacebook.Reservations index: _id_ dup key"}},
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "active slot taken", err: slotTaken, want: ErrConflict},
		{name: "duplicate id", err: idTaken, want: ErrDuplicateID},
		{name: "no documents", err: mongo.ErrNoDocuments, want: ErrNotFound},
		{name: "deadline", err: context.DeadlineExceeded, want: ErrUnavailable},
		{name: "other", err: errors.New("server selection error"), want: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyMongoError("op", tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyMongoError() = %v, want %v", got, tt.want)
			}
			if tt.want == ErrDuplicateID && errors.Is(got, ErrConflict) {
				t.Errorf("classifyMongoError() = %v, a duplicate id is not a slot conflict", got)
			}
		})
	}

	if classifyMongoError("op", nil) != nil {
		t.Error("classifyMongoError(nil) should be nil")
	}
}

func TestClassifyPostgresError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "active slot taken", err: &pgconn.PgError{Code: "23505", ConstraintName: "reservations_active_slot_key"}, want: ErrConflict},
		{name: "duplicate primary key", err: &pgconn.PgError{Code: "23505", ConstraintName: "reservations_pkey"}, want: ErrDuplicateID},
		{name: "no rows", err: pgx.ErrNoRows, want: ErrNotFound},
		{name: "other sqlstate", err: &pgconn.PgError{Code: "57P01"}, want: ErrUnavailable},
		{name: "connection", err: errors.New("dial tcp: connection refused"), want: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyPostgresError("op", tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyPostgresError() = %v, want %v", got, tt.want)
			}
			if tt.want == ErrDuplicateID && errors.Is(got, ErrConflict) {
				t.Errorf("classifyPostgresError() = %v, a duplicate id is not a slot conflict", got)
			}
		})
	}
}
