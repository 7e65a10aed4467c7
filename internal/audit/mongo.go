package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNoCollection = errors.New("audit: mongo collection is nil")

// MongoRecorder appends events to a MongoDB collection.
type MongoRecorder struct {
	col *mongo.Collection
}

// NewMongoRecorder ensures the (ticketId, at) index exists and returns a recorder.
func NewMongoRecorder(ctx context.Context, col *mongo.Collection) (*MongoRecorder, error) {
	if col == nil {
		return nil, ErrNoCollection
	}
	idx := mongo.IndexModel{Keys: bson.D{{Key: "ticketId", Value: 1}, {Key: "at", Value: 1}}}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("audit: create index: %w", err)
	}
	return &MongoRecorder{col: col}, nil
}

func (r *MongoRecorder) Record(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("audit: insert %s event for ticket %d: %w", ev.Action, ev.TicketID, err)
	}
	return nil
}

// Ping reports whether the backing deployment is reachable.
func (r *MongoRecorder) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}
