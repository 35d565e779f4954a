package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mediaEventsCollection = "media_events"

// MongoMediaLog persists media events so failed remote deletions can be
// cleaned up by hand later.
type MongoMediaLog struct {
	col *mongo.Collection
}

func NewMongoMediaLog(db *mongo.Database) *MongoMediaLog {
	return &MongoMediaLog{col: db.Collection(mediaEventsCollection)}
}

// EnsureIndexes configures the status/created_at index used by
// RecentFailures. Called on startup after Mongo has connected.
func (l *MongoMediaLog) EnsureIndexes(ctx context.Context) error {
	_, err := l.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_status_created"),
	})
	return err
}

func (l *MongoMediaLog) Record(ctx context.Context, ev MediaEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	_, err := l.col.InsertOne(ctx, ev)
	return err
}

func (l *MongoMediaLog) RecentFailures(ctx context.Context, limit int) ([]MediaEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := l.col.Find(ctx, bson.M{"status": "failed"}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []MediaEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// NopMediaLog is used when MongoDB is not configured.
type NopMediaLog struct{}

func (NopMediaLog) Record(context.Context, MediaEvent) error { return nil }

func (NopMediaLog) RecentFailures(context.Context, int) ([]MediaEvent, error) {
	return []MediaEvent{}, nil
}
