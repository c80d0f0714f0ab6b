package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections holds the five document collections of the portal. Built
// once at startup and injected into handlers.
type Collections struct {
	Appointments *mongo.Collection
	Bookings     *mongo.Collection
	Users        *mongo.Collection
	Doctors      *mongo.Collection
	Payments     *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	database := client.Database(dbName)

	cols := &Collections{
		Appointments: database.Collection("appointments"),
		Bookings:     database.Collection("booking"),
		Users:        database.Collection("user"),
		Doctors:      database.Collection("doctor"),
		Payments:     database.Collection("payments"),
	}

	return client, cols, nil
}

// EnsureIndexes creates the unique compound booking index that closes
// the check-then-insert race: two concurrent bookings for the same
// (bookingName, patientName, date) cannot both land, the second insert
// fails with a duplicate key error.
func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := cols.Bookings.Indexes().CreateMany(indexCtx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "bookingName", Value: 1},
				{Key: "patientName", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "date", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.Users.Indexes().CreateMany(indexCtx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
