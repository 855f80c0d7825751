// Package database wraps the MongoDB collections behind typed stores.
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB bundles the application stores around a single client connection.
// It is created once at startup and threaded through the handlers.
type DB struct {
	client   *mongo.Client
	Users    *UserStore
	Profiles *ProfileStore
	Posts    *PostStore
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// New builds the store set on top of the named database.
func New(client *mongo.Client, name string) *DB {
	db := client.Database(name)
	return &DB{
		client:   client,
		Users:    &UserStore{coll: db.Collection("users")},
		Profiles: &ProfileStore{coll: db.Collection("profiles")},
		Posts:    &PostStore{coll: db.Collection("posts")},
	}
}

// EnsureIndexes creates the unique indexes the data model relies on:
// one account per email, one profile per user.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Profiles.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: unique,
	})
	return err
}

// Disconnect closes the underlying client connection.
func (db *DB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.client.Disconnect(ctx)
}
