package database

import (
	"context"
	"errors"
	"log"
	"time"

	"inkwell/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by store lookups when no document matches.
var ErrNotFound = errors.New("not found")

// Mongo holds the client and the collections the service uses. It is
// constructed once in main and passed down; there are no package-level
// connection globals.
type Mongo struct {
	Client *mongo.Client
	Users  *mongo.Collection
	Posts  *mongo.Collection
}

func Connect(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	uri := cfg.MongoURI
	if uri == "" {
		log.Println("MONGODB_URI not set, using default localhost")
		uri = "mongodb://127.0.0.1:27017"
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDB)

	m := &Mongo{
		Client: client,
		Users:  db.Collection("users"),
		Posts:  db.Collection("posts"),
	}

	log.Println("Connected to MongoDB successfully")
	return m, nil
}

func (m *Mongo) Close() error {
	if m.Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		return err
	}

	log.Println("Disconnected from MongoDB")
	return nil
}
