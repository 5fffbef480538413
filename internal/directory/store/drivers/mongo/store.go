package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/openummah/masjidhub/internal/directory/store"
)

// Collection names.
const (
	ColUsers      = "users"
	ColMosques    = "mosques"
	ColSalahTimes = "salah_times"
	ColEvents     = "events"
)

// serverSelectionTimeout bounds how long an operation waits for a reachable
// server. Kept short so requests fail fast with ErrUnavailable when the
// store is down instead of hanging.
const serverSelectionTimeout = 3 * time.Second

type Store struct {
	client *mongodrv.Client
	db     *mongodrv.Database
}

// NewStore builds a lazily connecting store. No round trip happens here, so
// the service can start while the database is down; requests surface
// ErrUnavailable until it comes back.
func NewStore(uri, dbName string) (*Store, error) {
	client, err := mongodrv.Connect(options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (s *Store) Users() store.Users           { return &usersRepo{s} }
func (s *Store) Mosques() store.Mosques       { return &mosquesRepo{s} }
func (s *Store) SalahTimes() store.SalahTimes { return &salahTimesRepo{s} }
func (s *Store) Events() store.Events         { return &eventsRepo{s} }

// Ping verifies the deployment is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return wrapErr(err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongodrv.Collection {
	return s.db.Collection(name)
}

// EnsureIndexes creates the indexes the queries rely on. Callers treat a
// failure as non-fatal; an unreachable store at startup must not stop the
// service from booting.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},

		{ColMosques, bson.D{{Key: "name", Value: 1}}, false},
		{ColMosques, bson.D{{Key: "city", Value: 1}}, false},
		{ColMosques, bson.D{{Key: "is_approved", Value: 1}}, false},

		{ColSalahTimes, bson.D{{Key: "masjid_id", Value: 1}, {Key: "date", Value: 1}}, true},

		{ColEvents, bson.D{{Key: "masjid_id", Value: 1}, {Key: "date", Value: 1}}, false},
	}

	for _, i := range indexes {
		model := mongodrv.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("mongo: create index on %s: %w", i.col, wrapErr(err))
		}
	}

	return nil
}
