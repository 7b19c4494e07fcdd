package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Store holds the Mongo handles every repository method runs against.
type Store struct {
	client        *mongo.Client
	db            *mongo.Database
	batchCapacity int
}

func NewStore(client *mongo.Client, dbName string, batchCapacity int) *Store {
	return &Store{
		client:        client,
		db:            client.Database(dbName),
		batchCapacity: batchCapacity,
	}
}

func (s *Store) profiles() *mongo.Collection    { return s.db.Collection("profiles") }
func (s *Store) credentials() *mongo.Collection { return s.db.Collection("credentials") }
func (s *Store) batches() *mongo.Collection     { return s.db.Collection("batches") }
func (s *Store) colleges() *mongo.Collection    { return s.db.Collection("colleges") }
func (s *Store) upvotes() *mongo.Collection     { return s.db.Collection("upvotes") }

// registrations is the legacy collection kept only for the admin delete path.
func (s *Store) registrations() *mongo.Collection { return s.db.Collection("registrations") }

// WithTransaction runs fn inside a single Mongo transaction. The session is
// carried on the context, so fn can call other Store methods directly.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})
	return err
}

// isDup reports whether err is a unique-index violation.
func isDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	return errors.As(err, &ce) && ce.Code == 11000
}
