package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/pbdsce/Zenith-sub000/model"
)

func (s *Store) EmailTaken(ctx context.Context, email string) (bool, error) {
	n, err := s.profiles().CountDocuments(ctx, bson.M{"email": email})
	return n > 0, err
}

func (s *Store) PhoneTaken(ctx context.Context, phone string) (bool, error) {
	n, err := s.profiles().CountDocuments(ctx, bson.M{"phone": phone})
	return n > 0, err
}

func (s *Store) InsertProfile(ctx context.Context, u model.User) error {
	_, err := s.profiles().InsertOne(ctx, u)
	if isDup(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) FindProfileByID(ctx context.Context, id bson.ObjectID) (model.User, error) {
	var u model.User
	err := s.profiles().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, ErrNotFound
	}
	return u, err
}

func (s *Store) FindProfileByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.profiles().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, ErrNotFound
	}
	return u, err
}

// SetProfileFields patches the given fields and bumps updated_at.
func (s *Store) SetProfileFields(ctx context.Context, id bson.ObjectID, fields map[string]any) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := s.profiles().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProfile(ctx context.Context, id bson.ObjectID) error {
	res, err := s.profiles().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLegacyRegistration clears the pre-batch copy of a registrant.
// Missing documents are not an error; most profiles never had one.
func (s *Store) DeleteLegacyRegistration(ctx context.Context, id bson.ObjectID) error {
	_, err := s.registrations().DeleteOne(ctx, bson.M{"user_id": id})
	return err
}

func (s *Store) InsertCredential(ctx context.Context, c model.Credential) error {
	_, err := s.credentials().InsertOne(ctx, c)
	if isDup(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) FindCredentialByEmail(ctx context.Context, email string) (model.Credential, error) {
	var c model.Credential
	err := s.credentials().FindOne(ctx, bson.M{"email": email}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return c, ErrNotFound
	}
	return c, err
}
