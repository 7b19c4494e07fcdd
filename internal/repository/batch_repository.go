package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pbdsce/Zenith-sub000/model"
)

const reserveAttempts = 3

// ReserveBatchSlot atomically claims one slot in a batch with spare
// capacity, creating a new batch when every existing one is full. The
// capacity check and the increment are a single FindOneAndUpdate, so two
// concurrent registrations can never both land in slot 400; the unique seq
// index breaks ties between concurrent creators.
func (s *Store) ReserveBatchSlot(ctx context.Context) (model.Batch, error) {
	coll := s.batches()

	for attempt := 0; attempt < reserveAttempts; attempt++ {
		var b model.Batch
		err := coll.FindOneAndUpdate(ctx,
			bson.M{"user_count": bson.M{"$lt": s.batchCapacity}},
			bson.M{"$inc": bson.M{"user_count": 1}},
			options.FindOneAndUpdate().
				SetReturnDocument(options.After).
				SetProjection(bson.M{"users": 0}),
		).Decode(&b)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return model.Batch{}, err
		}

		seq, err := s.nextBatchSeq(ctx)
		if err != nil {
			return model.Batch{}, err
		}
		b = model.Batch{
			ID:        bson.NewObjectID(),
			Seq:       seq,
			UserCount: 1,
			Users:     []model.UserSnapshot{},
			CreatedAt: time.Now().UTC(),
		}
		_, err = coll.InsertOne(ctx, b)
		if err == nil {
			return b, nil
		}
		if !isDup(err) {
			return model.Batch{}, err
		}
		// Lost the seq race to another registration; try reserving again.
		// Inside a transaction the duplicate write has already aborted it,
		// so the retried FindOneAndUpdate fails with a transient-labeled
		// error and the enclosing WithTransaction reruns the whole callback,
		// which then finds the racer's batch. Unlike a pre-existing upvote,
		// the conflict here is never persistent.
	}
	return model.Batch{}, fmt.Errorf("could not reserve a batch slot")
}

func (s *Store) nextBatchSeq(ctx context.Context) (int, error) {
	var latest model.Batch
	err := s.batches().FindOne(ctx,
		bson.M{},
		options.FindOne().
			SetSort(bson.D{{Key: "seq", Value: -1}}).
			SetProjection(bson.M{"seq": 1}),
	).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Seq + 1, nil
}

func (s *Store) AppendSnapshot(ctx context.Context, batchID bson.ObjectID, snap model.UserSnapshot) error {
	res, err := s.batches().UpdateOne(ctx,
		bson.M{"_id": batchID},
		bson.M{"$push": bson.M{"users": snap}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSnapshotFields patches the embedded copy of one user inside a batch.
func (s *Store) SetSnapshotFields(ctx context.Context, batchID, userID bson.ObjectID, fields map[string]any) error {
	set := bson.M{}
	for k, v := range fields {
		set["users.$."+k] = v
	}
	res, err := s.batches().UpdateOne(ctx,
		bson.M{"_id": batchID, "users.user_id": userID},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) FindSnapshot(ctx context.Context, batchID, userID bson.ObjectID) (model.UserSnapshot, error) {
	var b model.Batch
	err := s.batches().FindOne(ctx,
		bson.M{"_id": batchID, "users.user_id": userID},
		options.FindOne().SetProjection(bson.M{"users.$": 1}),
	).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.UserSnapshot{}, ErrNotFound
	}
	if err != nil {
		return model.UserSnapshot{}, err
	}
	if len(b.Users) == 0 {
		return model.UserSnapshot{}, ErrNotFound
	}
	return b.Users[0], nil
}

// ListSnapshots unwinds the non-deleted denormalized users across all
// batches, oldest batch first.
func (s *Store) ListSnapshots(ctx context.Context) ([]model.UserSnapshot, error) {
	cur, err := s.batches().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "seq", Value: 1}}}},
		{{Key: "$unwind", Value: "$users"}},
		{{Key: "$match", Value: bson.D{{Key: "users.status", Value: bson.D{{Key: "$ne", Value: model.StatusDeleted}}}}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$users"}}}},
	})
	if err != nil {
		return nil, err
	}
	var out []model.UserSnapshot
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
