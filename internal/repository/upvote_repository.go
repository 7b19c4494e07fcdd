package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pbdsce/Zenith-sub000/model"
)

// InsertUpvote records the edge; ErrDuplicate means the voter had already
// upvoted this target (unique index hit). A duplicate write aborts any
// enclosing transaction, so transactional callers must check HasUpvoted
// before inserting rather than catching the duplicate after the fact.
func (s *Store) InsertUpvote(ctx context.Context, voterID, targetID bson.ObjectID) error {
	_, err := s.upvotes().InsertOne(ctx, model.Upvote{
		VoterID:   voterID,
		TargetID:  targetID,
		CreatedAt: time.Now().UTC(),
	})
	if isDup(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) DeleteUpvote(ctx context.Context, voterID, targetID bson.ObjectID) error {
	_, err := s.upvotes().DeleteOne(ctx, bson.M{"voter_id": voterID, "target_id": targetID})
	return err
}

func (s *Store) HasUpvoted(ctx context.Context, voterID, targetID bson.ObjectID) (bool, error) {
	n, err := s.upvotes().CountDocuments(ctx, bson.M{"voter_id": voterID, "target_id": targetID})
	return n > 0, err
}

// AdjustUpvotes moves the counter on the profile and its batch mirror in
// step. Decrements are filtered on counter > 0 so neither copy goes
// negative; call inside WithTransaction to keep the pair atomic.
func (s *Store) AdjustUpvotes(ctx context.Context, targetID, batchID bson.ObjectID, delta int64) error {
	profileFilter := bson.M{"_id": targetID}
	if delta < 0 {
		profileFilter["upvotes"] = bson.M{"$gt": int64(0)}
	}
	res, err := s.profiles().UpdateOne(ctx, profileFilter,
		bson.M{"$inc": bson.M{"upvotes": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// already at the floor, or no such profile; leave the mirror alone
		return nil
	}

	batchFilter := bson.M{"_id": batchID, "users.user_id": targetID}
	if delta < 0 {
		batchFilter = bson.M{
			"_id": batchID,
			"users": bson.M{"$elemMatch": bson.M{
				"user_id": targetID,
				"upvotes": bson.M{"$gt": int64(0)},
			}},
		}
	}
	_, err = s.batches().UpdateOne(ctx, batchFilter,
		bson.M{"$inc": bson.M{"users.$.upvotes": delta}})
	return err
}
