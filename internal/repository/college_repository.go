package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pbdsce/Zenith-sub000/internal/utils"
	"github.com/pbdsce/Zenith-sub000/model"
)

// UpsertCollege finds or creates the college for a (case-insensitively)
// normalized name. The bare upsert never touches the counter; only
// AdjustCollegeCount does.
func (s *Store) UpsertCollege(ctx context.Context, name string) (model.College, error) {
	lower := utils.NormalizeCollege(name)

	var c model.College
	err := s.colleges().FindOneAndUpdate(ctx,
		bson.M{"name_lower": lower},
		bson.M{"$setOnInsert": bson.M{
			"name":       strings.Join(strings.Fields(name), " "),
			"name_lower": lower,
			"count":      int64(0),
			"created_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&c)
	if isDup(err) {
		// Concurrent first reference; the document exists now. Inside a
		// transaction the duplicate write has already aborted it, so this
		// recovery read fails transient-labeled and the enclosing
		// WithTransaction reruns the callback, whose upsert then matches
		// the racer's document. The conflict is never persistent.
		err = s.colleges().FindOne(ctx, bson.M{"name_lower": lower}).Decode(&c)
	}
	return c, err
}

// AdjustCollegeCount moves the popularity counter, flooring at zero on the
// way down. Creates the college on first increment.
func (s *Store) AdjustCollegeCount(ctx context.Context, name string, delta int64) error {
	if name == "" || delta == 0 {
		return nil
	}
	if delta > 0 {
		if _, err := s.UpsertCollege(ctx, name); err != nil {
			return err
		}
		_, err := s.colleges().UpdateOne(ctx,
			bson.M{"name_lower": utils.NormalizeCollege(name)},
			bson.M{"$inc": bson.M{"count": delta}},
		)
		return err
	}
	_, err := s.colleges().UpdateOne(ctx,
		bson.M{"name_lower": utils.NormalizeCollege(name), "count": bson.M{"$gt": int64(0)}},
		bson.M{"$inc": bson.M{"count": delta}},
	)
	return err
}

func (s *Store) ListColleges(ctx context.Context) ([]model.College, error) {
	cur, err := s.colleges().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "count", Value: -1}, {Key: "name_lower", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []model.College
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
