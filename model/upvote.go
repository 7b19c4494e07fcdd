package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Upvote records one voter → target edge. The unique (voter_id, target_id)
// index makes inserts the toggle primitive.
type Upvote struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VoterID   bson.ObjectID `bson:"voter_id" json:"voterId"`
	TargetID  bson.ObjectID `bson:"target_id" json:"targetId"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}
