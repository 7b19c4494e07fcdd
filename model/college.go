package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// College is a deduplicated name registry keyed by the lower-cased name.
// Count tracks how many non-deactivated profiles reference it.
type College struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	NameLower string        `bson:"name_lower" json:"-"`
	Count     int64         `bson:"count" json:"count"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}
