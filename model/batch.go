package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Batch is a capacity-bounded container of denormalized user snapshots.
// user_count is bumped atomically when a slot is reserved, so it may run
// one ahead of len(users) inside the registration transaction but never
// exceeds the configured capacity.
type Batch struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	Seq       int            `bson:"seq" json:"seq"`
	UserCount int            `bson:"user_count" json:"userCount"`
	Users     []UserSnapshot `bson:"users" json:"users"`
	CreatedAt time.Time      `bson:"created_at" json:"createdAt"`
}

// UserSnapshot duplicates the profile fields list endpoints read, plus the
// mirrored upvote counter.
type UserSnapshot struct {
	UserID    bson.ObjectID `bson:"user_id" json:"userId"`
	Name      string        `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email"`
	Phone     string        `bson:"phone" json:"phone"`
	College   string        `bson:"college,omitempty" json:"college,omitempty"`
	AvatarURL string        `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	IsAdmin   bool          `bson:"is_admin" json:"isAdmin"`
	Status    string        `bson:"status" json:"status"`
	Upvotes   int64         `bson:"upvotes" json:"upvotes"`
}
