package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile statuses. "pending" is set at registration; the rest are set by
// admin status changes and only read here.
const (
	StatusPending     = "pending"
	StatusActive      = "active"
	StatusSuspended   = "suspended"
	StatusDeactivated = "deactivated"
	StatusDeleted     = "deleted"
)

// User is the canonical per-registrant record.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string        `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email"`
	Phone     string        `bson:"phone" json:"phone"`
	Age       int           `bson:"age,omitempty" json:"age,omitempty"`
	Gender    string        `bson:"gender,omitempty" json:"gender,omitempty"`
	College   string        `bson:"college,omitempty" json:"college,omitempty"`
	Bio       string        `bson:"bio,omitempty" json:"bio,omitempty"`
	LinkedIn  string        `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Referral  string        `bson:"referral,omitempty" json:"referral,omitempty"`
	ResumeURL string        `bson:"resume_url,omitempty" json:"resumeUrl,omitempty"`
	ResumeID  string        `bson:"resume_id,omitempty" json:"-"`
	AvatarURL string        `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	AvatarID  string        `bson:"avatar_id,omitempty" json:"-"`
	IsAdmin   bool          `bson:"is_admin" json:"isAdmin"`
	Upvotes   int64         `bson:"upvotes" json:"upvotes"`
	BatchID   bson.ObjectID `bson:"batch_id,omitempty" json:"batchId,omitempty"`
	Status    string        `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Snapshot builds the denormalized copy embedded in a batch document.
func (u User) Snapshot() UserSnapshot {
	return UserSnapshot{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		College:   u.College,
		AvatarURL: u.AvatarURL,
		IsAdmin:   u.IsAdmin,
		Status:    u.Status,
		Upvotes:   u.Upvotes,
	}
}

// Credential is the login identity, kept apart from the profile so the
// registration flow can create it before the profile transaction commits.
type Credential struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"-"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	CreatedAt    time.Time     `bson:"created_at" json:"-"`
}
