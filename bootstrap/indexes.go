package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the unique indexes the write paths rely on:
// one profile per email and phone, one upvote per (voter, target),
// one college per normalized name, one batch per sequence number.
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	_, err := db.Collection("profiles").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_phone"),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("credentials").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_cred_email"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("upvotes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "voter_id", Value: 1},
			{Key: "target_id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_voter_target"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("colleges").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name_lower", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_college_name"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("batches").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "seq", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_batch_seq"),
	})
	return err
}
