package services

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/repository"
	"github.com/pbdsce/Zenith-sub000/model"
)

type UpvoteStore interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	FindProfileByID(ctx context.Context, id bson.ObjectID) (model.User, error)
	InsertUpvote(ctx context.Context, voterID, targetID bson.ObjectID) error
	DeleteUpvote(ctx context.Context, voterID, targetID bson.ObjectID) error
	HasUpvoted(ctx context.Context, voterID, targetID bson.ObjectID) (bool, error)
	AdjustUpvotes(ctx context.Context, targetID, batchID bson.ObjectID, delta int64) error
}

type UpvoteService struct {
	store UpvoteStore
}

func NewUpvoteService(store UpvoteStore) *UpvoteService {
	return &UpvoteService{store: store}
}

// Toggle flips the voter's upvote on the target. The edge is read first and
// the branch inserts or deletes it; a duplicate-key write would abort the
// transaction, so the unique (voter, target) index is the backstop, not the
// branch condition. Counter writes to the profile and the batch mirror share
// the same transaction as the edge write.
func (s *UpvoteService) Toggle(ctx context.Context, voterID bson.ObjectID, targetHex string) (int, any) {
	targetID, err := bson.ObjectIDFromHex(targetHex)
	if err != nil {
		return fiber.StatusBadRequest, dto.Error("invalid user id")
	}
	target, err := s.store.FindProfileByID(ctx, targetID)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.StatusNotFound, dto.Error("user not found")
	}
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("lookup failed")
	}

	var upvoted bool
	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		has, err := s.store.HasUpvoted(ctx, voterID, targetID)
		if err != nil {
			return err
		}
		if has {
			if err := s.store.DeleteUpvote(ctx, voterID, targetID); err != nil {
				return err
			}
			upvoted = false
			return s.store.AdjustUpvotes(ctx, targetID, target.BatchID, -1)
		}
		if err := s.store.InsertUpvote(ctx, voterID, targetID); err != nil {
			return err
		}
		upvoted = true
		return s.store.AdjustUpvotes(ctx, targetID, target.BatchID, 1)
	})
	if err != nil {
		log.Println("upvote toggle failed:", err)
		return fiber.StatusInternalServerError, dto.Error("upvote failed")
	}

	return fiber.StatusOK, dto.OK(dto.UpvoteState{
		TargetID:  targetHex,
		IsUpvoted: upvoted,
		Upvotes:   s.currentCount(ctx, targetID, target.Upvotes),
	})
}

// State answers "have I upvoted this user, and what's the count".
func (s *UpvoteService) State(ctx context.Context, voterID bson.ObjectID, targetHex string) (int, any) {
	targetID, err := bson.ObjectIDFromHex(targetHex)
	if err != nil {
		return fiber.StatusBadRequest, dto.Error("invalid user id")
	}
	target, err := s.store.FindProfileByID(ctx, targetID)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.StatusNotFound, dto.Error("user not found")
	}
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("lookup failed")
	}
	upvoted, err := s.store.HasUpvoted(ctx, voterID, targetID)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("lookup failed")
	}
	return fiber.StatusOK, dto.OK(dto.UpvoteState{
		TargetID:  targetHex,
		IsUpvoted: upvoted,
		Upvotes:   target.Upvotes,
	})
}

// Sync replays client-side optimistic toggles. Each action is applied only
// if it changes state, so a replayed "upvote" on an already-upvoted target
// is a no-op rather than a double count.
func (s *UpvoteService) Sync(ctx context.Context, voterID bson.ObjectID, req dto.SyncUpvotesRequest) (int, any) {
	results := make([]dto.SyncUpvoteResult, 0, len(req.Actions))
	for _, action := range req.Actions {
		results = append(results, s.syncOne(ctx, voterID, action))
	}
	return fiber.StatusOK, dto.OK(results)
}

func (s *UpvoteService) syncOne(ctx context.Context, voterID bson.ObjectID, action dto.UpvoteAction) dto.SyncUpvoteResult {
	res := dto.SyncUpvoteResult{TargetID: action.TargetID}

	targetID, err := bson.ObjectIDFromHex(action.TargetID)
	if err != nil {
		res.Message = "invalid user id"
		return res
	}
	target, err := s.store.FindProfileByID(ctx, targetID)
	if errors.Is(err, repository.ErrNotFound) {
		res.Message = "user not found"
		return res
	}
	if err != nil {
		res.Message = "lookup failed"
		return res
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		switch action.Action {
		case "upvote":
			has, err := s.store.HasUpvoted(ctx, voterID, targetID)
			if err != nil {
				return err
			}
			if has {
				res.Message = "already upvoted"
				return nil
			}
			if err := s.store.InsertUpvote(ctx, voterID, targetID); err != nil {
				return err
			}
			res.Applied = true
			return s.store.AdjustUpvotes(ctx, targetID, target.BatchID, 1)
		case "downvote":
			has, err := s.store.HasUpvoted(ctx, voterID, targetID)
			if err != nil {
				return err
			}
			if !has {
				res.Message = "not upvoted"
				return nil
			}
			if err := s.store.DeleteUpvote(ctx, voterID, targetID); err != nil {
				return err
			}
			res.Applied = true
			return s.store.AdjustUpvotes(ctx, targetID, target.BatchID, -1)
		default:
			res.Message = "unknown action"
			return nil
		}
	})
	if err != nil {
		log.Println("sync-upvotes action failed:", err)
		res.Applied = false
		res.Message = "sync failed"
	}

	res.Upvotes = s.currentCount(ctx, targetID, target.Upvotes)
	return res
}

func (s *UpvoteService) currentCount(ctx context.Context, targetID bson.ObjectID, fallback int64) int64 {
	if fresh, err := s.store.FindProfileByID(ctx, targetID); err == nil {
		return fresh.Upvotes
	}
	return fallback
}
