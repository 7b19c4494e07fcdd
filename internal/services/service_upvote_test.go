package services

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/model"
)

// seedRegistrant places a user with a batch snapshot, the way registration
// leaves them.
func seedRegistrant(t *testing.T, store *fakeStore, email string) model.User {
	t.Helper()
	batch, err := store.ReserveBatchSlot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	u := model.User{
		ID:        bson.NewObjectID(),
		Name:      "User " + email,
		Email:     email,
		Phone:     email, // uniqueness is all the fake checks
		Status:    model.StatusActive,
		BatchID:   batch.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.InsertProfile(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	if err := store.AppendSnapshot(context.Background(), batch.ID, u.Snapshot()); err != nil {
		t.Fatal(err)
	}
	return u
}

func countersAgree(t *testing.T, store *fakeStore, u model.User) int64 {
	t.Helper()
	profile, err := store.FindProfileByID(context.Background(), u.ID)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := store.FindSnapshot(context.Background(), u.BatchID, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Upvotes != snap.Upvotes {
		t.Fatalf("counter drift: profile %d, snapshot %d", profile.Upvotes, snap.Upvotes)
	}
	return profile.Upvotes
}

func TestToggleUpvoteIdempotent(t *testing.T) {
	store := newFakeStore()
	voter := seedRegistrant(t, store, "voter@example.com")
	target := seedRegistrant(t, store, "target@example.com")
	svc := NewUpvoteService(store)

	status, payload := svc.Toggle(context.Background(), voter.ID, target.ID.Hex())
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	state := payload.(dto.Response).Data.(dto.UpvoteState)
	if !state.IsUpvoted || state.Upvotes != 1 {
		t.Fatalf("after first toggle: %+v", state)
	}
	if countersAgree(t, store, target) != 1 {
		t.Fatal("count != 1 after upvote")
	}

	_, payload = svc.Toggle(context.Background(), voter.ID, target.ID.Hex())
	state = payload.(dto.Response).Data.(dto.UpvoteState)
	if state.IsUpvoted || state.Upvotes != 0 {
		t.Fatalf("after second toggle: %+v", state)
	}
	if countersAgree(t, store, target) != 0 {
		t.Fatal("toggle pair did not restore the original count")
	}
}

// A duplicate-key write inside the counter transaction would abort it on a
// real server, so toggling OFF must remove the edge via a read, never by
// inserting and catching the duplicate.
func TestToggleOffReadsBeforeWriting(t *testing.T) {
	store := newFakeStore()
	voter := seedRegistrant(t, store, "voter@example.com")
	target := seedRegistrant(t, store, "target@example.com")
	svc := NewUpvoteService(store)

	svc.Toggle(context.Background(), voter.ID, target.ID.Hex())
	status, _ := svc.Toggle(context.Background(), voter.ID, target.ID.Hex())
	if status != fiber.StatusOK {
		t.Fatalf("toggle off: status = %d", status)
	}

	if store.upvoteInserts != 1 {
		t.Errorf("inserts = %d, want 1 (toggle off must not re-insert)", store.upvoteInserts)
	}
	if store.upvoteDeletes != 1 {
		t.Errorf("deletes = %d, want 1", store.upvoteDeletes)
	}

	// same rule for a replayed upvote on an existing edge
	store.upvoteInserts = 0
	svc.Sync(context.Background(), voter.ID, dto.SyncUpvotesRequest{
		Actions: []dto.UpvoteAction{{TargetID: target.ID.Hex(), Action: "upvote"}},
	})
	svc.Sync(context.Background(), voter.ID, dto.SyncUpvotesRequest{
		Actions: []dto.UpvoteAction{{TargetID: target.ID.Hex(), Action: "upvote"}},
	})
	if store.upvoteInserts != 1 {
		t.Errorf("sync inserts = %d, want 1 (replay must not re-insert)", store.upvoteInserts)
	}
}

func TestToggleUpvoteUnknownTarget(t *testing.T) {
	store := newFakeStore()
	voter := seedRegistrant(t, store, "voter@example.com")
	svc := NewUpvoteService(store)

	if status, _ := svc.Toggle(context.Background(), voter.ID, bson.NewObjectID().Hex()); status != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if status, _ := svc.Toggle(context.Background(), voter.ID, "zzz"); status != fiber.StatusBadRequest {
		t.Errorf("bad hex: status = %d, want 400", status)
	}
}

func TestUpvoteCounterFloor(t *testing.T) {
	store := newFakeStore()
	voter := seedRegistrant(t, store, "voter@example.com")
	target := seedRegistrant(t, store, "target@example.com")
	svc := NewUpvoteService(store)

	// stale edge with the counter already at zero, as after a bad sync
	store.upvotes[edge{voter.ID, target.ID}] = true

	_, payload := svc.Toggle(context.Background(), voter.ID, target.ID.Hex())
	state := payload.(dto.Response).Data.(dto.UpvoteState)
	if state.Upvotes != 0 {
		t.Errorf("count went negative: %+v", state)
	}
	if countersAgree(t, store, target) != 0 {
		t.Error("floor broken")
	}
}

func TestUpvoteState(t *testing.T) {
	store := newFakeStore()
	voter := seedRegistrant(t, store, "voter@example.com")
	target := seedRegistrant(t, store, "target@example.com")
	svc := NewUpvoteService(store)

	_, payload := svc.State(context.Background(), voter.ID, target.ID.Hex())
	if state := payload.(dto.Response).Data.(dto.UpvoteState); state.IsUpvoted {
		t.Error("fresh pair reported as upvoted")
	}

	svc.Toggle(context.Background(), voter.ID, target.ID.Hex())

	_, payload = svc.State(context.Background(), voter.ID, target.ID.Hex())
	state := payload.(dto.Response).Data.(dto.UpvoteState)
	if !state.IsUpvoted || state.Upvotes != 1 {
		t.Errorf("state = %+v", state)
	}
}

func TestSyncUpvotesReplay(t *testing.T) {
	store := newFakeStore()
	voter := seedRegistrant(t, store, "voter@example.com")
	a := seedRegistrant(t, store, "a@example.com")
	b := seedRegistrant(t, store, "b@example.com")
	svc := NewUpvoteService(store)

	// b already upvoted; the replayed upvote on it must not double count
	svc.Toggle(context.Background(), voter.ID, b.ID.Hex())

	status, payload := svc.Sync(context.Background(), voter.ID, dto.SyncUpvotesRequest{
		Actions: []dto.UpvoteAction{
			{TargetID: a.ID.Hex(), Action: "upvote"},
			{TargetID: b.ID.Hex(), Action: "upvote"},
			{TargetID: b.ID.Hex(), Action: "downvote"},
			{TargetID: a.ID.Hex(), Action: "sideways"},
			{TargetID: "nothex", Action: "upvote"},
		},
	})
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}

	results := payload.(dto.Response).Data.([]dto.SyncUpvoteResult)
	if len(results) != 5 {
		t.Fatalf("results = %d, want 5", len(results))
	}
	if !results[0].Applied {
		t.Error("fresh upvote should apply")
	}
	if results[1].Applied {
		t.Error("duplicate upvote must not apply")
	}
	if !results[2].Applied {
		t.Error("downvote of an existing upvote should apply")
	}
	if results[3].Applied || results[3].Message != "unknown action" {
		t.Errorf("unknown action result: %+v", results[3])
	}
	if results[4].Applied {
		t.Error("bad id must not apply")
	}

	if countersAgree(t, store, a) != 1 {
		t.Error("a should end at 1")
	}
	if countersAgree(t, store, b) != 0 {
		t.Error("b should end at 0")
	}
}
