package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pbdsce/Zenith-sub000/internal/media"
	"github.com/pbdsce/Zenith-sub000/internal/repository"
	"github.com/pbdsce/Zenith-sub000/internal/utils"
	"github.com/pbdsce/Zenith-sub000/model"
)

// fakeStore is an in-memory stand-in for repository.Store with the same
// error semantics (ErrNotFound / ErrDuplicate, counter floors, capacity).
type fakeStore struct {
	capacity int

	profiles map[bson.ObjectID]*model.User
	creds    map[string]*model.Credential
	batches  []*model.Batch
	colleges map[string]*model.College
	upvotes  map[edge]bool

	legacyDeletes []bson.ObjectID
	upvoteInserts int
	upvoteDeletes int
	txnErr        error
}

type edge struct {
	voter, target bson.ObjectID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		capacity: 400,
		profiles: map[bson.ObjectID]*model.User{},
		creds:    map[string]*model.Credential{},
		colleges: map[string]*model.College{},
		upvotes:  map[edge]bool{},
	}
}

func (f *fakeStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.txnErr != nil {
		return f.txnErr
	}
	return fn(ctx)
}

func (f *fakeStore) EmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range f.profiles {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) PhoneTaken(_ context.Context, phone string) (bool, error) {
	for _, u := range f.profiles {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) InsertProfile(_ context.Context, u model.User) error {
	for _, existing := range f.profiles {
		if existing.Email == u.Email || (u.Phone != "" && existing.Phone == u.Phone) {
			return repository.ErrDuplicate
		}
	}
	cp := u
	f.profiles[u.ID] = &cp
	return nil
}

func (f *fakeStore) FindProfileByID(_ context.Context, id bson.ObjectID) (model.User, error) {
	u, ok := f.profiles[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return *u, nil
}

func (f *fakeStore) FindProfileByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.profiles {
		if u.Email == email {
			return *u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeStore) SetProfileFields(_ context.Context, id bson.ObjectID, fields map[string]any) error {
	u, ok := f.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "is_admin":
			u.IsAdmin = v.(bool)
		case "status":
			u.Status = v.(string)
		case "college":
			u.College = v.(string)
		case "age":
			u.Age = v.(int)
		case "gender":
			u.Gender = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "linkedin":
			u.LinkedIn = v.(string)
		case "resume_url":
			u.ResumeURL = v.(string)
		case "resume_id":
			u.ResumeID = v.(string)
		case "avatar_url":
			u.AvatarURL = v.(string)
		case "avatar_id":
			u.AvatarID = v.(string)
		default:
			return fmt.Errorf("fakeStore: unhandled profile field %q", k)
		}
	}
	return nil
}

func (f *fakeStore) DeleteProfile(_ context.Context, id bson.ObjectID) error {
	if _, ok := f.profiles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.profiles, id)
	return nil
}

func (f *fakeStore) DeleteLegacyRegistration(_ context.Context, id bson.ObjectID) error {
	f.legacyDeletes = append(f.legacyDeletes, id)
	return nil
}

func (f *fakeStore) InsertCredential(_ context.Context, c model.Credential) error {
	if _, ok := f.creds[c.Email]; ok {
		return repository.ErrDuplicate
	}
	cp := c
	f.creds[c.Email] = &cp
	return nil
}

func (f *fakeStore) FindCredentialByEmail(_ context.Context, email string) (model.Credential, error) {
	c, ok := f.creds[email]
	if !ok {
		return model.Credential{}, repository.ErrNotFound
	}
	return *c, nil
}

func (f *fakeStore) ReserveBatchSlot(_ context.Context) (model.Batch, error) {
	for _, b := range f.batches {
		if b.UserCount < f.capacity {
			b.UserCount++
			return *b, nil
		}
	}
	b := &model.Batch{
		ID:        bson.NewObjectID(),
		Seq:       len(f.batches) + 1,
		UserCount: 1,
		Users:     []model.UserSnapshot{},
		CreatedAt: time.Now().UTC(),
	}
	f.batches = append(f.batches, b)
	return *b, nil
}

func (f *fakeStore) batch(id bson.ObjectID) *model.Batch {
	for _, b := range f.batches {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (f *fakeStore) snapshot(batchID, userID bson.ObjectID) *model.UserSnapshot {
	b := f.batch(batchID)
	if b == nil {
		return nil
	}
	for i := range b.Users {
		if b.Users[i].UserID == userID {
			return &b.Users[i]
		}
	}
	return nil
}

func (f *fakeStore) AppendSnapshot(_ context.Context, batchID bson.ObjectID, snap model.UserSnapshot) error {
	b := f.batch(batchID)
	if b == nil {
		return repository.ErrNotFound
	}
	b.Users = append(b.Users, snap)
	return nil
}

func (f *fakeStore) SetSnapshotFields(_ context.Context, batchID, userID bson.ObjectID, fields map[string]any) error {
	snap := f.snapshot(batchID, userID)
	if snap == nil {
		return repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "college":
			snap.College = v.(string)
		case "avatar_url":
			snap.AvatarURL = v.(string)
		case "status":
			snap.Status = v.(string)
		case "is_admin":
			snap.IsAdmin = v.(bool)
		default:
			return fmt.Errorf("fakeStore: unhandled snapshot field %q", k)
		}
	}
	return nil
}

func (f *fakeStore) FindSnapshot(_ context.Context, batchID, userID bson.ObjectID) (model.UserSnapshot, error) {
	snap := f.snapshot(batchID, userID)
	if snap == nil {
		return model.UserSnapshot{}, repository.ErrNotFound
	}
	return *snap, nil
}

func (f *fakeStore) ListSnapshots(_ context.Context) ([]model.UserSnapshot, error) {
	sorted := make([]*model.Batch, len(f.batches))
	copy(sorted, f.batches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Seq < sorted[j].Seq })

	var out []model.UserSnapshot
	for _, b := range sorted {
		for _, s := range b.Users {
			if s.Status != model.StatusDeleted {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) InsertUpvote(_ context.Context, voterID, targetID bson.ObjectID) error {
	f.upvoteInserts++
	e := edge{voterID, targetID}
	if f.upvotes[e] {
		return repository.ErrDuplicate
	}
	f.upvotes[e] = true
	return nil
}

func (f *fakeStore) DeleteUpvote(_ context.Context, voterID, targetID bson.ObjectID) error {
	f.upvoteDeletes++
	delete(f.upvotes, edge{voterID, targetID})
	return nil
}

func (f *fakeStore) HasUpvoted(_ context.Context, voterID, targetID bson.ObjectID) (bool, error) {
	return f.upvotes[edge{voterID, targetID}], nil
}

func (f *fakeStore) AdjustUpvotes(_ context.Context, targetID, batchID bson.ObjectID, delta int64) error {
	u, ok := f.profiles[targetID]
	if !ok {
		return nil
	}
	if delta < 0 && u.Upvotes == 0 {
		return nil
	}
	u.Upvotes += delta
	if snap := f.snapshot(batchID, targetID); snap != nil {
		if delta > 0 || snap.Upvotes > 0 {
			snap.Upvotes += delta
		}
	}
	return nil
}

func (f *fakeStore) UpsertCollege(_ context.Context, name string) (model.College, error) {
	lower := utils.NormalizeCollege(name)
	if c, ok := f.colleges[lower]; ok {
		return *c, nil
	}
	c := &model.College{
		ID:        bson.NewObjectID(),
		Name:      name,
		NameLower: lower,
		CreatedAt: time.Now().UTC(),
	}
	f.colleges[lower] = c
	return *c, nil
}

func (f *fakeStore) AdjustCollegeCount(_ context.Context, name string, delta int64) error {
	if name == "" || delta == 0 {
		return nil
	}
	lower := utils.NormalizeCollege(name)
	c, ok := f.colleges[lower]
	if !ok {
		if delta < 0 {
			return nil
		}
		college, _ := f.UpsertCollege(context.Background(), name)
		c = f.colleges[college.NameLower]
	}
	c.Count += delta
	if c.Count < 0 {
		c.Count = 0
	}
	return nil
}

func (f *fakeStore) ListColleges(_ context.Context) ([]model.College, error) {
	var out []model.College
	for _, c := range f.colleges {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameLower < out[j].NameLower })
	return out, nil
}

// fakeUploader records uploads and destroys.
type fakeUploader struct {
	uploads   []string
	destroyed []string
	failWith  error
}

func (f *fakeUploader) Upload(_ context.Context, r io.Reader, publicID, kind string) (media.Asset, error) {
	if f.failWith != nil {
		return media.Asset{}, f.failWith
	}
	io.Copy(io.Discard, r)
	f.uploads = append(f.uploads, publicID)
	return media.Asset{PublicID: publicID, URL: "https://media.test/" + kind + "/" + publicID}, nil
}

func (f *fakeUploader) Destroy(_ context.Context, publicID, _ string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

// fakeVerifier approves or rejects every token.
type fakeVerifier struct {
	err error
}

func (f *fakeVerifier) Verify(context.Context, string, string) error { return f.err }
