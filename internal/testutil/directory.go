package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/jefgalicia/jefsite/internal/app/system/directory"
	"github.com/jefgalicia/jefsite/internal/domain/models"
)

// FakeDirectory is an in-memory directory.Client.
//
// Maps are keyed the way the real service is: photos by user primary email,
// groups by domain, members by group key (the group email). Error fields
// make the matching call fail. All methods are safe for concurrent use.
type FakeDirectory struct {
	Users    []models.User
	Photos   map[string]*models.Photo
	Groups   map[string][]models.Group
	Members  map[string]models.Members
	Delays   map[string]time.Duration // per group key, delays ListGroupMembers
	UsersErr error
	PhotoErr map[string]error
	GroupErr map[string]error
	MembErr  map[string]error

	mu    sync.Mutex
	calls map[string]int
	last  struct {
		orderBy        string
		showDeleted    bool
		includeDerived bool
	}
}

var _ directory.Client = (*FakeDirectory)(nil)

func (f *FakeDirectory) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[op]++
}

// Calls returns how many times op was called ("users", "photo", "groups", "members").
func (f *FakeDirectory) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// LastUserQuery returns the orderBy and showDeleted of the last ListUsers call.
func (f *FakeDirectory) LastUserQuery() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last.orderBy, f.last.showDeleted
}

// LastIncludeDerived returns includeDerived from the last ListGroupMembers call.
func (f *FakeDirectory) LastIncludeDerived() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last.includeDerived
}

func (f *FakeDirectory) ListUsers(ctx context.Context, domain, orderBy string, showDeleted bool) ([]models.User, error) {
	f.record("users")
	f.mu.Lock()
	f.last.orderBy, f.last.showDeleted = orderBy, showDeleted
	f.mu.Unlock()
	if f.UsersErr != nil {
		return nil, f.UsersErr
	}
	out := make([]models.User, len(f.Users))
	copy(out, f.Users)
	return out, nil
}

func (f *FakeDirectory) GetUserPhoto(ctx context.Context, userKey string) (*models.Photo, error) {
	f.record("photo")
	if err := f.PhotoErr[userKey]; err != nil {
		return nil, err
	}
	p, ok := f.Photos[userKey]
	if !ok || p == nil {
		return nil, directory.ErrNoPhoto
	}
	cp := *p
	return &cp, nil
}

func (f *FakeDirectory) ListGroups(ctx context.Context, domain string) ([]models.Group, error) {
	f.record("groups")
	if err := f.GroupErr[domain]; err != nil {
		return nil, err
	}
	gs := f.Groups[domain]
	out := make([]models.Group, len(gs))
	copy(out, gs)
	return out, nil
}

func (f *FakeDirectory) ListGroupMembers(ctx context.Context, groupKey string, includeDerived bool) (models.Members, error) {
	f.record("members")
	f.mu.Lock()
	f.last.includeDerived = includeDerived
	f.mu.Unlock()
	if d := f.Delays[groupKey]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return models.Members{}, ctx.Err()
		}
	}
	if err := f.MembErr[groupKey]; err != nil {
		return models.Members{}, err
	}
	return f.Members[groupKey], nil
}
