// Package directory is the read-only client for the organization's
// directory service (users, user photos, groups and group members).
//
// Client is the seam the aggregators depend on. Google implements it on top
// of the Admin SDK Directory API; tests use an in-memory fake.
package directory

import (
	"context"
	"errors"

	"github.com/jefgalicia/jefsite/internal/domain/models"
)

// ErrNoPhoto is returned by GetUserPhoto when the user has no photo set.
var ErrNoPhoto = errors.New("directory: user has no photo")

// Ordering values accepted by ListUsers.
const (
	OrderByGivenName  = "givenName"
	OrderByFamilyName = "familyName"
	OrderByEmail      = "email"
)

// Client lists directory entities scoped by domain. List calls return every
// page; callers never see pagination.
type Client interface {
	ListUsers(ctx context.Context, domain, orderBy string, showDeleted bool) ([]models.User, error)
	GetUserPhoto(ctx context.Context, userKey string) (*models.Photo, error)
	ListGroups(ctx context.Context, domain string) ([]models.Group, error)
	ListGroupMembers(ctx context.Context, groupKey string, includeDerived bool) (models.Members, error)
}

// ValidOrderBy reports whether s is an ordering the directory understands.
// Empty means directory default ordering.
func ValidOrderBy(s string) bool {
	switch s {
	case "", OrderByGivenName, OrderByFamilyName, OrderByEmail:
		return true
	}
	return false
}
