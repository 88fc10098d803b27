package testutil

import (
	"time"

	"github.com/jefgalicia/jefsite/internal/domain/models"
)

// Test domains mirroring the production layout.
const (
	Domain         = "jef.gal"
	TeamsDomain    = "teams.jef.gal"
	ProjectsDomain = "projects.jef.gal"
)

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewUser builds a directory user.
func NewUser(id, email string, created time.Time, suspended bool) models.User {
	return models.User{
		ID:           id,
		PrimaryEmail: email,
		Suspended:    suspended,
		CreationTime: created,
		Name:         models.UserName{FullName: "User " + id},
	}
}

// NewGroup builds a directory group.
func NewGroup(id, email, name string) models.Group {
	return models.Group{ID: id, Email: email, Name: name}
}

// MembersOf builds a member listing from emails.
func MembersOf(emails ...string) models.Members {
	var m models.Members
	for _, e := range emails {
		m.Members = append(m.Members, models.Member{Email: e, Role: "MEMBER", Type: "USER", Status: "ACTIVE"})
	}
	return m
}

// BasicDirectory is a small organization: one active member of the Core team
// and one suspended older account, plus two projects.
//
//	a@jef.gal  created 2020-01-01, active, member of Core
//	b@jef.gal  created 2019-01-01, suspended
func BasicDirectory() *FakeDirectory {
	return &FakeDirectory{
		Users: []models.User{
			NewUser("1", "a@jef.gal", Date(2020, 1, 1), false),
			NewUser("2", "b@jef.gal", Date(2019, 1, 1), true),
		},
		Photos: map[string]*models.Photo{
			"a@jef.gal": {ID: "p1", PrimaryEmail: "a@jef.gal", MimeType: "image/jpeg", PhotoData: "aGVsbG8_"},
		},
		Groups: map[string][]models.Group{
			TeamsDomain: {NewGroup("g1", "core@teams.jef.gal", "Core")},
			ProjectsDomain: {
				NewGroup("p1", "erasmus@projects.jef.gal", "Erasmus Days"),
				NewGroup("p2", "debates@projects.jef.gal", "Debates"),
			},
		},
		Members: map[string]models.Members{
			"core@teams.jef.gal": MembersOf("a@jef.gal"),
		},
	}
}
