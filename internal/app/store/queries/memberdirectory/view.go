package memberdirectory

import (
	"slices"
	"strings"
	"time"

	"github.com/jefgalicia/jefsite/internal/domain/models"
)

// TagFormat controls how a member's team tag is written: each team name gets
// Suffix appended, and the results are joined with Separator.
type TagFormat struct {
	Suffix    string
	Separator string
}

// DefaultTagFormat yields tags like "Core Manager, Comms Manager".
func DefaultTagFormat() TagFormat {
	return TagFormat{Suffix: " Manager", Separator: ", "}
}

// MemberRow is one entry of the rendered member list.
type MemberRow struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	CreationTime time.Time     `json:"creationTime"`
	Photo        *models.Photo `json:"photo"`
	Tagline      string        `json:"tagline"`
}

// BuildView derives the member list: suspended users are dropped, the rest
// are stable-sorted by account creation time (oldest first), and each row
// carries the user's photo and team tag.
func BuildView(p Props, f TagFormat) []MemberRow {
	active := make([]models.User, 0, len(p.Users))
	for _, u := range p.Users {
		if !u.Suspended {
			active = append(active, u)
		}
	}
	slices.SortStableFunc(active, func(a, b models.User) int {
		return a.CreationTime.Compare(b.CreationTime)
	})

	photos := photosByEmail(p.Photos)
	rows := make([]MemberRow, 0, len(active))
	for _, u := range active {
		rows = append(rows, MemberRow{
			ID:           u.ID,
			Email:        u.PrimaryEmail,
			Name:         u.DisplayName(),
			CreationTime: u.CreationTime,
			Photo:        photos[u.PrimaryEmail],
			Tagline:      Tagline(u, p.Groups, p.Memberships, f),
		})
	}
	return rows
}

// Tagline lists, in group order, every group whose membership contains the
// user's primary email. It is empty when the user belongs to no group.
func Tagline(u models.User, groups []models.Group, memberships models.MembershipSet, f TagFormat) string {
	var parts []string
	for _, g := range groups {
		if memberships[g.ID].Has(u.PrimaryEmail) {
			parts = append(parts, g.Name+f.Suffix)
		}
	}
	return strings.Join(parts, f.Separator)
}

// photosByEmail keeps the first photo seen per primary email.
func photosByEmail(photos []*models.Photo) map[string]*models.Photo {
	out := make(map[string]*models.Photo, len(photos))
	for _, p := range photos {
		if p == nil {
			continue
		}
		if _, seen := out[p.PrimaryEmail]; !seen {
			out[p.PrimaryEmail] = p
		}
	}
	return out
}
