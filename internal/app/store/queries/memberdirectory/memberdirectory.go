// Package memberdirectory aggregates the directory data behind the members
// ("about") page: users, their photos, the team groups and each team's
// membership listing.
//
// Aggregate is all-or-nothing. Any failure other than a missing photo yields
// four empty collections and StatusFallback, with the cause kept in Result.Err
// so callers can tell "no data" from "fetch failed".
package memberdirectory

import (
	"context"
	"fmt"

	"github.com/jefgalicia/jefsite/internal/app/system/directory"
	"github.com/jefgalicia/jefsite/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// Config scopes the aggregation. Concurrency limits bound each parallel
// batch; zero means unbounded.
type Config struct {
	Domain            string // organizational domain, e.g. jef.gal
	TeamsDomain       string // team groups, e.g. teams.jef.gal
	OrderBy           string // directory ordering of the user listing
	ShowDeleted       bool
	IncludeDerived    bool // include members inherited through nested groups
	PhotoConcurrency  int
	MemberConcurrency int
}

// DefaultConfig returns the production layout.
func DefaultConfig() Config {
	return Config{
		Domain:            "jef.gal",
		TeamsDomain:       "teams.jef.gal",
		OrderBy:           directory.OrderByGivenName,
		ShowDeleted:       false,
		IncludeDerived:    true,
		PhotoConcurrency:  8,
		MemberConcurrency: 8,
	}
}

// Status tells a fresh aggregation from the empty fallback.
type Status string

const (
	StatusOK       Status = "ok"
	StatusFallback Status = "fallback"
)

// Props is the member page build input. Photos is aligned with Users by
// index; a nil entry means that user has no resolvable photo.
type Props struct {
	Users       []models.User        `json:"users"`
	Photos      []*models.Photo      `json:"photos"`
	Groups      []models.Group       `json:"groups"`
	Memberships models.MembershipSet `json:"memberships"`
}

// EmptyProps returns four empty, non-nil collections.
func EmptyProps() Props {
	return Props{
		Users:       []models.User{},
		Photos:      []*models.Photo{},
		Groups:      []models.Group{},
		Memberships: models.MembershipSet{},
	}
}

// PhotoCount returns how many users resolved a photo.
func (p Props) PhotoCount() int {
	n := 0
	for _, ph := range p.Photos {
		if ph != nil {
			n++
		}
	}
	return n
}

// Result is the outcome of Aggregate.
type Result struct {
	Props  Props
	Status Status
	Err    error
}

// OK reports whether fresh data was produced.
func (r Result) OK() bool { return r.Status == StatusOK }

// Aggregate fetches users, photos, team groups and memberships.
func Aggregate(ctx context.Context, client directory.Client, cfg Config) Result {
	props, err := aggregate(ctx, client, cfg)
	if err != nil {
		return Result{Props: EmptyProps(), Status: StatusFallback, Err: err}
	}
	return Result{Props: props, Status: StatusOK}
}

func aggregate(ctx context.Context, client directory.Client, cfg Config) (Props, error) {
	users, err := client.ListUsers(ctx, cfg.Domain, cfg.OrderBy, cfg.ShowDeleted)
	if err != nil {
		return Props{}, fmt.Errorf("member directory: %w", err)
	}

	photos := fetchPhotos(ctx, client, users, cfg.PhotoConcurrency)

	groups, err := client.ListGroups(ctx, cfg.TeamsDomain)
	if err != nil {
		return Props{}, fmt.Errorf("member directory: %w", err)
	}

	memberships, err := fetchMemberships(ctx, client, groups, cfg)
	if err != nil {
		return Props{}, fmt.Errorf("member directory: %w", err)
	}

	if users == nil {
		users = []models.User{}
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return Props{Users: users, Photos: photos, Groups: groups, Memberships: memberships}, nil
}

// fetchPhotos resolves every user's photo in parallel. A failed lookup
// leaves that user's slot nil and never fails the batch.
func fetchPhotos(ctx context.Context, client directory.Client, users []models.User, limit int) []*models.Photo {
	photos := make([]*models.Photo, len(users))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, u := range users {
		g.Go(func() error {
			p, err := client.GetUserPhoto(ctx, u.PrimaryEmail)
			if err == nil {
				photos[i] = p
			}
			return nil
		})
	}
	_ = g.Wait()
	return photos
}

type groupMembers struct {
	groupID string
	members models.Members
}

// fetchMemberships lists each group's members in parallel. The first failure
// cancels the rest of the batch.
func fetchMemberships(ctx context.Context, client directory.Client, groups []models.Group, cfg Config) (models.MembershipSet, error) {
	results := make([]groupMembers, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.MemberConcurrency > 0 {
		g.SetLimit(cfg.MemberConcurrency)
	}
	for i, gr := range groups {
		g.Go(func() error {
			m, err := client.ListGroupMembers(gctx, groupKey(gr), cfg.IncludeDerived)
			if err != nil {
				return err
			}
			results[i] = groupMembers{groupID: gr.ID, members: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mergeMemberships(results), nil
}

// mergeMemberships folds per-group results into one set keyed by group ID.
// A repeated ID keeps the last result.
func mergeMemberships(results []groupMembers) models.MembershipSet {
	set := make(models.MembershipSet, len(results))
	for _, r := range results {
		set[r.groupID] = r.members
	}
	return set
}

// groupKey is how the directory addresses a group: by email, or by ID when a
// group has no address.
func groupKey(g models.Group) string {
	if g.Email != "" {
		return g.Email
	}
	return g.ID
}
