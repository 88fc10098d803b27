package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/jefgalicia/jefsite/internal/app/system/metrics"
	"github.com/jefgalicia/jefsite/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Scopes are the read-only Admin SDK scopes the site needs.
var Scopes = []string{
	admin.AdminDirectoryUserReadonlyScope,
	admin.AdminDirectoryGroupReadonlyScope,
	admin.AdminDirectoryGroupMemberReadonlyScope,
}

// Admin SDK page size ceilings.
const (
	maxUsersPage   = 500
	maxGroupsPage  = 200
	maxMembersPage = 200
)

// GoogleConfig configures the Admin SDK client.
//
// Credentials resolve in this order: HTTPClient (used as-is, for tests and
// proxies), CredentialsJSON, CredentialsFile, then application default
// credentials. Service-account credentials impersonate AdminSubject through
// domain-wide delegation, which the Directory API requires.
type GoogleConfig struct {
	CredentialsFile string
	CredentialsJSON []byte
	AdminSubject    string
	PageSize        int64
	Endpoint        string
	HTTPClient      *http.Client
}

// Google is a Client backed by the Admin SDK Directory API.
type Google struct {
	svc      *admin.Service
	pageSize int64
	log      *zap.Logger
}

// NewGoogle builds the Admin SDK service. ctx is kept by the token source for
// token refreshes, so pass a context that outlives startup.
func NewGoogle(ctx context.Context, cfg GoogleConfig, logger *zap.Logger) (*Google, error) {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	switch {
	case cfg.HTTPClient != nil:
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	default:
		creds := cfg.CredentialsJSON
		if len(creds) == 0 && cfg.CredentialsFile != "" {
			b, err := os.ReadFile(cfg.CredentialsFile)
			if err != nil {
				return nil, fmt.Errorf("directory: read credentials: %w", err)
			}
			creds = b
		}
		if len(creds) > 0 {
			jwtCfg, err := google.JWTConfigFromJSON(creds, Scopes...)
			if err != nil {
				return nil, fmt.Errorf("directory: parse credentials: %w", err)
			}
			jwtCfg.Subject = cfg.AdminSubject
			opts = append(opts, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
		} else {
			ts, err := google.DefaultTokenSource(ctx, Scopes...)
			if err != nil {
				return nil, fmt.Errorf("directory: default credentials: %w", err)
			}
			opts = append(opts, option.WithTokenSource(ts))
		}
	}

	svc, err := admin.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("directory: new admin service: %w", err)
	}
	return &Google{svc: svc, pageSize: cfg.PageSize, log: logger}, nil
}

func (g *Google) page(limit int64) int64 {
	if g.pageSize <= 0 || g.pageSize > limit {
		return limit
	}
	return g.pageSize
}

// ListUsers lists every user of domain.
func (g *Google) ListUsers(ctx context.Context, domain, orderBy string, showDeleted bool) ([]models.User, error) {
	call := g.svc.Users.List().
		Domain(domain).
		ShowDeleted(strconv.FormatBool(showDeleted)).
		MaxResults(g.page(maxUsersPage))
	if orderBy != "" {
		call = call.OrderBy(orderBy)
	}

	var out []models.User
	err := call.Pages(ctx, func(page *admin.Users) error {
		for _, u := range page.Users {
			out = append(out, toUser(u))
		}
		return nil
	})
	observe("list_users", err)
	if err != nil {
		return nil, fmt.Errorf("directory: list users of %s: %w", domain, err)
	}
	g.log.Debug("directory users listed", zap.String("domain", domain), zap.Int("count", len(out)))
	return out, nil
}

// GetUserPhoto fetches a user's photo. A user without one yields ErrNoPhoto.
func (g *Google) GetUserPhoto(ctx context.Context, userKey string) (*models.Photo, error) {
	p, err := g.svc.Users.Photos.Get(userKey).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			metrics.DirectoryCalls.WithLabelValues("get_user_photo", "not_found").Inc()
			return nil, ErrNoPhoto
		}
		observe("get_user_photo", err)
		return nil, fmt.Errorf("directory: get photo of %s: %w", userKey, err)
	}
	observe("get_user_photo", nil)
	return &models.Photo{
		ID:           p.Id,
		PrimaryEmail: p.PrimaryEmail,
		MimeType:     p.MimeType,
		PhotoData:    p.PhotoData,
		Width:        p.Width,
		Height:       p.Height,
	}, nil
}

// ListGroups lists every group of domain.
func (g *Google) ListGroups(ctx context.Context, domain string) ([]models.Group, error) {
	var out []models.Group
	err := g.svc.Groups.List().
		Domain(domain).
		MaxResults(g.page(maxGroupsPage)).
		Pages(ctx, func(page *admin.Groups) error {
			for _, gr := range page.Groups {
				out = append(out, models.Group{
					ID:                 gr.Id,
					Email:              gr.Email,
					Name:               gr.Name,
					Description:        gr.Description,
					DirectMembersCount: gr.DirectMembersCount,
				})
			}
			return nil
		})
	observe("list_groups", err)
	if err != nil {
		return nil, fmt.Errorf("directory: list groups of %s: %w", domain, err)
	}
	g.log.Debug("directory groups listed", zap.String("domain", domain), zap.Int("count", len(out)))
	return out, nil
}

// ListGroupMembers lists the members of groupKey (group email or ID).
// includeDerived also returns members inherited through nested groups.
func (g *Google) ListGroupMembers(ctx context.Context, groupKey string, includeDerived bool) (models.Members, error) {
	var out models.Members
	err := g.svc.Members.List(groupKey).
		IncludeDerivedMembership(includeDerived).
		MaxResults(g.page(maxMembersPage)).
		Pages(ctx, func(page *admin.Members) error {
			for _, m := range page.Members {
				out.Members = append(out.Members, models.Member{
					ID:     m.Id,
					Email:  m.Email,
					Role:   m.Role,
					Type:   m.Type,
					Status: m.Status,
				})
			}
			return nil
		})
	observe("list_group_members", err)
	if err != nil {
		return models.Members{}, fmt.Errorf("directory: list members of %s: %w", groupKey, err)
	}
	return out, nil
}

func toUser(u *admin.User) models.User {
	out := models.User{
		ID:                u.Id,
		PrimaryEmail:      u.PrimaryEmail,
		Suspended:         u.Suspended,
		ThumbnailPhotoURL: u.ThumbnailPhotoUrl,
	}
	if u.Name != nil {
		out.Name = models.UserName{
			GivenName:  u.Name.GivenName,
			FamilyName: u.Name.FamilyName,
			FullName:   u.Name.FullName,
		}
	}
	// Unparseable timestamps stay zero and sort first.
	if t, err := time.Parse(time.RFC3339, u.CreationTime); err == nil {
		out.CreationTime = t
	}
	return out
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

func observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.DirectoryCalls.WithLabelValues(op, outcome).Inc()
}
