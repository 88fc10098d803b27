// Package pagebuild produces the data behind the site's directory pages.
//
// Each page is built from the directory service, kept for its revalidation
// window, and every build is recorded (build log + metrics) with its outcome.
package pagebuild

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jefgalicia/jefsite/internal/app/store/queries/memberdirectory"
	"github.com/jefgalicia/jefsite/internal/app/store/queries/projectdirectory"
	"github.com/jefgalicia/jefsite/internal/app/system/directory"
	"github.com/jefgalicia/jefsite/internal/app/system/metrics"
	"github.com/jefgalicia/jefsite/internal/app/system/pagecache"
	"github.com/jefgalicia/jefsite/internal/app/system/timeouts"
	"github.com/jefgalicia/jefsite/internal/domain/models"
	"go.uber.org/zap"
)

// Page names, used as cache keys, build log pages and metric labels.
const (
	PageAbout    = "about"
	PageProjects = "projects"
)

// Recorder stores build records. *builds.Store implements it.
type Recorder interface {
	Log(ctx context.Context, b models.PageBuild) error
}

// Config holds everything the page builds need.
type Config struct {
	Members           memberdirectory.Config
	Projects          projectdirectory.Config
	Tags              memberdirectory.TagFormat
	ProjectsBasePath  string
	MemberRevalidate  time.Duration // about page window
	ProjectRevalidate time.Duration // projects page window; <= 0 keeps the first build
}

// AboutPage is the members page data. The embedded Props serialize as the
// page contract: users, photos, groups, memberships.
type AboutPage struct {
	memberdirectory.Props
	Status     memberdirectory.Status `json:"status"`
	Revalidate int64                  `json:"revalidate,omitempty"` // seconds; only set on fresh data
	BuildID    string                 `json:"buildId"`
	BuiltAt    time.Time              `json:"builtAt"`

	Members []memberdirectory.MemberRow `json:"-"`
	Err     error                       `json:"-"`
}

// ProjectsPage is the projects page data.
type ProjectsPage struct {
	Projects   []models.Group          `json:"projects"`
	Links      []projectdirectory.Link `json:"links"`
	Revalidate int64                   `json:"revalidate,omitempty"`
	BuildID    string                  `json:"buildId"`
	BuiltAt    time.Time               `json:"builtAt"`
}

// Builder builds and caches the directory pages.
type Builder struct {
	client   directory.Client
	cfg      Config
	rec      Recorder
	log      *zap.Logger
	about    *pagecache.Cache[*AboutPage]
	projects *pagecache.Cache[*ProjectsPage]
}

// New creates a Builder. rec may be nil to skip the build log.
func New(client directory.Client, cfg Config, rec Recorder, logger *zap.Logger) *Builder {
	return &Builder{
		client:   client,
		cfg:      cfg,
		rec:      rec,
		log:      logger,
		about:    pagecache.New[*AboutPage](PageAbout, cfg.MemberRevalidate, 1),
		projects: pagecache.New[*ProjectsPage](PageProjects, cfg.ProjectRevalidate, 1),
	}
}

// About returns the members page data. It never fails: a failed aggregation
// yields an empty page with StatusFallback, which is not cached.
func (b *Builder) About(ctx context.Context) (*AboutPage, error) {
	return b.about.GetOrBuild(ctx, PageAbout, b.buildAbout)
}

// Projects returns the projects page data, or the directory error.
func (b *Builder) Projects(ctx context.Context) (*ProjectsPage, error) {
	return b.projects.GetOrBuild(ctx, PageProjects, b.buildProjects)
}

// RefreshAll rebuilds both pages ahead of any request.
func (b *Builder) RefreshAll(ctx context.Context) error {
	var errs []error
	if p, err := b.about.Refresh(ctx, PageAbout, b.buildAbout); err != nil {
		errs = append(errs, err)
	} else if p.Err != nil {
		errs = append(errs, p.Err)
	}
	if _, err := b.projects.Refresh(ctx, PageProjects, b.buildProjects); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Warm reports which pages currently hold a cached build.
func (b *Builder) Warm() map[string]bool {
	return map[string]bool{
		PageAbout:    b.about.Len() > 0,
		PageProjects: b.projects.Len() > 0,
	}
}

func (b *Builder) buildAbout(ctx context.Context) (*AboutPage, bool, error) {
	// Waiting requests share this build, so it outlives the first caller's
	// connection and is bounded by the directory deadline instead.
	ctx, cancel := timeouts.WithTimeout(context.WithoutCancel(ctx), timeouts.Directory(), b.log, "about page build")
	defer cancel()

	buildID := uuid.NewString()
	start := time.Now()

	res := memberdirectory.Aggregate(ctx, b.client, b.cfg.Members)

	page := &AboutPage{
		Props:   res.Props,
		Status:  res.Status,
		BuildID: buildID,
		BuiltAt: start.UTC(),
		Members: memberdirectory.BuildView(res.Props, b.cfg.Tags),
		Err:     res.Err,
	}

	rec := models.PageBuild{
		BuildID:   buildID,
		Page:      PageAbout,
		Status:    models.BuildOK,
		Users:     len(res.Props.Users),
		Groups:    len(res.Props.Groups),
		Photos:    res.Props.PhotoCount(),
		StartedAt: start.UTC(),
	}
	if res.OK() {
		page.Revalidate = int64(b.cfg.MemberRevalidate / time.Second)
		b.log.Info("about page built",
			zap.String("build_id", buildID),
			zap.Int("users", rec.Users),
			zap.Int("groups", rec.Groups),
			zap.Int("photos", rec.Photos),
			zap.Duration("took", time.Since(start)))
	} else {
		rec.Status = models.BuildFallback
		rec.Error = res.Err.Error()
		b.log.Warn("about page build failed; serving empty directory",
			zap.String("build_id", buildID),
			zap.Error(res.Err))
	}
	b.finish(rec, start)

	return page, res.OK(), nil
}

func (b *Builder) buildProjects(ctx context.Context) (*ProjectsPage, bool, error) {
	ctx, cancel := timeouts.WithTimeout(context.WithoutCancel(ctx), timeouts.Directory(), b.log, "projects page build")
	defer cancel()

	buildID := uuid.NewString()
	start := time.Now()

	projects, err := projectdirectory.List(ctx, b.client, b.cfg.Projects)
	rec := models.PageBuild{
		BuildID:   buildID,
		Page:      PageProjects,
		Status:    models.BuildOK,
		Projects:  len(projects),
		StartedAt: start.UTC(),
	}
	if err != nil {
		rec.Status = models.BuildError
		rec.Error = err.Error()
		b.log.Error("projects page build failed", zap.String("build_id", buildID), zap.Error(err))
		b.finish(rec, start)
		return nil, false, err
	}

	b.log.Info("projects page built",
		zap.String("build_id", buildID),
		zap.Int("projects", len(projects)),
		zap.Duration("took", time.Since(start)))
	b.finish(rec, start)

	page := &ProjectsPage{
		Projects: projects,
		Links:    projectdirectory.Links(projects, b.cfg.ProjectsBasePath),
		BuildID:  buildID,
		BuiltAt:  start.UTC(),
	}
	if b.cfg.ProjectRevalidate > 0 {
		page.Revalidate = int64(b.cfg.ProjectRevalidate / time.Second)
	}
	return page, true, nil
}

// finish records metrics and the build log entry. A build log failure is
// logged and otherwise ignored.
func (b *Builder) finish(rec models.PageBuild, start time.Time) {
	took := time.Since(start)
	rec.Duration = took.Milliseconds()
	metrics.PageBuilds.WithLabelValues(rec.Page, rec.Status).Inc()
	metrics.PageBuildDuration.WithLabelValues(rec.Page).Observe(took.Seconds())

	if b.rec == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Short())
	defer cancel()
	if err := b.rec.Log(ctx, rec); err != nil {
		b.log.Warn("page build log write failed",
			zap.String("page", rec.Page),
			zap.String("build_id", rec.BuildID),
			zap.Error(err))
	}
}
