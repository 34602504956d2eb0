package service

import (
	"context"
	"time"

	"sitereport/internal/cache"
	"sitereport/internal/model"
	"sitereport/internal/repository"
)

const (
	countersCacheKey = "dashboard:counters"
	countersCacheTTL = 30 * time.Second
	recentReports    = 10
)

// Counters are the global dashboard figures.
type Counters struct {
	ActiveProjects int64 `json:"active_projects"`
	PendingReports int64 `json:"pending_reports"`
	UpcomingVisits int64 `json:"upcoming_visits"`
}

// Dashboard is the home screen payload.
type Dashboard struct {
	Counters
	RecentReports []ReportView `json:"recent_reports"`
}

// DashboardService exposes the dashboard and the role-scoped listings.
type DashboardService interface {
	Dashboard(ctx context.Context, user *model.User) (*Dashboard, error)
	Projects(ctx context.Context) ([]ProjectView, error)
	Reports(ctx context.Context, user *model.User) ([]ReportView, error)
	Visits(ctx context.Context, user *model.User) ([]VisitView, error)
}

type dashboardService struct {
	projects repository.ProjectRepository
	reports  repository.ReportRepository
	visits   repository.VisitRepository
	cache    *cache.Client
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	projects repository.ProjectRepository,
	reports repository.ReportRepository,
	visits repository.VisitRepository,
	cache *cache.Client,
) DashboardService {
	return &dashboardService{
		projects: projects,
		reports:  reports,
		visits:   visits,
		cache:    cache,
		now:      time.Now,
	}
}

// Dashboard returns global counters and the latest reports the user may see.
func (s *dashboardService) Dashboard(ctx context.Context, user *model.User) (*Dashboard, error) {
	counters, err := s.counters(ctx)
	if err != nil {
		return nil, err
	}

	var reports []model.Report
	if user.IsMaster {
		reports, err = s.reports.Recent(ctx, recentReports)
	} else {
		reports, err = s.reports.RecentByAuthor(ctx, user.ID, recentReports)
	}
	if err != nil {
		return nil, err
	}
	return &Dashboard{Counters: *counters, RecentReports: reportViews(reports, true)}, nil
}

// counters are shared by every user, so they are cached briefly.
func (s *dashboardService) counters(ctx context.Context) (*Counters, error) {
	var cached Counters
	if s.cache.GetJSON(ctx, countersCacheKey, &cached) {
		return &cached, nil
	}

	var (
		c   Counters
		err error
	)
	if c.ActiveProjects, err = s.projects.CountActive(ctx); err != nil {
		return nil, err
	}
	if c.PendingReports, err = s.reports.CountPending(ctx); err != nil {
		return nil, err
	}
	if c.UpcomingVisits, err = s.visits.CountUpcoming(ctx, s.now().UTC()); err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, countersCacheKey, c, countersCacheTTL)
	return &c, nil
}

func (s *dashboardService) Projects(ctx context.Context) ([]ProjectView, error) {
	projects, err := s.projects.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return projectViews(projects), nil
}

// Reports lists every report for master users and the user's own otherwise.
func (s *dashboardService) Reports(ctx context.Context, user *model.User) ([]ReportView, error) {
	var (
		reports []model.Report
		err     error
	)
	if user.IsMaster {
		reports, err = s.reports.List(ctx)
	} else {
		reports, err = s.reports.ListByAuthor(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}
	return reportViews(reports, true), nil
}

// Visits lists every visit for master users and the user's own otherwise.
func (s *dashboardService) Visits(ctx context.Context, user *model.User) ([]VisitView, error) {
	var (
		visits []model.Visit
		err    error
	)
	if user.IsMaster {
		visits, err = s.visits.List(ctx)
	} else {
		visits, err = s.visits.ListByResponsible(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}
	return visitViews(visits), nil
}
