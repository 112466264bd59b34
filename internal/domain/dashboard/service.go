package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/submissions"
)

const recentLimit = 5

type StatsStore interface {
	Stats(ctx context.Context) (Stats, error)
}

type RecentSites interface {
	Recent(ctx context.Context, limit int) ([]sites.Site, error)
}

type RecentSubmissions interface {
	Recent(ctx context.Context, limit int) ([]submissions.Submission, error)
}

type Service struct {
	stats StatsStore
	sites RecentSites
	subs  RecentSubmissions
}

func NewService(stats StatsStore, sitesRepo RecentSites, subsRepo RecentSubmissions) *Service {
	return &Service{stats: stats, sites: sitesRepo, subs: subsRepo}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.stats.Stats(ctx)
}

// Activity returns the five newest sites and submissions with their users.
func (s *Service) Activity(ctx context.Context) (Activity, error) {
	var a Activity
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a.RecentSites, err = s.sites.Recent(gctx, recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		a.RecentSubmissions, err = s.subs.Recent(gctx, recentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return Activity{}, err
	}
	if a.RecentSites == nil {
		a.RecentSites = []sites.Site{}
	}
	if a.RecentSubmissions == nil {
		a.RecentSubmissions = []submissions.Submission{}
	}
	return a, nil
}
