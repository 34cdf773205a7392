package services

import (
	"context"

	"github.com/jobradar/jobradar/internal/cache"
	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/db/repos"
	"github.com/jobradar/jobradar/internal/logger"
)

// Jobs serves the read path for job listings through the fast-read store.
// Listings reflect the latest completed run: the aggregator invalidates the
// relevant platforms only after its writes and expiry pass are done.
type Jobs struct {
	repo  *repos.JobRepository
	cache cache.Store
}

// NewJobsService creates a new jobs service
func NewJobsService(repo *repos.JobRepository, store cache.Store) *Jobs {
	return &Jobs{repo: repo, cache: store}
}

// List returns a filtered, paginated job listing, served from the cache when
// possible. A cache failure degrades to a direct database read.
func (s *Jobs) List(ctx context.Context, filter *models.JobFilter, opts *models.ListOptions) ([]models.Job, int64, error) {
	key := cache.ListKey(filter, opts)

	cached, ok, err := s.cache.GetJobList(ctx, key)
	if err != nil {
		logger.Warnf("cache read failed for %s: %v", key, err)
	} else if ok {
		return cached.Jobs, cached.Total, nil
	}

	jobs, err := s.repo.List(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	entry := &cache.JobList{Jobs: jobs, Total: total}
	if err := s.cache.SetJobList(ctx, key, cache.IndexFor(filter), entry); err != nil {
		logger.Warnf("cache write failed for %s: %v", key, err)
	}
	return jobs, total, nil
}

// Get returns one job by its natural key
func (s *Jobs) Get(ctx context.Context, externalID, platform string) (*models.Job, error) {
	return s.repo.GetByNaturalKey(ctx, externalID, platform)
}
