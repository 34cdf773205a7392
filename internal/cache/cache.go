// Package cache implements the fast-read store serving job listings without
// touching the durable store on every request.
//
// Listings are cached whole per filter signature and rebuilt rather than
// incrementally patched, so readers never observe a partially-written run.
// Entries are indexed by the platforms they depend on so a run for one
// platform never invalidates other platforms' cached listings.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jobradar/jobradar/internal/db/models"
)

// DefaultTTL bounds staleness for entries whose platforms never get another run
const DefaultTTL = 15 * time.Minute

// IndexAll is the index bucket for listings that span every platform
const IndexAll = "all"

// JobList is the cached representation of one filtered, paginated listing
type JobList struct {
	Jobs  []models.Job `json:"jobs"`
	Total int64        `json:"total"`
}

// Store is the fast-read store contract. The aggregator writes through it,
// the jobs service reads through it.
type Store interface {
	// GetJobList returns the cached listing for key, or ok=false on a miss
	GetJobList(ctx context.Context, key string) (*JobList, bool, error)
	// SetJobList caches a listing under key, indexed by platform for invalidation
	SetJobList(ctx context.Context, key, platform string, list *JobList) error
	// InvalidatePlatforms drops all listings depending on any of the platforms
	InvalidatePlatforms(ctx context.Context, platforms []string) error
}

// ListKey derives a stable cache key from a listing's filter and pagination
func ListKey(filter *models.JobFilter, opts *models.ListOptions) string {
	platform, remote, seniority, employment, active := "", "any", "any", "any", "any"
	if filter != nil {
		if filter.Platform != "" {
			platform = filter.Platform
		}
		if filter.Remote != nil {
			remote = strconv.FormatBool(*filter.Remote)
		}
		if filter.Seniority != nil {
			seniority = filter.Seniority.String()
		}
		if filter.EmploymentType != nil {
			employment = filter.EmploymentType.String()
		}
		active = strconv.FormatBool(filter.ActiveOnly)
	}
	limit, offset := 0, 0
	if opts != nil {
		limit, offset = opts.Limit, opts.Offset
	}
	return fmt.Sprintf("jobs:list:%s:%s:%s:%s:%s:%d:%d",
		platform, remote, seniority, employment, active, limit, offset)
}

// IndexFor returns the invalidation bucket a listing belongs to
func IndexFor(filter *models.JobFilter) string {
	if filter != nil && filter.Platform != "" {
		return filter.Platform
	}
	return IndexAll
}
