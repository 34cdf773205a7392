// Package scraper contains the source adapters that pull postings from
// external platforms and normalize them into the canonical ScrapedJob shape.
//
// Adapters are pure fetch+normalize units: they never persist anything and
// each one is an isolated failure domain. A zero-posting result is valid and
// distinct from a fetch error.
package scraper

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/types"
)

// Platform slugs for the built-in adapters
const (
	PlatformLever          = "lever"
	PlatformGreenhouse     = "greenhouse"
	PlatformWorkable       = "workable"
	PlatformAshby          = "ashby"
	PlatformRemotive       = "remotive"
	PlatformWeWorkRemotely = "weworkremotely"
	PlatformRemoteYeah     = "remoteyeah"
)

// Target identifies one scrapeable feed: the pair's URL plus the owning
// company, whose metadata carries platform-specific identifiers.
type Target struct {
	URL         string
	CompanySlug string
	Company     *models.Company
}

// Scraper is the contract every source adapter satisfies
type Scraper interface {
	// Platform returns the registry slug the adapter serves
	Platform() string
	// FetchJobs pulls and normalizes all current postings for the target
	FetchJobs(ctx context.Context, target Target) ([]types.ScrapedJob, error)
}

// Registry maps platform slugs to adapter instances, resolved at run time
type Registry struct {
	mu       sync.RWMutex
	scrapers map[string]Scraper
}

// NewRegistry creates an empty adapter registry
func NewRegistry() *Registry {
	return &Registry{scrapers: make(map[string]Scraper)}
}

// NewDefaultRegistry creates a registry with all built-in adapters sharing
// one HTTP client.
func NewDefaultRegistry(client *Client) *Registry {
	r := NewRegistry()
	r.Register(NewLever(client))
	r.Register(NewGreenhouse(client))
	r.Register(NewWorkable(client))
	r.Register(NewAshby(client))
	r.Register(NewRemotive(client))
	r.Register(NewWeWorkRemotely(client))
	r.Register(NewRemoteYeah(client))
	return r
}

// Register adds an adapter under its platform slug, replacing any previous one
func (r *Registry) Register(s Scraper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrapers[s.Platform()] = s
}

// Lookup resolves the adapter for a platform slug
func (r *Registry) Lookup(platform string) (Scraper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scrapers[platform]
	if !ok {
		return nil, fmt.Errorf("no scraper registered for platform %q", platform)
	}
	return s, nil
}

// Platforms returns the registered platform slugs, sorted
func (r *Registry) Platforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	platforms := make([]string, 0, len(r.scrapers))
	for slug := range r.scrapers {
		platforms = append(platforms, slug)
	}
	sort.Strings(platforms)
	return platforms
}
