package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jobradar/jobradar/internal/cache"
	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/db/repos"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/scraper"
	"github.com/jobradar/jobradar/internal/types"
)

// Default fan-out bounds; both are overridable via AggregatorOptions
const (
	DefaultWorkers     = 5
	DefaultPairTimeout = 30 * time.Second
)

// AggregatorOptions tunes the per-run fan-out
type AggregatorOptions struct {
	Workers     int           // bounded concurrency for pair fetches
	PairTimeout time.Duration // per-pair adapter timeout
}

// Aggregator orchestrates runs across all source adapters: fan-out, dedup
// against the durable store, the expiry pass, registry status writes and the
// fast-read store rebuild.
type Aggregator struct {
	jobs      *repos.JobRepository
	companies *repos.CompanyRepository
	boards    *repos.JobBoardRepository
	pairs     *repos.PairRepository
	scrapers  *scraper.Registry
	cache     cache.Store
	workers   int
	timeout   time.Duration

	// runMu serializes runs: an overlapping manual and scheduled run would
	// otherwise double-process the same pairs.
	runMu sync.Mutex
}

// NewAggregator creates the aggregator service
func NewAggregator(
	jobs *repos.JobRepository,
	companies *repos.CompanyRepository,
	boards *repos.JobBoardRepository,
	pairs *repos.PairRepository,
	scrapers *scraper.Registry,
	store cache.Store,
	opts AggregatorOptions,
) *Aggregator {
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.PairTimeout <= 0 {
		opts.PairTimeout = DefaultPairTimeout
	}
	return &Aggregator{
		jobs:      jobs,
		companies: companies,
		boards:    boards,
		pairs:     pairs,
		scrapers:  scrapers,
		cache:     store,
		workers:   opts.Workers,
		timeout:   opts.PairTimeout,
	}
}

// RunAll executes one run over every enabled pair of every enabled job board
func (a *Aggregator) RunAll(ctx context.Context) (*types.RunSummary, error) {
	pairs, err := a.pairs.ListEnabled(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load pairs for full run: %w", err)
	}
	return a.run(ctx, filterEnabledBoards(pairs)), nil
}

// RunPlatform executes one run over the enabled pairs of a single job board
func (a *Aggregator) RunPlatform(ctx context.Context, platformSlug string) (*types.RunSummary, error) {
	board, err := a.boards.GetBySlug(ctx, platformSlug)
	if err != nil {
		return nil, fmt.Errorf("unknown platform %s: %w", platformSlug, err)
	}
	pairs, err := a.pairs.ListEnabled(ctx, &board.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pairs for platform %s: %w", platformSlug, err)
	}
	return a.run(ctx, pairs), nil
}

// RunCompany executes one run over all enabled pairs of a single company
// (manual retry path).
func (a *Aggregator) RunCompany(ctx context.Context, companyID uint) (*types.RunSummary, error) {
	pairs, err := a.pairs.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pairs for company %d: %w", companyID, err)
	}
	enabled := make([]models.JobBoardCompany, 0, len(pairs))
	for _, p := range pairs {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	return a.run(ctx, filterEnabledBoards(enabled)), nil
}

// pairOutcome is the join-point result of one pair's fetch
type pairOutcome struct {
	pair    models.JobBoardCompany
	scraped []types.ScrapedJob
	err     error
}

func (a *Aggregator) run(ctx context.Context, pairs []models.JobBoardCompany) *types.RunSummary {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	summary := &types.RunSummary{
		StartedAt:   time.Now().UTC(),
		PerPlatform: make(map[string]*types.RunCounts),
	}
	if len(pairs) == 0 {
		summary.FinishedAt = time.Now().UTC()
		return summary
	}

	logger.Infof("aggregator run started: %d pair(s), %d worker(s)", len(pairs), a.workers)

	outcomes := a.fetchAll(ctx, pairs)

	// All writes happen after the fetch barrier, in deterministic pair order.
	now := time.Now().UTC()
	type platformState struct {
		seenExternalIDs []string
		okCompanySlugs  []string
		touched         bool
	}
	platforms := make(map[string]*platformState)
	touchedCompanies := make(map[uint]string) // id -> slug

	for _, outcome := range outcomes {
		pair := outcome.pair
		platform := pair.JobBoard.Slug
		state := platforms[platform]
		if state == nil {
			state = &platformState{}
			platforms[platform] = state
		}
		counts := summary.PerPlatform[platform]
		if counts == nil {
			counts = &types.RunCounts{}
			summary.PerPlatform[platform] = counts
		}

		result := types.PairResult{
			PairID:      pair.ID,
			Platform:    platform,
			CompanySlug: pair.Company.Slug,
		}

		pairErr := outcome.err
		if pairErr == nil {
			result.NewJobs, result.UpdatedJobs, state.seenExternalIDs, pairErr =
				a.persistPair(ctx, pair, outcome.scraped, now, state.seenExternalIDs)
		}

		if pairErr != nil {
			result.Error = pairErr.Error()
			counts.FailedPairs++
			summary.Errors = append(summary.Errors, types.PairError{
				PairID:      pair.ID,
				Platform:    platform,
				CompanySlug: pair.Company.Slug,
				Message:     pairErr.Error(),
			})
			if err := a.pairs.UpdateScrapeStatus(ctx, pair.ID, models.ScrapingStatusError, pairErr.Error(), now); err != nil {
				logger.Errorf("failed to record error status for pair %d: %v", pair.ID, err)
			}
		} else {
			state.okCompanySlugs = append(state.okCompanySlugs, pair.Company.Slug)
			state.touched = true
			touchedCompanies[pair.CompanyID] = pair.Company.Slug
			summary.NewJobs += result.NewJobs
			summary.UpdatedJobs += result.UpdatedJobs
			counts.NewJobs += result.NewJobs
			counts.UpdatedJobs += result.UpdatedJobs
			if err := a.pairs.UpdateScrapeStatus(ctx, pair.ID, models.ScrapingStatusSuccess, "", now); err != nil {
				logger.Errorf("failed to record success status for pair %d: %v", pair.ID, err)
			}
		}
		summary.Pairs = append(summary.Pairs, result)
	}

	// Expiry pass: only after every pair of a platform has reported in, and
	// only over companies whose fetch succeeded this run.
	touchedPlatforms := make([]string, 0, len(platforms))
	for platform, state := range platforms {
		if !state.touched {
			continue
		}
		expired, err := a.jobs.ExpireMissing(ctx, platform, state.okCompanySlugs, state.seenExternalIDs)
		if err != nil {
			logger.Errorf("expiry pass failed for platform %s: %v", platform, err)
			continue
		}
		summary.ExpiredJobs += int(expired)
		summary.PerPlatform[platform].ExpiredJobs = int(expired)
		touchedPlatforms = append(touchedPlatforms, platform)
	}
	sort.Strings(touchedPlatforms)

	a.refreshCompanyTotals(ctx, touchedCompanies)

	if len(touchedPlatforms) > 0 {
		if err := a.cache.InvalidatePlatforms(ctx, touchedPlatforms); err != nil {
			logger.Errorf("cache invalidation failed: %v", err)
		}
	}

	summary.FinishedAt = time.Now().UTC()
	logger.InfoWithFields("aggregator run finished", map[string]interface{}{
		"new":     summary.NewJobs,
		"updated": summary.UpdatedJobs,
		"expired": summary.ExpiredJobs,
		"failed":  len(summary.Errors),
	})
	return summary
}

// fetchAll fans the pair fetches out over a bounded worker pool and joins
// before returning: the expiry pass must never start while a pair is still
// in flight.
func (a *Aggregator) fetchAll(ctx context.Context, pairs []models.JobBoardCompany) []pairOutcome {
	outcomes := make([]pairOutcome, len(pairs))
	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup

	for i := range pairs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = a.fetchPair(ctx, pairs[i])
		}(i)
	}
	wg.Wait()
	return outcomes
}

func (a *Aggregator) fetchPair(ctx context.Context, pair models.JobBoardCompany) (outcome pairOutcome) {
	outcome.pair = pair

	// A panicking adapter must not take sibling pairs down with it
	defer func() {
		if r := recover(); r != nil {
			outcome.err = fmt.Errorf("adapter panic: %v", r)
		}
	}()

	adapterSlug := pair.JobBoard.Adapter
	if adapterSlug == "" {
		adapterSlug = pair.JobBoard.Slug
	}
	adapter, err := a.scrapers.Lookup(adapterSlug)
	if err != nil {
		outcome.err = err
		return outcome
	}

	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	scraped, err := adapter.FetchJobs(fetchCtx, scraper.Target{
		URL:         pair.ScraperURL,
		CompanySlug: pair.Company.Slug,
		Company:     &pair.Company,
	})
	if err != nil {
		outcome.err = err
		return outcome
	}
	// Zero postings is a legitimate result, not a failure
	outcome.scraped = scraped
	return outcome
}

// persistPair normalizes and upserts one pair's postings. A store write error
// drops the rest of the pair's contribution and fails the pair; rows already
// written stay committed.
func (a *Aggregator) persistPair(
	ctx context.Context,
	pair models.JobBoardCompany,
	scraped []types.ScrapedJob,
	now time.Time,
	seen []string,
) (newJobs, updatedJobs int, seenOut []string, err error) {
	platform := pair.JobBoard.Slug

	for i := range scraped {
		s := &scraped[i]
		if verr := s.Validate(); verr != nil {
			logger.Warnf("dropping invalid posting from pair %d: %v", pair.ID, verr)
			continue
		}

		hash := ContentHash(s.ExternalID, platform, s.Title, s.Description, pair.Company.Slug)
		companyID := pair.CompanyID
		job := &models.Job{
			ExternalID:   s.ExternalID,
			Platform:     platform,
			Hash:         &hash,
			Title:        s.Title,
			Description:  s.Description,
			Location:     s.Location,
			Remote:       s.Remote,
			Countries:    s.Countries,
			Tags:         s.Tags,
			Seniority:    s.Seniority,
			Employment:   s.Employment,
			Requirements: s.Requirements,
			Benefits:     s.Benefits,
			Salary:       s.Salary,
			ExternalURL:  s.ExternalURL,
			CompanySlug:  pair.Company.Slug,
			CompanyID:    &companyID,
			PublishedAt:  s.PublishedAt,
			ExpiresAt:    s.ExpiresAt,
			ScrapedAt:    now,
		}

		created, uerr := a.jobs.UpsertScraped(ctx, job)
		if uerr != nil {
			return newJobs, updatedJobs, seen, fmt.Errorf("store write failed: %w", uerr)
		}
		seen = append(seen, s.ExternalID)
		if created {
			newJobs++
		} else {
			updatedJobs++
		}
	}
	return newJobs, updatedJobs, seen, nil
}

func (a *Aggregator) refreshCompanyTotals(ctx context.Context, companies map[uint]string) {
	for id, slug := range companies {
		count, err := a.jobs.CountActiveByCompanySlug(ctx, slug)
		if err != nil {
			logger.Errorf("failed to count jobs for company %s: %v", slug, err)
			continue
		}
		if err := a.companies.UpdateTotalJobs(ctx, id, int(count)); err != nil {
			logger.Errorf("failed to refresh total jobs for company %s: %v", slug, err)
		}
	}
}

// filterEnabledBoards drops pairs whose job board is disabled
func filterEnabledBoards(pairs []models.JobBoardCompany) []models.JobBoardCompany {
	filtered := make([]models.JobBoardCompany, 0, len(pairs))
	for _, p := range pairs {
		if p.JobBoard.Enabled {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
