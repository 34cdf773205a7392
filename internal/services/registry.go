package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/db/repos"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/scraper"
	"github.com/jobradar/jobradar/internal/types"
)

// Registry is the admin surface over job boards, companies and their scrape
// pairs.
type Registry struct {
	boards    *repos.JobBoardRepository
	companies *repos.CompanyRepository
	pairs     *repos.PairRepository
	jobs      *repos.JobRepository
}

// NewRegistryService creates a new registry service
func NewRegistryService(
	boards *repos.JobBoardRepository,
	companies *repos.CompanyRepository,
	pairs *repos.PairRepository,
	jobs *repos.JobRepository,
) *Registry {
	return &Registry{boards: boards, companies: companies, pairs: pairs, jobs: jobs}
}

// --- Job boards ---

// ListBoards returns all configured job boards
func (s *Registry) ListBoards(ctx context.Context) ([]models.JobBoard, error) {
	return s.boards.List(ctx)
}

// GetBoard returns one job board by slug
func (s *Registry) GetBoard(ctx context.Context, slug string) (*models.JobBoard, error) {
	return s.boards.GetBySlug(ctx, slug)
}

// CreateBoard creates a job board
func (s *Registry) CreateBoard(ctx context.Context, board *models.JobBoard) error {
	if board.Slug == "" {
		return fmt.Errorf("job board slug is required")
	}
	if board.Adapter == "" {
		board.Adapter = board.Slug
	}
	return s.boards.Create(ctx, board)
}

// UpdateBoard updates a job board
func (s *Registry) UpdateBoard(ctx context.Context, id uint, board *models.JobBoard) error {
	return s.boards.Update(ctx, id, board)
}

// DeleteBoard removes a job board and its pair links
func (s *Registry) DeleteBoard(ctx context.Context, id uint) error {
	return s.boards.Delete(ctx, id)
}

// SeedDefaultBoards ensures the built-in platforms exist, keyed by adapter
// slug. Existing rows are left untouched so admin edits survive restarts.
func (s *Registry) SeedDefaultBoards(ctx context.Context) error {
	defaults := []models.JobBoard{
		{Slug: scraper.PlatformLever, Name: "Lever", BaseURL: "https://api.lever.co/v0/postings", Adapter: scraper.PlatformLever, Enabled: true, Priority: 1},
		{Slug: scraper.PlatformGreenhouse, Name: "Greenhouse", BaseURL: "https://boards-api.greenhouse.io/v1/boards", Adapter: scraper.PlatformGreenhouse, Enabled: true, Priority: 2},
		{Slug: scraper.PlatformWorkable, Name: "Workable", BaseURL: "https://apply.workable.com/api/v1/widget/accounts", Adapter: scraper.PlatformWorkable, Enabled: true, Priority: 3},
		{Slug: scraper.PlatformAshby, Name: "Ashby", BaseURL: "https://api.ashbyhq.com/posting-api/job-board", Adapter: scraper.PlatformAshby, Enabled: true, Priority: 4},
		{Slug: scraper.PlatformRemotive, Name: "Remotive", BaseURL: "https://remotive.com/api/remote-jobs", Adapter: scraper.PlatformRemotive, Enabled: true, Priority: 5},
		{Slug: scraper.PlatformWeWorkRemotely, Name: "We Work Remotely", BaseURL: "https://weworkremotely.com", Adapter: scraper.PlatformWeWorkRemotely, Enabled: true, Priority: 6},
		{Slug: scraper.PlatformRemoteYeah, Name: "RemoteYeah", Adapter: scraper.PlatformRemoteYeah, Enabled: true, Priority: 7},
	}
	for i := range defaults {
		board := defaults[i]
		if err := s.boards.FirstOrCreate(ctx, &board); err != nil {
			return fmt.Errorf("failed to seed job board %s: %w", board.Slug, err)
		}
	}
	logger.Infof("seeded %d default job boards", len(defaults))
	return nil
}

// --- Companies ---

// ListCompanies returns companies ordered by featured rank then name
func (s *Registry) ListCompanies(ctx context.Context, opts *models.ListOptions) ([]models.Company, error) {
	return s.companies.List(ctx, opts)
}

// GetCompany returns one company by ID
func (s *Registry) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// CreateCompany creates a company
func (s *Registry) CreateCompany(ctx context.Context, company *models.Company) error {
	if company.Slug == "" {
		return fmt.Errorf("company slug is required")
	}
	if company.Name == "" {
		return fmt.Errorf("company name is required")
	}
	return s.companies.Create(ctx, company)
}

// UpdateCompany updates a company
func (s *Registry) UpdateCompany(ctx context.Context, id uint, company *models.Company) error {
	return s.companies.Update(ctx, id, company)
}

// DeleteCompany removes a company, keeping its historical jobs orphaned
func (s *Registry) DeleteCompany(ctx context.Context, id uint) error {
	return s.companies.Delete(ctx, id)
}

// --- Pairs ---

// ListPairs returns all configured pairs
func (s *Registry) ListPairs(ctx context.Context, opts *models.ListOptions) ([]models.JobBoardCompany, error) {
	return s.pairs.List(ctx, opts)
}

// CreatePair creates one scrape pair; duplicates fail with repos.ErrPairExists
func (s *Registry) CreatePair(ctx context.Context, pair *models.JobBoardCompany) error {
	return s.pairs.Create(ctx, pair)
}

// CreatePairs bulk-creates pairs with per-item results
func (s *Registry) CreatePairs(ctx context.Context, pairs []*models.JobBoardCompany) []repos.PairBatchResult {
	return s.pairs.CreateBatch(ctx, pairs)
}

// UpdatePair updates a pair's configuration
func (s *Registry) UpdatePair(ctx context.Context, id uint, pair *models.JobBoardCompany) error {
	return s.pairs.Update(ctx, id, pair)
}

// DeletePair removes a pair
func (s *Registry) DeletePair(ctx context.Context, id uint) error {
	return s.pairs.Delete(ctx, id)
}

// TogglePair flips a pair's enabled flag and returns the new value
func (s *Registry) TogglePair(ctx context.Context, id uint) (bool, error) {
	return s.pairs.Toggle(ctx, id)
}

// UpdateScrapingStatus is the admin override for a pair's scrape status
func (s *Registry) UpdateScrapingStatus(ctx context.Context, id uint, status models.ScrapingStatus, errorMessage string) error {
	return s.pairs.UpdateScrapeStatus(ctx, id, status, errorMessage, time.Now().UTC())
}

// --- Statistics ---

// Stats aggregates per-board pair health and job counts for the admin surface
func (s *Registry) Stats(ctx context.Context) (*types.ScrapeStats, error) {
	stats := &types.ScrapeStats{}

	var err error
	if stats.TotalJobs, err = s.jobs.Count(ctx, &models.JobFilter{}); err != nil {
		return nil, err
	}
	if stats.ActiveJobs, err = s.jobs.Count(ctx, &models.JobFilter{ActiveOnly: true}); err != nil {
		return nil, err
	}
	if stats.TotalCompanies, err = s.companies.Count(ctx); err != nil {
		return nil, err
	}

	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, board := range boards {
		total, enabled, failing, err := s.pairs.CountByBoard(ctx, board.ID)
		if err != nil {
			return nil, err
		}
		activeJobs, err := s.jobs.CountActiveByPlatform(ctx, board.Slug)
		if err != nil {
			return nil, err
		}
		stats.Boards = append(stats.Boards, types.BoardStats{
			Slug:         board.Slug,
			Name:         board.Name,
			Enabled:      board.Enabled,
			TotalPairs:   int(total),
			EnabledPairs: int(enabled),
			FailingPairs: int(failing),
			ActiveJobs:   activeJobs,
		})
	}
	return stats, nil
}
