package repos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jobradar/jobradar/internal/db"
	"github.com/jobradar/jobradar/internal/db/models"
)

// ReposTestSuite exercises the repositories against an in-memory database
type ReposTestSuite struct {
	suite.Suite
	ctx context.Context

	jobs      *JobRepository
	companies *CompanyRepository
	boards    *JobBoardRepository
	pairs     *PairRepository
	cron      *CronConfigRepository
}

func (s *ReposTestSuite) SetupTest() {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err, "failed to open test database")
	s.Require().NoError(db.Migrate(gdb), "failed to run migrations")

	s.ctx = context.Background()
	s.jobs = NewJobRepository(gdb)
	s.companies = NewCompanyRepository(gdb)
	s.boards = NewJobBoardRepository(gdb)
	s.pairs = NewPairRepository(gdb)
	s.cron = NewCronConfigRepository(gdb)
}

func TestReposTestSuite(t *testing.T) {
	suite.Run(t, new(ReposTestSuite))
}

func (s *ReposTestSuite) createBoard(slug string) *models.JobBoard {
	board := &models.JobBoard{Slug: slug, Name: slug, Adapter: slug, Enabled: true}
	s.Require().NoError(s.boards.Create(s.ctx, board))
	return board
}

func (s *ReposTestSuite) createCompany(slug string) *models.Company {
	company := &models.Company{Slug: slug, Name: slug}
	s.Require().NoError(s.companies.Create(s.ctx, company))
	return company
}

func (s *ReposTestSuite) createPair(board *models.JobBoard, company *models.Company) *models.JobBoardCompany {
	pair := &models.JobBoardCompany{
		JobBoardID: board.ID,
		CompanyID:  company.ID,
		ScraperURL: "https://example.com/" + company.Slug,
		Enabled:    true,
	}
	s.Require().NoError(s.pairs.Create(s.ctx, pair))
	return pair
}

func (s *ReposTestSuite) newJob(externalID, platform, companySlug string, at time.Time) *models.Job {
	hash := fmt.Sprintf("hash-%s-%s", platform, externalID)
	return &models.Job{
		ExternalID:  externalID,
		Platform:    platform,
		Hash:        &hash,
		Title:       "Backend Engineer",
		Description: "Build services",
		ExternalURL: "https://example.com/jobs/" + externalID,
		CompanySlug: companySlug,
		PublishedAt: at,
		ScrapedAt:   at,
	}
}

// --- Jobs ---

func (s *ReposTestSuite) TestUpsertScrapedCreatesThenUpdates() {
	now := time.Now().UTC().Truncate(time.Second)

	job := s.newJob("j1", "lever", "acme", now)
	created, err := s.jobs.UpsertScraped(s.ctx, job)
	s.Require().NoError(err)
	s.True(created)
	s.True(job.IsActive)
	s.Equal(models.JobStatusActive, job.Status)
	s.WithinDuration(now, job.FirstSeenAt, time.Second)
	s.WithinDuration(now, job.LastSeenAt, time.Second)

	// Same natural key again with a newer scrape time and a changed title
	later := now.Add(time.Hour)
	update := s.newJob("j1", "lever", "acme", later)
	update.Title = "Senior Backend Engineer"
	hash := "hash-lever-j1-v2"
	update.Hash = &hash

	created, err = s.jobs.UpsertScraped(s.ctx, update)
	s.Require().NoError(err)
	s.False(created)
	s.Equal("Senior Backend Engineer", update.Title)
	s.WithinDuration(now, update.FirstSeenAt, time.Second, "first seen must never move")
	s.WithinDuration(later, update.LastSeenAt, time.Second)

	count, err := s.jobs.Count(s.ctx, &models.JobFilter{})
	s.Require().NoError(err)
	s.Equal(int64(1), count, "upsert must not duplicate the natural key")
}

func (s *ReposTestSuite) TestUpsertScrapedNeverMovesLastSeenBackwards() {
	now := time.Now().UTC().Truncate(time.Second)

	job := s.newJob("j1", "lever", "acme", now)
	_, err := s.jobs.UpsertScraped(s.ctx, job)
	s.Require().NoError(err)

	stale := s.newJob("j1", "lever", "acme", now.Add(-time.Hour))
	_, err = s.jobs.UpsertScraped(s.ctx, stale)
	s.Require().NoError(err)
	s.WithinDuration(now, stale.LastSeenAt, time.Second)
}

func (s *ReposTestSuite) TestSameExternalIDOnDifferentPlatforms() {
	now := time.Now().UTC()

	_, err := s.jobs.UpsertScraped(s.ctx, s.newJob("123", "lever", "acme", now))
	s.Require().NoError(err)
	_, err = s.jobs.UpsertScraped(s.ctx, s.newJob("123", "greenhouse", "acme", now))
	s.Require().NoError(err)

	count, err := s.jobs.Count(s.ctx, &models.JobFilter{})
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}

func (s *ReposTestSuite) TestExpireMissingScopesToPlatformAndCompany() {
	now := time.Now().UTC()

	_, err := s.jobs.UpsertScraped(s.ctx, s.newJob("keep", "lever", "acme", now))
	s.Require().NoError(err)
	_, err = s.jobs.UpsertScraped(s.ctx, s.newJob("gone", "lever", "acme", now))
	s.Require().NoError(err)
	// Different company on the same platform: must not be touched
	_, err = s.jobs.UpsertScraped(s.ctx, s.newJob("other", "lever", "globex", now))
	s.Require().NoError(err)
	// Same company on a different platform: must not be touched
	_, err = s.jobs.UpsertScraped(s.ctx, s.newJob("gone", "greenhouse", "acme", now))
	s.Require().NoError(err)

	expired, err := s.jobs.ExpireMissing(s.ctx, "lever", []string{"acme"}, []string{"keep"})
	s.Require().NoError(err)
	s.Equal(int64(1), expired)

	job, err := s.jobs.GetByNaturalKey(s.ctx, "gone", "lever")
	s.Require().NoError(err)
	s.False(job.IsActive)
	s.Equal(models.JobStatusExpired, job.Status)

	for _, key := range [][2]string{{"keep", "lever"}, {"other", "lever"}, {"gone", "greenhouse"}} {
		job, err := s.jobs.GetByNaturalKey(s.ctx, key[0], key[1])
		s.Require().NoError(err)
		s.True(job.IsActive, "job %s/%s must stay active", key[1], key[0])
	}
}

func (s *ReposTestSuite) TestExpireMissingWithNoCompaniesIsANoop() {
	now := time.Now().UTC()
	_, err := s.jobs.UpsertScraped(s.ctx, s.newJob("j1", "lever", "acme", now))
	s.Require().NoError(err)

	expired, err := s.jobs.ExpireMissing(s.ctx, "lever", nil, nil)
	s.Require().NoError(err)
	s.Zero(expired)
}

func (s *ReposTestSuite) TestListFilters() {
	now := time.Now().UTC()

	remote := s.newJob("r1", "lever", "acme", now)
	remote.Remote = true
	remote.Seniority = models.SenioritySenior
	_, err := s.jobs.UpsertScraped(s.ctx, remote)
	s.Require().NoError(err)

	onsite := s.newJob("o1", "greenhouse", "acme", now)
	onsite.Seniority = models.SeniorityJunior
	_, err = s.jobs.UpsertScraped(s.ctx, onsite)
	s.Require().NoError(err)

	isRemote := true
	jobs, err := s.jobs.List(s.ctx, &models.JobFilter{Remote: &isRemote, ActiveOnly: true}, nil)
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	s.Equal("r1", jobs[0].ExternalID)

	senior := models.SenioritySenior
	jobs, err = s.jobs.List(s.ctx, &models.JobFilter{Seniority: &senior}, nil)
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	s.Equal("r1", jobs[0].ExternalID)

	jobs, err = s.jobs.List(s.ctx, &models.JobFilter{Platform: "greenhouse"}, nil)
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	s.Equal("o1", jobs[0].ExternalID)
}

func (s *ReposTestSuite) TestSetStatusKeepsIsActiveConsistent() {
	now := time.Now().UTC()
	job := s.newJob("j1", "lever", "acme", now)
	_, err := s.jobs.UpsertScraped(s.ctx, job)
	s.Require().NoError(err)

	s.Require().NoError(s.jobs.SetStatus(s.ctx, job.ID, models.JobStatusFilled))

	got, err := s.jobs.GetByNaturalKey(s.ctx, "j1", "lever")
	s.Require().NoError(err)
	s.Equal(models.JobStatusFilled, got.Status)
	s.False(got.IsActive)
}

// --- Pairs ---

func (s *ReposTestSuite) TestCreatePairRejectsDuplicates() {
	board := s.createBoard("lever")
	company := s.createCompany("acme")
	s.createPair(board, company)

	err := s.pairs.Create(s.ctx, &models.JobBoardCompany{
		JobBoardID: board.ID,
		CompanyID:  company.ID,
		ScraperURL: "https://example.com/acme-again",
	})
	s.Require().ErrorIs(err, ErrPairExists)
}

func (s *ReposTestSuite) TestCreateBatchReportsPerItemResults() {
	board := s.createBoard("lever")
	acme := s.createCompany("acme")
	globex := s.createCompany("globex")
	s.createPair(board, acme)

	results := s.pairs.CreateBatch(s.ctx, []*models.JobBoardCompany{
		{JobBoardID: board.ID, CompanyID: acme.ID, ScraperURL: "https://example.com/dup"},
		{JobBoardID: board.ID, CompanyID: globex.ID, ScraperURL: "https://example.com/globex"},
	})
	s.Require().Len(results, 2)
	s.NotEmpty(results[0].Error, "duplicate pair must fail")
	s.Empty(results[1].Error, "valid pair must be committed despite the failure")
	s.NotNil(results[1].Pair)

	pairs, err := s.pairs.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(pairs, 2)
}

func (s *ReposTestSuite) TestToggleFlipsEnabled() {
	pair := s.createPair(s.createBoard("lever"), s.createCompany("acme"))

	enabled, err := s.pairs.Toggle(s.ctx, pair.ID)
	s.Require().NoError(err)
	s.False(enabled)

	enabled, err = s.pairs.Toggle(s.ctx, pair.ID)
	s.Require().NoError(err)
	s.True(enabled)
}

func (s *ReposTestSuite) TestUpdateScrapeStatusSuccessClearsError() {
	pair := s.createPair(s.createBoard("lever"), s.createCompany("acme"))
	now := time.Now().UTC().Truncate(time.Second)

	s.Require().NoError(s.pairs.UpdateScrapeStatus(s.ctx, pair.ID, models.ScrapingStatusError, "boom", now))
	got, err := s.pairs.GetByID(s.ctx, pair.ID)
	s.Require().NoError(err)
	s.Equal(models.ScrapingStatusError, got.ScrapingStatus)
	s.Equal("boom", got.ErrorMessage)

	s.Require().NoError(s.pairs.UpdateScrapeStatus(s.ctx, pair.ID, models.ScrapingStatusSuccess, "", now))
	got, err = s.pairs.GetByID(s.ctx, pair.ID)
	s.Require().NoError(err)
	s.Equal(models.ScrapingStatusSuccess, got.ScrapingStatus)
	s.Empty(got.ErrorMessage)
	s.Require().NotNil(got.LastScrapedAt)
}

func (s *ReposTestSuite) TestListEnabledFiltersAndPreloads() {
	lever := s.createBoard("lever")
	greenhouse := s.createBoard("greenhouse")
	acme := s.createCompany("acme")

	s.createPair(lever, acme)
	disabled := &models.JobBoardCompany{JobBoardID: greenhouse.ID, CompanyID: acme.ID, ScraperURL: "x", Enabled: false}
	s.Require().NoError(s.pairs.Create(s.ctx, disabled))

	pairs, err := s.pairs.ListEnabled(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(pairs, 1)
	s.Equal("lever", pairs[0].JobBoard.Slug)
	s.Equal("acme", pairs[0].Company.Slug)

	pairs, err = s.pairs.ListEnabled(s.ctx, &greenhouse.ID)
	s.Require().NoError(err)
	s.Empty(pairs)
}

// --- Companies ---

func (s *ReposTestSuite) TestDeleteCompanyOrphansJobsAndDropsPairs() {
	board := s.createBoard("lever")
	company := s.createCompany("acme")
	s.createPair(board, company)

	now := time.Now().UTC()
	job := s.newJob("j1", "lever", "acme", now)
	job.CompanyID = &company.ID
	_, err := s.jobs.UpsertScraped(s.ctx, job)
	s.Require().NoError(err)

	s.Require().NoError(s.companies.Delete(s.ctx, company.ID))

	_, err = s.companies.GetByID(s.ctx, company.ID)
	s.Error(err)

	pairs, err := s.pairs.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(pairs)

	got, err := s.jobs.GetByNaturalKey(s.ctx, "j1", "lever")
	s.Require().NoError(err)
	s.Nil(got.CompanyID)
	s.Equal("acme", got.CompanySlug, "historical slug stays on the posting")
}

func (s *ReposTestSuite) TestCompanySlugIsUnique() {
	s.createCompany("acme")
	err := s.companies.Create(s.ctx, &models.Company{Slug: "acme", Name: "Acme Again"})
	s.Require().Error(err)
	s.True(db.IsDuplicateKeyError(err))
}

// --- Job boards ---

func (s *ReposTestSuite) TestFirstOrCreateIsIdempotent() {
	board := &models.JobBoard{Slug: "lever", Name: "Lever", Adapter: "lever", Enabled: true}
	s.Require().NoError(s.boards.FirstOrCreate(s.ctx, board))

	// A second seed run must keep the existing row, edits included
	s.Require().NoError(s.boards.Update(s.ctx, board.ID, &models.JobBoard{Name: "Lever (renamed)"}))
	again := &models.JobBoard{Slug: "lever", Name: "Lever", Adapter: "lever", Enabled: true}
	s.Require().NoError(s.boards.FirstOrCreate(s.ctx, again))

	boards, err := s.boards.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(boards, 1)
	s.Equal("Lever (renamed)", boards[0].Name)
}

// --- Cron config ---

func (s *ReposTestSuite) TestCronConfigSetThenGet() {
	got, err := s.cron.Get(s.ctx, models.CronConfigKeyScrapeSchedule)
	s.Require().NoError(err)
	s.Nil(got, "missing key reads as nil, not an error")

	_, err = s.cron.Set(s.ctx, models.CronConfigKeyScrapeSchedule, "0 */6 * * *", "Every 6 hours")
	s.Require().NoError(err)

	got, err = s.cron.Get(s.ctx, models.CronConfigKeyScrapeSchedule)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("0 */6 * * *", got.Value)

	// Overwrite keeps a single row per key
	_, err = s.cron.Set(s.ctx, models.CronConfigKeyScrapeSchedule, "0 * * * *", "Every hour")
	s.Require().NoError(err)
	got, err = s.cron.Get(s.ctx, models.CronConfigKeyScrapeSchedule)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("0 * * * *", got.Value)
}
