package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jobradar/jobradar/internal/cache"
	"github.com/jobradar/jobradar/internal/db"
	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/db/repos"
	"github.com/jobradar/jobradar/internal/scraper"
	"github.com/jobradar/jobradar/internal/services"
	"github.com/jobradar/jobradar/internal/types"
)

// HandlersTestSuite drives the HTTP surface end to end against an in-memory
// database.
type HandlersTestSuite struct {
	suite.Suite
	app *fiber.App
	ctx context.Context

	jobs     *repos.JobRepository
	boards   *repos.JobBoardRepository
	pairs    *repos.PairRepository
	schedule *services.Schedule
}

func (s *HandlersTestSuite) SetupTest() {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate(gdb))

	s.ctx = context.Background()
	s.jobs = repos.NewJobRepository(gdb)
	s.boards = repos.NewJobBoardRepository(gdb)
	s.pairs = repos.NewPairRepository(gdb)
	companies := repos.NewCompanyRepository(gdb)
	cronRepo := repos.NewCronConfigRepository(gdb)
	store := cache.NewMemoryStore()

	aggregator := services.NewAggregator(s.jobs, companies, s.boards, s.pairs,
		scraper.NewRegistry(), store, services.AggregatorOptions{})
	jobsService := services.NewJobsService(s.jobs, store)
	registryService := services.NewRegistryService(s.boards, companies, s.pairs, s.jobs)
	s.schedule = services.NewScheduleService(cronRepo, "0 */6 * * *", func() {})
	s.Require().NoError(s.schedule.Start(s.ctx))

	s.app = fiber.New()
	registerTestRoutes(s.app,
		NewJobHandler(jobsService),
		NewScrapeHandler(aggregator, registryService),
		NewRegistryHandler(registryService),
		NewScheduleHandler(s.schedule),
	)
}

func (s *HandlersTestSuite) TearDownTest() {
	<-s.schedule.Stop().Done()
}

// registerTestRoutes mirrors the production route table without importing the
// routes package (which imports this one's siblings).
func registerTestRoutes(app *fiber.App, jobs *JobHandler, scrape *ScrapeHandler, registry *RegistryHandler, schedule *ScheduleHandler) {
	v1 := app.Group("/api/v1")
	v1.Get("/jobs", jobs.ListJobs)
	v1.Get("/jobs/:platform/:externalId", jobs.GetJob)
	v1.Post("/scrape/run", scrape.RunAll)
	v1.Get("/scrape/stats", scrape.Stats)
	v1.Get("/boards", registry.ListBoards)
	v1.Post("/boards", registry.CreateBoard)
	v1.Post("/pairs", registry.CreatePair)
	v1.Post("/pairs/bulk", registry.CreatePairs)
	v1.Patch("/pairs/:id/toggle", registry.TogglePair)
	v1.Get("/schedule", schedule.GetSchedule)
	v1.Put("/schedule", schedule.UpdateSchedule)
	v1.Get("/schedule/suggestions", schedule.Suggestions)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) request(method, path string, body interface{}) (*http.Response, types.SlugResponse) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var envelope types.SlugResponse
	s.Require().NoError(json.Unmarshal(raw, &envelope))
	return resp, envelope
}

func (s *HandlersTestSuite) seedJob(externalID, platform string) {
	hash := "hash-" + platform + "-" + externalID
	_, err := s.jobs.UpsertScraped(s.ctx, &models.Job{
		ExternalID:  externalID,
		Platform:    platform,
		Hash:        &hash,
		Title:       "Engineer " + externalID,
		Description: "desc",
		ExternalURL: "https://example.com/" + externalID,
		CompanySlug: "acme",
		ScrapedAt:   time.Now().UTC(),
	})
	s.Require().NoError(err)
}

func (s *HandlersTestSuite) TestListJobs() {
	s.seedJob("1", "lever")
	s.seedJob("2", "greenhouse")

	resp, envelope := s.request(http.MethodGet, "/api/v1/jobs?platform=lever", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(types.SuccessSlug, envelope.Slug)

	data := envelope.Data.(map[string]interface{})
	s.EqualValues(1, data["total"])
}

func (s *HandlersTestSuite) TestListJobsRejectsUnknownSeniority() {
	resp, envelope := s.request(http.MethodGet, "/api/v1/jobs?seniority=wizard", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal(types.InvalidInputSlug, envelope.Slug)
}

func (s *HandlersTestSuite) TestGetJobByNaturalKey() {
	s.seedJob("1", "lever")

	resp, envelope := s.request(http.MethodGet, "/api/v1/jobs/lever/1", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(types.SuccessSlug, envelope.Slug)

	resp, _ = s.request(http.MethodGet, "/api/v1/jobs/lever/missing", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlersTestSuite) TestCreateBoardConflict() {
	board := map[string]interface{}{"slug": "lever", "name": "Lever", "adapter": "lever"}

	resp, _ := s.request(http.MethodPost, "/api/v1/boards", board)
	s.Equal(http.StatusCreated, resp.StatusCode)

	resp, envelope := s.request(http.MethodPost, "/api/v1/boards", board)
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Equal(types.ConflictSlug, envelope.Slug)
}

func (s *HandlersTestSuite) TestBulkCreatePairsReportsPerItem() {
	board := &models.JobBoard{Slug: "lever", Name: "Lever", Adapter: "lever", Enabled: true}
	s.Require().NoError(s.boards.Create(s.ctx, board))
	s.Require().NoError(s.pairs.Create(s.ctx, &models.JobBoardCompany{
		JobBoardID: board.ID, CompanyID: 999, ScraperURL: "x", Enabled: true,
	}))

	payload := map[string]interface{}{
		"pairs": []map[string]interface{}{
			{"job_board_id": board.ID, "company_id": 999, "scraper_url": "dup"},
			{"job_board_id": board.ID, "company_id": 1000, "scraper_url": "ok"},
		},
	}
	resp, envelope := s.request(http.MethodPost, "/api/v1/pairs/bulk", payload)
	s.Equal(http.StatusMultiStatus, resp.StatusCode)
	s.Equal(types.SuccessSlug, envelope.Slug)

	results := envelope.Data.([]interface{})
	s.Require().Len(results, 2)
	first := results[0].(map[string]interface{})
	s.NotEmpty(first["error"], "duplicate pair reports its error")
	second := results[1].(map[string]interface{})
	s.Nil(second["error"])
}

func (s *HandlersTestSuite) TestScheduleRoundTrip() {
	resp, envelope := s.request(http.MethodGet, "/api/v1/schedule", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	data := envelope.Data.(map[string]interface{})
	s.Equal("0 */6 * * *", data["expression"])

	resp, envelope = s.request(http.MethodPut, "/api/v1/schedule", map[string]string{"expression": "0 0 * * *"})
	s.Equal(http.StatusOK, resp.StatusCode)
	data = envelope.Data.(map[string]interface{})
	s.Equal("0 0 * * *", data["expression"])

	resp, envelope = s.request(http.MethodPut, "/api/v1/schedule", map[string]string{"expression": "garbage"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal(types.InvalidInputSlug, envelope.Slug)

	// The rejected expression must not replace the accepted one
	_, envelope = s.request(http.MethodGet, "/api/v1/schedule", nil)
	data = envelope.Data.(map[string]interface{})
	s.Equal("0 0 * * *", data["expression"])
}

func (s *HandlersTestSuite) TestScheduleSuggestions() {
	resp, envelope := s.request(http.MethodGet, "/api/v1/schedule/suggestions", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	suggestions := envelope.Data.([]interface{})
	s.NotEmpty(suggestions)
}

func (s *HandlersTestSuite) TestScrapeStats() {
	s.seedJob("1", "lever")

	resp, envelope := s.request(http.MethodGet, "/api/v1/scrape/stats", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	data := envelope.Data.(map[string]interface{})
	s.EqualValues(1, data["total_jobs"])
	s.EqualValues(1, data["active_jobs"])
}

func (s *HandlersTestSuite) TestRunAllWithNoPairsReturnsEmptySummary() {
	resp, envelope := s.request(http.MethodPost, "/api/v1/scrape/run", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	data := envelope.Data.(map[string]interface{})
	s.EqualValues(0, data["new_jobs"])
}
