package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jobradar/jobradar/internal/cache"
	"github.com/jobradar/jobradar/internal/db"
	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/db/repos"
)

func newJobsFixture(t *testing.T) (*Jobs, *repos.JobRepository, *cache.MemoryStore) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	repo := repos.NewJobRepository(gdb)
	store := cache.NewMemoryStore()
	return NewJobsService(repo, store), repo, store
}

func seedJob(t *testing.T, repo *repos.JobRepository, externalID, platform string) {
	t.Helper()
	hash := "hash-" + platform + "-" + externalID
	_, err := repo.UpsertScraped(context.Background(), &models.Job{
		ExternalID:  externalID,
		Platform:    platform,
		Hash:        &hash,
		Title:       "Engineer " + externalID,
		Description: "desc",
		ExternalURL: "https://example.com/" + externalID,
		CompanySlug: "acme",
		ScrapedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestJobsListCachesUntilInvalidated(t *testing.T) {
	svc, repo, store := newJobsFixture(t)
	ctx := context.Background()
	seedJob(t, repo, "1", "lever")

	filter := &models.JobFilter{Platform: "lever", ActiveOnly: true}

	jobs, total, err := svc.List(ctx, filter, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.EqualValues(t, 1, total)

	// A direct write does not show up until the platform is invalidated
	seedJob(t, repo, "2", "lever")

	jobs, total, err = svc.List(ctx, filter, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 1, "cached listing is served as-is")
	require.EqualValues(t, 1, total)

	require.NoError(t, store.InvalidatePlatforms(ctx, []string{"lever"}))

	jobs, total, err = svc.List(ctx, filter, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.EqualValues(t, 2, total)
}

func TestJobsListDistinctFiltersGetDistinctEntries(t *testing.T) {
	svc, repo, _ := newJobsFixture(t)
	ctx := context.Background()
	seedJob(t, repo, "1", "lever")
	seedJob(t, repo, "2", "greenhouse")

	_, total, err := svc.List(ctx, &models.JobFilter{Platform: "lever", ActiveOnly: true}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	_, total, err = svc.List(ctx, &models.JobFilter{ActiveOnly: true}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, total, "the all-platform listing must not reuse the lever entry")
}

func TestJobsGetByNaturalKey(t *testing.T) {
	svc, repo, _ := newJobsFixture(t)
	seedJob(t, repo, "1", "lever")

	job, err := svc.Get(context.Background(), "1", "lever")
	require.NoError(t, err)
	require.Equal(t, "Engineer 1", job.Title)

	_, err = svc.Get(context.Background(), "missing", "lever")
	require.Error(t, err)
}
