package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jobradar/jobradar/internal/db"
	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/db/repos"
)

func newScheduleFixture(t *testing.T) (*Schedule, *repos.CronConfigRepository) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	repo := repos.NewCronConfigRepository(gdb)
	schedule := NewScheduleService(repo, "0 */6 * * *", func() {})
	return schedule, repo
}

func TestScheduleStartUsesFallback(t *testing.T) {
	schedule, _ := newScheduleFixture(t)
	require.NoError(t, schedule.Start(context.Background()))
	defer schedule.Stop()

	cfg := schedule.GetConfig()
	require.Equal(t, "0 */6 * * *", cfg.Expression)
	require.Equal(t, "Every 6 hours", cfg.Description)
	require.NotNil(t, cfg.NextRun)
}

func TestScheduleStartPrefersPersistedExpression(t *testing.T) {
	schedule, repo := newScheduleFixture(t)
	_, err := repo.Set(context.Background(), models.CronConfigKeyScrapeSchedule, "0 * * * *", "Every hour")
	require.NoError(t, err)

	require.NoError(t, schedule.Start(context.Background()))
	defer schedule.Stop()

	require.Equal(t, "0 * * * *", schedule.GetConfig().Expression)
}

func TestScheduleUpdateHotSwapsAndPersists(t *testing.T) {
	schedule, repo := newScheduleFixture(t)
	require.NoError(t, schedule.Start(context.Background()))
	defer schedule.Stop()

	cfg, err := schedule.UpdateExpression(context.Background(), "0 0 * * *")
	require.NoError(t, err)
	require.Equal(t, "0 0 * * *", cfg.Expression)
	require.Equal(t, "Daily at midnight", cfg.Description)
	require.NotNil(t, cfg.NextRun)

	require.Equal(t, "0 0 * * *", schedule.GetConfig().Expression)

	persisted, err := repo.Get(context.Background(), models.CronConfigKeyScrapeSchedule)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.Equal(t, "0 0 * * *", persisted.Value)
}

func TestScheduleRejectsInvalidExpressionAndKeepsPrior(t *testing.T) {
	schedule, repo := newScheduleFixture(t)
	require.NoError(t, schedule.Start(context.Background()))
	defer schedule.Stop()

	_, err := schedule.UpdateExpression(context.Background(), "not a cron line")
	require.Error(t, err)

	cfg := schedule.GetConfig()
	require.Equal(t, "0 */6 * * *", cfg.Expression, "the prior schedule stays registered")
	require.NotNil(t, cfg.NextRun, "the prior entry still fires")

	persisted, err := repo.Get(context.Background(), models.CronConfigKeyScrapeSchedule)
	require.NoError(t, err)
	require.Nil(t, persisted, "a rejected expression is never persisted")
}

func TestDescribeCronExpression(t *testing.T) {
	require.Equal(t, "Every hour", DescribeCronExpression("0 * * * *"))
	require.Equal(t, "Custom schedule (*/5 * * * *)", DescribeCronExpression("*/5 * * * *"))
}
