package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/db/repos"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/types"
)

// Schedule owns the single recurring-run registration. The cron expression
// is process-wide mutable state: it is loaded once at startup, and every
// update swaps the registered entry atomically so there is never a window
// with zero schedules and never two competing timers.
type Schedule struct {
	repo     *repos.CronConfigRepository
	runFunc  func()
	fallback string

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	expr    string
}

// NewScheduleService creates the schedule controller. runFunc is the
// aggregator's run-all entry point; fallback is used when no persisted
// expression exists yet.
func NewScheduleService(repo *repos.CronConfigRepository, fallback string, runFunc func()) *Schedule {
	return &Schedule{
		repo:     repo,
		runFunc:  runFunc,
		fallback: fallback,
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
	}
}

// Start loads the persisted expression (or the fallback), registers the
// recurring run and starts the scheduler.
func (s *Schedule) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expr := s.fallback
	cfg, err := s.repo.Get(ctx, models.CronConfigKeyScrapeSchedule)
	if err != nil {
		return fmt.Errorf("failed to load schedule: %w", err)
	}
	if cfg != nil {
		expr = cfg.Value
	}

	entryID, err := s.cron.AddFunc(expr, s.runFunc)
	if err != nil {
		return fmt.Errorf("failed to register schedule %q: %w", expr, err)
	}
	s.entryID = entryID
	s.expr = expr
	s.cron.Start()

	logger.Infof("scrape schedule registered: %s (%s)", expr, DescribeCronExpression(expr))
	return nil
}

// Stop shuts the scheduler down and waits for a running fire to finish
func (s *Schedule) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron.Stop()
}

// GetConfig returns the active expression with its description and next fire time
func (s *Schedule) GetConfig() types.CronConfigResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := types.CronConfigResponse{
		Expression:  s.expr,
		Description: DescribeCronExpression(s.expr),
	}
	entry := s.cron.Entry(s.entryID)
	if !entry.Next.IsZero() {
		next := entry.Next
		resp.NextRun = &next
	}
	return resp
}

// UpdateExpression validates and hot-swaps the recurring schedule. An invalid
// expression leaves the prior schedule registered and untouched.
func (s *Schedule) UpdateExpression(ctx context.Context, expr string) (*types.CronConfigResponse, error) {
	if _, err := cron.ParseStandard(expr); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Register the new entry before removing the old one so no window exists
	// with nothing scheduled.
	entryID, err := s.cron.AddFunc(expr, s.runFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to register schedule %q: %w", expr, err)
	}
	s.cron.Remove(s.entryID)
	s.entryID = entryID
	s.expr = expr

	description := DescribeCronExpression(expr)
	if _, err := s.repo.Set(ctx, models.CronConfigKeyScrapeSchedule, expr, description); err != nil {
		// The new schedule is live; persistence failure only affects restarts
		logger.Errorf("failed to persist schedule %q: %v", expr, err)
	}

	logger.Infof("scrape schedule updated: %s (%s)", expr, description)
	resp := types.CronConfigResponse{Expression: expr, Description: description}
	entry := s.cron.Entry(entryID)
	if !entry.Next.IsZero() {
		next := entry.Next
		resp.NextRun = &next
	}
	return &resp, nil
}

var suggestedSchedules = []types.SuggestedExpression{
	{Expression: "0 * * * *", Description: "Every hour"},
	{Expression: "0 */3 * * *", Description: "Every 3 hours"},
	{Expression: "0 */6 * * *", Description: "Every 6 hours"},
	{Expression: "0 */12 * * *", Description: "Every 12 hours"},
	{Expression: "0 0 * * *", Description: "Daily at midnight"},
	{Expression: "0 6 * * *", Description: "Daily at 06:00"},
	{Expression: "0 0 * * 1", Description: "Weekly on Monday"},
}

// SuggestedExpressions returns the advisory list of common schedules
func (s *Schedule) SuggestedExpressions() []types.SuggestedExpression {
	return append([]types.SuggestedExpression(nil), suggestedSchedules...)
}

// DescribeCronExpression renders a human-readable description for the known
// common schedules, falling back to the raw expression.
func DescribeCronExpression(expr string) string {
	for _, s := range suggestedSchedules {
		if s.Expression == expr {
			return s.Description
		}
	}
	return fmt.Sprintf("Custom schedule (%s)", expr)
}
