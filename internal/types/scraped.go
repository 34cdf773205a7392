package types

import (
	"fmt"
	"time"

	"github.com/jobradar/jobradar/internal/db/models"
)

// ScrapedJob is the normalized output every source adapter must produce.
// It carries the same fields as models.Job minus persistence-only ones
// (no ID, Hash or FirstSeenAt).
type ScrapedJob struct {
	ExternalID   string
	Platform     string
	CompanySlug  string
	Title        string
	Description  string
	Location     string
	Remote       bool
	Countries    []string
	Tags         []string
	Seniority    models.Seniority
	Employment   models.EmploymentType
	Requirements []string
	Benefits     []string
	Salary       string
	ExternalURL  string
	PublishedAt  time.Time
	ExpiresAt    *time.Time
}

// Validate enforces the adapter output guarantee: identity and descriptive
// fields must be populated. PublishedAt is defaulted rather than rejected.
func (j *ScrapedJob) Validate() error {
	switch {
	case j.ExternalID == "":
		return fmt.Errorf("scraped job missing external id")
	case j.Platform == "":
		return fmt.Errorf("scraped job %s missing platform", j.ExternalID)
	case j.CompanySlug == "":
		return fmt.Errorf("scraped job %s/%s missing company slug", j.Platform, j.ExternalID)
	case j.Title == "":
		return fmt.Errorf("scraped job %s/%s missing title", j.Platform, j.ExternalID)
	case j.Description == "":
		return fmt.Errorf("scraped job %s/%s missing description", j.Platform, j.ExternalID)
	case j.ExternalURL == "":
		return fmt.Errorf("scraped job %s/%s missing external url", j.Platform, j.ExternalID)
	}
	if j.PublishedAt.IsZero() {
		j.PublishedAt = time.Now().UTC()
	}
	return nil
}

// PairError reports a single pair's failure within a run
type PairError struct {
	PairID      uint   `json:"pair_id"`
	Platform    string `json:"platform"`
	CompanySlug string `json:"company_slug"`
	Message     string `json:"message"`
}

// PairResult reports one pair's contribution to a run
type PairResult struct {
	PairID      uint   `json:"pair_id"`
	Platform    string `json:"platform"`
	CompanySlug string `json:"company_slug"`
	NewJobs     int    `json:"new_jobs"`
	UpdatedJobs int    `json:"updated_jobs"`
	Error       string `json:"error,omitempty"`
}

// RunSummary is the aggregate result of one aggregator run
type RunSummary struct {
	StartedAt   time.Time             `json:"started_at"`
	FinishedAt  time.Time             `json:"finished_at"`
	NewJobs     int                   `json:"new_jobs"`
	UpdatedJobs int                   `json:"updated_jobs"`
	ExpiredJobs int                   `json:"expired_jobs"`
	Pairs       []PairResult          `json:"pairs"`
	Errors      []PairError           `json:"errors"`
	PerPlatform map[string]*RunCounts `json:"per_platform"`
}

// RunCounts holds per-platform counters within a RunSummary
type RunCounts struct {
	NewJobs     int `json:"new_jobs"`
	UpdatedJobs int `json:"updated_jobs"`
	ExpiredJobs int `json:"expired_jobs"`
	FailedPairs int `json:"failed_pairs"`
}

// ScrapeStats is the payload of the admin statistics endpoint
type ScrapeStats struct {
	TotalJobs      int64        `json:"total_jobs"`
	ActiveJobs     int64        `json:"active_jobs"`
	TotalCompanies int64        `json:"total_companies"`
	Boards         []BoardStats `json:"boards"`
}

// BoardStats summarizes pair health for one job board
type BoardStats struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Enabled      bool   `json:"enabled"`
	TotalPairs   int    `json:"total_pairs"`
	EnabledPairs int    `json:"enabled_pairs"`
	FailingPairs int    `json:"failing_pairs"`
	ActiveJobs   int64  `json:"active_jobs"`
}

// CronConfigResponse is the schedule interface's read payload
type CronConfigResponse struct {
	Expression  string     `json:"expression"`
	Description string     `json:"description"`
	NextRun     *time.Time `json:"next_run,omitempty"`
}

// SuggestedExpression is one advisory schedule option
type SuggestedExpression struct {
	Expression  string `json:"expression"`
	Description string `json:"description"`
}
