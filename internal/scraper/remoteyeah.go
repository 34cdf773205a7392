package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/types"
)

// RemoteYeah pulls postings from a RemoteYeah JSON company feed. The feed URL
// comes from the pair configuration since RemoteYeah has no stable public
// base endpoint per company.
type RemoteYeah struct {
	client *Client
}

// NewRemoteYeah creates the RemoteYeah adapter
func NewRemoteYeah(client *Client) *RemoteYeah {
	return &RemoteYeah{client: client}
}

// Platform implements Scraper
func (r *RemoteYeah) Platform() string { return PlatformRemoteYeah }

type remoteYeahResponse struct {
	Jobs []remoteYeahJob `json:"jobs"`
}

type remoteYeahJob struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Location    string   `json:"location"`
	Countries   []string `json:"countries"`
	Tags        []string `json:"tags"`
	Seniority   string   `json:"seniority"`
	JobType     string   `json:"job_type"`
	Salary      string   `json:"salary"`
	PostedAt    string   `json:"posted_at"`
}

// FetchJobs implements Scraper
func (r *RemoteYeah) FetchJobs(ctx context.Context, target Target) ([]types.ScrapedJob, error) {
	if target.URL == "" {
		return nil, fmt.Errorf("remoteyeah: pair for company %s has no feed url", target.CompanySlug)
	}

	var resp remoteYeahResponse
	if err := r.client.GetJSON(ctx, target.URL, &resp); err != nil {
		return nil, fmt.Errorf("remoteyeah: %w", err)
	}

	jobs := make([]types.ScrapedJob, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		published := time.Time{}
		if j.PostedAt != "" {
			if t, err := time.Parse(time.RFC3339, j.PostedAt); err == nil {
				published = t.UTC()
			}
		}

		seniority, err := models.ParseSeniority(j.Seniority)
		if err != nil || seniority == models.SeniorityUnset {
			seniority = inferSeniority(j.Title)
		}

		job := types.ScrapedJob{
			ExternalID:  j.ID,
			Platform:    PlatformRemoteYeah,
			CompanySlug: target.CompanySlug,
			Title:       j.Title,
			Description: j.Description,
			Location:    j.Location,
			Remote:      true, // RemoteYeah lists remote positions only
			Countries:   j.Countries,
			Tags:        j.Tags,
			Seniority:   seniority,
			Employment:  parseEmploymentType(j.JobType),
			Salary:      j.Salary,
			ExternalURL: j.URL,
			PublishedAt: published,
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
