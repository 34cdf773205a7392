package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jobradar/jobradar/internal/types"
)

const remotiveBaseURL = "https://remotive.com/api/remote-jobs"

// Remotive pulls postings from the Remotive public API. Remotive is a job
// board rather than an ATS, so the feed is filtered by company name.
type Remotive struct {
	client  *Client
	baseURL string
}

// NewRemotive creates the Remotive adapter
func NewRemotive(client *Client) *Remotive {
	return &Remotive{client: client, baseURL: remotiveBaseURL}
}

// Platform implements Scraper
func (r *Remotive) Platform() string { return PlatformRemotive }

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID             int64    `json:"id"`
	URL            string   `json:"url"`
	Title          string   `json:"title"`
	CompanyName    string   `json:"company_name"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	JobType        string   `json:"job_type"`
	PublicationDT  string   `json:"publication_date"`
	RequiredRegion string   `json:"candidate_required_location"`
	Salary         string   `json:"salary"`
	Description    string   `json:"description"`
}

// FetchJobs implements Scraper
func (r *Remotive) FetchJobs(ctx context.Context, target Target) ([]types.ScrapedJob, error) {
	endpoint := target.URL
	if endpoint == "" {
		name := target.CompanySlug
		if target.Company != nil && target.Company.Name != "" {
			name = target.Company.Name
		}
		endpoint = fmt.Sprintf("%s?company_name=%s", r.baseURL, url.QueryEscape(name))
	}

	var resp remotiveResponse
	if err := r.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("remotive: %w", err)
	}

	jobs := make([]types.ScrapedJob, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		published := time.Time{}
		if j.PublicationDT != "" {
			// Remotive reports local timestamps without a zone
			if t, err := time.Parse("2006-01-02T15:04:05", j.PublicationDT); err == nil {
				published = t.UTC()
			}
		}

		tags := j.Tags
		if j.Category != "" {
			tags = append(tags, j.Category)
		}

		job := types.ScrapedJob{
			ExternalID:  strconv.FormatInt(j.ID, 10),
			Platform:    PlatformRemotive,
			CompanySlug: target.CompanySlug,
			Title:       j.Title,
			Description: j.Description,
			Location:    j.RequiredRegion,
			Remote:      true, // Remotive lists remote positions only
			Tags:        tags,
			Seniority:   inferSeniority(j.Title),
			Employment:  parseEmploymentType(j.JobType),
			Salary:      j.Salary,
			ExternalURL: j.URL,
			PublishedAt: published,
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
