package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/jobradar/jobradar/internal/types"
)

const ashbyBaseURL = "https://api.ashbyhq.com/posting-api/job-board"

// Ashby pulls postings from the Ashby job board API.
type Ashby struct {
	client  *Client
	baseURL string
}

// NewAshby creates the Ashby adapter
func NewAshby(client *Client) *Ashby {
	return &Ashby{client: client, baseURL: ashbyBaseURL}
}

// Platform implements Scraper
func (a *Ashby) Platform() string { return PlatformAshby }

type ashbyResponse struct {
	Jobs []ashbyJob `json:"jobs"`
}

type ashbyJob struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	DescriptionHTML string   `json:"descriptionHtml"`
	Location        string   `json:"location"`
	SecondaryLocs   []string `json:"secondaryLocations"`
	Department      string   `json:"department"`
	EmploymentType  string   `json:"employmentType"`
	IsRemote        bool     `json:"isRemote"`
	JobURL          string   `json:"jobUrl"`
	PublishedAt     string   `json:"publishedAt"`
	Compensation    struct {
		CompensationTierSummary string `json:"compensationTierSummary"`
	} `json:"compensation"`
}

// FetchJobs implements Scraper
func (a *Ashby) FetchJobs(ctx context.Context, target Target) ([]types.ScrapedJob, error) {
	url := target.URL
	if url == "" {
		url = fmt.Sprintf("%s/%s?includeCompensation=true", a.baseURL, target.CompanySlug)
	}

	var resp ashbyResponse
	if err := a.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("ashby: %w", err)
	}

	jobs := make([]types.ScrapedJob, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		published := time.Time{}
		if j.PublishedAt != "" {
			if t, err := time.Parse(time.RFC3339, j.PublishedAt); err == nil {
				published = t.UTC()
			}
		}

		var tags []string
		if j.Department != "" {
			tags = []string{j.Department}
		}

		job := types.ScrapedJob{
			ExternalID:  j.ID,
			Platform:    PlatformAshby,
			CompanySlug: target.CompanySlug,
			Title:       j.Title,
			Description: j.DescriptionHTML,
			Location:    j.Location,
			Remote:      j.IsRemote || isRemoteLocation(j.Location),
			Tags:        tags,
			Seniority:   inferSeniority(j.Title),
			Employment:  parseEmploymentType(j.EmploymentType),
			Salary:      j.Compensation.CompensationTierSummary,
			ExternalURL: j.JobURL,
			PublishedAt: published,
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
