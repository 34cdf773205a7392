package scraper

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jobradar/jobradar/internal/types"
)

const greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"

// Greenhouse pulls postings from the Greenhouse job board API.
type Greenhouse struct {
	client  *Client
	baseURL string
}

// NewGreenhouse creates the Greenhouse adapter
func NewGreenhouse(client *Client) *Greenhouse {
	return &Greenhouse{client: client, baseURL: greenhouseBaseURL}
}

// Platform implements Scraper
func (g *Greenhouse) Platform() string { return PlatformGreenhouse }

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

type greenhouseJob struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"` // HTML, entity-encoded
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	AbsoluteURL string `json:"absolute_url"`
	UpdatedAt   string `json:"updated_at"`
	FirstPub    string `json:"first_published"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
	Metadata []struct {
		Name  string      `json:"name"`
		Value interface{} `json:"value"`
	} `json:"metadata"`
}

// FetchJobs implements Scraper
func (g *Greenhouse) FetchJobs(ctx context.Context, target Target) ([]types.ScrapedJob, error) {
	url := target.URL
	if url == "" {
		url = fmt.Sprintf("%s/%s/jobs?content=true", g.baseURL, target.CompanySlug)
	}

	var resp greenhouseResponse
	if err := g.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("greenhouse: %w", err)
	}

	jobs := make([]types.ScrapedJob, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		published := parseGreenhouseTime(j.FirstPub)
		if published.IsZero() {
			published = parseGreenhouseTime(j.UpdatedAt)
		}

		var tags []string
		for _, dept := range j.Departments {
			if dept.Name != "" {
				tags = append(tags, dept.Name)
			}
		}

		job := types.ScrapedJob{
			ExternalID:  strconv.FormatInt(j.ID, 10),
			Platform:    PlatformGreenhouse,
			CompanySlug: target.CompanySlug,
			Title:       j.Title,
			Description: j.Content,
			Location:    j.Location.Name,
			Remote:      isRemoteLocation(j.Location.Name),
			Tags:        tags,
			Seniority:   inferSeniority(j.Title),
			ExternalURL: j.AbsoluteURL,
			PublishedAt: published,
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func parseGreenhouseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
