package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/types"
)

const workableBaseURL = "https://apply.workable.com/api/v1/widget/accounts"

// Workable pulls postings from the Workable widget API. Workable addresses a
// board by a numeric account ID rather than the company slug, so the ID is
// read from the company's metadata side-channel when the pair has no URL.
type Workable struct {
	client  *Client
	baseURL string
}

// NewWorkable creates the Workable adapter
func NewWorkable(client *Client) *Workable {
	return &Workable{client: client, baseURL: workableBaseURL}
}

// Platform implements Scraper
func (w *Workable) Platform() string { return PlatformWorkable }

type workableResponse struct {
	Name string        `json:"name"`
	Jobs []workableJob `json:"jobs"`
}

type workableJob struct {
	Shortcode   string `json:"shortcode"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Country     string `json:"country"`
	City        string `json:"city"`
	State       string `json:"state"`
	Remote      bool   `json:"remote"`
	Type        string `json:"employment_type"`
	PublishedOn string `json:"published_on"` // 2006-01-02
	Department  string `json:"department"`
}

// FetchJobs implements Scraper
func (w *Workable) FetchJobs(ctx context.Context, target Target) ([]types.ScrapedJob, error) {
	url := target.URL
	if url == "" {
		accountID := ""
		if target.Company != nil {
			accountID = target.Company.MetadataString(models.MetadataWorkableAccountID)
		}
		if accountID == "" {
			return nil, fmt.Errorf("workable: company %s has no %s metadata and the pair has no scraper url",
				target.CompanySlug, models.MetadataWorkableAccountID)
		}
		url = fmt.Sprintf("%s/%s?details=true", w.baseURL, accountID)
	}

	var resp workableResponse
	if err := w.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("workable: %w", err)
	}

	jobs := make([]types.ScrapedJob, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		location := j.City
		if location == "" {
			location = j.State
		}
		if j.Country != "" {
			if location != "" {
				location += ", "
			}
			location += j.Country
		}

		var countries []string
		if j.Country != "" {
			countries = []string{j.Country}
		}

		var tags []string
		if j.Department != "" {
			tags = []string{j.Department}
		}

		published := time.Time{}
		if j.PublishedOn != "" {
			if t, err := time.Parse("2006-01-02", j.PublishedOn); err == nil {
				published = t.UTC()
			}
		}

		job := types.ScrapedJob{
			ExternalID:  j.Shortcode,
			Platform:    PlatformWorkable,
			CompanySlug: target.CompanySlug,
			Title:       j.Title,
			Description: j.Description,
			Location:    location,
			Remote:      j.Remote || isRemoteLocation(location),
			Countries:   countries,
			Tags:        tags,
			Seniority:   inferSeniority(j.Title),
			Employment:  parseEmploymentType(j.Type),
			ExternalURL: j.URL,
			PublishedAt: published,
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
