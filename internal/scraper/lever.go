package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jobradar/jobradar/internal/types"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

var listItemPattern = regexp.MustCompile(`(?s)<li[^>]*>(.*?)</li>`)

// Lever pulls postings from the Lever postings API (JSON mode).
type Lever struct {
	client  *Client
	baseURL string
}

// NewLever creates the Lever adapter
func NewLever(client *Client) *Lever {
	return &Lever{client: client, baseURL: leverBaseURL}
}

// Platform implements Scraper
func (l *Lever) Platform() string { return PlatformLever }

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	HostedURL  string `json:"hostedUrl"`
	CreatedAt  int64  `json:"createdAt"` // ms since epoch
	Categories struct {
		Commitment string   `json:"commitment"`
		Location   string   `json:"location"`
		Team       string   `json:"team"`
		AllLocs    []string `json:"allLocations"`
	} `json:"categories"`
	Description      string `json:"description"`
	DescriptionPlain string `json:"descriptionPlain"`
	Lists            []struct {
		Text    string `json:"text"`
		Content string `json:"content"`
	} `json:"lists"`
	Country       string `json:"country"`
	WorkplaceType string `json:"workplaceType"`
}

// FetchJobs implements Scraper
func (l *Lever) FetchJobs(ctx context.Context, target Target) ([]types.ScrapedJob, error) {
	url := target.URL
	if url == "" {
		url = fmt.Sprintf("%s/%s", l.baseURL, target.CompanySlug)
	}
	if !strings.Contains(url, "mode=json") {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + "mode=json"
	}

	var postings []leverPosting
	if err := l.client.GetJSON(ctx, url, &postings); err != nil {
		return nil, fmt.Errorf("lever: %w", err)
	}

	jobs := make([]types.ScrapedJob, 0, len(postings))
	for _, p := range postings {
		description := p.Description
		if description == "" {
			description = p.DescriptionPlain
		}

		var requirements, benefits []string
		for _, list := range p.Lists {
			heading := strings.ToLower(list.Text)
			switch {
			case strings.Contains(heading, "requirement") || strings.Contains(heading, "need") || strings.Contains(heading, "looking for"):
				requirements = append(requirements, extractListItems(list.Content)...)
			case strings.Contains(heading, "benefit") || strings.Contains(heading, "perk") || strings.Contains(heading, "offer"):
				benefits = append(benefits, extractListItems(list.Content)...)
			}
		}

		var countries []string
		if p.Country != "" {
			countries = []string{p.Country}
		}

		var tags []string
		if p.Categories.Team != "" {
			tags = append(tags, p.Categories.Team)
		}

		job := types.ScrapedJob{
			ExternalID:   p.ID,
			Platform:     PlatformLever,
			CompanySlug:  target.CompanySlug,
			Title:        p.Text,
			Description:  description,
			Location:     p.Categories.Location,
			Remote:       p.WorkplaceType == "remote" || isRemoteLocation(p.Categories.Location),
			Countries:    countries,
			Tags:         tags,
			Seniority:    inferSeniority(p.Text),
			Employment:   parseEmploymentType(p.Categories.Commitment),
			Requirements: requirements,
			Benefits:     benefits,
			ExternalURL:  p.HostedURL,
			PublishedAt:  time.UnixMilli(p.CreatedAt).UTC(),
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func extractListItems(content string) []string {
	matches := listItemPattern.FindAllStringSubmatch(content, -1)
	items := make([]string, 0, len(matches))
	for _, m := range matches {
		if item := stripHTML(m[1]); item != "" {
			items = append(items, item)
		}
	}
	return items
}
