package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jobradar/jobradar/internal/types"
)

// WeWorkRemotely pulls postings from a We Work Remotely RSS feed. The pair's
// scraper URL selects the feed (a company feed or a category feed); items
// whose company prefix does not match the target are skipped.
type WeWorkRemotely struct {
	client *Client
}

// NewWeWorkRemotely creates the We Work Remotely adapter
func NewWeWorkRemotely(client *Client) *WeWorkRemotely {
	return &WeWorkRemotely{client: client}
}

// Platform implements Scraper
func (w *WeWorkRemotely) Platform() string { return PlatformWeWorkRemotely }

type wwrFeed struct {
	Channel struct {
		Items []wwrItem `xml:"item"`
	} `xml:"channel"`
}

type wwrItem struct {
	Title       string `xml:"title"` // "Company: Job Title"
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Region      string `xml:"region"`
	Category    string `xml:"category"`
	Type        string `xml:"type"`
}

// FetchJobs implements Scraper
func (w *WeWorkRemotely) FetchJobs(ctx context.Context, target Target) ([]types.ScrapedJob, error) {
	if target.URL == "" {
		return nil, fmt.Errorf("weworkremotely: pair for company %s has no feed url", target.CompanySlug)
	}

	var feed wwrFeed
	if err := w.client.GetXML(ctx, target.URL, &feed); err != nil {
		return nil, fmt.Errorf("weworkremotely: %w", err)
	}

	companyName := target.CompanySlug
	if target.Company != nil && target.Company.Name != "" {
		companyName = target.Company.Name
	}

	jobs := make([]types.ScrapedJob, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		company, title := splitWWRTitle(item.Title)
		if !strings.EqualFold(company, companyName) {
			continue
		}

		externalID := item.GUID
		if externalID == "" {
			externalID = item.Link
		}

		published := time.Time{}
		if item.PubDate != "" {
			if t, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
				published = t.UTC()
			} else if t, err := time.Parse(time.RFC1123, item.PubDate); err == nil {
				published = t.UTC()
			}
		}

		var tags []string
		if item.Category != "" {
			tags = []string{item.Category}
		}

		job := types.ScrapedJob{
			ExternalID:  externalID,
			Platform:    PlatformWeWorkRemotely,
			CompanySlug: target.CompanySlug,
			Title:       title,
			Description: item.Description,
			Location:    item.Region,
			Remote:      true, // WWR lists remote positions only
			Tags:        tags,
			Seniority:   inferSeniority(title),
			Employment:  parseEmploymentType(item.Type),
			ExternalURL: item.Link,
			PublishedAt: published,
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// splitWWRTitle splits the feed's "Company: Job Title" convention. Titles
// containing further colons stay intact.
func splitWWRTitle(s string) (company, title string) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return "", strings.TrimSpace(s)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}
