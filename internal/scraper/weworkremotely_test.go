package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobradar/jobradar/internal/db/models"
)

const wwrFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <item>
      <title>Acme: Senior Platform Engineer</title>
      <link>https://weworkremotely.com/remote-jobs/acme-senior-platform-engineer</link>
      <guid>wwr-1001</guid>
      <description>Run the platform.</description>
      <pubDate>Wed, 01 May 2024 12:00:00 +0000</pubDate>
      <region>Anywhere in the World</region>
      <category>DevOps and Sysadmin</category>
      <type>Full-Time</type>
    </item>
    <item>
      <title>Globex: Backend Engineer</title>
      <link>https://weworkremotely.com/remote-jobs/globex-backend-engineer</link>
      <guid>wwr-1002</guid>
      <description>Someone else's posting.</description>
      <pubDate>Wed, 01 May 2024 13:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func TestWeWorkRemotelyFetchJobs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(wwrFixture))
	}))
	defer server.Close()

	adapter := NewWeWorkRemotely(NewClient(5 * time.Second))
	jobs, err := adapter.FetchJobs(context.Background(), Target{
		URL:         server.URL,
		CompanySlug: "acme",
		Company:     &models.Company{Name: "Acme"},
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1, "items for other companies are skipped")

	job := jobs[0]
	assert.Equal(t, "wwr-1001", job.ExternalID)
	assert.Equal(t, PlatformWeWorkRemotely, job.Platform)
	assert.Equal(t, "Senior Platform Engineer", job.Title, "company prefix is stripped")
	assert.True(t, job.Remote)
	assert.Equal(t, "Anywhere in the World", job.Location)
	assert.Equal(t, []string{"DevOps and Sysadmin"}, job.Tags)
	assert.Equal(t, models.SenioritySenior, job.Seniority)
	assert.Equal(t, models.EmploymentTypeFullTime, job.Employment)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), job.PublishedAt)
}

func TestWeWorkRemotelyRequiresFeedURL(t *testing.T) {
	adapter := NewWeWorkRemotely(NewClient(5 * time.Second))
	_, err := adapter.FetchJobs(context.Background(), Target{CompanySlug: "acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no feed url")
}

func TestSplitWWRTitle(t *testing.T) {
	company, title := splitWWRTitle("Acme: Senior Engineer")
	assert.Equal(t, "Acme", company)
	assert.Equal(t, "Senior Engineer", title)

	company, title = splitWWRTitle("Acme: Engineer: Payments")
	assert.Equal(t, "Acme", company)
	assert.Equal(t, "Engineer: Payments", title)

	company, title = splitWWRTitle("No separator here")
	assert.Empty(t, company)
	assert.Equal(t, "No separator here", title)
}
