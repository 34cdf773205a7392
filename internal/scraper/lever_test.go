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

const leverFixture = `[
  {
    "id": "abc-123",
    "text": "Senior Backend Engineer",
    "hostedUrl": "https://jobs.lever.co/acme/abc-123",
    "createdAt": 1714521600000,
    "categories": {
      "commitment": "Full-time",
      "location": "Remote - Europe",
      "team": "Engineering"
    },
    "description": "<p>Build the backend.</p>",
    "lists": [
      {"text": "What we are looking for", "content": "<li>Go experience</li><li>SQL</li>"},
      {"text": "Benefits", "content": "<li>Remote budget</li>"}
    ],
    "country": "DE",
    "workplaceType": "remote"
  }
]`

func TestLeverFetchJobs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("mode"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(leverFixture))
	}))
	defer server.Close()

	adapter := NewLever(NewClient(5 * time.Second))
	jobs, err := adapter.FetchJobs(context.Background(), Target{
		URL:         server.URL,
		CompanySlug: "acme",
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "abc-123", job.ExternalID)
	assert.Equal(t, PlatformLever, job.Platform)
	assert.Equal(t, "acme", job.CompanySlug)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, "<p>Build the backend.</p>", job.Description)
	assert.Equal(t, "Remote - Europe", job.Location)
	assert.True(t, job.Remote)
	assert.Equal(t, []string{"DE"}, job.Countries)
	assert.Equal(t, []string{"Engineering"}, job.Tags)
	assert.Equal(t, models.SenioritySenior, job.Seniority)
	assert.Equal(t, models.EmploymentTypeFullTime, job.Employment)
	assert.Equal(t, []string{"Go experience", "SQL"}, job.Requirements)
	assert.Equal(t, []string{"Remote budget"}, job.Benefits)
	assert.Equal(t, "https://jobs.lever.co/acme/abc-123", job.ExternalURL)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), job.PublishedAt)
}

func TestLeverEmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	adapter := NewLever(NewClient(5 * time.Second))
	jobs, err := adapter.FetchJobs(context.Background(), Target{URL: server.URL, CompanySlug: "acme"})
	require.NoError(t, err)
	assert.Empty(t, jobs, "zero postings is a valid result, not an error")
}
