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

const remotiveFixture = `{
  "jobs": [
    {
      "id": 987,
      "url": "https://remotive.com/remote-jobs/software-dev/987",
      "title": "Junior Go Developer",
      "company_name": "Acme",
      "category": "Software Development",
      "tags": ["go", "postgresql"],
      "job_type": "full_time",
      "publication_date": "2024-05-01T08:30:00",
      "candidate_required_location": "Worldwide",
      "salary": "$60k - $80k",
      "description": "Write Go services."
    }
  ]
}`

func TestRemotiveFetchJobs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(remotiveFixture))
	}))
	defer server.Close()

	adapter := NewRemotive(NewClient(5 * time.Second))
	jobs, err := adapter.FetchJobs(context.Background(), Target{URL: server.URL, CompanySlug: "acme"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "987", job.ExternalID)
	assert.Equal(t, PlatformRemotive, job.Platform)
	assert.Equal(t, "Junior Go Developer", job.Title)
	assert.True(t, job.Remote, "remotive postings are always remote")
	assert.Equal(t, []string{"go", "postgresql", "Software Development"}, job.Tags)
	assert.Equal(t, models.SeniorityJunior, job.Seniority)
	assert.Equal(t, models.EmploymentTypeFullTime, job.Employment)
	assert.Equal(t, "$60k - $80k", job.Salary)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC), job.PublishedAt)
}

func TestRemotiveFiltersByCompanyNameWhenNoURL(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("company_name")
		_, _ = w.Write([]byte(`{"jobs": []}`))
	}))
	defer server.Close()

	adapter := NewRemotive(NewClient(5 * time.Second))
	adapter.baseURL = server.URL

	company := &models.Company{Name: "Acme Robotics"}
	jobs, err := adapter.FetchJobs(context.Background(), Target{CompanySlug: "acme", Company: company})
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.Equal(t, "Acme Robotics", gotQuery, "the display name wins over the slug")
}
