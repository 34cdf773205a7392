// Package repos provides repository types wrapping database access
package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jobradar/jobradar/internal/db/models"
)

// JobRepository provides access to job-related database operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository instance
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// GetByNaturalKey retrieves a job by its (externalID, platform) natural key
func (r *JobRepository) GetByNaturalKey(ctx context.Context, externalID, platform string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where(&models.Job{ExternalID: externalID, Platform: platform}).
		First(&job).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get job %s/%s: %w", platform, externalID, err)
	}
	return &job, nil
}

// UpsertScraped writes one normalized posting keyed on (externalID, platform).
//
// An existing job has its mutable fields refreshed and is re-activated;
// FirstSeenAt is never touched and LastSeenAt only moves forward. A job not
// seen before is inserted with all lifecycle timestamps set to the scrape
// time. Returns true when a new row was created.
func (r *JobRepository) UpsertScraped(ctx context.Context, job *models.Job) (bool, error) {
	var existing models.Job
	err := r.db.WithContext(ctx).
		Where(&models.Job{ExternalID: job.ExternalID, Platform: job.Platform}).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if job.FirstSeenAt.IsZero() {
			job.FirstSeenAt = job.ScrapedAt
		}
		if job.LastSeenAt.IsZero() {
			job.LastSeenAt = job.ScrapedAt
		}
		job.IsActive = true
		job.Status = models.JobStatusActive
		if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
			return false, fmt.Errorf("failed to create job %s/%s: %w", job.Platform, job.ExternalID, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up job %s/%s: %w", job.Platform, job.ExternalID, err)
	}

	existing.Hash = job.Hash
	existing.Title = job.Title
	existing.Description = job.Description
	existing.Location = job.Location
	existing.Remote = job.Remote
	existing.Countries = job.Countries
	existing.Tags = job.Tags
	existing.Seniority = job.Seniority
	existing.Employment = job.Employment
	existing.Requirements = job.Requirements
	existing.Benefits = job.Benefits
	existing.Salary = job.Salary
	existing.ExternalURL = job.ExternalURL
	existing.CompanySlug = job.CompanySlug
	existing.CompanyID = job.CompanyID
	existing.PublishedAt = job.PublishedAt
	existing.ExpiresAt = job.ExpiresAt
	existing.ScrapedAt = job.ScrapedAt
	if job.ScrapedAt.After(existing.LastSeenAt) {
		existing.LastSeenAt = job.ScrapedAt
	}
	existing.IsActive = true
	existing.Status = models.JobStatusActive

	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return false, fmt.Errorf("failed to update job %s/%s: %w", job.Platform, job.ExternalID, err)
	}
	*job = existing
	return false, nil
}

// ExpireMissing marks previously-active jobs of the given platform as expired
// when their external ID was not observed in the run that just completed.
//
// Only jobs belonging to companySlugs are considered, so companies whose
// fetch failed this run keep their postings active.
func (r *JobRepository) ExpireMissing(ctx context.Context, platform string, companySlugs, seenExternalIDs []string) (int64, error) {
	if len(companySlugs) == 0 {
		return 0, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("platform = ? AND is_active = ? AND company_slug IN (?)", platform, true, companySlugs)
	if len(seenExternalIDs) > 0 {
		query = query.Where("external_id NOT IN (?)", seenExternalIDs)
	}

	result := query.Updates(map[string]interface{}{
		models.JobIsActiveField: false,
		models.JobStatusField:   models.JobStatusExpired,
	})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire jobs for platform %s: %w", platform, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *JobRepository) applyFilter(query *gorm.DB, filter *models.JobFilter) *gorm.DB {
	if filter == nil {
		return query.Where("is_active = ?", true)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.Remote != nil {
		query = query.Where("remote = ?", *filter.Remote)
	}
	if filter.Seniority != nil {
		query = query.Where("seniority = ?", *filter.Seniority)
	}
	if filter.EmploymentType != nil {
		query = query.Where("employment = ?", *filter.EmploymentType)
	}
	return query
}

// List returns jobs matching the filter, newest first
func (r *JobRepository) List(ctx context.Context, filter *models.JobFilter, opts *models.ListOptions) ([]models.Job, error) {
	var jobs []models.Job
	query := r.applyFilter(r.db.WithContext(ctx), filter)
	if opts != nil {
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			query = query.Offset(opts.Offset)
		}
	}
	err := query.Order(models.JobLastSeenAtField + " DESC").Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Count returns the number of jobs matching the filter
func (r *JobRepository) Count(ctx context.Context, filter *models.JobFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Job{}), filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// CountActiveByCompanySlug returns the number of active jobs for a company
func (r *JobRepository) CountActiveByCompanySlug(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("company_slug = ? AND is_active = ?", slug, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs for company %s: %w", slug, err)
	}
	return count, nil
}

// CountActiveByPlatform returns the number of active jobs for a platform
func (r *JobRepository) CountActiveByPlatform(ctx context.Context, platform string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("platform = ? AND is_active = ?", platform, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs for platform %s: %w", platform, err)
	}
	return count, nil
}

// OrphanByCompany detaches all jobs of a company from its row while keeping
// the historical postings and their legacy company slug.
func (r *JobRepository) OrphanByCompany(ctx context.Context, companyID uint) error {
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("company_id = ?", companyID).
		Update("company_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to orphan jobs for company %d: %w", companyID, err)
	}
	return nil
}

// SetStatus updates a job's status, keeping is_active consistent
func (r *JobRepository) SetStatus(ctx context.Context, id uint, status models.JobStatus) error {
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where(&models.Job{Model: gorm.Model{ID: id}}).
		Updates(map[string]interface{}{
			models.JobStatusField:   status,
			models.JobIsActiveField: status == models.JobStatusActive,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set status for job %d: %w", id, err)
	}
	return nil
}

// Touch advances LastSeenAt for a job, never moving it backwards
func (r *JobRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND last_seen_at < ?", id, at).
		Update(models.JobLastSeenAtField, at).Error
	if err != nil {
		return fmt.Errorf("failed to touch job %d: %w", id, err)
	}
	return nil
}
