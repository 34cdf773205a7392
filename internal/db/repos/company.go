package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jobradar/jobradar/internal/db/models"
)

// CompanyRepository provides access to company-related database operations
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository instance
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create creates a new company
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// GetByID retrieves a company by its ID
func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get company %d: %w", id, err)
	}
	return &company, nil
}

// GetBySlug retrieves a company by its slug
func (r *CompanyRepository) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).Where(&models.Company{Slug: slug}).First(&company).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", slug, err)
	}
	return &company, nil
}

// List returns companies ordered by featured rank then name
func (r *CompanyRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Company, error) {
	var companies []models.Company
	query := r.db.WithContext(ctx).
		Order("featured DESC, featured_order ASC, name ASC")
	if opts != nil {
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			query = query.Offset(opts.Offset)
		}
	}
	if err := query.Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// Update updates a company
func (r *CompanyRepository) Update(ctx context.Context, id uint, company *models.Company) error {
	return r.db.WithContext(ctx).
		Where(&models.Company{Model: gorm.Model{ID: id}}).
		Updates(company).Error
}

// UpdateTotalJobs refreshes the denormalized active-job count for a company
func (r *CompanyRepository) UpdateTotalJobs(ctx context.Context, id uint, total int) error {
	err := r.db.WithContext(ctx).Model(&models.Company{}).
		Where(&models.Company{Model: gorm.Model{ID: id}}).
		Update("total_jobs", total).Error
	if err != nil {
		return fmt.Errorf("failed to update total jobs for company %d: %w", id, err)
	}
	return nil
}

// Delete removes a company, its job-board links, and detaches its jobs.
// Historical postings are kept with a nulled company_id (the legacy
// company_slug remains on the job rows).
func (r *CompanyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&models.JobBoardCompany{}).Error; err != nil {
			return fmt.Errorf("failed to delete pair links for company %d: %w", id, err)
		}
		if err := tx.Model(&models.Job{}).
			Where("company_id = ?", id).
			Update("company_id", nil).Error; err != nil {
			return fmt.Errorf("failed to orphan jobs for company %d: %w", id, err)
		}
		if err := tx.Delete(&models.Company{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete company %d: %w", id, err)
		}
		return nil
	})
}

// Count returns the total number of companies
func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Company{}).Count(&count).Error
	return count, err
}
