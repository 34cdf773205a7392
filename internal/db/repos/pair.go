package repos

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jobradar/jobradar/internal/db"
	"github.com/jobradar/jobradar/internal/db/models"
)

// ErrPairExists is returned when a (jobBoardID, companyID) pair already exists
var ErrPairExists = fmt.Errorf("job board/company pair already exists")

// PairBatchResult reports the outcome of one item in a bulk pair creation
type PairBatchResult struct {
	Index int                     `json:"index"`
	Pair  *models.JobBoardCompany `json:"pair,omitempty"`
	Error string                  `json:"error,omitempty"`
}

// PairRepository provides access to JobBoardCompany pair operations
type PairRepository struct {
	db *gorm.DB
}

// NewPairRepository creates a new pair repository instance
func NewPairRepository(gdb *gorm.DB) *PairRepository {
	return &PairRepository{db: gdb}
}

// Create creates a new pair. A duplicate (jobBoardID, companyID) fails with
// ErrPairExists instead of silently overwriting.
func (r *PairRepository) Create(ctx context.Context, pair *models.JobBoardCompany) error {
	err := r.db.WithContext(ctx).Create(pair).Error
	if err != nil {
		if db.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: board %d company %d", ErrPairExists, pair.JobBoardID, pair.CompanyID)
		}
		return fmt.Errorf("failed to create pair: %w", err)
	}
	return nil
}

// CreateBatch creates pairs item by item. One invalid item does not block the
// rest: the caller gets a per-item result list with valid items committed.
func (r *PairRepository) CreateBatch(ctx context.Context, pairs []*models.JobBoardCompany) []PairBatchResult {
	results := make([]PairBatchResult, len(pairs))
	for i, pair := range pairs {
		results[i].Index = i
		if err := r.Create(ctx, pair); err != nil {
			results[i].Error = err.Error()
			continue
		}
		results[i].Pair = pair
	}
	return results
}

// GetByID retrieves a pair by its ID with its board and company preloaded
func (r *PairRepository) GetByID(ctx context.Context, id uint) (*models.JobBoardCompany, error) {
	var pair models.JobBoardCompany
	err := r.db.WithContext(ctx).
		Preload("JobBoard").
		Preload("Company").
		First(&pair, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pair %d: %w", id, err)
	}
	return &pair, nil
}

// ListEnabled returns enabled pairs with board and company preloaded,
// optionally restricted to a single job board.
func (r *PairRepository) ListEnabled(ctx context.Context, jobBoardID *uint) ([]models.JobBoardCompany, error) {
	var pairs []models.JobBoardCompany
	query := r.db.WithContext(ctx).
		Preload("JobBoard").
		Preload("Company").
		Where("enabled = ?", true)
	if jobBoardID != nil {
		query = query.Where("job_board_id = ?", *jobBoardID)
	}
	if err := query.Find(&pairs).Error; err != nil {
		return nil, fmt.Errorf("failed to list enabled pairs: %w", err)
	}
	return pairs, nil
}

// ListByCompany returns all pairs configured for a company
func (r *PairRepository) ListByCompany(ctx context.Context, companyID uint) ([]models.JobBoardCompany, error) {
	var pairs []models.JobBoardCompany
	err := r.db.WithContext(ctx).
		Preload("JobBoard").
		Preload("Company").
		Where("company_id = ?", companyID).
		Find(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pairs for company %d: %w", companyID, err)
	}
	return pairs, nil
}

// List returns all pairs with board and company preloaded
func (r *PairRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.JobBoardCompany, error) {
	var pairs []models.JobBoardCompany
	query := r.db.WithContext(ctx).Preload("JobBoard").Preload("Company")
	if opts != nil {
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			query = query.Offset(opts.Offset)
		}
	}
	if err := query.Find(&pairs).Error; err != nil {
		return nil, fmt.Errorf("failed to list pairs: %w", err)
	}
	return pairs, nil
}

// Update updates a pair's configuration fields
func (r *PairRepository) Update(ctx context.Context, id uint, pair *models.JobBoardCompany) error {
	return r.db.WithContext(ctx).
		Where(&models.JobBoardCompany{Model: gorm.Model{ID: id}}).
		Updates(pair).Error
}

// Toggle flips a pair's enabled flag and returns the new value
func (r *PairRepository) Toggle(ctx context.Context, id uint) (bool, error) {
	var pair models.JobBoardCompany
	if err := r.db.WithContext(ctx).First(&pair, id).Error; err != nil {
		return false, fmt.Errorf("failed to get pair %d: %w", id, err)
	}
	enabled := !pair.Enabled
	err := r.db.WithContext(ctx).Model(&models.JobBoardCompany{}).
		Where("id = ?", id).
		Update("enabled", enabled).Error
	if err != nil {
		return false, fmt.Errorf("failed to toggle pair %d: %w", id, err)
	}
	return enabled, nil
}

// UpdateScrapeStatus is the narrow write path used after every scrape
// attempt. Success clears any previous error message.
func (r *PairRepository) UpdateScrapeStatus(ctx context.Context, id uint, status models.ScrapingStatus, errorMessage string, at time.Time) error {
	if status == models.ScrapingStatusSuccess {
		errorMessage = ""
	}
	err := r.db.WithContext(ctx).Model(&models.JobBoardCompany{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"scraping_status": status,
			"error_message":   errorMessage,
			"last_scraped_at": at,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update scrape status for pair %d: %w", id, err)
	}
	return nil
}

// Delete removes a pair
func (r *PairRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.JobBoardCompany{}, id).Error
}

// CountByBoard returns total, enabled, and failing pair counts for a board
func (r *PairRepository) CountByBoard(ctx context.Context, jobBoardID uint) (total, enabled, failing int64, err error) {
	base := r.db.WithContext(ctx).Model(&models.JobBoardCompany{}).Where("job_board_id = ?", jobBoardID)
	if err = base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count pairs for board %d: %w", jobBoardID, err)
	}
	if err = base.Session(&gorm.Session{}).Where("enabled = ?", true).Count(&enabled).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count enabled pairs for board %d: %w", jobBoardID, err)
	}
	if err = base.Session(&gorm.Session{}).Where("scraping_status = ?", models.ScrapingStatusError).Count(&failing).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count failing pairs for board %d: %w", jobBoardID, err)
	}
	return total, enabled, failing, nil
}
